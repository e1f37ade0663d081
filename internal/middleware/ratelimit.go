package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jiwoolab/track/internal/model"
)

// RateLimiterConfig 는 레이트 리밋 설정을 보관한다.
type RateLimiterConfig struct {
	GeneralRate     rate.Limit    // API 전반의 레이트(req/sec)
	GeneralBurst    int           // API 전반의 버스트 크기
	FetchRate       rate.Limit    // 외부 취득(기사 제목, RSS 프리뷰)의 레이트(req/sec)
	FetchBurst      int           // 외부 취득의 버스트 크기
	CleanupInterval time.Duration // 만료 엔트리의 클린업 간격
}

// NewRateLimiterConfig 는 분당 횟수에서 레이트 리밋 설정을 만든다.
func NewRateLimiterConfig(generalPerMin, fetchPerMin int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(generalPerMin) / 60.0),
		GeneralBurst:    generalPerMin,
		FetchRate:       rate.Limit(float64(fetchPerMin) / 60.0),
		FetchBurst:      fetchPerMin,
		CleanupInterval: 5 * time.Minute,
	}
}

// userLimiter 는 사용자별 리미터와 마지막 접근 시각을 보관한다.
type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter 는 사용자별 레이트 리밋을 관리한다.
// API 전반과 외부 취득용의 두 가지 버킷을 제공한다.
type RateLimiter struct {
	config RateLimiterConfig

	generalMu       sync.RWMutex
	generalLimiters map[string]*userLimiter

	fetchMu       sync.RWMutex
	fetchLimiters map[string]*userLimiter

	stopCh chan struct{}
}

// NewRateLimiter 는 새 RateLimiter를 생성한다.
// 백그라운드에서 만료 엔트리의 클린업을 시작한다.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:          config,
		generalLimiters: make(map[string]*userLimiter),
		fetchLimiters:   make(map[string]*userLimiter),
		stopCh:          make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop 은 클린업 백그라운드 고루틴을 정지한다.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// GeneralMiddleware 는 API 전반의 레이트 리밋 미들웨어를 반환한다.
// 요청 컨텍스트에 사용자 ID가 있어야 한다(SessionMiddleware 뒤에 배치).
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := UserIDFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			limiter := rl.getOrCreate(&rl.generalMu, rl.generalLimiters, userID,
				rl.config.GeneralRate, rl.config.GeneralBurst)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.GeneralRate)
				slog.Warn("레이트 리밋을 초과했습니다",
					slog.String("user_id", userID),
					slog.String("limit_type", "general"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// FetchMiddleware 는 외부 취득(기사 제목, RSS 프리뷰) 전용의
// 레이트 리밋 미들웨어를 반환한다. API 전반의 리밋과 독립적으로 동작한다.
func (rl *RateLimiter) FetchMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := UserIDFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			limiter := rl.getOrCreate(&rl.fetchMu, rl.fetchLimiters, userID,
				rl.config.FetchRate, rl.config.FetchBurst)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.FetchRate)
				slog.Warn("레이트 리밋을 초과했습니다",
					slog.String("user_id", userID),
					slog.String("limit_type", "fetch"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GeneralLimiterCount 는 관리 중인 API 전반 리미터의 엔트리 수를 반환한다.
// 테스트용.
func (rl *RateLimiter) GeneralLimiterCount() int {
	rl.generalMu.RLock()
	defer rl.generalMu.RUnlock()
	return len(rl.generalLimiters)
}

// FetchLimiterCount 는 관리 중인 외부 취득 리미터의 엔트리 수를 반환한다.
// 테스트용.
func (rl *RateLimiter) FetchLimiterCount() int {
	rl.fetchMu.RLock()
	defer rl.fetchMu.RUnlock()
	return len(rl.fetchLimiters)
}

// getOrCreate 는 사용자의 리미터를 가져오거나 생성한다.
func (rl *RateLimiter) getOrCreate(mu *sync.RWMutex, limiters map[string]*userLimiter, userID string, r rate.Limit, burst int) *rate.Limiter {
	mu.RLock()
	ul, exists := limiters[userID]
	mu.RUnlock()

	if exists {
		mu.Lock()
		ul.lastAccess = time.Now()
		mu.Unlock()
		return ul.limiter
	}

	mu.Lock()
	defer mu.Unlock()

	// 더블 체크
	if ul, exists := limiters[userID]; exists {
		ul.lastAccess = time.Now()
		return ul.limiter
	}

	limiter := rate.NewLimiter(r, burst)
	limiters[userID] = &userLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// cleanupLoop 는 백그라운드에서 만료 엔트리를 정기적으로 지운다.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup 은 마지막 접근이 CleanupInterval의 2배를 넘은 엔트리를 삭제한다.
func (rl *RateLimiter) cleanup() {
	ttl := rl.config.CleanupInterval * 2
	now := time.Now()

	rl.generalMu.Lock()
	for userID, ul := range rl.generalLimiters {
		if now.Sub(ul.lastAccess) > ttl {
			delete(rl.generalLimiters, userID)
		}
	}
	rl.generalMu.Unlock()

	rl.fetchMu.Lock()
	for userID, ul := range rl.fetchLimiters {
		if now.Sub(ul.lastAccess) > ttl {
			delete(rl.fetchLimiters, userID)
		}
	}
	rl.fetchMu.Unlock()
}

// writeRateLimitResponse 는 429 Too Many Requests 응답을 쓴다.
// Retry-After 헤더에는 토큰이 보충될 때까지의 추정 초수를 넣는다.
func writeRateLimitResponse(w http.ResponseWriter, r rate.Limit) {
	retryAfterSec := int(math.Ceil(1.0 / float64(r)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	WriteErrorResponse(w, http.StatusTooManyRequests, &model.APIError{
		Code:     "RATE_LIMIT_EXCEEDED",
		Message:  "요청이 너무 많습니다.",
		Category: "system",
		Action:   "잠시 후 다시 시도해 주세요.",
	})
}
