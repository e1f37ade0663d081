package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jiwoolab/track/internal/metrics"
	"github.com/jiwoolab/track/internal/middleware"
)

// RouterDeps 는 NewRouter 에 필요한 의존성을 모은 구조체.
type RouterDeps struct {
	// 미들웨어 의존
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	CSRFConfig        middleware.CSRFConfig
	Logger            *slog.Logger

	// 메트릭. nil이면 계측 없이 동작한다.
	Collector *metrics.Collector
	Gatherer  prometheus.Gatherer

	// 인증
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 도메인 서비스
	DashboardService  DashboardServiceInterface
	JobListingService JobListingServiceInterface
	AppService        ApplicationServiceInterface
	RoutineService    RoutineServiceInterface
	ScheduleService   ScheduleServiceInterface
	NewsService       NewsServiceInterface
	ArticleFetcher    ArticleFetcherInterface
	FeedPreviewer     FeedPreviewerInterface
	TimeLogService    TimeLogServiceInterface
	StickerService    StickerServiceInterface
	UserService       UserServiceInterface
}

// NewRouter 는 전체 API 엔드포인트의 라우팅과 미들웨어 체인을 구성한 chi.Router 를 반환한다.
//
// 미들웨어 스택 실행 순서:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//	→ (인증 그룹) Session → CSRF → RateLimit(General)
//
// 인증 라우트(/auth/*)와 /health, /metrics 는 인증 그룹 밖에 둔다.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.Collector != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Collector))
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	dashboardHandler := NewDashboardHandler(deps.DashboardService)
	listingHandler := NewJobListingHandler(deps.JobListingService)
	appHandler := NewApplicationHandler(deps.AppService)
	routineHandler := NewRoutineHandler(deps.RoutineService)
	scheduleHandler := NewScheduleHandler(deps.ScheduleService)
	var fetchRecorder FetchRecorder
	if deps.Collector != nil {
		fetchRecorder = deps.Collector
	}
	newsHandler := NewNewsHandler(deps.NewsService, deps.ArticleFetcher, deps.FeedPreviewer, fetchRecorder)
	timeLogHandler := NewTimeLogHandler(deps.TimeLogService)
	stickerHandler := NewStickerHandler(deps.StickerService)
	userHandler := NewUserHandler(deps.UserService, deps.AuthConfig.CookieDomain, deps.AuthConfig.CookieSecure)

	// --- 인증 불필요 라우트 ---

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// 인증 라우트 (OAuth 플로우)
	r.Route("/auth", func(r chi.Router) {
		r.Get("/google/login", authHandler.Login)
		r.Get("/google/callback", authHandler.Callback)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// CSRF 토큰 발급
	r.Method(http.MethodGet, "/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig))

	// --- 인증 필요 라우트 ---
	// 미들웨어 스택: Session → CSRF → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 대시보드
		r.Get("/api/dashboard", dashboardHandler.Snapshot)

		// 채용 공고 관리
		r.Route("/api/job-listings", func(r chi.Router) {
			r.Get("/", listingHandler.List)
			r.Post("/", listingHandler.Create)
			r.Get("/calendar", listingHandler.Calendar)
			r.Get("/this-week-count", listingHandler.ThisWeekCount)
			r.Get("/upcoming", listingHandler.Upcoming)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", listingHandler.Update)
				r.Delete("/", listingHandler.Delete)
				r.Post("/move", listingHandler.Move)
			})
		})

		// 지원 내역 관리
		r.Route("/api/applications", func(r chi.Router) {
			r.Get("/", appHandler.List)
			r.Post("/", appHandler.Create)
			r.Get("/weekly-stat", appHandler.WeeklyStat)
			r.Get("/upcoming", appHandler.Upcoming)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", appHandler.Update)
				r.Delete("/", appHandler.Delete)
				r.Post("/reject", appHandler.Reject)
				r.Post("/restore", appHandler.Restore)
				r.Post("/accept", appHandler.Accept)
			})
		})

		// 데일리 루틴
		r.Route("/api/routines", func(r chi.Router) {
			r.Get("/", routineHandler.List)
			r.Post("/toggle", routineHandler.Toggle)
			r.Get("/focus/today", routineHandler.TodayFocus)
			r.Get("/focus/weekly", routineHandler.WeeklyFocus)
		})

		// 일정·달력
		r.Route("/api/schedules", func(r chi.Router) {
			r.Get("/", scheduleHandler.List)
			r.Post("/", scheduleHandler.Create)
			r.Get("/calendar", scheduleHandler.MonthView)
			r.Delete("/{id}", scheduleHandler.Delete)
		})

		// 뉴스 스크랩
		r.Route("/api/news-scraps", func(r chi.Router) {
			r.Get("/", newsHandler.List)
			r.Post("/", newsHandler.Create)

			// 외부 기사·피드를 가져오는 엔드포인트에는 전용 레이트 리밋을 추가
			r.With(deps.RateLimiter.FetchMiddleware()).Get("/preview", newsHandler.Preview)
			r.With(deps.RateLimiter.FetchMiddleware()).Get("/feed", newsHandler.FeedPreviewHandler)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", newsHandler.Update)
				r.Delete("/", newsHandler.Delete)
			})
		})

		// 타임 블록
		r.Route("/api/time-logs", func(r chi.Router) {
			r.Get("/", timeLogHandler.ListWeek)
			r.Post("/", timeLogHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", timeLogHandler.Update)
				r.Delete("/", timeLogHandler.Delete)
			})
		})

		// 주간 목표
		r.Route("/api/weekly-goals", func(r chi.Router) {
			r.Get("/", timeLogHandler.ListGoals)
			r.Put("/", timeLogHandler.UpsertGoal)
		})

		// 스티커 메모
		r.Route("/api/stickers", func(r chi.Router) {
			r.Get("/", stickerHandler.List)
			r.Post("/", stickerHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", stickerHandler.Update)
				r.Delete("/", stickerHandler.Delete)
				r.Post("/toggle", stickerHandler.Toggle)
			})
		})

		// 사용자 관리
		r.Route("/api/users", func(r chi.Router) {
			r.Get("/me", userHandler.Profile)
			r.Delete("/me", userHandler.Withdraw)
		})
	})

	return r
}
