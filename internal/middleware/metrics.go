package middleware

import (
	"net/http"
	"time"
)

// StatusRecorder 는 상태 코드와 레이턴시 기록에 필요한 메트릭 인터페이스.
// metrics.Collector 의 부분 집합으로 정의한다.
type StatusRecorder interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(route string, duration time.Duration)
}

// NewMetricsMiddleware 는 응답 상태 코드와 레이턴시를 기록하는 미들웨어를 반환한다.
// collector가 nil이면 아무것도 기록하지 않고 통과시킨다.
func NewMetricsMiddleware(collector StatusRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if collector == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			collector.RecordHTTPStatus(rec.statusCode)
			collector.RecordRequestLatency(r.URL.Path, time.Since(start))
		})
	}
}
