// Package metrics 는 Prometheus 메트릭의 수집과 공개를 제공한다.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector 는 메트릭 수집의 인터페이스.
// 핸들러와 서비스 계층에서 사용한다.
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(route string, duration time.Duration)
	RecordArticleFetchSuccess()
	RecordArticleFetchFailure(reason string)
	RecordAutoCheck(routineKey string)
	RecordPersistenceFailure(entity string)
}

// Collector 는 Prometheus 메트릭을 수집하는 구현.
type Collector struct {
	httpStatus          *prometheus.CounterVec
	requestLatency      *prometheus.HistogramVec
	articleFetchSuccess prometheus.Counter
	articleFetchFail    *prometheus.CounterVec
	autoChecks          *prometheus.CounterVec
	persistenceFail     *prometheus.CounterVec
}

// NewCollector 는 새 Collector를 생성하고 지정 레지스트리에 메트릭을 등록한다.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "track_http_status_total",
			Help: "HTTP 상태 코드별 응답 수",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "track_request_latency_seconds",
			Help:    "라우트별 요청 레이턴시(초)",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		articleFetchSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "track_article_fetch_success_total",
			Help: "기사 제목 취득 성공의 합계 수",
		}),
		articleFetchFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "track_article_fetch_fail_total",
			Help: "기사 제목 취득 실패의 합계 수",
		}, []string{"reason"}),
		autoChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "track_auto_check_total",
			Help: "루틴 자동 완료 기록의 합계 수",
		}, []string{"routine_key"}),
		persistenceFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "track_persistence_fail_total",
			Help: "엔티티별 영속화 실패의 합계 수",
		}, []string{"entity"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.articleFetchSuccess,
		c.articleFetchFail,
		c.autoChecks,
		c.persistenceFail,
	)

	return c
}

// RecordHTTPStatus 는 HTTP 상태 코드를 기록한다.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency 는 요청 레이턴시를 기록한다.
func (c *Collector) RecordRequestLatency(route string, duration time.Duration) {
	c.requestLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordArticleFetchSuccess 는 기사 제목 취득 성공을 기록한다.
func (c *Collector) RecordArticleFetchSuccess() {
	c.articleFetchSuccess.Inc()
}

// RecordArticleFetchFailure 는 기사 제목 취득 실패를 기록한다.
func (c *Collector) RecordArticleFetchFailure(reason string) {
	c.articleFetchFail.WithLabelValues(reason).Inc()
}

// RecordAutoCheck 는 루틴 자동 완료를 기록한다.
func (c *Collector) RecordAutoCheck(routineKey string) {
	c.autoChecks.WithLabelValues(routineKey).Inc()
}

// RecordPersistenceFailure 는 영속화 실패를 기록한다.
func (c *Collector) RecordPersistenceFailure(entity string) {
	c.persistenceFail.WithLabelValues(entity).Inc()
}

// Handler 는 Prometheus 스크레이프용 HTTP 핸들러를 반환한다.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
