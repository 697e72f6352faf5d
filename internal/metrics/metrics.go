package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics - счетчики решений доступа и доставки уведомлений.
// Методы безопасны для nil-получателя, поэтому сервисы в тестах создаются без метрик.
type Metrics struct {
	AccessDecisionsTotal   *prometheus.CounterVec
	MembershipChangesTotal *prometheus.CounterVec
	NotificationsTotal     *prometheus.CounterVec
	EmailsTotal            *prometheus.CounterVec
	MentionsResolvedTotal  prometheus.Counter
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
}

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		AccessDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docspace_access_decisions_total",
				Help: "Total number of authorization decisions",
			},
			[]string{"scope", "outcome"},
		),
		MembershipChangesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docspace_membership_changes_total",
				Help: "Total number of membership mutations by outcome",
			},
			[]string{"scope", "operation", "outcome"},
		),
		NotificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docspace_notifications_total",
				Help: "Total number of in-app notifications",
			},
			[]string{"type", "status"},
		),
		EmailsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docspace_emails_total",
				Help: "Total number of notification emails",
			},
			[]string{"type", "status"},
		),
		MentionsResolvedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docspace_mentions_resolved_total",
				Help: "Total number of mention recipients resolved from comments",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docspace_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docspace_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	registry.MustRegister(
		m.AccessDecisionsTotal,
		m.MembershipChangesTotal,
		m.NotificationsTotal,
		m.EmailsTotal,
		m.MentionsResolvedTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

// AccessDecision учитывает результат Authorize. outcome - код ошибки или "allow".
func (m *Metrics) AccessDecision(scope, outcome string) {
	if m == nil {
		return
	}
	m.AccessDecisionsTotal.WithLabelValues(scope, outcome).Inc()
}

func (m *Metrics) MembershipChange(scope, operation, outcome string) {
	if m == nil {
		return
	}
	m.MembershipChangesTotal.WithLabelValues(scope, operation, outcome).Inc()
}

func (m *Metrics) Notification(notificationType string, err error) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(notificationType, status(err)).Inc()
}

func (m *Metrics) Email(notificationType string, err error) {
	if m == nil {
		return
	}
	m.EmailsTotal.WithLabelValues(notificationType, status(err)).Inc()
}

func (m *Metrics) MentionsResolved(n int) {
	if m == nil {
		return
	}
	m.MentionsResolvedTotal.Add(float64(n))
}

func status(err error) string {
	if err != nil {
		return StatusFailed
	}
	return StatusOK
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware считает запросы по шаблону маршрута, а не по фактическому пути,
// чтобы идентификаторы не раздували кардинальность.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// Handler отдает метрики реестра в формате Prometheus.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
