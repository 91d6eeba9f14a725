package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives domain events for observability. The noop implementation
// is used when metrics are disabled.
type Recorder interface {
	RecordLogin(authSource string, success bool)
	RecordTokenIssued(tokenType string)
	RecordTokenRefresh(result string) // success, missing, invalid
	RecordSignup(role string, success bool)
	RecordPasswordReset(stage, result string) // stage: request, verify, complete
	RecordOAuthCallback(provider string, success bool)
	RecordHTTPRequest(method, path, status string, duration time.Duration)
}

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	LoginTotal         *prometheus.CounterVec
	TokensIssuedTotal  *prometheus.CounterVec
	TokenRefreshTotal  *prometheus.CounterVec
	SignupTotal        *prometheus.CounterVec
	PasswordResetTotal *prometheus.CounterVec
	OAuthCallbackTotal *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init returns a Prometheus-backed Recorder when enabled, the noop Recorder
// otherwise. Prometheus collectors are registered at most once per process.
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

func initMetrics() *Metrics {
	return &Metrics{
		LoginTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_login_total",
				Help: "Total number of login attempts",
			},
			[]string{"auth_source", "result"},
		),
		TokensIssuedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_tokens_issued_total",
				Help: "Total number of tokens issued",
			},
			[]string{"type"}, // access, refresh
		),
		TokenRefreshTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_token_refresh_total",
				Help: "Total number of refresh attempts",
			},
			[]string{"result"}, // success, missing, invalid
		),
		SignupTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_signup_total",
				Help: "Total number of signup attempts",
			},
			[]string{"role", "result"},
		),
		PasswordResetTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_password_reset_total",
				Help: "Total number of password reset flow events",
			},
			[]string{"stage", "result"},
		),
		OAuthCallbackTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_oauth_callback_total",
				Help: "Total number of OAuth callback completions",
			},
			[]string{"provider", "result"},
		),
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func (m *Metrics) RecordLogin(authSource string, success bool) {
	m.LoginTotal.WithLabelValues(authSource, result(success)).Inc()
}

func (m *Metrics) RecordTokenIssued(tokenType string) {
	m.TokensIssuedTotal.WithLabelValues(tokenType).Inc()
}

func (m *Metrics) RecordTokenRefresh(res string) {
	m.TokenRefreshTotal.WithLabelValues(res).Inc()
}

func (m *Metrics) RecordSignup(role string, success bool) {
	m.SignupTotal.WithLabelValues(role, result(success)).Inc()
}

func (m *Metrics) RecordPasswordReset(stage, res string) {
	m.PasswordResetTotal.WithLabelValues(stage, res).Inc()
}

func (m *Metrics) RecordOAuthCallback(provider string, success bool) {
	m.OAuthCallbackTotal.WithLabelValues(provider, result(success)).Inc()
}

func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
