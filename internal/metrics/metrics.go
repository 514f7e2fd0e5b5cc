// Package metrics exposes Prometheus collectors for the web application.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds the application collectors registered on one registry.
type Metrics struct {
	quizzesGenerated *prometheus.CounterVec
	quizSubmissions  *prometheus.CounterVec
	loginAttempts    *prometheus.CounterVec
	registrations    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Counter for generated quizzes
		quizzesGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_generated_total",
				Help: "Total number of generated quizzes",
			},
			[]string{"topic"},
		),

		quizSubmissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_submissions_total",
				Help: "Total number of submitted quizzes",
			},
			[]string{"authenticated"},
		),

		loginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_login_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"status"}, // status: success/failure
		),

		registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_registration_attempts_total",
				Help: "Total number of registration attempts",
			},
			[]string{"status"},
		),

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Time spent serving HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "code"},
		),
	}
}

func (m *Metrics) QuizGenerated(topic string) {
	m.quizzesGenerated.WithLabelValues(topic).Inc()
}

func (m *Metrics) QuizSubmitted(authenticated bool) {
	m.quizSubmissions.WithLabelValues(strconv.FormatBool(authenticated)).Inc()
}

func (m *Metrics) LoginAttempt(status string) {
	m.loginAttempts.WithLabelValues(status).Inc()
}

func (m *Metrics) Registration(status string) {
	m.registrations.WithLabelValues(status).Inc()
}

// ObserveRequest records the duration of a served request. route is the
// matched route pattern, not the raw path.
func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}
