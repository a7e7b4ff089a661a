package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector exposes the service's counters and histograms. A nil
// collector is valid and records nothing, which keeps tests off the global
// prometheus registry.
type PrometheusCollector struct {
	registrationsTotal prometheus.Counter
	signInsTotal       *prometheus.CounterVec
	sessionsRevoked    prometheus.Counter

	friendTransitions *prometheus.CounterVec

	eventsCreatedTotal prometheus.Counter
	eventsDeletedTotal prometheus.Counter
	eventVisitsTotal   prometheus.Counter

	httpRequestDuration *prometheus.HistogramVec
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		registrationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "huddle_registrations_total",
			Help: "Total number of registered users",
		}),

		signInsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "huddle_signins_total",
			Help: "Sign-in attempts by outcome",
		}, []string{"outcome"}),

		sessionsRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "huddle_sessions_revoked_total",
			Help: "Total number of explicit sign-outs",
		}),

		friendTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "huddle_friend_transitions_total",
			Help: "Friend relationship transitions by kind",
		}, []string{"kind"}),

		eventsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "huddle_events_created_total",
			Help: "Total number of events created",
		}),

		eventsDeletedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "huddle_events_deleted_total",
			Help: "Total number of events deleted",
		}),

		eventVisitsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "huddle_event_visits_total",
			Help: "Total number of credited event visits",
		}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "huddle_http_request_duration_seconds",
			Help:    "HTTP request duration by method and path",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}, []string{"method", "path", "status"}),
	}
}

func (p *PrometheusCollector) RecordRegistration() {
	if p == nil {
		return
	}
	p.registrationsTotal.Inc()
}

func (p *PrometheusCollector) RecordSignIn(outcome string) {
	if p == nil {
		return
	}
	p.signInsTotal.WithLabelValues(outcome).Inc()
}

func (p *PrometheusCollector) RecordSignOut() {
	if p == nil {
		return
	}
	p.sessionsRevoked.Inc()
}

func (p *PrometheusCollector) RecordFriendTransition(kind string) {
	if p == nil {
		return
	}
	p.friendTransitions.WithLabelValues(kind).Inc()
}

func (p *PrometheusCollector) RecordEventCreated() {
	if p == nil {
		return
	}
	p.eventsCreatedTotal.Inc()
}

func (p *PrometheusCollector) RecordEventDeleted() {
	if p == nil {
		return
	}
	p.eventsDeletedTotal.Inc()
}

func (p *PrometheusCollector) RecordEventVisit() {
	if p == nil {
		return
	}
	p.eventVisitsTotal.Inc()
}

func (p *PrometheusCollector) ObserveHTTPRequest(method, path, status string, seconds float64) {
	if p == nil {
		return
	}
	p.httpRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}
