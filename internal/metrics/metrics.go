// Package metrics holds the Prometheus collectors for swipe activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	SessionsStarted prometheus.Counter
	SessionsEnded   *prometheus.CounterVec
	Actions         *prometheus.CounterVec
	ProviderFetches *prometheus.CounterVec
	PersistErrors   prometheus.Counter
}

// New creates the metrics and registers them with reg.
// A nil reg registers with the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "swiper_sessions_started_total",
			Help: "Total number of browsing sessions started",
		}),
		SessionsEnded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swiper_sessions_ended_total",
			Help: "Browsing sessions ended, by reason",
		}, []string{"reason"}),
		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swiper_actions_total",
			Help: "Deck actions applied, by kind",
		}, []string{"action"}),
		ProviderFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swiper_provider_fetches_total",
			Help: "Candidate batch fetches, by outcome",
		}, []string{"outcome"}),
		PersistErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "swiper_persist_errors_total",
			Help: "Failed writes of a liked list to the store",
		}),
	}
}

// Action records one applied deck action.
func (m *Metrics) Action(kind string) {
	if m == nil {
		return
	}
	m.Actions.WithLabelValues(kind).Inc()
}

// Fetch records the outcome of a candidate fetch.
func (m *Metrics) Fetch(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ProviderFetches.WithLabelValues(outcome).Inc()
}

// SessionStarted increments the sessions counter.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.SessionsStarted.Inc()
}

// SessionEnded records a session leaving memory.
func (m *Metrics) SessionEnded(reason string) {
	if m == nil {
		return
	}
	m.SessionsEnded.WithLabelValues(reason).Inc()
}

// PersistFailed increments the persist error counter.
func (m *Metrics) PersistFailed() {
	if m == nil {
		return
	}
	m.PersistErrors.Inc()
}
