package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "node_auth"

	OutcomeLabel = "outcome"

	OutcomeAuthenticated = "authenticated"
)

// AuthMetrics counts node authentication outcomes.
type AuthMetrics struct {
	requests *prometheus.CounterVec
}

// New creates the auth metrics and registers them in the registerer.
// With nil registerer the counters still work but are not exported anywhere.
func New(registerer prometheus.Registerer) (*AuthMetrics, error) {
	m := &AuthMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Number of requests processed by node authentication, by outcome.",
		}, []string{OutcomeLabel}),
	}

	if registerer != nil {
		if err := registerer.Register(m.requests); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *AuthMetrics) Authenticated() {
	m.Observe(OutcomeAuthenticated)
}

func (m *AuthMetrics) Observe(outcome string) {
	m.requests.WithLabelValues(outcome).Inc()
}

// Requests returns the counter for the given outcome.
func (m *AuthMetrics) Requests(outcome string) prometheus.Counter {
	return m.requests.WithLabelValues(outcome)
}
