package application

import (
	"time"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomePreset   = "preset"
	outcomeLookedUp = "looked_up"

	outcomeSuccess    = "success"
	outcomeError      = "error"
	outcomeMissingKey = "missing_key"
)

// Metrics holds the prometheus collectors of a single run
type Metrics struct {
	registry       *prometheus.Registry
	domainChecks   *prometheus.CounterVec
	lookups        *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
}

// NewMetrics creates collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		domainChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "domain_checks_total",
			Help: "Domains checked, by outcome (preset or looked_up).",
		}, []string{"outcome"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_lookups_total",
			Help: "Reputation lookups, by provider and outcome.",
		}, []string{"provider", "outcome"}),
		lookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "provider_lookup_duration_seconds",
			Help:    "Latency of reputation lookups.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
	}
	m.registry.MustRegister(m.domainChecks, m.lookups, m.lookupDuration)
	return m
}

// ObserveDomain counts a checked domain
func (m *Metrics) ObserveDomain(outcome string) {
	m.domainChecks.WithLabelValues(outcome).Inc()
}

// ObserveLookup counts a provider lookup and records its latency
func (m *Metrics) ObserveLookup(result entity.ProviderResult, elapsed time.Duration) {
	outcome := outcomeSuccess
	switch {
	case result.Error == entity.ErrMissingAPIKey:
		outcome = outcomeMissingKey
	case result.Failed():
		outcome = outcomeError
	}
	m.lookups.WithLabelValues(result.Provider, outcome).Inc()
	m.lookupDuration.WithLabelValues(result.Provider).Observe(elapsed.Seconds())
}

// WriteToTextfile writes the collectors in the text exposition format
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
