// Package metrics holds the Prometheus collectors for assistant turns.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
	OutcomeFailed   = "failed"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Turns           *prometheus.CounterVec
	TurnDuration    *prometheus.HistogramVec
	AdapterCalls    *prometheus.CounterVec
	AdapterDuration *prometheus.HistogramVec
	CacheLookups    *prometheus.CounterVec
	BreakerState    *prometheus.GaugeVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Turns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_turns_total",
				Help: "Total number of assistant turns by resolved branch and outcome",
			},
			[]string{"branch", "outcome"},
		),
		TurnDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nexus_turn_duration_seconds",
				Help:    "End-to-end turn latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"branch"},
		),
		AdapterCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_adapter_calls_total",
				Help: "Total number of model adapter calls by adapter and result",
			},
			[]string{"adapter", "result"},
		),
		AdapterDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nexus_adapter_duration_seconds",
				Help:    "Model adapter call latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"adapter"},
		),
		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_cache_lookups_total",
				Help: "Total number of lookup cache reads by namespace and result",
			},
			[]string{"namespace", "result"},
		),
		BreakerState: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nexus_breaker_state",
				Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),
	}
}

// ObserveTurn records one finished turn.
func (m *Metrics) ObserveTurn(branch, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Turns.WithLabelValues(branch, outcome).Inc()
	m.TurnDuration.WithLabelValues(branch).Observe(elapsed.Seconds())
}

// ObserveAdapter records one adapter call. err decides the result label.
func (m *Metrics) ObserveAdapter(adapter string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := OutcomeOK
	if err != nil {
		result = OutcomeFailed
	}
	m.AdapterCalls.WithLabelValues(adapter, result).Inc()
	m.AdapterDuration.WithLabelValues(adapter).Observe(elapsed.Seconds())
}

// ObserveCache records a cache read.
func (m *Metrics) ObserveCache(namespace string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(namespace, result).Inc()
}

// SetBreakerState records the breaker position.
func (m *Metrics) SetBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(name).Set(float64(state))
}
