// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "settleup"

// Metrics holds every collector. Build it with New; a nil *Metrics is valid
// and records nothing, which keeps tests and tools free of registry setup.
type Metrics struct {
	RPCRequests         *prometheus.CounterVec
	RPCDuration         *prometheus.HistogramVec
	Settlements         prometheus.Counter
	TransfersPerSettle  prometheus.Histogram
	SettlementFailures  *prometheus.CounterVec
	EventPublishFailure prometheus.Counter
	CacheLookups        *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Settlements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_computed_total",
			Help:      "Settlements computed successfully.",
		}),
		TransfersPerSettle: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transfers_per_settlement",
			Help:      "Number of transfers emitted per settlement.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		SettlementFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_failures_total",
			Help:      "Settlement computations rejected, by error kind.",
		}, []string{"kind"}),
		EventPublishFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_failures_total",
			Help:      "Split events that could not be published.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Split cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.RPCRequests,
		m.RPCDuration,
		m.Settlements,
		m.TransfersPerSettle,
		m.SettlementFailures,
		m.EventPublishFailure,
		m.CacheLookups,
	)
	return m
}

// ObserveSettlement records a successful settlement with n transfers.
func (m *Metrics) ObserveSettlement(n int) {
	if m == nil {
		return
	}
	m.Settlements.Inc()
	m.TransfersPerSettle.Observe(float64(n))
}

// ObserveFailure records a rejected settlement.
func (m *Metrics) ObserveFailure(kind string) {
	if m == nil {
		return
	}
	m.SettlementFailures.WithLabelValues(kind).Inc()
}

// ObservePublishFailure records an event that was not delivered.
func (m *Metrics) ObservePublishFailure() {
	if m == nil {
		return
	}
	m.EventPublishFailure.Inc()
}

// ObserveCache records a cache lookup result.
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveRPC records one completed RPC.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(seconds)
}
