// Package observability defines the Prometheus metrics exported by the server.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the debt service.
type Metrics struct {
	// --- RPC ---
	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec

	// --- Settlement ---
	PlansComputed       *prometheus.CounterVec
	PlanTransactions    prometheus.Histogram
	SimulationsByImpact *prometheus.CounterVec

	// --- Activity feed ---
	ActivitiesAdded *prometheus.CounterVec
	ActivityEntries prometheus.Gauge

	// --- Summary cache ---
	CacheLookups *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RPCRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "debt_rpc_requests_total",
			Help: "RPC calls by procedure and result code",
		}, []string{"procedure", "code"}),

		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "debt_rpc_duration_seconds",
			Help:    "RPC handling latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"procedure"}),

		PlansComputed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "debt_settlement_plans_total",
			Help: "Settlement plans computed, by source (snapshot or ledger)",
		}, []string{"source"}),

		PlanTransactions: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "debt_settlement_plan_transactions",
			Help:    "Number of transactions in each computed plan",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 34, 55},
		}),

		SimulationsByImpact: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "debt_payment_simulations_total",
			Help: "Payment simulations by impact",
		}, []string{"impact"}),

		ActivitiesAdded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "debt_activities_added_total",
			Help: "Activities appended to the feed, by type",
		}, []string{"type"}),

		ActivityEntries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "debt_activity_entries",
			Help: "Entries currently held in the activity feed",
		}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "debt_summary_cache_lookups_total",
			Help: "Summary cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
	}
}
