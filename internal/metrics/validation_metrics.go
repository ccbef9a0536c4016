package metrics

import "github.com/prometheus/client_golang/prometheus"

// Validation counter vectors
var (
	ValidationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_runs_total",
		Help:      "Total number of validation runs by method and status",
	}, []string{"method", "status"})
)

// Validation gauge vectors
var (
	BacktestHitRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backtest_hit_rate",
		Help:      "Hit rate against the line from the latest backtest per player and stat",
	}, []string{"player_id", "stat_type"})
)

// Validation histograms
var (
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
	})
)

// RecordValidationRun records a validation event.
// method should be one of: "validate", "backtest", "walk_forward"
// status should be one of: "success", "empty", "error"
func RecordValidationRun(method, status string) {
	ValidationRunsTotal.WithLabelValues(method, status).Inc()
}

// UpdateBacktestHitRate updates the latest hit rate for a player and stat.
func UpdateBacktestHitRate(playerID, statType string, hitRate float64) {
	BacktestHitRate.WithLabelValues(playerID, statType).Set(hitRate)
}

// RecordBacktestDuration records backtest duration.
func RecordBacktestDuration(durationSeconds float64) {
	BacktestDuration.Observe(durationSeconds)
}
