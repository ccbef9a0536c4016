package metrics

import "github.com/prometheus/client_golang/prometheus"

// Simulation metrics
var (
	SimulationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulations_total",
		Help:      "Total number of Monte Carlo runs by kind and status",
	}, []string{"kind", "status"})
	SimulationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_duration_seconds",
		Help:      "Duration of Monte Carlo runs in seconds",
		Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}, []string{"kind"})
	SimulationIterations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_iterations",
		Help:      "Iterations per Monte Carlo run",
		Buckets:   []float64{100, 1000, 5000, 10000, 50000, 100000},
	}, []string{"kind"})
)

// RecordSimulation records a completed or failed Monte Carlo run.
// kind should be one of: "stat", "game", "prop", "portfolio", "season"
func RecordSimulation(kind, status string, iterations int, durationSeconds float64) {
	SimulationsTotal.WithLabelValues(kind, status).Inc()
	SimulationDuration.WithLabelValues(kind).Observe(durationSeconds)
	SimulationIterations.WithLabelValues(kind).Observe(float64(iterations))
}
