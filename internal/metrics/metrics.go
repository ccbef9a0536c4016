// Package metrics provides the centralized Prometheus registry for the
// prediction engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clever_props"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Prediction metrics
var (
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of predictions by stat type and status",
	}, []string{"stat_type", "status"})
	PredictionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_duration_seconds",
		Help:      "Duration of a single prediction in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"stat_type"})
	PredictionConfidence = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_confidence",
		Help:      "Confidence scores of successful predictions",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	}, []string{"stat_type"})
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_total",
		Help:      "Total number of betting recommendations by action",
	}, []string{"action"})
	BatchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_batch_size",
		Help:      "Number of requests per batch prediction",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(PredictionDuration)
		registry.MustRegister(PredictionConfidence)
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(BatchSize)

		registry.MustRegister(SimulationsTotal)
		registry.MustRegister(SimulationDuration)
		registry.MustRegister(SimulationIterations)

		registry.MustRegister(ValidationRunsTotal)
		registry.MustRegister(BacktestHitRate)
		registry.MustRegister(BacktestDuration)

		registry.MustRegister(CacheRequestsTotal)
		registry.MustRegister(CacheHitRatio)
		registry.MustRegister(CacheSize)

		registry.MustRegister(SchedulerJobRunsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPrediction records a prediction outcome and its latency.
func RecordPrediction(statType, status string, durationSeconds float64) {
	PredictionsTotal.WithLabelValues(statType, status).Inc()
	PredictionDuration.WithLabelValues(statType).Observe(durationSeconds)
}

// RecordConfidence records the confidence of a successful prediction.
func RecordConfidence(statType string, confidence float64) {
	PredictionConfidence.WithLabelValues(statType).Observe(confidence)
}

// RecordRecommendation records a betting recommendation.
func RecordRecommendation(action string) {
	RecommendationsTotal.WithLabelValues(action).Inc()
}

// RecordBatch records a batch prediction size.
func RecordBatch(size int) {
	BatchSize.Observe(float64(size))
}
