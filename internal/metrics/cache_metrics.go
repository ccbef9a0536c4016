package metrics

import "github.com/prometheus/client_golang/prometheus"

// Cache and scheduler metrics
var (
	CacheRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Prediction cache lookups by result",
	}, []string{"result"})
	CacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_hit_ratio",
		Help:      "Prediction cache hit ratio",
	})
	CacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_size",
		Help:      "Number of cached predictions",
	})
	SchedulerJobRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduler_job_runs_total",
		Help:      "Scheduled job executions by job and status",
	}, []string{"job", "status"})
)

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheRequestsTotal.WithLabelValues(result).Inc()
}

// UpdateCacheStats updates the cache gauges.
func UpdateCacheStats(hitRatio float64, size int) {
	CacheHitRatio.Set(hitRatio)
	CacheSize.Set(float64(size))
}

// RecordSchedulerJob records a scheduled job run.
func RecordSchedulerJob(job, status string) {
	SchedulerJobRunsTotal.WithLabelValues(job, status).Inc()
}
