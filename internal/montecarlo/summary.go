package montecarlo

import (
	"fmt"
	"math"

	"github.com/yourusername/clever-props/internal/stats"
)

// DefaultLevels are the reported confidence levels.
var DefaultLevels = []float64{0.90, 0.95, 0.99}

// DefaultPercentiles are the reported percentile points.
var DefaultPercentiles = []float64{1, 5, 10, 25, 50, 75, 90, 95, 99}

// Summary describes a simulated sample.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// Summarize computes the sample summary.
func Summarize(values []float64) Summary {
	lo, hi := stats.MinMax(values)
	return Summary{
		Count:    len(values),
		Mean:     stats.Mean(values),
		StdDev:   stats.StdDev(values),
		Min:      lo,
		Max:      hi,
		Median:   stats.Median(values),
		Skewness: stats.Skewness(values),
		Kurtosis: stats.ExcessKurtosis(values),
	}
}

// CalculateConfidenceIntervals returns the empirical central interval for
// each level, keyed like "95%".
func CalculateConfidenceIntervals(distribution []float64, levels []float64) map[string]stats.Interval {
	results := make(map[string]stats.Interval, len(levels))
	if len(distribution) == 0 {
		return results
	}
	for _, level := range levels {
		p := (1.0 - level) / 2.0
		bounds := stats.Percentiles(distribution, []float64{p * 100, (1 - p) * 100})
		results[formatPercent(level)] = stats.Interval{Lower: bounds[0], Upper: bounds[1], Level: level}
	}
	return results
}

// PercentileTable returns the requested percentiles keyed like "p50".
func PercentileTable(distribution []float64, points []float64) map[string]float64 {
	results := make(map[string]float64, len(points))
	values := stats.Percentiles(distribution, points)
	for i, p := range points {
		results[fmt.Sprintf("p%g", p)] = values[i]
	}
	return results
}

func probabilityAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func probabilityBelow(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v < threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func formatPercent(level float64) string {
	return fmt.Sprintf("%.0f%%", level*100)
}

func clampValue(v float64, lo, hi *float64) (float64, bool) {
	clamped := false
	if lo != nil && v < *lo {
		v, clamped = *lo, true
	}
	if hi != nil && v > *hi {
		v, clamped = *hi, true
	}
	return v, clamped
}

func roundTo(v float64, enabled bool) float64 {
	if !enabled {
		return v
	}
	return math.Round(v)
}
