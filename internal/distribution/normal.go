package distribution

import (
	"math"

	"github.com/yourusername/clever-props/internal/stats"
)

// NormalOver returns P(X > t) for X ~ N(mean, stddev²). A zero standard
// deviation is a step function; a negative one is neutral.
func NormalOver(t, mean, stddev float64) float64 {
	if stddev < 0 || math.IsNaN(stddev) || math.IsNaN(t) {
		return 0.5
	}
	if stddev == 0 {
		if mean > t {
			return 1
		}
		return 0
	}
	return stats.Clamp01(1 - stats.NormalCDF(t, mean, stddev))
}

// NormalBetween returns P(a <= X <= b).
func NormalBetween(a, b, mean, stddev float64) float64 {
	if b < a || stddev < 0 {
		return 0
	}
	return stats.Clamp01(stats.NormalCDF(b, mean, stddev) - stats.NormalCDF(a, mean, stddev))
}

// NormalQuantile returns the p-quantile.
func NormalQuantile(p, mean, stddev float64) float64 {
	return mean + stddev*stats.InverseNormalCDF(p)
}
