// Package distribution evaluates and fits the discrete and continuous
// families used for player stat lines.
package distribution

import (
	"math"

	"github.com/yourusername/clever-props/internal/stats"
)

const minPoissonBound = 50

// PoissonPMF returns P(X = k) for X ~ Poisson(λ), evaluated in log space.
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 || lambda <= 0 {
		return 0
	}
	return math.Exp(float64(k)*math.Log(lambda) - lambda - stats.LogFactorial(k))
}

// poissonBound is the truncation point for cumulative sums. The mass above
// it is below 1e-9 for every λ.
func poissonBound(lambda float64) int {
	if lambda <= 0 || math.IsNaN(lambda) {
		return minPoissonBound
	}
	bound := int(math.Ceil(lambda + 10*math.Sqrt(lambda)))
	if bound < minPoissonBound {
		bound = minPoissonBound
	}
	return bound
}

// floorIndex converts a finite threshold to its integer floor. Negative
// thresholds, -Inf included, map to -1. Callers bound t from above first.
func floorIndex(t float64) int {
	if t < 0 {
		return -1
	}
	return int(math.Floor(t))
}

// PoissonCDF returns P(X <= k).
func PoissonCDF(k int, lambda float64) float64 {
	if k < 0 || lambda <= 0 {
		if k >= 0 {
			return 1
		}
		return 0
	}
	upper := k
	if bound := poissonBound(lambda); upper > bound {
		upper = bound
	}
	sum := 0.0
	for i := 0; i <= upper; i++ {
		sum += PoissonPMF(i, lambda)
	}
	return stats.Clamp01(sum)
}

// PoissonOver returns P(X > t) = 1 - CDF(floor(t)). λ <= 0 is neutral.
func PoissonOver(t, lambda float64) float64 {
	if lambda <= 0 || math.IsNaN(t) {
		return 0.5
	}
	if t >= float64(poissonBound(lambda)) {
		return 0
	}
	k := floorIndex(t)
	if k < 0 {
		return 1
	}
	return stats.Clamp01(1 - PoissonCDF(k, lambda))
}

// PoissonBetween returns P(a <= X <= b).
func PoissonBetween(a, b, lambda float64) float64 {
	bound := float64(poissonBound(lambda))
	if lambda <= 0 || b < a || b < 0 || a > bound {
		return 0
	}
	lo := int(math.Max(0, math.Ceil(a)))
	hi := int(math.Min(bound, math.Floor(b)))
	sum := 0.0
	for k := lo; k <= hi; k++ {
		sum += PoissonPMF(k, lambda)
	}
	return stats.Clamp01(sum)
}

// PoissonQuantile returns the smallest k with CDF(k) >= p.
func PoissonQuantile(p, lambda float64) int {
	if lambda <= 0 || p <= 0 {
		return 0
	}
	limit := poissonBound(lambda)
	cum := 0.0
	for k := 0; k <= limit; k++ {
		cum += PoissonPMF(k, lambda)
		if cum >= p {
			return k
		}
	}
	return limit
}
