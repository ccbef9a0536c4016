package distribution

import (
	"math"

	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

// Over returns P(X > t) for the descriptor. Degenerate parameters yield 0.5.
func Over(d models.Descriptor, t float64) float64 {
	switch d.Type {
	case models.FamilyPoisson:
		return PoissonOver(t, d.Lambda)
	case models.FamilyBinomial:
		return BinomialOver(t, d.N, d.P)
	case models.FamilyNormal:
		return NormalOver(t, d.Mean, d.StdDev)
	default:
		return models.NeutralProbability
	}
}

// Under returns 1 - Over so the pair always sums to one.
func Under(d models.Descriptor, t float64) float64 {
	return 1 - Over(d, t)
}

// ProbabilityAt returns P(X = k). For the normal family this is the mass of
// the unit interval centred on k.
func ProbabilityAt(d models.Descriptor, k int) float64 {
	switch d.Type {
	case models.FamilyPoisson:
		return PoissonPMF(k, d.Lambda)
	case models.FamilyBinomial:
		return BinomialPMF(k, d.N, d.P)
	case models.FamilyNormal:
		return NormalBetween(float64(k)-0.5, float64(k)+0.5, d.Mean, d.StdDev)
	default:
		return 0
	}
}

// Between returns P(a <= X <= b).
func Between(d models.Descriptor, a, b float64) float64 {
	switch d.Type {
	case models.FamilyPoisson:
		return PoissonBetween(a, b, d.Lambda)
	case models.FamilyBinomial:
		return BinomialBetween(a, b, d.N, d.P)
	case models.FamilyNormal:
		return NormalBetween(a, b, d.Mean, d.StdDev)
	default:
		return 0
	}
}

// CDF returns P(X <= x). Thresholds past the support of a count family
// return 1.
func CDF(d models.Descriptor, x float64) float64 {
	switch d.Type {
	case models.FamilyPoisson:
		if math.IsNaN(x) {
			return models.NeutralProbability
		}
		if x >= float64(poissonBound(d.Lambda)) {
			return 1
		}
		return PoissonCDF(floorIndex(x), d.Lambda)
	case models.FamilyBinomial:
		if math.IsNaN(x) {
			return models.NeutralProbability
		}
		if x >= float64(d.N) {
			return 1
		}
		return BinomialCDF(floorIndex(x), d.N, d.P)
	case models.FamilyNormal:
		return stats.NormalCDF(x, d.Mean, d.StdDev)
	default:
		return models.NeutralProbability
	}
}

// Mean returns the distribution mean.
func Mean(d models.Descriptor) float64 {
	return d.Center()
}

// Variance returns the distribution variance.
func Variance(d models.Descriptor) float64 {
	switch d.Type {
	case models.FamilyPoisson:
		return math.Max(d.Lambda, 0)
	case models.FamilyBinomial:
		return float64(d.N) * d.P * (1 - d.P)
	default:
		return d.StdDev * d.StdDev
	}
}

// Mode returns the most likely value.
func Mode(d models.Descriptor) float64 {
	switch d.Type {
	case models.FamilyPoisson:
		return math.Max(0, math.Floor(d.Lambda))
	case models.FamilyBinomial:
		return math.Min(float64(d.N), math.Floor(float64(d.N+1)*d.P))
	default:
		return d.Mean
	}
}

// Percentile returns the p-quantile, p in (0, 1).
func Percentile(d models.Descriptor, p float64) float64 {
	switch d.Type {
	case models.FamilyPoisson:
		return float64(PoissonQuantile(p, d.Lambda))
	case models.FamilyBinomial:
		return float64(BinomialQuantile(p, d.N, d.P))
	default:
		return NormalQuantile(p, d.Mean, d.StdDev)
	}
}

// ConfidenceInterval returns the central interval holding the given mass.
func ConfidenceInterval(d models.Descriptor, level float64) stats.Interval {
	tail := (1 - level) / 2
	return stats.Interval{
		Lower: Percentile(d, tail),
		Upper: Percentile(d, 1-tail),
		Level: level,
	}
}

// Scale multiplies the distribution's location by factor. Normal keeps its
// coefficient of variation. Binomial scales p at fixed n while p stays at or
// below 1; past that n grows to ceil(n*factor) and p is set so n*p still
// equals the scaled mean.
func Scale(d models.Descriptor, factor float64) models.Descriptor {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return d
	}
	out := d
	switch d.Type {
	case models.FamilyPoisson:
		out.Lambda = d.Lambda * factor
	case models.FamilyBinomial:
		if p := d.P * factor; p <= 1 || d.N <= 0 {
			out.P = stats.Clamp01(p)
			break
		}
		target := float64(d.N) * d.P * factor
		out.N = int(math.Ceil(float64(d.N) * factor))
		out.P = stats.Clamp01(target / float64(out.N))
	case models.FamilyNormal:
		out.Mean = d.Mean * factor
		out.StdDev = d.StdDev * factor
	}
	return out
}

// Recenter scales the descriptor so its mean equals target. A zero-mean
// descriptor cannot be rescaled and is returned unchanged.
func Recenter(d models.Descriptor, target float64) models.Descriptor {
	center := d.Center()
	if center <= 0 || target <= 0 {
		return d
	}
	return Scale(d, target/center)
}
