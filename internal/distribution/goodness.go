package distribution

import (
	"math"

	"github.com/yourusername/clever-props/internal/stats"
)

const minExpectedCount = 1e-9

// Fit grades
const (
	FitGood         = "good"
	FitAcceptable   = "acceptable"
	FitPoor         = "poor"
	FitInsufficient = "insufficient_data"
)

// GoodnessOfFit is a chi-squared test of observations against Poisson(mean).
type GoodnessOfFit struct {
	Lambda           float64 `json:"lambda"`
	ChiSquared       float64 `json:"chi_squared"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
	PValue           float64 `json:"p_value"`
	Fit              string  `json:"fit"`
}

// PoissonGoodnessOfFit bins rounded observations over 0..max and compares
// them with the fitted Poisson expectation. The p-value is a coarse bucket
// read off χ²/df rather than the exact chi-squared tail.
func PoissonGoodnessOfFit(values []float64) GoodnessOfFit {
	lambda := stats.Mean(values)
	if len(values) == 0 || lambda <= 0 {
		return GoodnessOfFit{Lambda: lambda, PValue: 0.5, Fit: FitInsufficient}
	}

	maxObs := 0
	observed := make(map[int]int)
	for _, v := range values {
		k := int(math.Round(math.Max(v, 0)))
		observed[k]++
		if k > maxObs {
			maxObs = k
		}
	}

	n := float64(len(values))
	chi := 0.0
	bins := 0
	for k := 0; k <= maxObs; k++ {
		var expected float64
		if k == maxObs {
			expected = n * (1 - PoissonCDF(k-1, lambda))
		} else {
			expected = n * PoissonPMF(k, lambda)
		}
		if expected < minExpectedCount {
			continue
		}
		diff := float64(observed[k]) - expected
		chi += diff * diff / expected
		bins++
	}

	df := bins - 2
	if df < 1 {
		df = 1
	}
	p := chiSquaredPValueBucket(chi / float64(df))
	return GoodnessOfFit{
		Lambda:           lambda,
		ChiSquared:       chi,
		DegreesOfFreedom: df,
		PValue:           p,
		Fit:              gradeFit(p),
	}
}

func chiSquaredPValueBucket(ratio float64) float64 {
	switch {
	case ratio < 1:
		return 0.5
	case ratio < 1.5:
		return 0.2
	case ratio < 2:
		return 0.1
	case ratio < 3:
		return 0.05
	default:
		return 0.01
	}
}

func gradeFit(p float64) string {
	switch {
	case p >= 0.1:
		return FitGood
	case p >= 0.05:
		return FitAcceptable
	default:
		return FitPoor
	}
}
