package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErfKnownValues checks the approximation against reference values
func TestErfKnownValues(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "zero", x: 0, want: 0},
		{name: "one", x: 1, want: 0.8427007929},
		{name: "negative one", x: -1, want: -0.8427007929},
		{name: "two", x: 2, want: 0.9953222650},
		{name: "large", x: 6, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Erf(tt.x), 1e-6)
		})
	}
}

// TestNormalCDF tests standard and shifted normal CDF values
func TestNormalCDF(t *testing.T) {
	assert.InDelta(t, 0.5, StandardNormalCDF(0), 1e-6)
	assert.InDelta(t, 0.975, StandardNormalCDF(1.96), 1e-4)
	assert.InDelta(t, 0.8413, NormalCDF(25, 20, 5), 1e-4)

	// zero spread is a point mass
	assert.Equal(t, 1.0, NormalCDF(20, 20, 0))
	assert.Equal(t, 0.0, NormalCDF(19.9, 20, 0))
}

// TestNormalPDF tests density at the mean
func TestNormalPDF(t *testing.T) {
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), NormalPDF(0, 0, 1), 1e-12)
	assert.Equal(t, 0.0, NormalPDF(1, 0, 0))
}

// TestInverseNormalCDF tests round trips through Φ
func TestInverseNormalCDF(t *testing.T) {
	assert.InDelta(t, 1.959964, InverseNormalCDF(0.975), 1e-4)
	assert.InDelta(t, 0, InverseNormalCDF(0.5), 1e-9)
	assert.InDelta(t, -2.326348, InverseNormalCDF(0.01), 1e-4)
	assert.Equal(t, 10.0, InverseNormalCDF(1))
	assert.Equal(t, -10.0, InverseNormalCDF(0))

	for _, p := range []float64{0.001, 0.1, 0.3, 0.7, 0.9, 0.999} {
		assert.InDelta(t, p, StandardNormalCDF(InverseNormalCDF(p)), 1e-5)
	}
}

// TestFactorial tests exact and Stirling regimes
func TestFactorial(t *testing.T) {
	assert.Equal(t, 1.0, Factorial(0))
	assert.Equal(t, 120.0, Factorial(5))
	assert.Equal(t, 2432902008176640000.0, Factorial(20))
	assert.InEpsilon(t, 51090942171709440000.0, Factorial(21), 1e-8)
	assert.Equal(t, 0.0, Factorial(-1))

	assert.InDelta(t, math.Log(120), LogFactorial(5), 1e-12)
	assert.False(t, math.IsInf(LogFactorial(500), 0))
}

// TestBinomialCoefficient tests small coefficients
func TestBinomialCoefficient(t *testing.T) {
	assert.Equal(t, 120.0, BinomialCoefficient(10, 3))
	assert.Equal(t, 1.0, BinomialCoefficient(7, 0))
	assert.Equal(t, 1.0, BinomialCoefficient(7, 7))
	assert.Equal(t, 0.0, BinomialCoefficient(3, 5))
}

// TestZScore tests table lookups and fallback
func TestZScore(t *testing.T) {
	assert.Equal(t, 1.96, ZScore(0.95))
	assert.Equal(t, 2.576, ZScore(0.99))
	assert.InDelta(t, 1.15, ZScore(0.75), 0.01)
	assert.Equal(t, 0.0, ZScore(1.5))
}

// TestDescriptiveStatistics tests moments on a known sample
func TestDescriptiveStatistics(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.Equal(t, 5.0, Mean(values))
	assert.InDelta(t, 4.0, PopulationVariance(values), 1e-12)
	assert.InDelta(t, 32.0/7.0, Variance(values), 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0), StdDev(values), 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0)/5.0, CoefficientOfVariation(values), 1e-12)

	lo, hi := MinMax(values)
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 9.0, hi)

	assert.InDelta(t, 0, Skewness([]float64{1, 2, 3, 4, 5}), 1e-12)
	assert.Equal(t, 0.0, Variance([]float64{3}))
	assert.Equal(t, 0.0, Mean(nil))
}

// TestPercentileDoesNotMutate tests interpolation and input safety
func TestPercentileDoesNotMutate(t *testing.T) {
	values := []float64{4, 1, 3, 2}

	assert.Equal(t, 2.5, Percentile(values, 50))
	assert.Equal(t, 2.5, Median(values))
	assert.Equal(t, 1.0, Percentile(values, 0))
	assert.Equal(t, 4.0, Percentile(values, 100))
	assert.Equal(t, []float64{4, 1, 3, 2}, values)

	assert.Equal(t, []float64{1, 4}, Percentiles(values, []float64{0, 100}))
}

// TestCorrelation tests perfect and degenerate correlation
func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.0, Correlation(x, []float64{2, 4, 6, 8}), 1e-12)
	assert.InDelta(t, -1.0, Correlation(x, []float64{8, 6, 4, 2}), 1e-12)
	assert.Equal(t, 0.0, Correlation(x, []float64{5, 5, 5, 5}))
}

// TestRound tests decimal rounding half away from zero
func TestRound(t *testing.T) {
	assert.Equal(t, 0.184, RoundProbability(0.18364))
	assert.Equal(t, 2.35, Round(2.345, 2))
	assert.Equal(t, -1.3, Round(-1.25, 1))
	assert.Equal(t, 24.5, RoundStat(24.46))
	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
}

// TestClamp01 tests probability clamping
func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.2))
	assert.Equal(t, 1.0, Clamp01(1.7))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
	assert.Equal(t, 0.4, Clamp01(0.4))
}
