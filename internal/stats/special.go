// Package stats holds the shared numeric primitives: special functions,
// descriptive statistics and boundary rounding.
package stats

import "math"

// Erf approximates the error function with Abramowitz and Stegun 7.1.26.
// Maximum absolute error is about 1.5e-7.
func Erf(x float64) float64 {
	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)

	sign := 1.0
	if x < 0 {
		sign = -1.0
		x = -x
	}
	t := 1.0 / (1.0 + p*x)
	y := 1.0 - (((((a5*t+a4)*t)+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)
	return sign * y
}

// StandardNormalCDF returns Φ(z).
func StandardNormalCDF(z float64) float64 {
	return 0.5 * (1.0 + Erf(z/math.Sqrt2))
}

// NormalCDF returns P(X <= x) for X ~ N(mean, stddev²). A zero standard
// deviation is treated as a point mass at the mean.
func NormalCDF(x, mean, stddev float64) float64 {
	if stddev <= 0 {
		if x >= mean {
			return 1
		}
		return 0
	}
	return StandardNormalCDF((x - mean) / stddev)
}

// NormalPDF returns the normal density at x.
func NormalPDF(x, mean, stddev float64) float64 {
	if stddev <= 0 {
		return 0
	}
	z := (x - mean) / stddev
	return math.Exp(-0.5*z*z) / (stddev * math.Sqrt(2*math.Pi))
}

// InverseNormalCDF returns z such that Φ(z) = p using Acklam's rational
// approximation. Results are clamped to ±10.
func InverseNormalCDF(p float64) float64 {
	if p <= 0 {
		return -10
	}
	if p >= 1 {
		return 10
	}

	a := [6]float64{-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02,
		1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00}
	b := [5]float64{-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02,
		6.680131188771972e+01, -1.328068155288572e+01}
	c := [6]float64{-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00,
		-2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00}
	d := [4]float64{7.784695709041462e-03, 3.224671290700398e-01, 2.445134137142996e+00,
		3.754408661907416e+00}

	const low = 0.02425
	var z float64
	switch {
	case p < low:
		q := math.Sqrt(-2 * math.Log(p))
		z = (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	case p <= 1-low:
		q := p - 0.5
		r := q * q
		z = (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	default:
		q := math.Sqrt(-2 * math.Log(1-p))
		z = -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	}
	return math.Max(-10, math.Min(10, z))
}

// exactFactorialLimit is the largest k whose factorial is computed exactly.
const exactFactorialLimit = 20

// Factorial returns k!. Values up to 20 are exact products; above that the
// Stirling series is used. Negative k returns 0.
func Factorial(k int) float64 {
	if k < 0 {
		return 0
	}
	if k <= exactFactorialLimit {
		result := 1.0
		for i := 2; i <= k; i++ {
			result *= float64(i)
		}
		return result
	}
	return math.Exp(LogFactorial(k))
}

// LogFactorial returns ln(k!). It stays finite where Factorial overflows.
func LogFactorial(k int) float64 {
	if k < 0 {
		return math.Inf(-1)
	}
	if k <= exactFactorialLimit {
		return math.Log(Factorial(k))
	}
	n := float64(k)
	return n*math.Log(n) - n + 0.5*math.Log(2*math.Pi*n) + 1/(12*n) - 1/(360*n*n*n)
}

// BinomialCoefficient returns C(n, k), computed iteratively.
func BinomialCoefficient(n, k int) float64 {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1.0
	for i := 1; i <= k; i++ {
		result = result * float64(n-k+i) / float64(i)
	}
	return result
}

var zTable = map[float64]float64{
	0.80: 1.282,
	0.90: 1.645,
	0.95: 1.960,
	0.98: 2.326,
	0.99: 2.576,
}

// ZScore returns the two-sided critical value for a confidence level. The
// common levels come from a fixed table; other levels use InverseNormalCDF.
func ZScore(level float64) float64 {
	if z, ok := zTable[level]; ok {
		return z
	}
	if level <= 0 || level >= 1 {
		return 0
	}
	return InverseNormalCDF(1 - (1-level)/2)
}
