package distribution

import (
	"math"

	"github.com/yourusername/clever-props/internal/stats"
)

// BinomialPMF returns P(X = k) for X ~ Binomial(n, p).
func BinomialPMF(k, n int, p float64) float64 {
	if k < 0 || k > n || n < 0 || p < 0 || p > 1 {
		return 0
	}
	return stats.BinomialCoefficient(n, k) * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
}

// BinomialCDF returns P(X <= k).
func BinomialCDF(k, n int, p float64) float64 {
	if k < 0 {
		return 0
	}
	if k >= n {
		return 1
	}
	sum := 0.0
	for i := 0; i <= k; i++ {
		sum += BinomialPMF(i, n, p)
	}
	return stats.Clamp01(sum)
}

// BinomialOver sums the PMF for k = floor(t)+1 .. n. n <= 0 or an invalid p
// is neutral.
func BinomialOver(t float64, n int, p float64) float64 {
	if n <= 0 || p < 0 || p > 1 || math.IsNaN(t) {
		return 0.5
	}
	if t >= float64(n) {
		return 0
	}
	sum := 0.0
	for k := floorIndex(t) + 1; k <= n; k++ {
		sum += BinomialPMF(k, n, p)
	}
	return stats.Clamp01(sum)
}

// BinomialBetween returns P(a <= X <= b).
func BinomialBetween(a, b float64, n int, p float64) float64 {
	if n <= 0 || b < a || b < 0 || a > float64(n) {
		return 0
	}
	lo := int(math.Max(0, math.Ceil(a)))
	hi := int(math.Min(float64(n), math.Floor(b)))
	sum := 0.0
	for k := lo; k <= hi; k++ {
		sum += BinomialPMF(k, n, p)
	}
	return stats.Clamp01(sum)
}

// BinomialQuantile returns the smallest k with CDF(k) >= q.
func BinomialQuantile(q float64, n int, p float64) int {
	cum := 0.0
	for k := 0; k <= n; k++ {
		cum += BinomialPMF(k, n, p)
		if cum >= q {
			return k
		}
	}
	return n
}
