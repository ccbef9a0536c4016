package stats

import (
	"math"

	"github.com/shopspring/decimal"
)

// Interval is a two-sided interval at a confidence level.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"`
}

// Width returns Upper - Lower.
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// Round rounds half away from zero to the given number of decimal places.
// NaN and infinities pass through unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	rounded, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return rounded
}

// RoundProbability rounds probabilities, EVs and confidences for output.
func RoundProbability(v float64) float64 {
	return Round(v, 3)
}

// RoundStat rounds predicted stat values for output.
func RoundStat(v float64) float64 {
	return Round(v, 1)
}

// Clamp01 limits p to [0, 1]; NaN becomes 0.
func Clamp01(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
