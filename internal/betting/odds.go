// Package betting converts model probabilities and market odds into expected
// value, stake sizing and a recommended side.
package betting

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/yourusername/clever-props/internal/models"
)

// AmericanToDecimal converts American odds to decimal odds.
func AmericanToDecimal(american int) (float64, error) {
	switch {
	case american > 0:
		return float64(american)/100 + 1, nil
	case american < 0:
		return 100/math.Abs(float64(american)) + 1, nil
	default:
		return 0, fmt.Errorf("%w: %d", models.ErrInvalidOdds, american)
	}
}

// DecimalToAmerican converts decimal odds back to American, rounded to the
// nearest whole number.
func DecimalToAmerican(dec float64) (int, error) {
	if dec <= 1 || math.IsNaN(dec) || math.IsInf(dec, 0) {
		return 0, fmt.Errorf("%w: decimal odds %.4f", models.ErrInvalidOdds, dec)
	}
	d := decimal.NewFromFloat(dec)
	profit := d.Sub(decimal.NewFromInt(1))
	hundred := decimal.NewFromInt(100)
	if d.GreaterThanOrEqual(decimal.NewFromInt(2)) {
		return int(profit.Mul(hundred).Round(0).IntPart()), nil
	}
	return int(hundred.Div(profit).Neg().Round(0).IntPart()), nil
}

// FairOdds returns the American price at which a bet winning with the given
// probability breaks even.
func FairOdds(probability float64) (int, error) {
	if probability <= 0 || probability >= 1 || math.IsNaN(probability) {
		return 0, fmt.Errorf("%w: probability %.4f has no fair price", models.ErrInvalidOdds, probability)
	}
	return DecimalToAmerican(1 / probability)
}

// ImpliedProbability is the break-even win probability of American odds.
func ImpliedProbability(american int) (float64, error) {
	dec, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1 / dec, nil
}

// RemoveVig strips the bookmaker margin from a two-way market using the
// proportional method. The returned probabilities sum to one.
func RemoveVig(overOdds, underOdds int) (float64, float64, error) {
	over, err := ImpliedProbability(overOdds)
	if err != nil {
		return 0, 0, err
	}
	under, err := ImpliedProbability(underOdds)
	if err != nil {
		return 0, 0, err
	}
	total := over + under
	return over / total, under / total, nil
}

// Overround is the market's total implied probability above one.
func Overround(overOdds, underOdds int) (float64, error) {
	over, err := ImpliedProbability(overOdds)
	if err != nil {
		return 0, err
	}
	under, err := ImpliedProbability(underOdds)
	if err != nil {
		return 0, err
	}
	return over + under - 1, nil
}

// ExpectedValue returns the expected profit per unit staked.
func ExpectedValue(probability, decimalOdds float64) float64 {
	return probability*(decimalOdds-1) - (1 - probability)
}

// KellyFraction returns the fraction of bankroll to stake, scaled by
// fraction. Non-positive edges return zero.
func KellyFraction(probability, decimalOdds, fraction float64) float64 {
	if probability <= 0 || probability >= 1 || decimalOdds <= 1 {
		return 0
	}
	b := decimalOdds - 1
	kelly := (b*probability - (1 - probability)) / b
	if kelly <= 0 {
		return 0
	}
	if fraction <= 0 {
		fraction = 0.5
	}
	return kelly * fraction
}
