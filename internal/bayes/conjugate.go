// Package bayes implements closed-form conjugate updates and BIC model
// comparison. Every update returns a new posterior value.
package bayes

import (
	"errors"
	"fmt"
	"math"

	"github.com/yourusername/clever-props/internal/stats"
)

// ErrInvalidPrior is returned for non-positive prior parameters.
var ErrInvalidPrior = errors.New("invalid prior")

// ErrInvalidObservation is returned for data outside the likelihood's support.
var ErrInvalidObservation = errors.New("invalid observation")

const minVariance = 1e-6

// NormalPrior is N(Mean, Variance) over an unknown mean.
type NormalPrior struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

// NormalPosterior is the Normal-Normal posterior over the mean.
type NormalPosterior struct {
	Mean         float64 `json:"mean"`
	Variance     float64 `json:"variance"`
	Precision    float64 `json:"precision"`
	Observations int     `json:"observations"`
}

// UpdateNormal applies a Normal-Normal update with known observation
// variance. A knownVariance of 0 uses the sample variance, floored at 1e-6.
func UpdateNormal(prior NormalPrior, observations []float64, knownVariance float64) (NormalPosterior, error) {
	if prior.Variance <= 0 || math.IsNaN(prior.Variance) {
		return NormalPosterior{}, fmt.Errorf("%w: normal prior variance %.4f", ErrInvalidPrior, prior.Variance)
	}
	if knownVariance < 0 {
		return NormalPosterior{}, fmt.Errorf("%w: known variance %.4f", ErrInvalidObservation, knownVariance)
	}

	priorPrecision := 1 / prior.Variance
	n := len(observations)
	if n == 0 {
		return NormalPosterior{Mean: prior.Mean, Variance: prior.Variance, Precision: priorPrecision}, nil
	}

	sigma2 := knownVariance
	if sigma2 == 0 {
		sigma2 = math.Max(stats.Variance(observations), minVariance)
	}

	precision := priorPrecision + float64(n)/sigma2
	mean := (prior.Mean*priorPrecision + stats.Sum(observations)/sigma2) / precision
	return NormalPosterior{
		Mean:         mean,
		Variance:     1 / precision,
		Precision:    precision,
		Observations: n,
	}, nil
}

// StdDev returns the posterior standard deviation.
func (p NormalPosterior) StdDev() float64 { return math.Sqrt(p.Variance) }

// CredibleInterval returns the central interval at level.
func (p NormalPosterior) CredibleInterval(level float64) stats.Interval {
	return normalInterval(p.Mean, p.StdDev(), level, math.Inf(-1), math.Inf(1))
}

// Prior turns the posterior into the prior for the next update.
func (p NormalPosterior) Prior() NormalPrior {
	return NormalPrior{Mean: p.Mean, Variance: p.Variance}
}

// PredictiveNormal returns the posterior predictive mean and variance of a
// new observation.
func PredictiveNormal(p NormalPosterior, knownVariance float64) (float64, float64) {
	return p.Mean, p.Variance + math.Max(knownVariance, 0)
}

// BetaPrior is Beta(Alpha, Beta) over a success probability.
type BetaPrior struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// BetaPosterior is the Beta-Binomial posterior.
type BetaPosterior struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// UpdateBeta adds successes and failures to the prior counts.
func UpdateBeta(prior BetaPrior, successes, trials int) (BetaPosterior, error) {
	if prior.Alpha <= 0 || prior.Beta <= 0 {
		return BetaPosterior{}, fmt.Errorf("%w: beta prior (%.4f, %.4f)", ErrInvalidPrior, prior.Alpha, prior.Beta)
	}
	if successes < 0 || trials < 0 || successes > trials {
		return BetaPosterior{}, fmt.Errorf("%w: %d successes in %d trials", ErrInvalidObservation, successes, trials)
	}
	return BetaPosterior{
		Alpha: prior.Alpha + float64(successes),
		Beta:  prior.Beta + float64(trials-successes),
	}, nil
}

// Mean returns α/(α+β).
func (p BetaPosterior) Mean() float64 { return p.Alpha / (p.Alpha + p.Beta) }

// Variance returns αβ/((α+β)²(α+β+1)).
func (p BetaPosterior) Variance() float64 {
	s := p.Alpha + p.Beta
	return p.Alpha * p.Beta / (s * s * (s + 1))
}

// CredibleInterval uses a normal approximation clamped to [0,1].
func (p BetaPosterior) CredibleInterval(level float64) stats.Interval {
	return normalInterval(p.Mean(), math.Sqrt(p.Variance()), level, 0, 1)
}

// Prior turns the posterior into the prior for the next update.
func (p BetaPosterior) Prior() BetaPrior {
	return BetaPrior{Alpha: p.Alpha, Beta: p.Beta}
}

// GammaPrior is Gamma(Shape, Rate) over a Poisson rate.
type GammaPrior struct {
	Shape float64 `json:"shape"`
	Rate  float64 `json:"rate"`
}

// GammaPosterior is the Gamma-Poisson posterior.
type GammaPosterior struct {
	Shape float64 `json:"shape"`
	Rate  float64 `json:"rate"`
}

// UpdateGamma adds Σx to the shape and n to the rate.
func UpdateGamma(prior GammaPrior, observations []float64) (GammaPosterior, error) {
	if prior.Shape <= 0 || prior.Rate <= 0 {
		return GammaPosterior{}, fmt.Errorf("%w: gamma prior (%.4f, %.4f)", ErrInvalidPrior, prior.Shape, prior.Rate)
	}
	for _, x := range observations {
		if x < 0 || math.IsNaN(x) {
			return GammaPosterior{}, fmt.Errorf("%w: count %.4f", ErrInvalidObservation, x)
		}
	}
	return GammaPosterior{
		Shape: prior.Shape + stats.Sum(observations),
		Rate:  prior.Rate + float64(len(observations)),
	}, nil
}

// Mean returns shape/rate.
func (p GammaPosterior) Mean() float64 { return p.Shape / p.Rate }

// Variance returns shape/rate².
func (p GammaPosterior) Variance() float64 { return p.Shape / (p.Rate * p.Rate) }

// CredibleInterval uses a normal approximation with the lower bound at 0.
func (p GammaPosterior) CredibleInterval(level float64) stats.Interval {
	return normalInterval(p.Mean(), math.Sqrt(p.Variance()), level, 0, math.Inf(1))
}

// Prior turns the posterior into the prior for the next update.
func (p GammaPosterior) Prior() GammaPrior {
	return GammaPrior{Shape: p.Shape, Rate: p.Rate}
}

func normalInterval(mean, sd, level, lo, hi float64) stats.Interval {
	z := stats.ZScore(level)
	return stats.Interval{
		Lower: math.Max(lo, mean-z*sd),
		Upper: math.Min(hi, mean+z*sd),
		Level: level,
	}
}
