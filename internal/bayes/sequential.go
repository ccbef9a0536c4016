package bayes

import (
	"math"

	"github.com/yourusername/clever-props/internal/stats"
)

// ConvergenceTolerance is the relative change of the posterior mean below
// which a sequential update counts as converged.
const ConvergenceTolerance = 1e-3

// Sequence is the trace of a one-observation-at-a-time update.
type Sequence[P any] struct {
	History   []P  `json:"history"`
	Final     P    `json:"final"`
	Converged bool `json:"converged"`
}

// fold applies step for every index and tracks convergence of mean.
func fold[P any](initial P, n int, step func(P, int) (P, error), mean func(P) float64) (Sequence[P], error) {
	seq := Sequence[P]{History: make([]P, 0, n), Final: initial}
	current := initial
	lastChange := math.Inf(1)
	for i := 0; i < n; i++ {
		next, err := step(current, i)
		if err != nil {
			return Sequence[P]{}, err
		}
		before, after := mean(current), mean(next)
		if before != 0 {
			lastChange = math.Abs(after-before) / math.Abs(before)
		} else {
			lastChange = math.Abs(after - before)
		}
		seq.History = append(seq.History, next)
		current = next
	}
	seq.Final = current
	seq.Converged = lastChange < ConvergenceTolerance
	return seq, nil
}

// SequentialNormal folds observations into a Normal-Normal posterior one at a
// time. A knownVariance of 0 uses the variance of the whole series.
func SequentialNormal(prior NormalPrior, observations []float64, knownVariance float64) (Sequence[NormalPosterior], error) {
	initial, err := UpdateNormal(prior, nil, 0)
	if err != nil {
		return Sequence[NormalPosterior]{}, err
	}
	sigma2 := knownVariance
	if sigma2 <= 0 {
		sigma2 = math.Max(stats.Variance(observations), minVariance)
	}
	return fold(initial, len(observations), func(p NormalPosterior, i int) (NormalPosterior, error) {
		next, err := UpdateNormal(p.Prior(), observations[i:i+1], sigma2)
		next.Observations = p.Observations + 1
		return next, err
	}, func(p NormalPosterior) float64 { return p.Mean })
}

// SequentialBeta folds binary outcomes into a Beta posterior.
func SequentialBeta(prior BetaPrior, outcomes []bool) (Sequence[BetaPosterior], error) {
	initial, err := UpdateBeta(prior, 0, 0)
	if err != nil {
		return Sequence[BetaPosterior]{}, err
	}
	return fold(initial, len(outcomes), func(p BetaPosterior, i int) (BetaPosterior, error) {
		successes := 0
		if outcomes[i] {
			successes = 1
		}
		return UpdateBeta(p.Prior(), successes, 1)
	}, BetaPosterior.Mean)
}

// SequentialGamma folds counts into a Gamma posterior.
func SequentialGamma(prior GammaPrior, observations []float64) (Sequence[GammaPosterior], error) {
	initial, err := UpdateGamma(prior, nil)
	if err != nil {
		return Sequence[GammaPosterior]{}, err
	}
	return fold(initial, len(observations), func(p GammaPosterior, i int) (GammaPosterior, error) {
		return UpdateGamma(p.Prior(), observations[i:i+1])
	}, GammaPosterior.Mean)
}
