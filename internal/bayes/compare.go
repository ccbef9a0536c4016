package bayes

import (
	"fmt"
	"math"
	"sort"
)

// maxBayesFactor caps reported factors so results stay JSON-encodable.
const maxBayesFactor = 1e12

// Evidence strength labels
const (
	EvidenceExtreme    = "extreme"
	EvidenceVeryStrong = "very_strong"
	EvidenceStrong     = "strong"
	EvidenceModerate   = "moderate"
	EvidenceWeak       = "weak"
	EvidenceNone       = "none"
)

// ModelCandidate is a fitted model to compare.
type ModelCandidate struct {
	Name          string  `json:"name"`
	LogLikelihood float64 `json:"log_likelihood"`
	Parameters    int     `json:"parameters"`
}

// ModelEvidence is a candidate's BIC and posterior probability.
type ModelEvidence struct {
	Name        string  `json:"name"`
	BIC         float64 `json:"bic"`
	Probability float64 `json:"probability"`
}

// BayesFactor compares a better model (Numerator) against a worse one.
type BayesFactor struct {
	Numerator   string  `json:"numerator"`
	Denominator string  `json:"denominator"`
	Factor      float64 `json:"factor"`
	Strength    string  `json:"strength"`
}

// Comparison is the outcome of CompareModels.
type Comparison struct {
	Models       []ModelEvidence `json:"models"`
	BayesFactors []BayesFactor   `json:"bayes_factors"`
	Best         string          `json:"best"`
}

// BIC returns k·ln(n) - 2·lnL.
func BIC(logLikelihood float64, parameters, n int) float64 {
	return float64(parameters)*math.Log(float64(n)) - 2*logLikelihood
}

// CompareModels ranks candidates by BIC. Evidence exp(-BIC/2) is taken
// relative to the best model so it never underflows.
func CompareModels(candidates []ModelCandidate, n int) (Comparison, error) {
	if len(candidates) == 0 {
		return Comparison{}, fmt.Errorf("%w: no candidate models", ErrInvalidObservation)
	}
	if n <= 0 {
		return Comparison{}, fmt.Errorf("%w: sample size %d", ErrInvalidObservation, n)
	}

	evidence := make([]ModelEvidence, 0, len(candidates))
	for _, c := range candidates {
		if math.IsNaN(c.LogLikelihood) {
			return Comparison{}, fmt.Errorf("%w: model %s has NaN likelihood", ErrInvalidObservation, c.Name)
		}
		evidence = append(evidence, ModelEvidence{Name: c.Name, BIC: BIC(c.LogLikelihood, c.Parameters, n)})
	}
	sort.SliceStable(evidence, func(i, j int) bool { return evidence[i].BIC < evidence[j].BIC })

	best := evidence[0].BIC
	weights := make([]float64, len(evidence))
	total := 0.0
	for i, e := range evidence {
		if math.IsInf(best, 1) {
			weights[i] = 1
		} else {
			weights[i] = math.Exp(-(e.BIC - best) / 2)
		}
		total += weights[i]
	}
	for i := range evidence {
		evidence[i].Probability = weights[i] / total
	}

	var factors []BayesFactor
	for i := 0; i < len(evidence); i++ {
		for j := i + 1; j < len(evidence); j++ {
			bf := maxBayesFactor
			if weights[j] > 0 {
				bf = math.Min(weights[i]/weights[j], maxBayesFactor)
			}
			factors = append(factors, BayesFactor{
				Numerator:   evidence[i].Name,
				Denominator: evidence[j].Name,
				Factor:      bf,
				Strength:    EvidenceStrength(bf),
			})
		}
	}

	return Comparison{Models: evidence, BayesFactors: factors, Best: evidence[0].Name}, nil
}

// EvidenceStrength labels a Bayes factor.
func EvidenceStrength(bf float64) string {
	switch {
	case bf > 100:
		return EvidenceExtreme
	case bf > 30:
		return EvidenceVeryStrong
	case bf > 10:
		return EvidenceStrong
	case bf > 3:
		return EvidenceModerate
	case bf > 1:
		return EvidenceWeak
	default:
		return EvidenceNone
	}
}
