package distribution

import (
	"math"
	"sort"

	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

const (
	symmetricSkewLimit    = 0.5
	heavyTailKurtosis     = 3.0
	underdispersionCutoff = 0.8
	normalMeanFloor       = 10.0
)

// Shape summarizes the empirical distribution of an observation series.
type Shape struct {
	Count           int     `json:"count"`
	Mean            float64 `json:"mean"`
	Variance        float64 `json:"variance"`
	Skewness        float64 `json:"skewness"`
	Kurtosis        float64 `json:"kurtosis"`
	DispersionIndex float64 `json:"dispersion_index"`
	Symmetric       bool    `json:"symmetric"`
	HeavyTails      bool    `json:"heavy_tails"`
	IntegerValued   bool    `json:"integer_valued"`
}

// AnalyzeShape computes skewness, excess kurtosis and dispersion.
func AnalyzeShape(values []float64) Shape {
	s := Shape{
		Count:         len(values),
		Mean:          stats.Mean(values),
		Variance:      stats.Variance(values),
		Skewness:      stats.Skewness(values),
		Kurtosis:      stats.ExcessKurtosis(values),
		IntegerValued: stats.IsIntegerValued(values),
	}
	if s.Mean > 0 {
		s.DispersionIndex = s.Variance / s.Mean
	}
	s.Symmetric = math.Abs(s.Skewness) < symmetricSkewLimit
	s.HeavyTails = s.Kurtosis > heavyTailKurtosis
	return s
}

func continuousStat(statType models.StatType) bool {
	return statType == models.StatPoints || statType == models.StatMinutes
}

// SelectFamily picks normal, poisson or binomial for the series. Count stats
// that are under-dispersed look binomial; symmetric, light-tailed series with
// larger means look normal; other integer series default to Poisson.
func SelectFamily(statType models.StatType, values []float64) models.Family {
	shape := AnalyzeShape(values)
	switch {
	case shape.Count < 2:
		if continuousStat(statType) {
			return models.FamilyNormal
		}
		return models.FamilyPoisson
	case shape.IntegerValued && shape.Mean > 0 && shape.Variance > 0 &&
		shape.DispersionIndex < underdispersionCutoff && !continuousStat(statType):
		return models.FamilyBinomial
	case shape.Symmetric && !shape.HeavyTails &&
		(shape.Mean >= normalMeanFloor || !shape.IntegerValued || continuousStat(statType)):
		return models.FamilyNormal
	case shape.IntegerValued:
		return models.FamilyPoisson
	default:
		return models.FamilyNormal
	}
}

// Fit selects a family for the series and estimates its parameters.
func Fit(statType models.StatType, values []float64) models.Descriptor {
	return FitFamily(SelectFamily(statType, values), values)
}

// FitFamily estimates parameters for a given family by the method of moments.
func FitFamily(family models.Family, values []float64) models.Descriptor {
	summary := models.Summary{
		Mean:     stats.Mean(values),
		Variance: stats.Variance(values),
		Count:    len(values),
	}

	var d models.Descriptor
	switch family {
	case models.FamilyNormal:
		d = models.NormalDescriptor(summary.Mean, math.Sqrt(summary.Variance))
	case models.FamilyBinomial:
		d = fitBinomial(summary, values)
	default:
		d = models.PoissonDescriptor(math.Max(summary.Mean, 0))
	}
	d.Summary = summary
	return d
}

// fitBinomial uses p = 1 - var/mean and n = mean/p, never below the largest
// observation.
func fitBinomial(summary models.Summary, values []float64) models.Descriptor {
	_, maxObs := stats.MinMax(values)
	n := int(math.Ceil(maxObs))
	if summary.Mean > 0 && summary.Variance < summary.Mean {
		p := 1 - summary.Variance/summary.Mean
		if est := int(math.Round(summary.Mean / p)); est > n {
			n = est
		}
	}
	if n <= 0 {
		return models.BinomialDescriptor(0, 0)
	}
	return models.BinomialDescriptor(n, stats.Clamp01(summary.Mean/float64(n)))
}

// LogLikelihood returns the log-likelihood of values under d. Values are
// rounded to integers for the discrete families.
func LogLikelihood(d models.Descriptor, values []float64) float64 {
	ll := 0.0
	for _, v := range values {
		var p float64
		switch d.Type {
		case models.FamilyNormal:
			p = stats.NormalPDF(v, d.Mean, d.StdDev)
		default:
			p = ProbabilityAt(d, int(math.Round(v)))
		}
		if p <= 0 {
			return math.Inf(-1)
		}
		ll += math.Log(p)
	}
	return ll
}

// Parameters returns the number of free parameters of a family.
func Parameters(family models.Family) int {
	if family == models.FamilyPoisson {
		return 1
	}
	return 2
}

// Candidate is one family fitted during Compare.
type Candidate struct {
	Family        models.Family     `json:"family"`
	Descriptor    models.Descriptor `json:"descriptor"`
	LogLikelihood float64           `json:"log_likelihood"`
	Parameters    int               `json:"parameters"`
}

// Compare fits every family and orders them by log-likelihood, best first.
// Families that cannot describe the data (zero spread normal, binomial on
// over-dispersed data, zero likelihood) are omitted.
func Compare(values []float64) []Candidate {
	if len(values) == 0 {
		return nil
	}
	shape := AnalyzeShape(values)
	families := []models.Family{models.FamilyNormal, models.FamilyPoisson}
	if shape.IntegerValued && shape.Variance < shape.Mean {
		families = append(families, models.FamilyBinomial)
	}

	candidates := make([]Candidate, 0, len(families))
	for _, family := range families {
		d := FitFamily(family, values)
		if family == models.FamilyNormal && d.StdDev == 0 {
			continue
		}
		ll := LogLikelihood(d, values)
		if math.IsInf(ll, -1) {
			continue
		}
		candidates = append(candidates, Candidate{
			Family:        family,
			Descriptor:    d,
			LogLikelihood: ll,
			Parameters:    Parameters(family),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].LogLikelihood > candidates[j].LogLikelihood
	})
	return candidates
}
