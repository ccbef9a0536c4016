package prediction

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/clever-props/internal/bayes"
	"github.com/yourusername/clever-props/internal/distribution"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/regression"
	"github.com/yourusername/clever-props/internal/stats"
)

// Confidence weights. The quick path has no provider context, so
// consistency carries more weight there.
const (
	weightSampleSize       = 0.3
	weightRecency          = 0.2
	weightConsistency      = 0.2
	weightConsistencyQuick = 0.3
	weightInjuryFree       = 0.15
	weightMinutesStability = 0.15

	// unknownMinutesStability is used when no minutes history is attached.
	unknownMinutesStability = 0.5

	highVarianceCV   = 0.5
	minMinutesFactor = 0.5
	maxMinutesFactor = 1.5
)

// Data quality flags.
const (
	FlagSmallSample      = "small_sample"
	FlagHighVariance     = "high_variance"
	FlagZeroVariance     = "zero_variance"
	FlagNoMinutes        = "no_minutes_history"
	FlagBayesianPrior    = "bayesian_prior"
	FlagPoorPoissonFit   = "poor_poisson_fit"
	FlagTrendUnavailable = "trend_unavailable"
)

func (e *Engine) run(playerID, gameID string, statType models.StatType, series models.Series, gameCtx models.GameContext, line *float64, quick bool) *models.PredictionResult {
	values := series.Values
	n := len(values)

	if err := checkObservations(values); err != nil {
		return models.FailedPrediction(playerID, gameID, statType, err)
	}
	if n < e.config.MinGames {
		result := models.EmptyPrediction(playerID, gameID, statType,
			fmt.Sprintf("%s: %d games, need %d", models.ErrInsufficientData, n, e.config.MinGames))
		result.Line = copyLine(line)
		result.DataQuality = models.DataQuality{SampleSize: n, HasMinutes: series.HasMinutes()}
		return result
	}

	quality := e.dataQuality(statType, series)
	fitted := distribution.Fit(statType, values)

	base := quality.SeasonMean
	if e.config.UseBayesian {
		if posterior, ok := e.bayesianMean(statType, values); ok {
			base = posterior
			quality.Flags = append(quality.Flags, FlagBayesianPrior)
		}
	}
	if n > e.config.RecentGames {
		base = (1-e.config.RecentWeight)*base + e.config.RecentWeight*quality.RecentMean
	}

	adjustments := Adjustments(statType, gameCtx, series)
	predicted := base
	for _, a := range adjustments {
		predicted *= a.Factor
	}

	adjusted := distribution.Recenter(fitted, predicted)
	if fitted.Type == models.FamilyNormal && fitted.StdDev == 0 {
		quality.Flags = append(quality.Flags, FlagZeroVariance)
	}
	if fitted.Type == models.FamilyPoisson {
		if gof := distribution.PoissonGoodnessOfFit(values); gof.Fit == distribution.FitPoor {
			quality.Flags = append(quality.Flags, FlagPoorPoissonFit)
		}
	}

	factors := e.confidenceFactors(quality, series, quick)
	result := &models.PredictionResult{
		ID:                uuid.New(),
		PlayerID:          playerID,
		GameID:            gameID,
		StatType:          statType,
		PredictedValue:    stats.RoundStat(predicted),
		BaseValue:         stats.RoundStat(base),
		Distribution:      adjusted,
		Confidence:        stats.RoundProbability(stats.Clamp01(factors.Total())),
		ConfidenceFactors: factors,
		OverProbability:   models.NeutralProbability,
		UnderProbability:  models.NeutralProbability,
		Adjustments:       adjustments,
		DataQuality:       quality,
		Status:            models.StatusSuccess,
		GeneratedAt:       time.Now().UTC(),
	}

	if line != nil {
		result.Line = copyLine(line)
		over := stats.RoundProbability(distribution.Over(adjusted, *line))
		result.OverProbability = over
		result.UnderProbability = stats.RoundProbability(1 - over)
	}
	return result
}

func checkObservations(values []float64) error {
	for i, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: field values[%d] = %v must be a non-negative number", models.ErrInvalidInput, i, v)
		}
	}
	return nil
}

func copyLine(line *float64) *float64 {
	if line == nil {
		return nil
	}
	v := *line
	return &v
}

// bayesianMean shrinks the season mean toward the league average for the
// stat. The prior variance equals the league average, as for a Poisson rate.
func (e *Engine) bayesianMean(statType models.StatType, values []float64) (float64, bool) {
	avg := statType.LeagueAverage()
	prior := bayes.NormalPrior{Mean: avg, Variance: math.Max(avg, 1)}
	posterior, err := bayes.UpdateNormal(prior, values, 0)
	if err != nil {
		e.logger.WithError(err).Warn("Bayesian update failed, using season mean")
		return 0, false
	}
	mean, _ := bayes.PredictiveNormal(posterior, 0)
	return mean, true
}

func (e *Engine) dataQuality(statType models.StatType, series models.Series) models.DataQuality {
	values := series.Values
	n := len(values)
	recentN := e.config.RecentGames
	if recentN > n {
		recentN = n
	}
	q := models.DataQuality{
		SampleSize:             n,
		RecentGames:            recentN,
		SeasonMean:             stats.Mean(values),
		RecentMean:             stats.Mean(values[n-recentN:]),
		CoefficientOfVariation: stats.CoefficientOfVariation(values),
		HasMinutes:             series.HasMinutes(),
		Sufficient:             n >= e.config.SampleSaturation,
		Flags:                  []string{},
	}
	if !q.Sufficient {
		q.Flags = append(q.Flags, FlagSmallSample)
	}
	if q.CoefficientOfVariation > highVarianceCV {
		q.Flags = append(q.Flags, FlagHighVariance)
	}
	if !q.HasMinutes && statType != models.StatMinutes {
		q.Flags = append(q.Flags, FlagNoMinutes)
	}

	if slope, ok := TrendSlope(values); ok {
		q.TrendSlope = stats.Round(slope, 3)
	} else {
		q.Flags = append(q.Flags, FlagTrendUnavailable)
	}
	return q
}

// TrendSlope fits value against game index and returns the per-game slope.
// It needs at least regression.MinSampleSize games.
func TrendSlope(values []float64) (float64, bool) {
	if len(values) < regression.MinSampleSize {
		return 0, false
	}
	x := make([]float64, len(values))
	for i := range x {
		x[i] = float64(i)
	}
	model := regression.Simple(x, values)
	if !model.Ok() || len(model.Coefficients) == 0 {
		return 0, false
	}
	return model.Coefficients[0], true
}

func (e *Engine) confidenceFactors(q models.DataQuality, series models.Series, quick bool) models.ConfidenceFactors {
	sample := math.Min(float64(q.SampleSize)/float64(e.config.SampleSaturation), 1)
	consistency := stats.Clamp01(1 - q.CoefficientOfVariation)

	consistencyWeight := weightConsistency
	if quick {
		consistencyWeight = weightConsistencyQuick
	}

	minutes := unknownMinutesStability
	if series.HasMinutes() {
		minutes = stats.Clamp01(1 - stats.CoefficientOfVariation(series.Minutes))
	}

	return models.ConfidenceFactors{
		SampleSize:       stats.RoundProbability(weightSampleSize * sample),
		Recency:          stats.RoundProbability(weightRecency * recencyAgreement(q.SeasonMean, q.RecentMean)),
		Consistency:      stats.RoundProbability(consistencyWeight * consistency),
		InjuryFree:       weightInjuryFree,
		MinutesStability: stats.RoundProbability(weightMinutesStability * minutes),
	}
}

// recencyAgreement is 1 when recent form matches the season average and
// falls linearly with their relative difference.
func recencyAgreement(season, recent float64) float64 {
	if season == 0 {
		if recent == 0 {
			return 1
		}
		return 0
	}
	return stats.Clamp01(1 - math.Abs(recent-season)/season)
}
