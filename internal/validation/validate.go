// Package validation scores predictions against realized values and replays
// a player's history game by game to backtest the prediction engine.
package validation

import (
	"fmt"
	"math"

	"github.com/yourusername/clever-props/internal/metrics"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/regression"
	"github.com/yourusername/clever-props/internal/stats"
)

const (
	// MinSampleSize is the fewest prediction/actual pairs that get a report.
	MinSampleSize = 20
	// WindowSize is the length of the temporal stability windows.
	WindowSize = 10

	improvingSlope = 0.01
	reliabilityBin = 0.1
)

// Bias magnitude labels
const (
	BiasNegligible = "negligible"
	BiasSmall      = "small"
	BiasModerate   = "moderate"
	BiasLarge      = "large"
)

// Bias and trend directions
const (
	DirectionOver    = "over"
	DirectionUnder   = "under"
	DirectionNeutral = "neutral"

	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// Config controls the validator thresholds
type Config struct {
	MinSampleSize int `mapstructure:"min_sample_size" json:"min_sample_size"`
	WindowSize    int `mapstructure:"window_size" json:"window_size"`
	MinHistory    int `mapstructure:"min_history" json:"min_history"`
}

// DefaultConfig returns the standard validator thresholds.
func DefaultConfig() Config {
	return Config{MinSampleSize: MinSampleSize, WindowSize: WindowSize, MinHistory: DefaultMinHistory}
}

func (c Config) withDefaults() Config {
	if c.MinSampleSize <= 0 {
		c.MinSampleSize = MinSampleSize
	}
	if c.WindowSize <= 0 {
		c.WindowSize = WindowSize
	}
	if c.MinHistory < 2 {
		c.MinHistory = DefaultMinHistory
	}
	return c
}

// Input is a set of aligned predictions and realized values. Probabilities
// and Lines are optional; when both are present and aligned, each
// probability is read as P(actual > line) and scored for calibration.
type Input struct {
	Predictions   []float64
	Actuals       []float64
	Probabilities []float64
	Lines         []float64
}

// Validate scores predictions against actuals with the default thresholds.
func Validate(predictions, actuals []float64) (models.ValidationReport, error) {
	return ValidateWithConfig(Input{Predictions: predictions, Actuals: actuals}, DefaultConfig())
}

// ValidateWithConfig scores an input. Mismatched lengths are an error; a
// sample below the minimum returns an empty report.
func ValidateWithConfig(in Input, cfg Config) (models.ValidationReport, error) {
	cfg = cfg.withDefaults()
	n := len(in.Predictions)
	if n != len(in.Actuals) {
		metrics.RecordValidationRun("validate", string(models.StatusError))
		return models.ValidationReport{Status: models.StatusError}, fmt.Errorf("%w: field actuals has length %d, predictions has %d",
			models.ErrInvalidInput, len(in.Actuals), n)
	}
	if in.Probabilities != nil && (len(in.Probabilities) != n || len(in.Lines) != n) {
		metrics.RecordValidationRun("validate", string(models.StatusError))
		return models.ValidationReport{Status: models.StatusError}, fmt.Errorf("%w: fields probabilities and lines must match predictions length %d",
			models.ErrInvalidInput, n)
	}
	if n < cfg.MinSampleSize {
		metrics.RecordValidationRun("validate", string(models.StatusEmpty))
		return models.ValidationReport{
			SampleSize: n,
			Status:     models.StatusEmpty,
			Error:      fmt.Sprintf("%s: need at least %d predictions, have %d", models.ErrInsufficientData, cfg.MinSampleSize, n),
		}, nil
	}

	report := models.ValidationReport{
		SampleSize:        n,
		Accuracy:          accuracy(in.Predictions, in.Actuals),
		Bias:              bias(in.Predictions, in.Actuals),
		Calibration:       calibration(in),
		TemporalStability: temporalStability(in.Predictions, in.Actuals, cfg.WindowSize),
		Status:            models.StatusSuccess,
	}
	metrics.RecordValidationRun("validate", string(models.StatusSuccess))
	return report, nil
}

func accuracy(predictions, actuals []float64) models.Accuracy {
	n := len(predictions)
	var absSum, sqSum, pctSum float64
	pctCount := 0
	for i := range predictions {
		e := predictions[i] - actuals[i]
		absSum += math.Abs(e)
		sqSum += e * e
		if actuals[i] != 0 {
			pctSum += math.Abs(e / actuals[i])
			pctCount++
		}
	}
	acc := models.Accuracy{
		MAE:                 absSum / float64(n),
		RMSE:                math.Sqrt(sqSum / float64(n)),
		DirectionalAccuracy: directionalAccuracy(predictions, actuals),
	}
	if pctCount > 0 {
		acc.MAPE = 100 * pctSum / float64(pctCount)
	}
	return acc
}

// directionalAccuracy is the share of successive moves where the prediction
// and the actual changed in the same direction.
func directionalAccuracy(predictions, actuals []float64) float64 {
	if len(predictions) < 2 {
		return 0
	}
	agree := 0
	for i := 1; i < len(predictions); i++ {
		if sign(predictions[i]-predictions[i-1]) == sign(actuals[i]-actuals[i-1]) {
			agree++
		}
	}
	return float64(agree) / float64(len(predictions)-1)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func bias(predictions, actuals []float64) models.Bias {
	var sum float64
	for i := range predictions {
		sum += predictions[i] - actuals[i]
	}
	mean := sum / float64(len(predictions))
	b := models.Bias{MeanError: mean, Magnitude: biasMagnitude(math.Abs(mean))}
	switch {
	case b.Magnitude == BiasNegligible:
		b.Direction = DirectionNeutral
	case mean > 0:
		b.Direction = DirectionOver
	default:
		b.Direction = DirectionUnder
	}
	return b
}

func biasMagnitude(abs float64) string {
	switch {
	case abs < 0.5:
		return BiasNegligible
	case abs < 1.5:
		return BiasSmall
	case abs < 3:
		return BiasModerate
	}
	return BiasLarge
}

func calibration(in Input) models.Calibration {
	n := len(in.Predictions)
	within10, within20 := 0, 0
	for i := range in.Predictions {
		e := math.Abs(in.Predictions[i] - in.Actuals[i])
		scale := math.Abs(in.Actuals[i])
		if e <= 0.1*scale {
			within10++
		}
		if e <= 0.2*scale {
			within20++
		}
	}
	cal := models.Calibration{
		WithinTenPercent:    float64(within10) / float64(n),
		WithinTwentyPercent: float64(within20) / float64(n),
	}
	if in.Probabilities != nil {
		outcomes := make([]bool, n)
		for i := range outcomes {
			outcomes[i] = in.Actuals[i] > in.Lines[i]
		}
		brier := BrierScore(in.Probabilities, outcomes)
		cal.BrierScore = &brier
		cal.Reliability = Reliability(in.Probabilities, outcomes)
	}
	return cal
}

// BrierScore is the mean squared difference between forecast probabilities
// and binary outcomes.
func BrierScore(probabilities []float64, outcomes []bool) float64 {
	if len(probabilities) == 0 {
		return 0
	}
	var sum float64
	for i, p := range probabilities {
		o := 0.0
		if outcomes[i] {
			o = 1
		}
		sum += (p - o) * (p - o)
	}
	return sum / float64(len(probabilities))
}

// Reliability groups forecasts into 0.1-wide probability bands and reports
// the observed hit frequency of each non-empty band.
func Reliability(probabilities []float64, outcomes []bool) []models.ReliabilityBucket {
	bins := int(math.Round(1 / reliabilityBin))
	counts := make([]int, bins)
	sums := make([]float64, bins)
	hits := make([]int, bins)
	for i, p := range probabilities {
		b := int(stats.Clamp01(p) / reliabilityBin)
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
		sums[b] += p
		if outcomes[i] {
			hits[b]++
		}
	}

	var buckets []models.ReliabilityBucket
	for b := 0; b < bins; b++ {
		if counts[b] == 0 {
			continue
		}
		buckets = append(buckets, models.ReliabilityBucket{
			Lower:             stats.Round(float64(b)*reliabilityBin, 1),
			Upper:             stats.Round(float64(b+1)*reliabilityBin, 1),
			Count:             counts[b],
			MeanPredicted:     sums[b] / float64(counts[b]),
			ObservedFrequency: float64(hits[b]) / float64(counts[b]),
		})
	}
	return buckets
}

// temporalStability scores every sliding window of the given size and fits
// a line through the window accuracies.
func temporalStability(predictions, actuals []float64, size int) models.TemporalStability {
	ts := models.TemporalStability{Trend: TrendStable}
	if len(predictions) < size {
		return ts
	}

	accuracies := make([]float64, 0, len(predictions)-size+1)
	for start := 0; start+size <= len(predictions); start++ {
		var abs float64
		for i := start; i < start+size; i++ {
			abs += math.Abs(predictions[i] - actuals[i])
		}
		mae := abs / float64(size)
		w := models.WindowScore{Start: start, End: start + size, MAE: mae, Accuracy: 1 / (1 + mae)}
		ts.Windows = append(ts.Windows, w)
		accuracies = append(accuracies, w.Accuracy)
	}

	ts.Slope = slope(accuracies)
	switch {
	case ts.Slope > improvingSlope:
		ts.Trend = TrendImproving
	case ts.Slope < -improvingSlope:
		ts.Trend = TrendDeclining
	}
	ts.StabilityScore = stats.Clamp01(1 - stats.CoefficientOfVariation(accuracies))
	return ts
}

// slope is the least-squares slope of values against their index.
func slope(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	x := make([]float64, len(values))
	for i := range x {
		x[i] = float64(i)
	}
	if len(values) >= regression.MinSampleSize {
		if m := regression.Simple(x, values); m.Ok() {
			return m.Coefficients[0]
		}
	}
	sx := stats.StdDev(x)
	if sx == 0 {
		return 0
	}
	return stats.Correlation(x, values) * stats.StdDev(values) / sx
}
