package logger

import (
	"github.com/sirupsen/logrus"
)

// PredictionLogger provides dedicated logging for prediction operations.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: OrDefault(baseLogger).WithField("component", "prediction"),
	}
}

// LogPrediction logs a completed prediction.
func (pl *PredictionLogger) LogPrediction(playerID, gameID, statType, family string, predicted, confidence float64, adjustments int, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"player_id":    playerID,
		"game_id":      gameID,
		"stat_type":    statType,
		"distribution": family,
		"predicted":    predicted,
		"confidence":   confidence,
		"adjustments":  adjustments,
		"duration_ms":  durationMs,
	}).Info("Prediction completed")
}

// LogEmptyPrediction logs a prediction that lacked data.
func (pl *PredictionLogger) LogEmptyPrediction(playerID, gameID, statType, reason string, sampleSize int) {
	pl.WithFields(logrus.Fields{
		"player_id":   playerID,
		"game_id":     gameID,
		"stat_type":   statType,
		"reason":      reason,
		"sample_size": sampleSize,
	}).Warn("Prediction returned empty result")
}

// LogPredictionError logs a failed prediction.
func (pl *PredictionLogger) LogPredictionError(playerID, gameID, statType string, err error) {
	pl.WithFields(logrus.Fields{
		"player_id": playerID,
		"game_id":   gameID,
		"stat_type": statType,
	}).WithError(err).Error("Prediction failed")
}

// LogRecommendation logs a betting recommendation.
func (pl *PredictionLogger) LogRecommendation(playerID, statType, action string, line, expectedValue, confidence float64) {
	pl.WithFields(logrus.Fields{
		"player_id":      playerID,
		"stat_type":      statType,
		"action":         action,
		"line":           line,
		"expected_value": expectedValue,
		"confidence":     confidence,
	}).Info("Recommendation made")
}

// LogBatch logs a batch prediction summary.
func (pl *PredictionLogger) LogBatch(total, succeeded, empty, failed int, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"total":       total,
		"succeeded":   succeeded,
		"empty":       empty,
		"failed":      failed,
		"duration_ms": durationMs,
	}).Info("Batch prediction completed")
}
