package logger

import (
	"github.com/sirupsen/logrus"
)

// ValidationLogger provides dedicated logging for validation and backtests.
type ValidationLogger struct {
	*logrus.Entry
}

// NewValidationLogger creates a new validation logger.
func NewValidationLogger(baseLogger *logrus.Logger) *ValidationLogger {
	return &ValidationLogger{
		Entry: OrDefault(baseLogger).WithField("component", "validation"),
	}
}

// LogValidation logs a validation report.
func (vl *ValidationLogger) LogValidation(status string, sampleSize int, mae, rmse, directional float64, trend string) {
	vl.WithFields(logrus.Fields{
		"status":               status,
		"sample_size":          sampleSize,
		"mae":                  mae,
		"rmse":                 rmse,
		"directional_accuracy": directional,
		"trend":                trend,
	}).Info("Validation completed")
}

// LogBacktest logs a backtest run.
func (vl *ValidationLogger) LogBacktest(playerID, statType string, games, picks int, hitRate, roi, durationMs float64) {
	vl.WithFields(logrus.Fields{
		"player_id":   playerID,
		"stat_type":   statType,
		"games":       games,
		"picks":       picks,
		"hit_rate":    hitRate,
		"roi":         roi,
		"duration_ms": durationMs,
	}).Info("Backtest completed")
}

// LogWalkForward logs a walk-forward analysis.
func (vl *ValidationLogger) LogWalkForward(windows int, meanMAE, consistency float64) {
	vl.WithFields(logrus.Fields{
		"windows":           windows,
		"mean_mae":          meanMAE,
		"consistency_score": consistency,
	}).Info("Walk-forward analysis completed")
}

// LogScheduledJob logs a scheduled job outcome.
func (vl *ValidationLogger) LogScheduledJob(job string, targets, failures int, durationMs float64) {
	vl.WithFields(logrus.Fields{
		"job":         job,
		"targets":     targets,
		"failures":    failures,
		"duration_ms": durationMs,
	}).Info("Scheduled job finished")
}
