package logger

import (
	"github.com/sirupsen/logrus"
)

// SimulationLogger provides dedicated logging for Monte Carlo runs.
type SimulationLogger struct {
	*logrus.Entry
}

// NewSimulationLogger creates a new simulation logger.
func NewSimulationLogger(baseLogger *logrus.Logger) *SimulationLogger {
	return &SimulationLogger{
		Entry: OrDefault(baseLogger).WithField("component", "simulation"),
	}
}

// LogSimulation logs a completed simulation run.
func (sl *SimulationLogger) LogSimulation(runID, kind string, iterations int, seed int64, mean, stdDev, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"run_id":      runID,
		"kind":        kind,
		"iterations":  iterations,
		"seed":        seed,
		"mean":        mean,
		"std_dev":     stdDev,
		"duration_ms": durationMs,
	}).Info("Simulation completed")
}

// LogIterationsCapped logs a request above the iteration cap.
func (sl *SimulationLogger) LogIterationsCapped(kind string, requested, limit int) {
	sl.WithFields(logrus.Fields{
		"kind":      kind,
		"requested": requested,
		"limit":     limit,
	}).Warn("Simulation iterations capped")
}

// LogPortfolio logs portfolio simulation results.
func (sl *SimulationLogger) LogPortfolio(runID string, props, trials int, meanROI, probabilityOfProfit, probabilityOfRuin float64) {
	sl.WithFields(logrus.Fields{
		"run_id":                runID,
		"props":                 props,
		"trials":                trials,
		"mean_roi":              meanROI,
		"probability_of_profit": probabilityOfProfit,
		"probability_of_ruin":   probabilityOfRuin,
	}).Info("Portfolio simulation completed")
}

// LogSimulationError logs a failed or cancelled run.
func (sl *SimulationLogger) LogSimulationError(kind string, err error) {
	sl.WithField("kind", kind).WithError(err).Error("Simulation failed")
}
