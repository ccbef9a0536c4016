package validation

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yourusername/clever-props/internal/models"
)

// GenerateConsoleReport formats a validation report for terminal output
func GenerateConsoleReport(report models.ValidationReport) string {
	var builder strings.Builder
	builder.WriteString("Validation Report\n")
	builder.WriteString("=================\n")
	writeReport(&builder, report)
	return builder.String()
}

func writeReport(builder *strings.Builder, report models.ValidationReport) {
	builder.WriteString(fmt.Sprintf("Status: %s\n", report.Status))
	builder.WriteString(fmt.Sprintf("Sample Size: %d\n", report.SampleSize))
	if report.Status != models.StatusSuccess {
		if report.Error != "" {
			builder.WriteString(fmt.Sprintf("Note: %s\n", report.Error))
		}
		return
	}
	builder.WriteString(fmt.Sprintf("MAE: %.3f\n", report.Accuracy.MAE))
	builder.WriteString(fmt.Sprintf("RMSE: %.3f\n", report.Accuracy.RMSE))
	builder.WriteString(fmt.Sprintf("MAPE: %.2f%%\n", report.Accuracy.MAPE))
	builder.WriteString(fmt.Sprintf("Directional Accuracy: %.2f%%\n", report.Accuracy.DirectionalAccuracy*100))
	builder.WriteString(fmt.Sprintf("Bias: %+.3f (%s, %s)\n", report.Bias.MeanError, report.Bias.Magnitude, report.Bias.Direction))
	builder.WriteString(fmt.Sprintf("Within 10%%: %.2f%%\n", report.Calibration.WithinTenPercent*100))
	builder.WriteString(fmt.Sprintf("Within 20%%: %.2f%%\n", report.Calibration.WithinTwentyPercent*100))
	if report.Calibration.BrierScore != nil {
		builder.WriteString(fmt.Sprintf("Brier Score: %.4f\n", *report.Calibration.BrierScore))
	}
	ts := report.TemporalStability
	builder.WriteString(fmt.Sprintf("Trend: %s (slope %+.4f, stability %.2f)\n", ts.Trend, ts.Slope, ts.StabilityScore))
}

// GenerateBacktestReport formats a backtest result for terminal output
func GenerateBacktestReport(result *BacktestResult) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Player: %s  Stat: %s\n", result.PlayerID, result.StatType))
	builder.WriteString(fmt.Sprintf("Games: %d (predicted %d, skipped %d)\n", len(result.Games), result.Predicted, result.Skipped))
	builder.WriteString(fmt.Sprintf("Picks: %d (W %d / L %d / P %d)\n", result.Picks, result.Wins, result.Losses, result.Pushes))
	builder.WriteString(fmt.Sprintf("Hit Rate: %.2f%%\n", result.HitRate*100))
	builder.WriteString(fmt.Sprintf("Line Accuracy: %.2f%%\n", result.LineAccuracy*100))
	builder.WriteString(fmt.Sprintf("Profit: %+.2f units\n", result.Profit))
	builder.WriteString(fmt.Sprintf("ROI: %.2f%%\n", result.ROI*100))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f units\n", result.MaxDrawdown))
	builder.WriteString("\n")
	writeReport(&builder, result.Report)
	return builder.String()
}

// GenerateWalkForwardReport formats a walk-forward result for terminal output
func GenerateWalkForwardReport(result *WalkForwardResult) string {
	var builder strings.Builder
	builder.WriteString("Walk-Forward Report\n")
	builder.WriteString("===================\n")
	for _, w := range result.Windows {
		builder.WriteString(fmt.Sprintf("Window %d: train %d, test [%d,%d) MAE %.3f picks %d hit %.2f%% profit %+.2f\n",
			w.WindowID, w.TrainGames, w.TestStart, w.TestEnd, w.MAE, w.Picks, w.HitRate*100, w.Profit))
	}
	builder.WriteString(fmt.Sprintf("Mean MAE: %.3f\n", result.MeanMAE))
	builder.WriteString(fmt.Sprintf("Consistency: %.2f%%\n", result.ConsistencyScore*100))
	builder.WriteString(fmt.Sprintf("Accuracy Stability: %.2f\n", result.AccuracyStability))
	return builder.String()
}

// GenerateCSVExport writes one row per backtested game
func GenerateCSVExport(result *BacktestResult, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	_ = writer.Write([]string{"index", "game_id", "status", "predicted", "actual", "line",
		"over_probability", "confidence", "action", "outcome", "profit", "bankroll"})
	for _, g := range result.Games {
		_ = writer.Write([]string{
			strconv.Itoa(g.Index),
			g.GameID,
			string(g.Status),
			formatFloat(g.Predicted),
			formatFloat(g.Actual),
			formatFloat(g.Line),
			formatFloat(g.OverProbability),
			formatFloat(g.Confidence),
			string(g.Action),
			g.Outcome,
			formatFloat(g.Profit),
			formatFloat(g.Bankroll),
		})
	}
	writer.Flush()
	return writer.Error()
}

// ExportToJSON writes any validation output as indented JSON
func ExportToJSON(value any, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
