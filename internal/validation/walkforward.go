package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/yourusername/clever-props/internal/metrics"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

// WalkForwardConfig configures walk-forward analysis. The training window
// starts at InitialTrain games and grows by StepSize after every test window.
type WalkForwardConfig struct {
	Backtest     BacktestConfig
	InitialTrain int
	TestSize     int
	StepSize     int
}

// WalkForwardWindow represents one walk-forward window
type WalkForwardWindow struct {
	WindowID   int     `json:"window_id"`
	TrainGames int     `json:"train_games"`
	TestStart  int     `json:"test_start"`
	TestEnd    int     `json:"test_end"`
	Predicted  int     `json:"predicted"`
	MAE        float64 `json:"mae"`
	Picks      int     `json:"picks"`
	HitRate    float64 `json:"hit_rate"`
	Profit     float64 `json:"profit"`
}

// WalkForwardResult represents walk-forward analysis result
type WalkForwardResult struct {
	Windows []WalkForwardWindow `json:"windows"`
	MeanMAE float64             `json:"mean_mae"`
	// ConsistencyScore is the share of windows that made a profit.
	ConsistencyScore float64 `json:"consistency_score"`
	// AccuracyStability is 1 - CV of the window MAEs.
	AccuracyStability float64       `json:"accuracy_stability"`
	Status            models.Status `json:"status"`
}

// WalkForward scores the predictor over expanding training windows. Every
// test game is still predicted from only the games before it.
func (b *Backtester) WalkForward(ctx context.Context, series models.Series, cfg WalkForwardConfig) (*WalkForwardResult, error) {
	bt, err := b.backtestConfig(cfg.Backtest)
	if err != nil {
		metrics.RecordValidationRun("walk_forward", string(models.StatusError))
		return nil, err
	}
	if cfg.InitialTrain <= 0 {
		cfg.InitialTrain = bt.MinHistory
	}
	if cfg.TestSize <= 0 {
		cfg.TestSize = b.config.WindowSize
	}
	if cfg.StepSize <= 0 {
		cfg.StepSize = cfg.TestSize
	}

	result := &WalkForwardResult{Status: models.StatusEmpty}
	records, err := replay(ctx, series, cfg.InitialTrain, series.Len(), bt)
	if err != nil {
		metrics.RecordValidationRun("walk_forward", string(models.StatusError))
		return nil, err
	}

	windowID := 0
	for trainEnd := cfg.InitialTrain; trainEnd < series.Len(); trainEnd += cfg.StepSize {
		testEnd := min(trainEnd+cfg.TestSize, series.Len())
		windowID++
		w := scoreWindow(records[trainEnd-cfg.InitialTrain : testEnd-cfg.InitialTrain])
		w.WindowID = windowID
		w.TrainGames = trainEnd
		w.TestStart = trainEnd
		w.TestEnd = testEnd
		if w.Predicted > 0 {
			result.Windows = append(result.Windows, w)
		}
	}

	if len(result.Windows) > 0 {
		result.Status = models.StatusSuccess
		result.ConsistencyScore = CalculateConsistency(result.Windows)
		maes := make([]float64, len(result.Windows))
		for i, w := range result.Windows {
			maes[i] = w.MAE
		}
		result.MeanMAE = stats.Mean(maes)
		result.AccuracyStability = stats.Clamp01(1 - stats.CoefficientOfVariation(maes))
	}

	metrics.RecordValidationRun("walk_forward", string(result.Status))
	b.log.LogWalkForward(len(result.Windows), result.MeanMAE, result.ConsistencyScore)
	return result, nil
}

func scoreWindow(records []GameRecord) WalkForwardWindow {
	var w WalkForwardWindow
	var abs float64
	wins, losses := 0, 0
	for _, r := range records {
		if r.Status != models.StatusSuccess {
			continue
		}
		w.Predicted++
		abs += math.Abs(r.Predicted - r.Actual)
		w.Profit += r.Profit
		switch r.Outcome {
		case OutcomeWin:
			wins++
		case OutcomeLoss:
			losses++
		}
		if r.Outcome != OutcomeNone {
			w.Picks++
		}
	}
	if w.Predicted > 0 {
		w.MAE = abs / float64(w.Predicted)
	}
	if wins+losses > 0 {
		w.HitRate = float64(wins) / float64(wins+losses)
	}
	return w
}

// CalculateConsistency calculates percentage of profitable windows
func CalculateConsistency(windows []WalkForwardWindow) float64 {
	if len(windows) == 0 {
		return 0
	}
	profitable := 0
	for _, w := range windows {
		if w.Profit > 0 {
			profitable++
		}
	}
	return float64(profitable) / float64(len(windows))
}

// ExportJSON encodes the walk-forward result
func (w WalkForwardResult) ExportJSON() (string, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("failed to marshal walk-forward result: %w", err)
	}
	return string(data), nil
}
