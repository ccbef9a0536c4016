package scheduler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-props/internal/config"
	"github.com/yourusername/clever-props/internal/logger"
	"github.com/yourusername/clever-props/internal/metrics"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/prediction"
	"github.com/yourusername/clever-props/internal/validation"
)

const backtestJobName = "backtest"

// BacktestJob backtests every configured target against its full history
type BacktestJob struct {
	stats      prediction.StatsProvider
	engine     *prediction.Engine
	backtester *validation.Backtester
	targets    []config.BacktestTarget
	outputDir  string
	log        *logger.ValidationLogger
}

// NewBacktestJob creates a job. When outputDir is set each result is written
// there as JSON.
func NewBacktestJob(stats prediction.StatsProvider, engine *prediction.Engine, backtester *validation.Backtester,
	targets []config.BacktestTarget, outputDir string, log *logrus.Logger) (*BacktestJob, error) {
	if stats == nil || engine == nil || backtester == nil {
		return nil, fmt.Errorf("stats provider, engine and backtester are required")
	}
	return &BacktestJob{
		stats:      stats,
		engine:     engine,
		backtester: backtester,
		targets:    targets,
		outputDir:  outputDir,
		log:        logger.NewValidationLogger(log),
	}, nil
}

// Run backtests each target in turn. A failing target is logged and
// counted; the remaining targets still run.
func (j *BacktestJob) Run(ctx context.Context) ([]*validation.BacktestResult, error) {
	start := time.Now()
	results := make([]*validation.BacktestResult, 0, len(j.targets))
	var errs []error

	for _, target := range j.targets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		result, err := j.runTarget(ctx, target)
		if err != nil {
			j.log.WithError(err).WithFields(logrus.Fields{
				"player_id": target.PlayerID,
				"stat_type": target.StatType,
			}).Warn("Backtest target failed")
			errs = append(errs, err)
			continue
		}
		results = append(results, result)
	}

	status := "success"
	if len(errs) > 0 {
		status = "partial"
		if len(results) == 0 {
			status = "error"
		}
	}
	metrics.RecordSchedulerJob(backtestJobName, status)
	j.log.LogScheduledJob(backtestJobName, len(j.targets), len(errs), float64(time.Since(start).Milliseconds()))
	return results, errors.Join(errs...)
}

func (j *BacktestJob) runTarget(ctx context.Context, target config.BacktestTarget) (*validation.BacktestResult, error) {
	statType, err := models.ParseStatType(target.StatType)
	if err != nil {
		return nil, err
	}
	series, err := j.stats.History(ctx, target.PlayerID, statType)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", target.PlayerID, err)
	}

	cfg := validation.BacktestConfig{
		StatType:  statType,
		Predictor: validation.EnginePredictor(j.engine, statType, models.DefaultGameContext()),
		Betting:   j.engine.Config().Betting,
	}
	if target.Line > 0 {
		line := target.Line
		cfg.Line = &line
	}
	result, err := j.backtester.Backtest(ctx, series, cfg)
	if err != nil {
		return nil, err
	}

	if j.outputDir != "" {
		name := fmt.Sprintf("backtest_%s_%s.json", target.PlayerID, statType)
		if err := validation.ExportToJSON(result, filepath.Join(j.outputDir, name)); err != nil {
			return nil, fmt.Errorf("failed to export backtest: %w", err)
		}
	}
	return result, nil
}
