package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/prediction"
	"github.com/yourusername/clever-props/internal/validation"
)

// Backtest modes
const (
	modeHistorical  = "historical"
	modeWalkForward = "walk-forward"
	modeAll         = "all"
)

type backtestOptions struct {
	playerID     string
	statName     string
	mode         string
	minHistory   int
	initialTrain int
	testSize     int
	stepSize     int
	output       string
	csvOutput    string
}

func newBacktestCmd() *cobra.Command {
	opts := backtestOptions{}
	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Replay a player's history through the prediction engine",
		Example: `  props backtest --data dataset.json --player 237 --stat points
  props backtest --data dataset.json --player 237 --stat points --line 24.5 --mode all --output out/points.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := optionalFloat(cmd, "line")
			if err != nil {
				return err
			}
			return runBacktest(cmd, opts, line)
		},
	}
	cmd.Flags().StringVarP(&opts.playerID, "player", "p", "", "Player ID")
	cmd.Flags().StringVarP(&opts.statName, "stat", "s", string(models.StatPoints), "Stat type")
	cmd.Flags().Float64P("line", "l", 0, "Fixed prop line (default derives a line from the prior games)")
	cmd.Flags().StringVar(&opts.mode, "mode", modeHistorical, "Backtest mode: historical, walk-forward, all")
	cmd.Flags().IntVar(&opts.minHistory, "min-history", 0, "Games played before the first prediction (0 uses config)")
	cmd.Flags().IntVar(&opts.initialTrain, "initial-train", 0, "Walk-forward initial training games")
	cmd.Flags().IntVar(&opts.testSize, "test-size", 0, "Walk-forward test window size")
	cmd.Flags().IntVar(&opts.stepSize, "step-size", 0, "Walk-forward step size")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the results as JSON to this path")
	cmd.Flags().StringVar(&opts.csvOutput, "csv", "", "Write the per-game records as CSV to this path")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

func runBacktest(cmd *cobra.Command, opts backtestOptions, line *float64) error {
	ctx := cmd.Context()
	statType, err := parseStat(opts.statName)
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}
	series, err := store.History(ctx, opts.playerID, statType)
	if err != nil {
		return fmt.Errorf("failed to load history for %s: %w", opts.playerID, err)
	}

	backtester := validation.NewBacktester(validation.FromConfig(cfg), appLogger)
	btConfig := buildBacktestConfig(engine, statType, line, opts.minHistory)

	appLogger.WithFields(logrus.Fields{
		"mode":      opts.mode,
		"player_id": opts.playerID,
		"stat_type": statType,
		"games":     series.Len(),
	}).Info("Starting backtest")

	out := cmd.OutOrStdout()
	switch opts.mode {
	case modeHistorical:
		result, err := runHistorical(ctx, backtester, series, btConfig)
		if err != nil {
			return err
		}
		fmt.Fprint(out, validation.GenerateBacktestReport(result))
		return exportBacktest(opts, result, nil)
	case modeWalkForward:
		wf, err := runWalkForward(ctx, backtester, series, btConfig, opts)
		if err != nil {
			return err
		}
		fmt.Fprint(out, validation.GenerateWalkForwardReport(wf))
		return exportBacktest(opts, nil, wf)
	case modeAll:
		result, err := runHistorical(ctx, backtester, series, btConfig)
		if err != nil {
			return err
		}
		wf, err := runWalkForward(ctx, backtester, series, btConfig, opts)
		if err != nil {
			return err
		}
		fmt.Fprint(out, validation.GenerateBacktestReport(result))
		fmt.Fprintln(out)
		fmt.Fprint(out, validation.GenerateWalkForwardReport(wf))
		return exportBacktest(opts, result, wf)
	default:
		return fmt.Errorf("unknown backtest mode %q", opts.mode)
	}
}

func buildBacktestConfig(engine *prediction.Engine, statType models.StatType, line *float64, minHistory int) validation.BacktestConfig {
	return validation.BacktestConfig{
		MinHistory: minHistory,
		StatType:   statType,
		Line:       line,
		Predictor:  validation.EnginePredictor(engine, statType, models.DefaultGameContext()),
		Betting:    engine.Config().Betting,
	}
}

func runHistorical(ctx context.Context, b *validation.Backtester, series models.Series, cfg validation.BacktestConfig) (*validation.BacktestResult, error) {
	result, err := b.Backtest(ctx, series, cfg)
	if err != nil {
		return nil, fmt.Errorf("historical backtest failed: %w", err)
	}
	return result, nil
}

func runWalkForward(ctx context.Context, b *validation.Backtester, series models.Series, cfg validation.BacktestConfig, opts backtestOptions) (*validation.WalkForwardResult, error) {
	result, err := b.WalkForward(ctx, series, validation.WalkForwardConfig{
		Backtest:     cfg,
		InitialTrain: opts.initialTrain,
		TestSize:     opts.testSize,
		StepSize:     opts.stepSize,
	})
	if err != nil {
		return nil, fmt.Errorf("walk-forward analysis failed: %w", err)
	}
	return result, nil
}

// exportBacktest writes whichever results were produced. Without --output the
// JSON goes under the configured validation output path, if there is one.
func exportBacktest(opts backtestOptions, result *validation.BacktestResult, wf *validation.WalkForwardResult) error {
	output := opts.output
	if output == "" && cfg.Validation.OutputPath != "" {
		output = filepath.Join(cfg.Validation.OutputPath, fmt.Sprintf("backtest_%s_%s.json", opts.playerID, opts.statName))
	}
	if output != "" {
		payload := map[string]any{}
		if result != nil {
			payload[modeHistorical] = result
		}
		if wf != nil {
			payload[modeWalkForward] = wf
		}
		if err := validation.ExportToJSON(payload, output); err != nil {
			return err
		}
		appLogger.WithField("path", output).Info("Backtest results exported")
	}
	if opts.csvOutput != "" && result != nil {
		if err := validation.GenerateCSVExport(result, opts.csvOutput); err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
		appLogger.WithField("path", opts.csvOutput).Info("Backtest records exported")
	}
	return nil
}
