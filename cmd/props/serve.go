package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/clever-props/internal/health"
	"github.com/yourusername/clever-props/internal/metrics"
	"github.com/yourusername/clever-props/internal/prediction"
	"github.com/yourusername/clever-props/internal/scheduler"
	"github.com/yourusername/clever-props/internal/validation"
)

func newServeCmd() *cobra.Command {
	var (
		port       int
		jobTimeout time.Duration
		runNow     bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve health and metrics endpoints and run scheduled backtests",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = cfg.Metrics.Port
			}
			return serve(cmd.Context(), port, jobTimeout, runNow)
		},
	}
	cmd.Flags().IntVar(&port, "port", 9090, "Listen port (defaults to metrics.port)")
	cmd.Flags().DurationVar(&jobTimeout, "job-timeout", time.Hour, "Timeout for one scheduled backtest run")
	cmd.Flags().BoolVar(&runNow, "run-now", false, "Run the backtest job once at startup")
	return cmd
}

func serve(ctx context.Context, port int, jobTimeout time.Duration, runNow bool) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	hc := health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        strconv.Itoa(port),
		Logger:      appLogger,
	}
	if cfg.Metrics.Enabled {
		hc.Metrics = metrics.Handler()
		hc.MetricsPath = cfg.Metrics.Path
	}
	if db != nil {
		hc.DB = db
	}
	server := health.NewServer(hc)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	if cfg.Scheduler.Enabled {
		sched, err := startScheduler(ctx, engine, jobTimeout, runNow)
		if err != nil {
			return err
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				appLogger.WithError(err).Warn("Scheduler stop failed")
			}
		}()
	}

	server.SetReady(true)
	appLogger.WithFields(logrus.Fields{"port": port, "scheduler": cfg.Scheduler.Enabled}).Info("Props service running")
	<-ctx.Done()
	server.SetReady(false)
	appLogger.Info("Shutting down")
	return nil
}

func startScheduler(ctx context.Context, engine *prediction.Engine, jobTimeout time.Duration, runNow bool) (*scheduler.Scheduler, error) {
	backtester := validation.NewBacktester(validation.FromConfig(cfg), appLogger)
	job, err := scheduler.NewBacktestJob(store, engine, backtester, cfg.Scheduler.Targets, cfg.Validation.OutputPath, appLogger)
	if err != nil {
		return nil, err
	}

	sched := scheduler.NewScheduler(appLogger)
	if err := sched.ScheduleBacktests(cfg.Scheduler.BacktestCron, job, jobTimeout); err != nil {
		return nil, err
	}
	if err := sched.Start(); err != nil {
		return nil, err
	}
	appLogger.WithField("next_run", sched.GetNextRun()).Info("Scheduler started")

	if runNow {
		go func() {
			runCtx, cancel := context.WithTimeout(ctx, jobTimeout)
			defer cancel()
			if _, err := job.Run(runCtx); err != nil {
				appLogger.WithError(err).Error("Startup backtest failed")
			}
		}()
	}
	return sched, nil
}
