// Package main provides the props command line tool.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/clever-props/internal/config"
	"github.com/yourusername/clever-props/internal/database"
	"github.com/yourusername/clever-props/internal/logger"
	"github.com/yourusername/clever-props/internal/metrics"
	"github.com/yourusername/clever-props/internal/prediction"
	"github.com/yourusername/clever-props/internal/repository"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	dataFile   string
	logLevel   string

	appLogger *logrus.Logger
	cfg       *config.Config
	db        *database.DB
	store     repository.Store
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath, "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "data", "d", "", "Path to a JSON dataset used instead of Postgres")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(newPredictCmd(), newSimulateCmd(), newBacktestCmd(), newValidateCmd(), newFitCmd(), newServeCmd(), versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "props",
	Short: "Player prop prediction engine",
	Long:  `Predicts player stat lines, prices props, simulates outcomes and backtests the model against historical games.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "props %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.App.LogLevel = logLevel
	}
	if err := config.LoadSecretsFromAWS(ctx, loaded); err != nil {
		return err
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}

	cfg = loaded
	appLogger = logger.New(cfg.App.LogLevel, cfg.App.Environment, os.Stderr)
	metrics.InitRegistry()
	return nil
}

// setupDependencies picks the data source: an explicit dataset file wins,
// then a configured database, then an empty in-memory store.
func setupDependencies(ctx context.Context) error {
	switch {
	case dataFile != "":
		memory, err := repository.LoadMemoryStore(dataFile)
		if err != nil {
			return err
		}
		store = memory
		appLogger.WithField("path", dataFile).Info("Loaded dataset")
	case cfg.HasDatabase():
		conn, err := database.Initialize(ctx, cfg)
		if err != nil {
			return err
		}
		db = conn
		store = repository.NewPostgresStore(db.Querier())
	default:
		appLogger.Warn("No dataset or database configured, using an empty store")
		store = repository.NewMemoryStore()
	}
	return nil
}

func newEngine() (*prediction.Engine, error) {
	return prediction.NewEngine(prediction.FromConfig(cfg), repository.Dependencies(store), appLogger)
}
