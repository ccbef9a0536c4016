// Package config provides configuration management for the props engine.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Engine     EngineConfig     `mapstructure:"engine" validate:"required"`
	Betting    BettingConfig    `mapstructure:"betting" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Validation ValidationConfig `mapstructure:"validation" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Secrets    SecretsConfig    `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration. The database
// is optional; an empty host means the in-memory store is used.
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required_with=Host"`
	User               string `mapstructure:"user" validate:"required_with=Host"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gte=0"`
}

// EngineConfig controls the prediction pipeline
type EngineConfig struct {
	MinGames         int     `mapstructure:"min_games" validate:"required,gte=2"`
	RecentGames      int     `mapstructure:"recent_games" validate:"required,gt=0"`
	RecentWeight     float64 `mapstructure:"recent_weight" validate:"gte=0,lte=1"`
	SampleSaturation int     `mapstructure:"sample_saturation" validate:"required,gt=0"`
	UseBayesian      bool    `mapstructure:"use_bayesian"`
	BatchWorkers     int     `mapstructure:"batch_workers" validate:"required,gt=0,lte=64"`
}

// BettingConfig represents recommendation thresholds
type BettingConfig struct {
	MinEdge       float64 `mapstructure:"min_edge" validate:"gte=0,lte=1"`
	MinConfidence float64 `mapstructure:"min_confidence" validate:"gte=0,lte=1"`
	KellyFraction float64 `mapstructure:"kelly_fraction" validate:"gt=0,lte=1"`
}

// SimulationConfig represents Monte Carlo limits
type SimulationConfig struct {
	DefaultIterations int   `mapstructure:"default_iterations" validate:"required,gt=0"`
	MaxIterations     int   `mapstructure:"max_iterations" validate:"required,gt=0,lte=1000000"`
	Seed              int64 `mapstructure:"seed"`
}

// ValidationConfig represents model validation and backtest settings
type ValidationConfig struct {
	MinSampleSize int    `mapstructure:"min_sample_size" validate:"required,gt=0"`
	WindowSize    int    `mapstructure:"window_size" validate:"required,gt=1"`
	MinHistory    int    `mapstructure:"min_history" validate:"required,gte=2"`
	OutputPath    string `mapstructure:"output_path"`
}

// CacheConfig represents prediction cache settings
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds" validate:"omitempty,gt=0"`
	MaxSize    int  `mapstructure:"max_size" validate:"omitempty,gt=0"`
}

// SchedulerConfig represents scheduled backtest jobs
type SchedulerConfig struct {
	Enabled      bool             `mapstructure:"enabled"`
	BacktestCron string           `mapstructure:"backtest_cron" validate:"required_if=Enabled true"`
	Targets      []BacktestTarget `mapstructure:"targets" validate:"dive"`
}

// BacktestTarget names one player and stat to backtest on a schedule
type BacktestTarget struct {
	PlayerID string  `mapstructure:"player_id" validate:"required"`
	StatType string  `mapstructure:"stat_type" validate:"required,stattype"`
	Line     float64 `mapstructure:"line" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// SecretsConfig selects the optional AWS Secrets Manager overlay
type SecretsConfig struct {
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secret_name" validate:"required_with=Region"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// HasDatabase reports whether a Postgres connection is configured.
func (c *Config) HasDatabase() bool {
	return c.Database.Host != ""
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// MetricsAddress returns the listen address for the metrics server.
func (c *Config) MetricsAddress() string {
	return fmt.Sprintf(":%d", c.Metrics.Port)
}
