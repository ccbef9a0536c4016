package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "CLEVER_PROPS"

// DefaultPath is used when no config path is given.
const DefaultPath = "config/config.yaml"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// readExpanded reads the file and expands ${VAR} placeholders before
// handing it to viper.
func readExpanded(v *viper.Viper, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Load reads and parses the configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	v := newViper()
	if err := readExpanded(v, configPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// SetDefaults registers the default for every optional setting.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "clever-props")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)

	v.SetDefault("engine.min_games", 2)
	v.SetDefault("engine.recent_games", 5)
	v.SetDefault("engine.recent_weight", 0.3)
	v.SetDefault("engine.sample_saturation", 15)
	v.SetDefault("engine.use_bayesian", false)
	v.SetDefault("engine.batch_workers", 4)

	v.SetDefault("betting.min_edge", 0.05)
	v.SetDefault("betting.min_confidence", 0.7)
	v.SetDefault("betting.kelly_fraction", 0.25)

	v.SetDefault("simulation.default_iterations", 10000)
	v.SetDefault("simulation.max_iterations", 100000)
	v.SetDefault("simulation.seed", 0)

	v.SetDefault("validation.min_sample_size", 20)
	v.SetDefault("validation.window_size", 10)
	v.SetDefault("validation.min_history", 10)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.max_size", 10000)

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.backtest_cron", "0 6 * * *")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}

// LoadWithDefaults loads configuration with default values for optional
// fields. A missing file is not an error.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	v := newViper()
	SetDefaults(v)

	if err := readExpanded(v, configPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration built from defaults and environment
// variables only.
func Default() *Config {
	v := newViper()
	SetDefaults(v)
	cfg := &Config{}
	// Defaults are all plain scalars, so decoding cannot fail.
	_ = v.Unmarshal(cfg)
	return cfg
}

// ReloadFromEnv reloads the configuration when CLEVER_PROPS_CONFIG_PATH is set
func ReloadFromEnv(cfg *Config) error {
	if envPath := os.Getenv(EnvPrefix + "_CONFIG_PATH"); envPath != "" {
		newCfg, err := LoadWithDefaults(envPath)
		if err != nil {
			return err
		}
		*cfg = *newCfg
	}
	return nil
}
