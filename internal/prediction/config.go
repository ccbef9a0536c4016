// Package prediction turns a player's game log and the upcoming game's
// context into a probabilistic forecast for one stat.
package prediction

import (
	"github.com/yourusername/clever-props/internal/betting"
	"github.com/yourusername/clever-props/internal/config"
)

// Config controls the prediction pipeline.
type Config struct {
	// MinGames is the smallest history that produces a prediction.
	MinGames int
	// RecentGames is the recent-form window.
	RecentGames int
	// RecentWeight is the share of the base expectation taken from recent form.
	RecentWeight float64
	// SampleSaturation is the history length at which the sample-size
	// confidence factor reaches one.
	SampleSaturation int
	// UseBayesian shrinks the season mean toward the league average.
	UseBayesian bool
	// BatchWorkers bounds PredictBatch concurrency.
	BatchWorkers int
	Betting      betting.Config
}

// DefaultConfig returns the standard pipeline settings.
func DefaultConfig() Config {
	return Config{
		MinGames:         2,
		RecentGames:      5,
		RecentWeight:     0.3,
		SampleSaturation: 15,
		BatchWorkers:     4,
		Betting:          betting.DefaultConfig(),
	}
}

// FromConfig converts app config to engine config. Zero values fall back
// to the defaults.
func FromConfig(cfg *config.Config) Config {
	out := DefaultConfig()
	if cfg == nil {
		return out
	}
	e := cfg.Engine
	if e.MinGames >= 2 {
		out.MinGames = e.MinGames
	}
	if e.RecentGames > 0 {
		out.RecentGames = e.RecentGames
	}
	if e.RecentWeight >= 0 && e.RecentWeight <= 1 {
		out.RecentWeight = e.RecentWeight
	}
	if e.SampleSaturation > 0 {
		out.SampleSaturation = e.SampleSaturation
	}
	if e.BatchWorkers > 0 {
		out.BatchWorkers = e.BatchWorkers
	}
	out.UseBayesian = e.UseBayesian

	b := cfg.Betting
	out.Betting = betting.Config{
		MinEdge:       b.MinEdge,
		MinConfidence: b.MinConfidence,
		KellyFraction: b.KellyFraction,
	}
	if out.Betting.KellyFraction <= 0 {
		out.Betting.KellyFraction = betting.DefaultConfig().KellyFraction
	}
	return out
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinGames < 2 {
		c.MinGames = d.MinGames
	}
	if c.RecentGames <= 0 {
		c.RecentGames = d.RecentGames
	}
	if c.RecentWeight < 0 || c.RecentWeight > 1 {
		c.RecentWeight = d.RecentWeight
	}
	if c.SampleSaturation <= 0 {
		c.SampleSaturation = d.SampleSaturation
	}
	if c.BatchWorkers <= 0 {
		c.BatchWorkers = d.BatchWorkers
	}
	return c
}
