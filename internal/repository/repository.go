// Package repository provides the stats, context and odds providers used by
// the prediction engine.
package repository

import (
	"fmt"

	"github.com/yourusername/clever-props/internal/database"
	"github.com/yourusername/clever-props/internal/prediction"
)

// Store is implemented by both PostgresStore and MemoryStore
type Store interface {
	prediction.StatsProvider
	prediction.ContextProvider
	prediction.OddsProvider
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// NewPostgresDependencies wires a PostgresStore into engine dependencies
func NewPostgresDependencies(db *database.DB) (prediction.Dependencies, error) {
	if db == nil {
		return prediction.Dependencies{}, fmt.Errorf("database connection is required")
	}
	return Dependencies(NewPostgresStore(db.Querier())), nil
}

// Dependencies uses one store for every provider
func Dependencies(s Store) prediction.Dependencies {
	return prediction.Dependencies{Stats: s, Contexts: s, Odds: s}
}
