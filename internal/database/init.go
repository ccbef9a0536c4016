package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/clever-props/internal/config"
)

// RequiredTables are the tables the read-only providers query.
var RequiredTables = []string{"player_game_stats", "game_contexts", "prop_odds"}

// Initialize opens the pool and verifies the provider tables exist
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := VerifySchema(ctx, db.Querier()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// VerifySchema reports every required table that is missing
func VerifySchema(ctx context.Context, q Querier) error {
	var missing []string
	for _, table := range RequiredTables {
		var exists bool
		if err := q.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing tables: %s", strings.Join(missing, ", "))
	}
	return nil
}
