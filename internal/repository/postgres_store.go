package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/clever-props/internal/database"
	"github.com/yourusername/clever-props/internal/models"
)

// statColumns maps stat types to player_game_stats columns. Only these names
// are ever interpolated into SQL.
var statColumns = map[models.StatType]string{
	models.StatPoints:         "points",
	models.StatRebounds:       "rebounds",
	models.StatAssists:        "assists",
	models.StatSteals:         "steals",
	models.StatBlocks:         "blocks",
	models.StatTurnovers:      "turnovers",
	models.StatThrees:         "threes_made",
	models.StatMinutes:        "minutes",
	models.StatFieldGoalsMade: "field_goals_made",
	models.StatFreeThrowsMade: "free_throws_made",
}

// StatColumn returns the column holding a stat type
func StatColumn(statType models.StatType) (string, error) {
	col, ok := statColumns[statType]
	if !ok {
		return "", fmt.Errorf("%w: %q", models.ErrUnknownStatType, statType)
	}
	return col, nil
}

// PostgresStore reads game logs, game contexts and prop odds from PostgreSQL.
// It never writes.
type PostgresStore struct {
	q database.Querier
}

// NewPostgresStore creates a new PostgreSQL-backed store
func NewPostgresStore(q database.Querier) *PostgresStore {
	return &PostgresStore{q: q}
}

// History returns a player's game log for one stat, oldest first
func (s *PostgresStore) History(ctx context.Context, playerID string, statType models.StatType) (models.Series, error) {
	col, err := StatColumn(statType)
	if err != nil {
		return models.Series{}, err
	}
	query := fmt.Sprintf(`
		SELECT game_id, %s, minutes
		FROM player_game_stats
		WHERE player_id = $1
		ORDER BY game_date ASC, game_id ASC
	`, col)

	rows, err := s.q.Query(ctx, query, playerID)
	if err != nil {
		return models.Series{}, fmt.Errorf("failed to query game log: %w", err)
	}
	defer rows.Close()

	series := models.Series{PlayerID: playerID, StatType: statType}
	minutesComplete := true
	for rows.Next() {
		var gameID string
		var value float64
		var minutes *float64
		if err := rows.Scan(&gameID, &value, &minutes); err != nil {
			return models.Series{}, fmt.Errorf("failed to scan game log: %w", err)
		}
		series.GameIDs = append(series.GameIDs, gameID)
		series.Values = append(series.Values, value)
		if minutes == nil {
			minutesComplete = false
			continue
		}
		series.Minutes = append(series.Minutes, *minutes)
	}
	if err := rows.Err(); err != nil {
		return models.Series{}, fmt.Errorf("error iterating game log: %w", err)
	}
	if series.Len() == 0 {
		return models.Series{}, fmt.Errorf("player %s: %w", playerID, models.ErrNotFound)
	}
	if !minutesComplete {
		series.Minutes = nil
	}
	return series, nil
}

// Context returns the situational features of a player's game
func (s *PostgresStore) Context(ctx context.Context, playerID, gameID string) (models.GameContext, error) {
	query := `
		SELECT pace_factor, rest_days, opponent_defense_rating, COALESCE(home_away, ''), COALESCE(projected_minutes, 0)
		FROM game_contexts
		WHERE player_id = $1 AND game_id = $2
	`
	var g models.GameContext
	var venue string
	err := s.q.QueryRow(ctx, query, playerID, gameID).Scan(
		&g.PaceFactor, &g.RestDays, &g.OpponentDefenseRating, &venue, &g.ProjectedMinutes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.GameContext{}, fmt.Errorf("context for %s/%s: %w", playerID, gameID, models.ErrNotFound)
	}
	if err != nil {
		return models.GameContext{}, fmt.Errorf("failed to get game context: %w", err)
	}
	g.HomeAway = models.HomeAway(venue)
	return g, nil
}

// Odds returns the latest prices for a player's prop line
func (s *PostgresStore) Odds(ctx context.Context, playerID string, statType models.StatType, line float64) (models.Odds, error) {
	query := `
		SELECT line, over_odds, under_odds
		FROM prop_odds
		WHERE player_id = $1 AND stat_type = $2 AND line = $3
		ORDER BY captured_at DESC
		LIMIT 1
	`
	var o models.Odds
	err := s.q.QueryRow(ctx, query, playerID, string(statType), line).Scan(&o.Line, &o.Over, &o.Under)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Odds{}, fmt.Errorf("odds for %s %s %.1f: %w", playerID, statType, line, models.ErrNotFound)
	}
	if err != nil {
		return models.Odds{}, fmt.Errorf("failed to get prop odds: %w", err)
	}
	return o, nil
}
