package prediction

import (
	"context"

	"github.com/yourusername/clever-props/internal/models"
)

// StatsProvider returns a player's game log for one stat, oldest first.
// Unknown players return models.ErrNotFound.
type StatsProvider interface {
	History(ctx context.Context, playerID string, statType models.StatType) (models.Series, error)
}

// ContextProvider returns the situational features of an upcoming game.
type ContextProvider interface {
	Context(ctx context.Context, playerID, gameID string) (models.GameContext, error)
}

// OddsProvider returns the market for a player's prop line.
type OddsProvider interface {
	Odds(ctx context.Context, playerID string, statType models.StatType, line float64) (models.Odds, error)
}

// Dependencies are the engine's collaborators. Only Stats is required.
type Dependencies struct {
	Stats    StatsProvider
	Contexts ContextProvider
	Odds     OddsProvider
}

// Request asks for one prediction. A nil Context is fetched from the
// ContextProvider, or defaults to a neutral game when there is none.
type Request struct {
	PlayerID string              `json:"player_id" validate:"required"`
	GameID   string              `json:"game_id" validate:"required"`
	StatType models.StatType     `json:"stat_type" validate:"required"`
	Line     *float64            `json:"line,omitempty" validate:"omitempty,gte=0"`
	Context  *models.GameContext `json:"context,omitempty"`
}
