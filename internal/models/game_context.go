package models

// HomeAway marks venue.
type HomeAway string

// Venue values. An empty HomeAway is treated as neutral.
const (
	Home HomeAway = "home"
	Away HomeAway = "away"
)

// BaselineDefenseRating is the league-average opponent defensive rating.
const BaselineDefenseRating = 100.0

// GameContext carries the situational features for one upcoming game
type GameContext struct {
	PaceFactor            float64  `db:"pace_factor" json:"pace_factor" validate:"gt=0,lte=3"`
	RestDays              int      `db:"rest_days" json:"rest_days" validate:"gte=0,lte=30"`
	OpponentDefenseRating float64  `db:"opponent_defense_rating" json:"opponent_defense_rating" validate:"gt=0"`
	HomeAway              HomeAway `db:"home_away" json:"home_away" validate:"omitempty,oneof=home away"`
	ProjectedMinutes      float64  `db:"projected_minutes" json:"projected_minutes" validate:"gte=0,lte=60"`
}

// DefaultGameContext returns a neutral context: average pace, one day of
// rest, league-average opponent and no minutes projection.
func DefaultGameContext() GameContext {
	return GameContext{
		PaceFactor:            1.0,
		RestDays:              1,
		OpponentDefenseRating: BaselineDefenseRating,
	}
}

// Validate checks field ranges and names the offending field on failure.
func (g GameContext) Validate() error {
	return ValidateStruct(g)
}

// IsBackToBack reports a game on the day after the previous one.
func (g GameContext) IsBackToBack() bool {
	return g.RestDays == 0
}
