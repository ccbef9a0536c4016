package models

// Odds holds American odds for both sides of a prop line
type Odds struct {
	Line  float64 `db:"line" json:"line"`
	Over  int     `db:"over_odds" json:"over" validate:"required"`
	Under int     `db:"under_odds" json:"under" validate:"required"`
}

// StandardOdds returns the common -110/-110 market.
func StandardOdds(line float64) Odds {
	return Odds{Line: line, Over: -110, Under: -110}
}
