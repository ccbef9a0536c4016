package models

// Action is the betting decision for a prop
type Action string

// Recommendation actions
const (
	ActionOver  Action = "over"
	ActionUnder Action = "under"
	ActionAvoid Action = "avoid"
)

// Recommendation is the betting layer output
type Recommendation struct {
	Action        Action   `json:"action"`
	ExpectedValue float64  `json:"expected_value"`
	OverEV        float64  `json:"over_ev"`
	UnderEV       float64  `json:"under_ev"`
	Confidence    float64  `json:"confidence"`
	KellyStake    float64  `json:"kelly_stake"`
	Reasoning     []string `json:"reasoning"`

	// Market comparison, set once both prices are valid.
	MarketOverProbability float64 `json:"market_over_probability,omitempty"`
	Overround             float64 `json:"overround,omitempty"`
	ModelEdge             float64 `json:"model_edge,omitempty"`
	FairOverOdds          int     `json:"fair_over_odds,omitempty"`
	FairUnderOdds         int     `json:"fair_under_odds,omitempty"`
}

// IsBet reports whether a side was chosen.
func (r Recommendation) IsBet() bool {
	return r.Action == ActionOver || r.Action == ActionUnder
}
