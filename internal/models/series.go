package models

// Series is a player's chronological game log for one stat, most recent last.
// Minutes and GameIDs are optional and, when present, align with Values.
type Series struct {
	PlayerID string    `json:"player_id"`
	StatType StatType  `json:"stat_type"`
	Values   []float64 `json:"values"`
	Minutes  []float64 `json:"minutes,omitempty"`
	GameIDs  []string  `json:"game_ids,omitempty"`
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.Values)
}

// HasMinutes reports whether a usable minutes history is attached.
func (s Series) HasMinutes() bool {
	return len(s.Minutes) > 0 && len(s.Minutes) == len(s.Values)
}

// Before returns a copy of the first n games. The receiver is not shared with
// the result.
func (s Series) Before(n int) Series {
	if n > len(s.Values) {
		n = len(s.Values)
	}
	if n < 0 {
		n = 0
	}
	out := Series{PlayerID: s.PlayerID, StatType: s.StatType}
	out.Values = append([]float64(nil), s.Values[:n]...)
	if s.HasMinutes() {
		out.Minutes = append([]float64(nil), s.Minutes[:n]...)
	}
	if len(s.GameIDs) == len(s.Values) {
		out.GameIDs = append([]string(nil), s.GameIDs[:n]...)
	}
	return out
}
