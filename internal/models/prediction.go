package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// NeutralProbability is reported whenever a probability cannot be computed.
const NeutralProbability = 0.5

// Adjustment is one multiplicative step applied to the base expectation
type Adjustment struct {
	Name        string  `json:"name"`
	Factor      float64 `json:"factor"`
	Description string  `json:"description"`
}

// ConfidenceFactors are the weighted components of the confidence score
type ConfidenceFactors struct {
	SampleSize       float64 `json:"sample_size"`
	Recency          float64 `json:"recency"`
	Consistency      float64 `json:"consistency"`
	InjuryFree       float64 `json:"injury_free"`
	MinutesStability float64 `json:"minutes_stability"`
}

// Total sums the weighted components.
func (c ConfidenceFactors) Total() float64 {
	return c.SampleSize + c.Recency + c.Consistency + c.InjuryFree + c.MinutesStability
}

// DataQuality describes the input history behind a prediction
type DataQuality struct {
	SampleSize             int      `json:"sample_size"`
	RecentGames            int      `json:"recent_games"`
	SeasonMean             float64  `json:"season_mean"`
	RecentMean             float64  `json:"recent_mean"`
	CoefficientOfVariation float64  `json:"coefficient_of_variation"`
	TrendSlope             float64  `json:"trend_slope"`
	HasMinutes             bool     `json:"has_minutes"`
	Sufficient             bool     `json:"sufficient"`
	Flags                  []string `json:"flags,omitempty"`
}

// PredictionResult is the orchestrator output for one player, game and stat
type PredictionResult struct {
	ID                uuid.UUID         `json:"id"`
	PlayerID          string            `json:"player_id"`
	GameID            string            `json:"game_id"`
	StatType          StatType          `json:"stat_type"`
	PredictedValue    float64           `json:"predicted_value"`
	BaseValue         float64           `json:"base_value"`
	Distribution      Descriptor        `json:"distribution"`
	Confidence        float64           `json:"confidence"`
	ConfidenceFactors ConfidenceFactors `json:"confidence_factors"`
	Line              *float64          `json:"line,omitempty"`
	OverProbability   float64           `json:"over_probability"`
	UnderProbability  float64           `json:"under_probability"`
	Adjustments       []Adjustment      `json:"adjustments"`
	DataQuality       DataQuality       `json:"data_quality"`
	Status            Status            `json:"status"`
	Error             string            `json:"error,omitempty"`
	GeneratedAt       time.Time         `json:"generated_at"`
}

// EmptyPrediction returns the well-formed result used when there is not
// enough data to predict.
func EmptyPrediction(playerID, gameID string, statType StatType, reason string) *PredictionResult {
	return &PredictionResult{
		ID:               uuid.New(),
		PlayerID:         playerID,
		GameID:           gameID,
		StatType:         statType,
		OverProbability:  NeutralProbability,
		UnderProbability: NeutralProbability,
		Adjustments:      []Adjustment{},
		Status:           StatusEmpty,
		Error:            reason,
		GeneratedAt:      time.Now().UTC(),
	}
}

// FailedPrediction returns a per-item error result.
func FailedPrediction(playerID, gameID string, statType StatType, err error) *PredictionResult {
	p := EmptyPrediction(playerID, gameID, statType, err.Error())
	p.Status = StatusError
	return p
}

// Clone returns a deep copy that shares no slices or pointers with p.
func (p *PredictionResult) Clone() *PredictionResult {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Line != nil {
		line := *p.Line
		cp.Line = &line
	}
	cp.Adjustments = slices.Clone(p.Adjustments)
	cp.DataQuality.Flags = slices.Clone(p.DataQuality.Flags)
	return &cp
}

// IsUsable reports whether the prediction carries real numbers.
func (p *PredictionResult) IsUsable() bool {
	return p != nil && p.Status == StatusSuccess
}

// HasLine reports whether over/under probabilities were computed.
func (p *PredictionResult) HasLine() bool {
	return p != nil && p.Line != nil
}

// MeetsThreshold checks if the confidence meets the given threshold
func (p *PredictionResult) MeetsThreshold(threshold float64) bool {
	return p.Confidence >= threshold
}

// AdjustmentFactor returns the product of all applied adjustments.
func (p *PredictionResult) AdjustmentFactor() float64 {
	factor := 1.0
	for _, a := range p.Adjustments {
		factor *= a.Factor
	}
	return factor
}
