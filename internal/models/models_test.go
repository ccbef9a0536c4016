package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGameContextValidate tests range validation and field naming
func TestGameContextValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GameContext)
		field   string
		wantErr bool
	}{
		{name: "default is valid", mutate: func(*GameContext) {}},
		{name: "home is valid", mutate: func(g *GameContext) { g.HomeAway = Home }},
		{name: "zero pace", mutate: func(g *GameContext) { g.PaceFactor = 0 }, field: "pace_factor", wantErr: true},
		{name: "negative rest", mutate: func(g *GameContext) { g.RestDays = -1 }, field: "rest_days", wantErr: true},
		{name: "bad venue", mutate: func(g *GameContext) { g.HomeAway = "neutral" }, field: "home_away", wantErr: true},
		{name: "minutes too high", mutate: func(g *GameContext) { g.ProjectedMinutes = 61 }, field: "projected_minutes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := DefaultGameContext()
			tt.mutate(&ctx)
			err := ctx.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

// TestParseStatType tests normalization and rejection
func TestParseStatType(t *testing.T) {
	st, err := ParseStatType(" Points ")
	require.NoError(t, err)
	assert.Equal(t, StatPoints, st)
	assert.False(t, st.IsCount())
	assert.True(t, StatRebounds.IsCount())

	_, err = ParseStatType("dunks")
	assert.True(t, errors.Is(err, ErrUnknownStatType))

	for _, s := range StatTypes() {
		assert.True(t, s.Valid(), s)
		assert.Greater(t, s.LeagueAverage(), 0.0, s)
	}
}

// TestDescriptorValidate tests family parameter checks
func TestDescriptorValidate(t *testing.T) {
	assert.NoError(t, NormalDescriptor(20, 5).Validate())
	assert.NoError(t, PoissonDescriptor(0).Validate())
	assert.NoError(t, BinomialDescriptor(10, 0.4).Validate())

	assert.Error(t, NormalDescriptor(20, -1).Validate())
	assert.Error(t, PoissonDescriptor(-0.1).Validate())
	assert.Error(t, BinomialDescriptor(10, 1.2).Validate())
	assert.Error(t, Descriptor{Type: "cauchy"}.Validate())

	assert.Equal(t, 4.0, BinomialDescriptor(10, 0.4).Center())
	assert.Equal(t, 3.5, PoissonDescriptor(3.5).Center())
}

// TestEmptyPrediction tests the insufficient-data shape
func TestEmptyPrediction(t *testing.T) {
	p := EmptyPrediction("p1", "g1", StatPoints, "insufficient data")

	assert.Equal(t, StatusEmpty, p.Status)
	assert.Equal(t, 0.5, p.OverProbability)
	assert.Equal(t, 0.5, p.UnderProbability)
	assert.Equal(t, 0.0, p.PredictedValue)
	assert.NotNil(t, p.Adjustments)
	assert.False(t, p.IsUsable())

	failed := FailedPrediction("p1", "g1", StatPoints, errors.New("boom"))
	assert.Equal(t, StatusError, failed.Status)
	assert.Equal(t, "boom", failed.Error)
}

// TestAdjustmentFactor tests the product of adjustments
func TestAdjustmentFactor(t *testing.T) {
	p := &PredictionResult{Adjustments: []Adjustment{{Factor: 1.03}, {Factor: 0.95}}}
	assert.InDelta(t, 0.9785, p.AdjustmentFactor(), 1e-12)
}

// TestSeriesBeforeCopies tests that truncation never aliases the source
func TestSeriesBeforeCopies(t *testing.T) {
	s := Series{Values: []float64{1, 2, 3}, Minutes: []float64{30, 31, 32}}
	head := s.Before(2)
	head.Values[0] = 99

	assert.Equal(t, []float64{1, 2, 3}, s.Values)
	assert.Equal(t, []float64{30, 31}, head.Minutes)
	assert.Equal(t, 0, s.Before(-1).Len())
	assert.Equal(t, 3, s.Before(10).Len())
}
