package betting

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-props/internal/models"
)

func ptr(v float64) *float64 { return &v }

// TestAmericanToDecimal tests odds conversion
func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		american int
		expected float64
	}{
		{"standard juice", -110, 1.9091},
		{"even money", 100, 2.0},
		{"underdog", 150, 2.5},
		{"favourite", -200, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AmericanToDecimal(tt.american)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-4)
		})
	}

	_, err := AmericanToDecimal(0)
	assert.True(t, errors.Is(err, models.ErrInvalidOdds))
}

// TestDecimalToAmerican tests reverse conversion
func TestDecimalToAmerican(t *testing.T) {
	got, err := DecimalToAmerican(2.5)
	require.NoError(t, err)
	assert.Equal(t, 150, got)

	got, err = DecimalToAmerican(1.5)
	require.NoError(t, err)
	assert.Equal(t, -200, got)

	_, err = DecimalToAmerican(1.0)
	assert.Error(t, err)
}

// TestRemoveVig tests proportional vig removal
func TestRemoveVig(t *testing.T) {
	over, under, err := RemoveVig(-110, -110)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, over, 1e-9)
	assert.InDelta(t, 1.0, over+under, 1e-9)

	over, under, err = RemoveVig(-150, 130)
	require.NoError(t, err)
	assert.InDelta(t, 0.58, over, 0.01)
	assert.InDelta(t, 1.0, over+under, 1e-9)

	margin, err := Overround(-110, -110)
	require.NoError(t, err)
	assert.InDelta(t, 0.0476, margin, 1e-3)
}

// TestRecommendMarketComparison tests the no-vig market view and fair prices
func TestRecommendMarketComparison(t *testing.T) {
	tests := []struct {
		name       string
		over       float64
		odds       models.Odds
		market     float64
		overround  float64
		fairOver   int
		fairUnder  int
		reasonings []string
	}{
		{
			name:       "standard juice",
			over:       0.62,
			odds:       models.StandardOdds(24.5),
			market:     0.5,
			overround:  0.0476,
			fairOver:   -163,
			fairUnder:  163,
			reasonings: []string{"no-vig market 50.0%", "edge +12.0%", "fair odds over -163, under +163"},
		},
		{
			name:       "favoured over",
			over:       0.5,
			odds:       models.Odds{Line: 6.5, Over: -150, Under: 130},
			market:     0.5798,
			overround:  0.0348,
			fairOver:   100,
			fairUnder:  100,
			reasonings: []string{"model over 50.0% vs no-vig market 58.0%", "edge -8.0%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			odds := tt.odds
			rec := Recommend(Input{Line: odds.Line, OverProbability: ptr(tt.over), Confidence: ptr(0.8), Odds: &odds}, DefaultConfig())
			assert.InDelta(t, tt.market, rec.MarketOverProbability, 1e-3)
			assert.InDelta(t, tt.overround, rec.Overround, 1e-3)
			assert.InDelta(t, tt.over-tt.market, rec.ModelEdge, 1e-3)
			assert.Equal(t, tt.fairOver, rec.FairOverOdds)
			assert.Equal(t, tt.fairUnder, rec.FairUnderOdds)
			for _, want := range tt.reasonings {
				assert.Contains(t, strings.Join(rec.Reasoning, "\n"), want)
			}
		})
	}

	certain := models.StandardOdds(0.5)
	rec := Recommend(Input{OverProbability: ptr(1), Confidence: ptr(0.9), Odds: &certain}, DefaultConfig())
	assert.InDelta(t, 0.5, rec.MarketOverProbability, 1e-9)
	assert.Zero(t, rec.FairOverOdds, "a certain outcome has no fair price")
}

// TestFairOdds tests break-even prices
func TestFairOdds(t *testing.T) {
	got, err := FairOdds(0.4)
	require.NoError(t, err)
	assert.Equal(t, 150, got)

	got, err = FairOdds(2.0 / 3.0)
	require.NoError(t, err)
	assert.Equal(t, -200, got)

	for _, p := range []float64{0, 1, -0.1} {
		_, err = FairOdds(p)
		assert.ErrorIs(t, err, models.ErrInvalidOdds)
	}
}

// TestKellyFraction tests stake sizing
func TestKellyFraction(t *testing.T) {
	assert.InDelta(t, 0.202*0.25, KellyFraction(0.62, 1.90909, 0.25), 1e-3)
	assert.Equal(t, 0.0, KellyFraction(0.4, 1.90909, 0.25))
	assert.Equal(t, 0.0, KellyFraction(0.6, 1.0, 0.25))
}

// TestRecommend tests the side selection rules
func TestRecommend(t *testing.T) {
	odds := models.StandardOdds(24.5)
	cfg := DefaultConfig()

	tests := []struct {
		name       string
		input      Input
		action     models.Action
		evExpected float64
	}{
		{
			name:       "strong over",
			input:      Input{PredictedValue: 27, Line: 24.5, OverProbability: ptr(0.62), Confidence: ptr(0.8), Odds: &odds},
			action:     models.ActionOver,
			evExpected: 0.184,
		},
		{
			name:       "strong under",
			input:      Input{PredictedValue: 21, Line: 24.5, OverProbability: ptr(0.35), Confidence: ptr(0.8), Odds: &odds},
			action:     models.ActionUnder,
			evExpected: 0.241,
		},
		{
			name:       "low confidence",
			input:      Input{PredictedValue: 27, Line: 24.5, OverProbability: ptr(0.62), Confidence: ptr(0.6), Odds: &odds},
			action:     models.ActionAvoid,
			evExpected: 0.184,
		},
		{
			name:       "no edge",
			input:      Input{PredictedValue: 24.6, Line: 24.5, OverProbability: ptr(0.52), Confidence: ptr(0.9), Odds: &odds},
			action:     models.ActionAvoid,
			evExpected: -0.007,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(tt.input, cfg)
			assert.Equal(t, tt.action, rec.Action)
			assert.InDelta(t, tt.evExpected, rec.ExpectedValue, 1e-3)
			assert.NotEmpty(t, rec.Reasoning)
		})
	}
}

// TestRecommendExactEV tests the unrounded over EV
func TestRecommendExactEV(t *testing.T) {
	dec, err := AmericanToDecimal(-110)
	require.NoError(t, err)
	assert.InDelta(t, 0.1836, ExpectedValue(0.62, dec), 1e-4)
}

// TestRecommendMissingInputs tests avoid on missing data
func TestRecommendMissingInputs(t *testing.T) {
	odds := models.StandardOdds(10.5)

	rec := Recommend(Input{Confidence: ptr(0.9), Odds: &odds}, DefaultConfig())
	assert.Equal(t, models.ActionAvoid, rec.Action)
	assert.Contains(t, rec.Reasoning[0], "probability")

	rec = Recommend(Input{OverProbability: ptr(0.7), Odds: &odds}, DefaultConfig())
	assert.Contains(t, rec.Reasoning[0], "confidence")

	rec = Recommend(Input{OverProbability: ptr(0.7), Confidence: ptr(0.9)}, DefaultConfig())
	assert.Contains(t, rec.Reasoning[0], "odds")

	bad := models.Odds{Line: 10.5, Over: 0, Under: -110}
	rec = Recommend(Input{OverProbability: ptr(0.7), Confidence: ptr(0.9), Odds: &bad}, DefaultConfig())
	assert.Equal(t, models.ActionAvoid, rec.Action)
}

// TestInputFromPrediction tests conversion from a prediction
func TestInputFromPrediction(t *testing.T) {
	line := 10.5
	p := &models.PredictionResult{
		PredictedValue:  12,
		Line:            &line,
		OverProbability: 0.64,
		Confidence:      0.75,
		Status:          models.StatusSuccess,
	}
	in := InputFromPrediction(p, nil)
	require.NotNil(t, in.OverProbability)
	assert.Equal(t, 0.64, *in.OverProbability)
	assert.Equal(t, 10.5, in.Line)

	empty := models.EmptyPrediction("p", "g", models.StatPoints, "insufficient data")
	in = InputFromPrediction(empty, nil)
	assert.Nil(t, in.OverProbability)
}
