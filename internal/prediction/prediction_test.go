package prediction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-props/internal/logger"
	"github.com/yourusername/clever-props/internal/models"
)

type mockStats struct{ mock.Mock }

func (m *mockStats) History(ctx context.Context, playerID string, statType models.StatType) (models.Series, error) {
	args := m.Called(ctx, playerID, statType)
	return args.Get(0).(models.Series), args.Error(1)
}

type mockContexts struct{ mock.Mock }

func (m *mockContexts) Context(ctx context.Context, playerID, gameID string) (models.GameContext, error) {
	args := m.Called(ctx, playerID, gameID)
	return args.Get(0).(models.GameContext), args.Error(1)
}

type mockOdds struct{ mock.Mock }

func (m *mockOdds) Odds(ctx context.Context, playerID string, statType models.StatType, line float64) (models.Odds, error) {
	args := m.Called(ctx, playerID, statType, line)
	return args.Get(0).(models.Odds), args.Error(1)
}

var pointsHistory = []float64{
	22, 25, 19, 28, 24, 21, 26, 23, 27, 20,
	24, 25, 22, 29, 23, 26, 21, 24, 27, 25,
}

func ptr(v float64) *float64 { return &v }

func newTestEngine(t *testing.T, cfg Config, deps Dependencies) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, deps, logger.Discard())
	require.NoError(t, err)
	return engine
}

// TestNewEngineRequiresStats tests constructor validation
func TestNewEngineRequiresStats(t *testing.T) {
	_, err := NewEngine(DefaultConfig(), Dependencies{}, nil)
	assert.Error(t, err)
}

// TestPredictSuccess tests the full pipeline with providers
func TestPredictSuccess(t *testing.T) {
	stats := &mockStats{}
	stats.On("History", mock.Anything, "237", models.StatPoints).
		Return(models.Series{PlayerID: "237", StatType: models.StatPoints, Values: pointsHistory}, nil)
	contexts := &mockContexts{}
	gameCtx := models.DefaultGameContext()
	gameCtx.HomeAway = models.Home
	contexts.On("Context", mock.Anything, "237", "g1").Return(gameCtx, nil)

	engine := newTestEngine(t, DefaultConfig(), Dependencies{Stats: stats, Contexts: contexts})
	result, err := engine.Predict(context.Background(), Request{
		PlayerID: "237", GameID: "g1", StatType: models.StatPoints, Line: ptr(22.5),
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Equal(t, models.FamilyNormal, result.Distribution.Type)
	require.Len(t, result.Adjustments, 4)
	assert.Equal(t, "home_away", result.Adjustments[3].Name)
	assert.InDelta(t, result.BaseValue*1.03, result.PredictedValue, 0.1)
	assert.InDelta(t, 1.0, result.OverProbability+result.UnderProbability, 1e-9)
	assert.Greater(t, result.OverProbability, 0.5)
	assert.True(t, result.Confidence > 0 && result.Confidence <= 1)
	assert.True(t, result.DataQuality.Sufficient)
	assert.Contains(t, result.DataQuality.Flags, FlagNoMinutes)
	require.NotNil(t, result.Line)
	assert.Equal(t, 22.5, *result.Line)

	stats.AssertExpectations(t)
	contexts.AssertExpectations(t)
}

// TestPredictInvalidInput tests fail-fast validation
func TestPredictInvalidInput(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), Dependencies{Stats: &mockStats{}})
	badPace := models.DefaultGameContext()
	badPace.PaceFactor = 0

	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"missing player", Request{GameID: "g", StatType: models.StatPoints}, "player_id"},
		{"missing game", Request{PlayerID: "p", StatType: models.StatPoints}, "game_id"},
		{"unknown stat", Request{PlayerID: "p", GameID: "g", StatType: "dunks"}, "stat_type"},
		{"negative line", Request{PlayerID: "p", GameID: "g", StatType: models.StatPoints, Line: ptr(-1)}, "line"},
		{"bad context", Request{PlayerID: "p", GameID: "g", StatType: models.StatPoints, Context: &badPace}, "pace_factor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Predict(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

// TestPredictUnknownPlayer tests not-found identifiers failing fast
func TestPredictUnknownPlayer(t *testing.T) {
	stats := &mockStats{}
	stats.On("History", mock.Anything, "ghost", models.StatRebounds).Return(models.Series{}, models.ErrNotFound)

	engine := newTestEngine(t, DefaultConfig(), Dependencies{Stats: stats})
	_, err := engine.Predict(context.Background(), Request{PlayerID: "ghost", GameID: "g", StatType: models.StatRebounds})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

// TestPredictInsufficientData tests the empty prediction result
func TestPredictInsufficientData(t *testing.T) {
	stats := &mockStats{}
	stats.On("History", mock.Anything, "rookie", models.StatAssists).
		Return(models.Series{Values: []float64{4}}, nil)

	engine := newTestEngine(t, DefaultConfig(), Dependencies{Stats: stats})
	result, err := engine.Predict(context.Background(), Request{
		PlayerID: "rookie", GameID: "g", StatType: models.StatAssists, Line: ptr(3.5),
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusEmpty, result.Status)
	assert.Equal(t, 0.0, result.PredictedValue)
	assert.Equal(t, models.NeutralProbability, result.OverProbability)
	assert.Equal(t, models.NeutralProbability, result.UnderProbability)
	assert.Contains(t, result.Error, "insufficient data")
	assert.Equal(t, 1, result.DataQuality.SampleSize)
}

// TestAdjustments tests the ordered contextual factors
func TestAdjustments(t *testing.T) {
	gameCtx := models.GameContext{
		PaceFactor:            1.05,
		RestDays:              0,
		OpponentDefenseRating: 110,
		HomeAway:              models.Away,
		ProjectedMinutes:      36,
	}
	series := models.Series{
		Values:  []float64{20, 22, 24},
		Minutes: []float64{30, 30, 30},
	}

	adjustments := Adjustments(models.StatPoints, gameCtx, series)
	require.Len(t, adjustments, 5)

	expected := []struct {
		name   string
		factor float64
	}{
		{"pace", 1.05},
		{"rest", BackToBackFactor},
		{"opponent", 1.10},
		{"home_away", AwayFactor},
		{"minutes", 1.2},
	}
	for i, e := range expected {
		assert.Equal(t, e.name, adjustments[i].Name)
		assert.InDelta(t, e.factor, adjustments[i].Factor, 1e-9)
		assert.NotEmpty(t, adjustments[i].Description)
	}

	rested := models.DefaultGameContext()
	rested.RestDays = 4
	rested.ProjectedMinutes = 80
	adjustments = Adjustments(models.StatMinutes, rested, series)
	require.Len(t, adjustments, 4)
	assert.Equal(t, WellRestedFactor, adjustments[1].Factor)
	assert.Equal(t, 1.0, adjustments[2].Factor)
	assert.Equal(t, 1.0, adjustments[3].Factor)
}

// TestMinutesFactorIsClamped tests the minutes bounds
func TestMinutesFactorIsClamped(t *testing.T) {
	gameCtx := models.DefaultGameContext()
	gameCtx.ProjectedMinutes = 48
	series := models.Series{Values: []float64{5, 6}, Minutes: []float64{10, 10}}

	adjustments := Adjustments(models.StatRebounds, gameCtx, series)
	assert.Equal(t, maxMinutesFactor, adjustments[len(adjustments)-1].Factor)
}

// TestPredictSeriesQuickPath tests provider-free prediction and confidence weights
func TestPredictSeriesQuickPath(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), Dependencies{Stats: &mockStats{}})
	series := models.Series{PlayerID: "237", Values: pointsHistory}

	quick := engine.PredictSeries(models.StatPoints, series, models.DefaultGameContext(), ptr(24.5))
	require.Equal(t, models.StatusSuccess, quick.Status)
	assert.Equal(t, 1.0, quick.AdjustmentFactor())

	full := engine.run("237", "g", models.StatPoints, series, models.DefaultGameContext(), ptr(24.5), false)
	assert.InDelta(t, quick.ConfidenceFactors.Consistency*2/3, full.ConfidenceFactors.Consistency, 0.002)
	assert.Equal(t, quick.PredictedValue, full.PredictedValue)
	assert.Equal(t, quick.OverProbability, full.OverProbability)

	failed := engine.PredictSeries(models.StatPoints, models.Series{Values: []float64{3, -1, 4}}, models.DefaultGameContext(), nil)
	assert.Equal(t, models.StatusError, failed.Status)
	assert.Contains(t, failed.Error, "values[1]")

	unknown := engine.PredictSeries("dunks", series, models.DefaultGameContext(), nil)
	assert.Equal(t, models.StatusError, unknown.Status)
}

// TestPredictCountStat tests poisson selection and integer lines
func TestPredictCountStat(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), Dependencies{Stats: &mockStats{}})
	rebounds := []float64{3, 9, 4, 7, 10, 5, 12, 7, 2, 8, 3, 9, 7, 6, 11, 4}

	result := engine.PredictSeries(models.StatRebounds, models.Series{Values: rebounds}, models.DefaultGameContext(), ptr(6.5))
	require.Equal(t, models.StatusSuccess, result.Status)
	assert.Equal(t, models.FamilyPoisson, result.Distribution.Type)
	assert.InDelta(t, result.PredictedValue, result.Distribution.Lambda, 0.05)
	assert.InDelta(t, 1.0, result.OverProbability+result.UnderProbability, 1e-9)
}

// TestPredictBinomialProjectionPastN tests that a projection above the fitted
// n keeps the distribution centred on the prediction
func TestPredictBinomialProjectionPastN(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), Dependencies{Stats: &mockStats{}})
	rebounds := []float64{3, 3, 3, 3, 4, 3, 3, 3, 3, 3, 4, 3}
	gameCtx := models.GameContext{
		PaceFactor:            1.3,
		RestDays:              3,
		OpponentDefenseRating: 110,
		HomeAway:              models.Home,
	}

	result := engine.run("p", "", models.StatRebounds, models.Series{Values: rebounds}, gameCtx, ptr(4.5), false)
	require.Equal(t, models.StatusSuccess, result.Status)
	require.Equal(t, models.FamilyBinomial, result.Distribution.Type)
	assert.Greater(t, result.PredictedValue, 4.5)
	assert.InDelta(t, result.PredictedValue, result.Distribution.Center(), 0.05)
	assert.Greater(t, float64(result.Distribution.N), result.PredictedValue)
	assert.LessOrEqual(t, result.Distribution.P, 1.0)
	assert.Greater(t, result.OverProbability, 0.5)
	assert.InDelta(t, 1.0, result.OverProbability+result.UnderProbability, 1e-9)
}

// TestPredictBayesian tests shrinkage toward the league average
func TestPredictBayesian(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseBayesian = true
	cfg.RecentWeight = 0
	engine := newTestEngine(t, cfg, Dependencies{Stats: &mockStats{}})

	series := models.Series{Values: []float64{30, 34, 32}}
	result := engine.PredictSeries(models.StatPoints, series, models.DefaultGameContext(), nil)
	require.Equal(t, models.StatusSuccess, result.Status)

	assert.Less(t, result.BaseValue, 32.0)
	assert.Greater(t, result.BaseValue, models.StatPoints.LeagueAverage())
	assert.Contains(t, result.DataQuality.Flags, FlagBayesianPrior)
}

// TestTrendSlope tests the regression-based trend
func TestTrendSlope(t *testing.T) {
	values := make([]float64, 12)
	for i := range values {
		values[i] = 10 + 0.5*float64(i)
	}
	slope, ok := TrendSlope(values)
	require.True(t, ok)
	assert.InDelta(t, 0.5, slope, 1e-6)

	_, ok = TrendSlope(values[:5])
	assert.False(t, ok)
}

// TestPredictBatchIsolatesFailures tests per-item isolation
func TestPredictBatchIsolatesFailures(t *testing.T) {
	stats := &mockStats{}
	stats.On("History", mock.Anything, "good", models.StatPoints).Return(models.Series{Values: pointsHistory}, nil)
	stats.On("History", mock.Anything, "short", models.StatPoints).Return(models.Series{Values: []float64{10}}, nil)
	stats.On("History", mock.Anything, "broken", models.StatPoints).Return(models.Series{}, errors.New("connection reset"))

	cfg := DefaultConfig()
	cfg.BatchWorkers = 2
	engine := newTestEngine(t, cfg, Dependencies{Stats: stats})

	reqs := []Request{
		{PlayerID: "good", GameID: "g", StatType: models.StatPoints},
		{PlayerID: "short", GameID: "g", StatType: models.StatPoints},
		{PlayerID: "broken", GameID: "g", StatType: models.StatPoints},
		{PlayerID: "", GameID: "g", StatType: models.StatPoints},
	}
	results := engine.PredictBatch(context.Background(), reqs)
	require.Len(t, results, 4)

	assert.Equal(t, models.StatusSuccess, results[0].Status)
	assert.Equal(t, models.StatusEmpty, results[1].Status)
	assert.Equal(t, models.StatusError, results[2].Status)
	assert.Contains(t, results[2].Error, "connection reset")
	assert.Equal(t, models.StatusError, results[3].Status)
}

// TestPredictBatchCancelled tests a cancelled context
func TestPredictBatchCancelled(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), Dependencies{Stats: &mockStats{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := engine.PredictBatch(ctx, []Request{{PlayerID: "p", GameID: "g", StatType: models.StatPoints}})
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusError, results[0].Status)
}

// TestRecommend tests prediction plus pricing
func TestRecommend(t *testing.T) {
	stats := &mockStats{}
	stats.On("History", mock.Anything, "237", models.StatPoints).Return(models.Series{Values: pointsHistory}, nil)
	odds := &mockOdds{}
	odds.On("Odds", mock.Anything, "237", models.StatPoints, 18.5).Return(models.StandardOdds(18.5), nil)
	odds.On("Odds", mock.Anything, "237", models.StatPoints, 30.5).Return(models.Odds{}, models.ErrNotFound)

	engine := newTestEngine(t, DefaultConfig(), Dependencies{Stats: stats, Odds: odds})

	result, err := engine.Recommend(context.Background(), Request{PlayerID: "237", GameID: "g", StatType: models.StatPoints, Line: ptr(18.5)}, nil)
	require.NoError(t, err)
	require.NotNil(t, result.Odds)
	assert.Greater(t, result.Prediction.OverProbability, 0.8)
	assert.Equal(t, models.ActionOver, result.Recommendation.Action)
	assert.Greater(t, result.Recommendation.KellyStake, 0.0)

	result, err = engine.Recommend(context.Background(), Request{PlayerID: "237", GameID: "g", StatType: models.StatPoints, Line: ptr(30.5)}, nil)
	require.NoError(t, err)
	assert.Nil(t, result.Odds)
	assert.Equal(t, models.ActionAvoid, result.Recommendation.Action)

	_, err = engine.Recommend(context.Background(), Request{PlayerID: "237", GameID: "g", StatType: models.StatPoints}, nil)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

// TestFromConfigDefaults tests config conversion fallbacks
func TestFromConfigDefaults(t *testing.T) {
	assert.Equal(t, DefaultConfig(), FromConfig(nil))
}
