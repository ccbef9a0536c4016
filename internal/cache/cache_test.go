package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-props/internal/config"
	"github.com/yourusername/clever-props/internal/logger"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/prediction"
)

type mockPredictor struct{ mock.Mock }

func (m *mockPredictor) Predict(ctx context.Context, req prediction.Request) (*models.PredictionResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*models.PredictionResult)
	return result, args.Error(1)
}

func ptr(v float64) *float64 { return &v }

// TestKeyString tests key fingerprints
func TestKeyString(t *testing.T) {
	a := Key{PlayerID: "237", GameID: "g1", StatType: models.StatPoints, Line: ptr(24.5)}
	b := a
	b.Line = ptr(24.5)
	assert.Len(t, a.String(), 64)
	assert.Equal(t, a.String(), b.String())

	b.Line = ptr(25.5)
	assert.NotEqual(t, a.String(), b.String())

	ctx := models.DefaultGameContext()
	b = a
	b.Context = &ctx
	assert.NotEqual(t, a.String(), b.String())
}

// TestPredictionCacheGetSet tests hits, misses and copies
func TestPredictionCacheGetSet(t *testing.T) {
	cache := NewPredictionCache(time.Hour, 100)
	defer cache.Clear()

	key := Key{PlayerID: "237", GameID: "g1", StatType: models.StatPoints}
	assert.Nil(t, cache.Get(key))

	line := 24.5
	stored := &models.PredictionResult{
		PlayerID:       "237",
		PredictedValue: 24.1,
		Line:           &line,
		Adjustments:    []models.Adjustment{{Name: "pace", Factor: 1.02}},
		DataQuality:    models.DataQuality{Flags: []string{"bayesian_prior"}},
	}
	cache.Set(key, stored)

	// Mutating the caller's value after Set must not reach the cache.
	stored.Adjustments[0].Factor = 9
	stored.DataQuality.Flags[0] = "overwritten"
	line = 99

	got := cache.Get(key)
	require.NotNil(t, got)
	assert.Equal(t, 24.1, got.PredictedValue)
	assert.Equal(t, 1.02, got.Adjustments[0].Factor)
	assert.Equal(t, []string{"bayesian_prior"}, got.DataQuality.Flags)
	require.NotNil(t, got.Line)
	assert.Equal(t, 24.5, *got.Line)

	got.PredictedValue = 0
	got.Adjustments[0].Factor = 0
	got.Adjustments = append(got.Adjustments, models.Adjustment{Name: "rest"})
	got.DataQuality.Flags[0] = "zero_variance"
	*got.Line = 0

	again := cache.Get(key)
	assert.Equal(t, 24.1, again.PredictedValue)
	assert.Equal(t, []models.Adjustment{{Name: "pace", Factor: 1.02}}, again.Adjustments)
	assert.Equal(t, []string{"bayesian_prior"}, again.DataQuality.Flags)
	assert.Equal(t, 24.5, *again.Line)

	hits, misses, ratio := cache.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 2.0/3.0, ratio, 1e-12)
}

// TestPredictionCacheMaxSize tests eviction at capacity
func TestPredictionCacheMaxSize(t *testing.T) {
	cache := NewPredictionCache(time.Hour, 2)
	for _, id := range []string{"a", "b", "c"} {
		cache.Set(Key{PlayerID: id}, &models.PredictionResult{PlayerID: id})
	}
	assert.Equal(t, 2, cache.ItemCount())
	assert.NotNil(t, cache.Get(Key{PlayerID: "c"}))
}

// TestPredictionCacheExpiry tests TTL expiry
func TestPredictionCacheExpiry(t *testing.T) {
	cache := NewPredictionCache(20*time.Millisecond, 10)
	key := Key{PlayerID: "237"}
	cache.Set(key, &models.PredictionResult{})
	time.Sleep(40 * time.Millisecond)
	assert.Nil(t, cache.Get(key))
}

// TestInvalidatePlayer tests removal of one player's entries
func TestInvalidatePlayer(t *testing.T) {
	cache := NewPredictionCache(time.Hour, 100)
	cache.Set(Key{PlayerID: "237", StatType: models.StatPoints}, &models.PredictionResult{})
	cache.Set(Key{PlayerID: "237", StatType: models.StatRebounds}, &models.PredictionResult{})
	cache.Set(Key{PlayerID: "101", StatType: models.StatPoints}, &models.PredictionResult{})

	assert.Equal(t, 2, cache.InvalidatePlayer("237"))
	assert.Equal(t, 1, cache.ItemCount())
	assert.NotNil(t, cache.Get(Key{PlayerID: "101", StatType: models.StatPoints}))
}

// TestCachedEngine tests the decorator around a predictor
func TestCachedEngine(t *testing.T) {
	inner := &mockPredictor{}
	req := prediction.Request{PlayerID: "237", GameID: "g1", StatType: models.StatPoints, Line: ptr(24.5)}
	inner.On("Predict", mock.Anything, req).Return(&models.PredictionResult{
		PlayerID: "237", PredictedValue: 24.1, Status: models.StatusSuccess,
	}, nil).Once()

	engine, err := NewCachedEngine(inner, config.CacheConfig{Enabled: true, TTLSeconds: 60}, "v1", logger.Discard())
	require.NoError(t, err)

	first, err := engine.Predict(context.Background(), req)
	require.NoError(t, err)
	second, err := engine.Predict(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.PredictedValue, second.PredictedValue)
	inner.AssertNumberOfCalls(t, "Predict", 1)

	engine.Invalidate("237")
	assert.Equal(t, 0, engine.Cache().ItemCount())
}

// TestCachedEngineSkipsErrors tests that failures are not cached
func TestCachedEngineSkipsErrors(t *testing.T) {
	inner := &mockPredictor{}
	req := prediction.Request{PlayerID: "x", GameID: "g", StatType: models.StatPoints}
	inner.On("Predict", mock.Anything, req).Return(nil, models.ErrInvalidInput).Twice()

	engine, err := NewCachedEngine(inner, config.CacheConfig{}, "", logger.Discard())
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := engine.Predict(context.Background(), req)
		assert.True(t, errors.Is(err, models.ErrInvalidInput))
	}
	inner.AssertExpectations(t)

	_, err = NewCachedEngine(nil, config.CacheConfig{}, "", nil)
	assert.Error(t, err)
}
