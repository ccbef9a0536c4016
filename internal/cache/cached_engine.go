package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-props/internal/config"
	"github.com/yourusername/clever-props/internal/logger"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/prediction"
)

// Default cache settings
const (
	DefaultTTL     = 5 * time.Minute
	DefaultMaxSize = 10000
)

// Predictor is the engine surface the cache decorates.
type Predictor interface {
	Predict(ctx context.Context, req prediction.Request) (*models.PredictionResult, error)
}

// CachedEngine wraps a Predictor with result caching. Errors are never
// cached; empty results are, since more history only arrives with the next
// game.
type CachedEngine struct {
	engine  Predictor
	cache   *PredictionCache
	version string
	logger  *logrus.Logger
}

// NewCachedEngine creates a new cached engine
func NewCachedEngine(engine Predictor, cfg config.CacheConfig, version string, log *logrus.Logger) (*CachedEngine, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &CachedEngine{
		engine:  engine,
		cache:   NewPredictionCache(ttl, maxSize),
		version: version,
		logger:  logger.OrDefault(log),
	}, nil
}

// Predict returns a cached result for an identical request, otherwise it
// runs the engine and stores the result.
func (c *CachedEngine) Predict(ctx context.Context, req prediction.Request) (*models.PredictionResult, error) {
	key := c.key(req)
	if cached := c.cache.Get(key); cached != nil {
		c.logger.WithField("player_id", req.PlayerID).Debug("Cache hit for prediction")
		return cached, nil
	}

	c.logger.WithField("player_id", req.PlayerID).Debug("Cache miss, running prediction")
	result, err := c.engine.Predict(ctx, req)
	if err != nil {
		return nil, err
	}
	if result.Status != models.StatusError {
		c.cache.Set(key, result)
	}
	return result, nil
}

// Invalidate drops a player's cached results, for example after a new game
// is loaded.
func (c *CachedEngine) Invalidate(playerID string) {
	removed := c.cache.InvalidatePlayer(playerID)
	c.logger.WithFields(logrus.Fields{"player_id": playerID, "removed": removed}).Debug("Invalidated cached predictions")
}

// Cache returns the underlying cache
func (c *CachedEngine) Cache() *PredictionCache {
	return c.cache
}

func (c *CachedEngine) key(req prediction.Request) Key {
	return Key{
		PlayerID: req.PlayerID,
		GameID:   req.GameID,
		StatType: req.StatType,
		Line:     req.Line,
		Context:  req.Context,
		Version:  c.version,
	}
}
