// Package cache provides a TTL cache for prediction results and an engine
// decorator that consults it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/clever-props/internal/metrics"
	"github.com/yourusername/clever-props/internal/models"
)

// Key identifies one prediction input. Version separates results produced
// under different engine settings.
type Key struct {
	PlayerID string              `json:"player_id"`
	GameID   string              `json:"game_id"`
	StatType models.StatType     `json:"stat_type"`
	Line     *float64            `json:"line,omitempty"`
	Context  *models.GameContext `json:"context,omitempty"`
	Version  string              `json:"version,omitempty"`
}

// String returns the sha256 fingerprint of the key
func (k Key) String() string {
	data, _ := json.Marshal(k)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

type entry struct {
	playerID string
	result   *models.PredictionResult
}

// PredictionCache provides in-memory caching for prediction results
type PredictionCache struct {
	cache     *gocache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   gocache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get returns a deep copy of the cached result, or nil on a miss.
func (pc *PredictionCache) Get(key Key) *models.PredictionResult {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if item, found := pc.cache.Get(key.String()); found {
		if e, ok := item.(entry); ok {
			pc.hitCount++
			pc.updateMetrics(true)
			return e.result.Clone()
		}
	}
	pc.missCount++
	pc.updateMetrics(false)
	return nil
}

// Set stores a deep copy of the result. A full cache first drops expired items,
// then the entry closest to expiry.
func (pc *PredictionCache) Set(key Key, result *models.PredictionResult) {
	if result == nil {
		return
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()

	k := key.String()
	if pc.maxSize > 0 && pc.cache.ItemCount() >= pc.maxSize {
		if _, exists := pc.cache.Get(k); !exists {
			pc.cache.DeleteExpired()
			if pc.cache.ItemCount() >= pc.maxSize {
				pc.evictOldest()
			}
		}
	}
	pc.cache.Set(k, entry{playerID: key.PlayerID, result: result.Clone()}, pc.ttl)
}

func (pc *PredictionCache) evictOldest() {
	var oldest string
	var at int64
	for k, item := range pc.cache.Items() {
		if oldest == "" || item.Expiration < at {
			oldest, at = k, item.Expiration
		}
	}
	if oldest != "" {
		pc.cache.Delete(oldest)
	}
}

// InvalidatePlayer removes every cached result for a player
func (pc *PredictionCache) InvalidatePlayer(playerID string) int {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	removed := 0
	for k, item := range pc.cache.Items() {
		if e, ok := item.Object.(entry); ok && e.playerID == playerID {
			pc.cache.Delete(k)
			removed++
		}
	}
	return removed
}

// Clear flushes the entire cache
func (pc *PredictionCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Flush()
	pc.hitCount = 0
	pc.missCount = 0
}

// Stats returns cache statistics
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.stats()
}

func (pc *PredictionCache) stats() (hits, misses uint64, ratio float64) {
	hits = pc.hitCount
	misses = pc.missCount
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (pc *PredictionCache) updateMetrics(hit bool) {
	_, _, ratio := pc.stats()
	metrics.RecordCacheLookup(hit)
	metrics.UpdateCacheStats(ratio, pc.cache.ItemCount())
}

// ItemCount returns the number of items in cache
func (pc *PredictionCache) ItemCount() int {
	return pc.cache.ItemCount()
}
