package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/yourusername/clever-props/internal/models"
)

// PlayerRecord is the JSON layout of one player's data. Stats maps a stat
// type to its game log, oldest first; Minutes and GameIDs align with every
// log.
type PlayerRecord struct {
	PlayerID string                            `json:"player_id"`
	GameIDs  []string                          `json:"game_ids,omitempty"`
	Minutes  []float64                         `json:"minutes,omitempty"`
	Stats    map[models.StatType][]float64     `json:"stats"`
	Contexts map[string]models.GameContext     `json:"contexts,omitempty"`
	Odds     map[models.StatType][]models.Odds `json:"odds,omitempty"`
}

// Dataset is the JSON document loaded by LoadMemoryStore
type Dataset struct {
	Players []PlayerRecord `json:"players"`
}

type seriesKey struct {
	playerID string
	statType models.StatType
}

type contextKey struct {
	playerID string
	gameID   string
}

// MemoryStore is an in-memory stats, context and odds provider. It is safe
// for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	series   map[seriesKey]models.Series
	contexts map[contextKey]models.GameContext
	odds     map[seriesKey][]models.Odds
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		series:   make(map[seriesKey]models.Series),
		contexts: make(map[contextKey]models.GameContext),
		odds:     make(map[seriesKey][]models.Odds),
	}
}

// LoadMemoryStore reads a Dataset JSON file into a new store
func LoadMemoryStore(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}
	store := NewMemoryStore()
	if err := store.Load(ds); err != nil {
		return nil, err
	}
	return store, nil
}

// Load adds every player in the dataset
func (m *MemoryStore) Load(ds Dataset) error {
	for _, p := range ds.Players {
		if p.PlayerID == "" {
			return fmt.Errorf("%w: field player_id is required", models.ErrInvalidInput)
		}
		for statType, values := range p.Stats {
			if !statType.Valid() {
				return fmt.Errorf("player %s: %w: %q", p.PlayerID, models.ErrUnknownStatType, statType)
			}
			m.AddSeries(models.Series{
				PlayerID: p.PlayerID,
				StatType: statType,
				Values:   values,
				Minutes:  p.Minutes,
				GameIDs:  p.GameIDs,
			})
		}
		for gameID, g := range p.Contexts {
			if err := g.Validate(); err != nil {
				return fmt.Errorf("player %s game %s: %w", p.PlayerID, gameID, err)
			}
			m.SetContext(p.PlayerID, gameID, g)
		}
		for statType, odds := range p.Odds {
			for _, o := range odds {
				m.SetOdds(p.PlayerID, statType, o)
			}
		}
	}
	return nil
}

// AddSeries stores a copy of a game log, replacing any existing one
func (m *MemoryStore) AddSeries(s models.Series) {
	cp := s.Before(s.Len())
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[seriesKey{s.PlayerID, s.StatType}] = cp
}

// SetContext stores the context of one game
func (m *MemoryStore) SetContext(playerID, gameID string, g models.GameContext) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contexts[contextKey{playerID, gameID}] = g
}

// SetOdds stores the prices of one line, replacing any existing prices for it
func (m *MemoryStore) SetOdds(playerID string, statType models.StatType, o models.Odds) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := seriesKey{playerID, statType}
	lines := m.odds[key]
	for i := range lines {
		if lines[i].Line == o.Line {
			lines[i] = o
			return
		}
	}
	m.odds[key] = append(lines, o)
}

// History returns a copy of a player's game log
func (m *MemoryStore) History(_ context.Context, playerID string, statType models.StatType) (models.Series, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.series[seriesKey{playerID, statType}]
	if !ok {
		return models.Series{}, fmt.Errorf("player %s %s: %w", playerID, statType, models.ErrNotFound)
	}
	return s.Before(s.Len()), nil
}

// Context returns the stored context of a game
func (m *MemoryStore) Context(_ context.Context, playerID, gameID string) (models.GameContext, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.contexts[contextKey{playerID, gameID}]
	if !ok {
		return models.GameContext{}, fmt.Errorf("context for %s/%s: %w", playerID, gameID, models.ErrNotFound)
	}
	return g, nil
}

// Odds returns the stored prices of a line
func (m *MemoryStore) Odds(_ context.Context, playerID string, statType models.StatType, line float64) (models.Odds, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.odds[seriesKey{playerID, statType}] {
		if o.Line == line {
			return o, nil
		}
	}
	return models.Odds{}, fmt.Errorf("odds for %s %s %.1f: %w", playerID, statType, line, models.ErrNotFound)
}

// Players lists the stored player and stat pairs
func (m *MemoryStore) Players() map[string][]models.StatType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]models.StatType)
	for k := range m.series {
		out[k.playerID] = append(out[k.playerID], k.statType)
	}
	return out
}
