package montecarlo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

// SeasonConfig projects a season total from the games still to play.
type SeasonConfig struct {
	Family         Family   `json:"family"`
	Params         Params   `json:"params"`
	RemainingGames int      `json:"remaining_games"`
	CurrentTotal   float64  `json:"current_total"`
	Target         *float64 `json:"target,omitempty"`
	Iterations     int      `json:"iterations"`
	Seed           int64    `json:"seed"`
	// SeasonFactor scales the per-game parameters for game index i
	// (0-based). Nil means every game uses Params unchanged.
	SeasonFactor func(gameIndex int) float64 `json:"-"`
}

// SeasonResult is the outcome of SimulateSeason.
type SeasonResult struct {
	RunID               uuid.UUID                 `json:"run_id"`
	Iterations          int                       `json:"iterations"`
	RemainingGames      int                       `json:"remaining_games"`
	CurrentTotal        float64                   `json:"current_total"`
	Summary             Summary                   `json:"summary"`
	ConfidenceIntervals map[string]stats.Interval `json:"confidence_intervals"`
	Percentiles         map[string]float64        `json:"percentiles"`
	TargetProbability   *float64                  `json:"target_probability,omitempty"`
	Totals              []float64                 `json:"-"`
}

// SimulateSeason accumulates per-game draws on top of the current total.
func (s *Simulator) SimulateSeason(ctx context.Context, cfg SeasonConfig) (*SeasonResult, error) {
	r := s.begin("season", cfg.Iterations, cfg.Seed)
	if cfg.RemainingGames < 0 {
		return nil, s.fail(r, fmt.Errorf("%w: remaining_games %d", models.ErrInvalidInput, cfg.RemainingGames))
	}
	if err := cfg.Family.Validate(cfg.Params); err != nil {
		return nil, s.fail(r, err)
	}

	perGame := make([]Params, cfg.RemainingGames)
	for g := range perGame {
		perGame[g] = cfg.Params
		if cfg.SeasonFactor != nil {
			perGame[g] = ScaleParams(cfg.Family, cfg.Params, cfg.SeasonFactor(g))
		}
	}

	totals := make([]float64, r.iterations)
	for i := 0; i < r.iterations; i++ {
		if err := checkContext(ctx, i); err != nil {
			return nil, s.fail(r, err)
		}
		total := cfg.CurrentTotal
		for _, p := range perGame {
			total += r.gen.Draw(cfg.Family, p)
		}
		totals[i] = total
	}

	result := &SeasonResult{
		RunID:               r.id,
		Iterations:          r.iterations,
		RemainingGames:      cfg.RemainingGames,
		CurrentTotal:        cfg.CurrentTotal,
		Summary:             Summarize(totals),
		ConfidenceIntervals: CalculateConfidenceIntervals(totals, DefaultLevels),
		Percentiles:         PercentileTable(totals, DefaultPercentiles),
		Totals:              totals,
	}
	if cfg.Target != nil {
		p := stats.RoundProbability(1 - probabilityBelow(totals, *cfg.Target))
		result.TargetProbability = &p
	}
	s.done(r, totals)
	return result, nil
}
