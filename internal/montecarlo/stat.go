package montecarlo

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/clever-props/internal/stats"
)

// StatConfig describes a single-variable simulation.
type StatConfig struct {
	Family     Family   `json:"family"`
	Params     Params   `json:"params"`
	Iterations int      `json:"iterations"`
	Seed       int64    `json:"seed"`
	Min        *float64 `json:"min,omitempty"`
	Max        *float64 `json:"max,omitempty"`
	Round      bool     `json:"round"`
	Line       *float64 `json:"line,omitempty"`
}

// StatResult is the outcome of SimulateStat.
type StatResult struct {
	RunID               uuid.UUID                 `json:"run_id"`
	Family              Family                    `json:"family"`
	Iterations          int                       `json:"iterations"`
	Seed                int64                     `json:"seed"`
	Summary             Summary                   `json:"summary"`
	ConfidenceIntervals map[string]stats.Interval `json:"confidence_intervals"`
	Percentiles         map[string]float64        `json:"percentiles"`
	OverProbability     *float64                  `json:"over_probability,omitempty"`
	Clamped             int                       `json:"clamped"`
	Samples             []float64                 `json:"-"`
}

// SimulateStat draws the configured distribution. Min/Max clamps and
// rounding are applied after each draw.
func (s *Simulator) SimulateStat(ctx context.Context, cfg StatConfig) (*StatResult, error) {
	r := s.begin("stat", cfg.Iterations, cfg.Seed)
	if err := cfg.Family.Validate(cfg.Params); err != nil {
		return nil, s.fail(r, err)
	}

	samples := make([]float64, r.iterations)
	clamped := 0
	for i := 0; i < r.iterations; i++ {
		if err := checkContext(ctx, i); err != nil {
			return nil, s.fail(r, err)
		}
		v := roundTo(r.gen.Draw(cfg.Family, cfg.Params), cfg.Round)
		v, wasClamped := clampValue(v, cfg.Min, cfg.Max)
		if wasClamped {
			clamped++
		}
		samples[i] = v
	}

	result := &StatResult{
		RunID:               r.id,
		Family:              cfg.Family,
		Iterations:          r.iterations,
		Seed:                r.seed,
		Summary:             Summarize(samples),
		ConfidenceIntervals: CalculateConfidenceIntervals(samples, DefaultLevels),
		Percentiles:         PercentileTable(samples, DefaultPercentiles),
		Clamped:             clamped,
		Samples:             samples,
	}
	if cfg.Line != nil {
		p := stats.RoundProbability(probabilityAbove(samples, *cfg.Line))
		result.OverProbability = &p
	}

	s.done(r, samples)
	return result, nil
}
