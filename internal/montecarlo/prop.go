package montecarlo

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/clever-props/internal/betting"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

const standardJuice = -110

// PropSpec is one simulated prop market. Zero odds mean the standard -110.
// Side is the side a portfolio bets; empty means over.
type PropSpec struct {
	Name      string        `json:"name" mapstructure:"name"`
	Family    Family        `json:"family" mapstructure:"family"`
	Params    Params        `json:"params" mapstructure:"params"`
	Line      float64       `json:"line" mapstructure:"line"`
	OverOdds  int           `json:"over_odds" mapstructure:"over_odds"`
	UnderOdds int           `json:"under_odds" mapstructure:"under_odds"`
	Side      models.Action `json:"side,omitempty" mapstructure:"side"`
	Round     bool          `json:"round" mapstructure:"round"`
}

// PropResult is the outcome of SimulateProp.
type PropResult struct {
	RunID            uuid.UUID `json:"run_id"`
	Name             string    `json:"name"`
	Line             float64   `json:"line"`
	Iterations       int       `json:"iterations"`
	OverCount        int       `json:"over_count"`
	UnderCount       int       `json:"under_count"`
	PushCount        int       `json:"push_count"`
	OverProbability  float64   `json:"over_probability"`
	UnderProbability float64   `json:"under_probability"`
	PushProbability  float64   `json:"push_probability"`
	OverEV           float64   `json:"over_ev"`
	UnderEV          float64   `json:"under_ev"`
	Summary          Summary   `json:"summary"`
}

type resolvedProp struct {
	spec     PropSpec
	overDec  float64
	underDec float64
}

func resolveProp(p PropSpec) (resolvedProp, error) {
	if p.OverOdds == 0 {
		p.OverOdds = standardJuice
	}
	if p.UnderOdds == 0 {
		p.UnderOdds = standardJuice
	}
	if p.Side == "" {
		p.Side = models.ActionOver
	}
	if err := p.Family.Validate(p.Params); err != nil {
		return resolvedProp{}, err
	}
	overDec, err := betting.AmericanToDecimal(p.OverOdds)
	if err != nil {
		return resolvedProp{}, err
	}
	underDec, err := betting.AmericanToDecimal(p.UnderOdds)
	if err != nil {
		return resolvedProp{}, err
	}
	return resolvedProp{spec: p, overDec: overDec, underDec: underDec}, nil
}

// outcome is +1 over, -1 under, 0 push.
func (rp resolvedProp) outcome(v float64) int {
	switch {
	case v > rp.spec.Line:
		return 1
	case v < rp.spec.Line:
		return -1
	default:
		return 0
	}
}

// SimulateProp resolves a prop line many times and prices both sides. A push
// returns the stake.
func (s *Simulator) SimulateProp(ctx context.Context, prop PropSpec, iterations int, seed int64) (*PropResult, error) {
	r := s.begin("prop", iterations, seed)
	rp, err := resolveProp(prop)
	if err != nil {
		return nil, s.fail(r, err)
	}

	samples := make([]float64, r.iterations)
	var over, under, push int
	for i := 0; i < r.iterations; i++ {
		if err := checkContext(ctx, i); err != nil {
			return nil, s.fail(r, err)
		}
		v := roundTo(r.gen.Draw(rp.spec.Family, rp.spec.Params), rp.spec.Round)
		samples[i] = v
		switch rp.outcome(v) {
		case 1:
			over++
		case -1:
			under++
		default:
			push++
		}
	}

	n := float64(r.iterations)
	pOver, pUnder, pPush := float64(over)/n, float64(under)/n, float64(push)/n
	result := &PropResult{
		RunID:            r.id,
		Name:             rp.spec.Name,
		Line:             rp.spec.Line,
		Iterations:       r.iterations,
		OverCount:        over,
		UnderCount:       under,
		PushCount:        push,
		OverProbability:  stats.RoundProbability(pOver),
		UnderProbability: stats.RoundProbability(pUnder),
		PushProbability:  stats.RoundProbability(pPush),
		OverEV:           stats.RoundProbability(pOver*(rp.overDec-1) - pUnder),
		UnderEV:          stats.RoundProbability(pUnder*(rp.underDec-1) - pOver),
		Summary:          Summarize(samples),
	}
	s.done(r, samples)
	return result, nil
}
