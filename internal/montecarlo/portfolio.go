package montecarlo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

// PortfolioConfig configures a bankroll simulation across props.
type PortfolioConfig struct {
	Trials          int     `mapstructure:"trials" json:"trials"`
	Seed            int64   `mapstructure:"seed" json:"seed"`
	InitialBankroll float64 `mapstructure:"initial_bankroll" json:"initial_bankroll"`
	StakeFraction   float64 `mapstructure:"stake_fraction" json:"stake_fraction"`
	// RuinLevel is the fraction of the initial bankroll at or below which a
	// trial counts as ruined and stops betting.
	RuinLevel float64 `mapstructure:"ruin_level" json:"ruin_level"`
}

// DefaultPortfolioConfig returns a 1000-unit bankroll staking 2% per prop.
func DefaultPortfolioConfig() PortfolioConfig {
	return PortfolioConfig{
		InitialBankroll: 1000,
		StakeFraction:   0.02,
		RuinLevel:       0.5,
	}
}

// PortfolioResult is the outcome of SimulatePortfolio. ROI values are
// fractions of the initial bankroll.
type PortfolioResult struct {
	RunID               uuid.UUID                 `json:"run_id"`
	Trials              int                       `json:"trials"`
	Props               int                       `json:"props"`
	MeanROI             float64                   `json:"mean_roi"`
	StdROI              float64                   `json:"std_roi"`
	MedianROI           float64                   `json:"median_roi"`
	VaR95               float64                   `json:"var_95"`
	VaR99               float64                   `json:"var_99"`
	ProbabilityOfProfit float64                   `json:"probability_of_profit"`
	ProbabilityOfRuin   float64                   `json:"probability_of_ruin"`
	ROIIntervals        map[string]stats.Interval `json:"roi_intervals"`
	MaxDrawdown         Summary                   `json:"max_drawdown"`
	ROI                 []float64                 `json:"-"`
}

func (c PortfolioConfig) withDefaults() PortfolioConfig {
	d := DefaultPortfolioConfig()
	if c.InitialBankroll <= 0 {
		c.InitialBankroll = d.InitialBankroll
	}
	if c.StakeFraction <= 0 {
		c.StakeFraction = d.StakeFraction
	}
	if c.RuinLevel <= 0 {
		c.RuinLevel = d.RuinLevel
	}
	return c
}

// SimulatePortfolio bets every prop in order on each trial, staking a fixed
// fraction of the running bankroll.
func (s *Simulator) SimulatePortfolio(ctx context.Context, props []PropSpec, cfg PortfolioConfig) (*PortfolioResult, error) {
	cfg = cfg.withDefaults()
	r := s.begin("portfolio", cfg.Trials, cfg.Seed)
	if len(props) == 0 {
		return nil, s.fail(r, fmt.Errorf("%w: portfolio has no props", models.ErrInvalidInput))
	}
	if cfg.StakeFraction > 1 || cfg.RuinLevel >= 1 {
		return nil, s.fail(r, fmt.Errorf("%w: stake_fraction must be <= 1 and ruin_level < 1", models.ErrInvalidInput))
	}

	resolved := make([]resolvedProp, len(props))
	for i, p := range props {
		rp, err := resolveProp(p)
		if err != nil {
			return nil, s.fail(r, fmt.Errorf("prop %d (%s): %w", i, p.Name, err))
		}
		if rp.spec.Side != models.ActionOver && rp.spec.Side != models.ActionUnder {
			return nil, s.fail(r, fmt.Errorf("%w: prop %d side %q", models.ErrInvalidInput, i, rp.spec.Side))
		}
		resolved[i] = rp
	}

	roi := make([]float64, r.iterations)
	drawdowns := make([]float64, r.iterations)
	ruinThreshold := cfg.InitialBankroll * cfg.RuinLevel
	ruined := 0

	for i := 0; i < r.iterations; i++ {
		if err := checkContext(ctx, i); err != nil {
			return nil, s.fail(r, err)
		}
		bankroll := cfg.InitialBankroll
		peak := bankroll
		maxDrawdown := 0.0
		for _, rp := range resolved {
			stake := bankroll * cfg.StakeFraction
			v := roundTo(r.gen.Draw(rp.spec.Family, rp.spec.Params), rp.spec.Round)
			bankroll += settle(rp, v, stake)
			if bankroll > peak {
				peak = bankroll
			}
			if dd := (peak - bankroll) / peak; dd > maxDrawdown {
				maxDrawdown = dd
			}
			if bankroll <= ruinThreshold {
				ruined++
				break
			}
		}
		roi[i] = (bankroll - cfg.InitialBankroll) / cfg.InitialBankroll
		drawdowns[i] = maxDrawdown
	}

	n := float64(r.iterations)
	tails := stats.Percentiles(roi, []float64{5, 1})
	result := &PortfolioResult{
		RunID:               r.id,
		Trials:              r.iterations,
		Props:               len(resolved),
		MeanROI:             stats.Mean(roi),
		StdROI:              stats.StdDev(roi),
		MedianROI:           stats.Median(roi),
		VaR95:               tails[0],
		VaR99:               tails[1],
		ProbabilityOfProfit: stats.RoundProbability(probabilityAbove(roi, 0)),
		ProbabilityOfRuin:   stats.RoundProbability(float64(ruined) / n),
		ROIIntervals:        CalculateConfidenceIntervals(roi, DefaultLevels),
		MaxDrawdown:         Summarize(drawdowns),
		ROI:                 roi,
	}

	s.done(r, roi)
	s.log.LogPortfolio(r.id.String(), len(resolved), r.iterations,
		result.MeanROI, result.ProbabilityOfProfit, result.ProbabilityOfRuin)
	return result, nil
}

func settle(rp resolvedProp, v, stake float64) float64 {
	outcome := rp.outcome(v)
	if outcome == 0 {
		return 0
	}
	if rp.spec.Side == models.ActionOver {
		if outcome > 0 {
			return stake * (rp.overDec - 1)
		}
		return -stake
	}
	if outcome < 0 {
		return stake * (rp.underDec - 1)
	}
	return -stake
}
