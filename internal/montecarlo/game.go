package montecarlo

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

// TeamParams describes one side's scoring.
type TeamParams struct {
	Name      string  `json:"name"`
	MeanScore float64 `json:"mean_score"`
	StdDev    float64 `json:"std_dev"`
}

// GameResult is the outcome of SimulateGame.
type GameResult struct {
	RunID              uuid.UUID `json:"run_id"`
	Iterations         int       `json:"iterations"`
	Home               string    `json:"home"`
	Away               string    `json:"away"`
	HomeWinProbability float64   `json:"home_win_probability"`
	AwayWinProbability float64   `json:"away_win_probability"`
	TieProbability     float64   `json:"tie_probability"`
	HomeScore          Summary   `json:"home_score"`
	AwayScore          Summary   `json:"away_score"`
	Margin             Summary   `json:"margin"`
	Total              Summary   `json:"total"`
}

// SimulateGame draws two independent normal scores, rounded and floored
// at zero. Margin is home minus away.
func (s *Simulator) SimulateGame(ctx context.Context, home, away TeamParams, iterations int, seed int64) (*GameResult, error) {
	r := s.begin("game", iterations, seed)
	if home.MeanScore < 0 || away.MeanScore < 0 || home.StdDev < 0 || away.StdDev < 0 {
		return nil, s.fail(r, fmt.Errorf("%w: team scoring parameters must be non-negative", models.ErrInvalidInput))
	}

	homeScores := make([]float64, r.iterations)
	awayScores := make([]float64, r.iterations)
	margins := make([]float64, r.iterations)
	totals := make([]float64, r.iterations)
	var homeWins, awayWins, ties int

	for i := 0; i < r.iterations; i++ {
		if err := checkContext(ctx, i); err != nil {
			return nil, s.fail(r, err)
		}
		h := math.Max(0, math.Round(r.gen.Normal(home.MeanScore, home.StdDev)))
		a := math.Max(0, math.Round(r.gen.Normal(away.MeanScore, away.StdDev)))
		homeScores[i], awayScores[i] = h, a
		margins[i] = h - a
		totals[i] = h + a
		switch {
		case h > a:
			homeWins++
		case a > h:
			awayWins++
		default:
			ties++
		}
	}

	n := float64(r.iterations)
	result := &GameResult{
		RunID:              r.id,
		Iterations:         r.iterations,
		Home:               home.Name,
		Away:               away.Name,
		HomeWinProbability: stats.RoundProbability(float64(homeWins) / n),
		AwayWinProbability: stats.RoundProbability(float64(awayWins) / n),
		TieProbability:     stats.RoundProbability(float64(ties) / n),
		HomeScore:          Summarize(homeScores),
		AwayScore:          Summarize(awayScores),
		Margin:             Summarize(margins),
		Total:              Summarize(totals),
	}
	s.done(r, totals)
	return result, nil
}
