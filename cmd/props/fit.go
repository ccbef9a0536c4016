package main

import (
	"github.com/spf13/cobra"

	"github.com/yourusername/clever-props/internal/bayes"
	"github.com/yourusername/clever-props/internal/distribution"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/regression"
)

// fitReport describes how well each family explains a player's history.
type fitReport struct {
	PlayerID   string                      `json:"player_id"`
	StatType   models.StatType             `json:"stat_type"`
	Shape      distribution.Shape          `json:"shape"`
	Selected   models.Descriptor           `json:"selected"`
	Candidates []distribution.Candidate    `json:"candidates"`
	Evidence   *bayes.Comparison           `json:"evidence,omitempty"`
	PoissonFit *distribution.GoodnessOfFit `json:"poisson_fit,omitempty"`
	Trend      regression.Model            `json:"trend"`
	PerMinute  *regression.Model           `json:"per_minute,omitempty"`
}

func buildFitReport(statType models.StatType, series models.Series) fitReport {
	values := series.Values
	report := fitReport{
		PlayerID:   series.PlayerID,
		StatType:   statType,
		Shape:      distribution.AnalyzeShape(values),
		Selected:   distribution.Fit(statType, values),
		Candidates: distribution.Compare(values),
	}

	candidates := make([]bayes.ModelCandidate, 0, len(report.Candidates))
	for _, c := range report.Candidates {
		candidates = append(candidates, bayes.ModelCandidate{
			Name:          string(c.Family),
			LogLikelihood: c.LogLikelihood,
			Parameters:    c.Parameters,
		})
	}
	if comparison, err := bayes.CompareModels(candidates, len(values)); err == nil {
		report.Evidence = &comparison
	}

	if report.Shape.IntegerValued {
		gof := distribution.PoissonGoodnessOfFit(values)
		report.PoissonFit = &gof
	}

	index := make([]float64, len(values))
	for i := range index {
		index[i] = float64(i)
	}
	report.Trend = regression.Simple(index, values)
	if series.HasMinutes() {
		perMinute := regression.Simple(series.Minutes, values)
		report.PerMinute = &perMinute
	}
	return report
}

func newFitCmd() *cobra.Command {
	var (
		playerID string
		statName string
	)
	cmd := &cobra.Command{
		Use:     "fit",
		Short:   "Compare distribution fits and trends for a player's history",
		Example: `  props fit --data dataset.json --player 237 --stat rebounds`,
		RunE: func(cmd *cobra.Command, args []string) error {
			statType, err := parseStat(statName)
			if err != nil {
				return err
			}
			series, _, err := fitHistory(cmd.Context(), playerID, statName)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), buildFitReport(statType, series))
		},
	}
	cmd.Flags().StringVarP(&playerID, "player", "p", "", "Player ID")
	cmd.Flags().StringVarP(&statName, "stat", "s", string(models.StatPoints), "Stat type")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}
