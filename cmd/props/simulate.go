package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yourusername/clever-props/internal/distribution"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/montecarlo"
	"github.com/yourusername/clever-props/internal/stats"
)

func newSimulator() *montecarlo.Simulator {
	return montecarlo.NewSimulator(montecarlo.Settings{
		DefaultIterations: cfg.Simulation.DefaultIterations,
		MaxIterations:     cfg.Simulation.MaxIterations,
		Seed:              cfg.Simulation.Seed,
	}, appLogger)
}

// fitHistory loads a player's history and fits the family chosen for the stat.
func fitHistory(ctx context.Context, playerID, statName string) (models.Series, models.Descriptor, error) {
	statType, err := parseStat(statName)
	if err != nil {
		return models.Series{}, models.Descriptor{}, err
	}
	series, err := store.History(ctx, playerID, statType)
	if err != nil {
		return models.Series{}, models.Descriptor{}, fmt.Errorf("failed to load history for %s: %w", playerID, err)
	}
	if series.Len() < 2 {
		return series, models.Descriptor{}, fmt.Errorf("%w: player %s has %d %s games", models.ErrInsufficientData, playerID, series.Len(), statType)
	}
	return series, distribution.Fit(statType, series.Values), nil
}

func addParamFlags(flags *pflag.FlagSet, p *montecarlo.Params) {
	flags.Float64Var(&p.Mean, "mean", 0, "Mean (normal, lognormal)")
	flags.Float64Var(&p.StdDev, "std-dev", 0, "Standard deviation (normal, lognormal)")
	flags.Float64Var(&p.Lambda, "lambda", 0, "Rate (poisson)")
	flags.IntVar(&p.N, "n", 0, "Trials (binomial)")
	flags.Float64Var(&p.P, "p", 0, "Success probability (binomial)")
	flags.Float64Var(&p.Shape, "shape", 0, "Shape (gamma)")
	flags.Float64Var(&p.Scale, "scale", 0, "Scale (gamma)")
	flags.Float64Var(&p.Alpha, "alpha", 0, "Alpha (beta)")
	flags.Float64Var(&p.Beta, "beta", 0, "Beta (beta)")
}

func newSimulateCmd() *cobra.Command {
	var (
		iterations int
		seed       int64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run Monte Carlo simulations",
	}
	cmd.PersistentFlags().IntVar(&iterations, "iterations", 0, "Iterations (0 uses the configured default)")
	cmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed (0 uses the configured seed)")

	cmd.AddCommand(
		newSimulateStatCmd(&iterations, &seed),
		newSimulatePropCmd(&iterations, &seed),
		newSimulateGameCmd(&iterations, &seed),
		newSimulatePortfolioCmd(&seed),
		newSimulateSeasonCmd(&iterations, &seed),
	)
	return cmd
}

func newSimulateStatCmd(iterations *int, seed *int64) *cobra.Command {
	var (
		family string
		params montecarlo.Params
		round  bool
	)
	cmd := &cobra.Command{
		Use:     "stat",
		Short:   "Simulate a single distribution",
		Example: `  props simulate stat --family normal --mean 20 --std-dev 5 --line 22.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := optionalFloat(cmd, "line")
			if err != nil {
				return err
			}
			lo, err := optionalFloat(cmd, "min")
			if err != nil {
				return err
			}
			hi, err := optionalFloat(cmd, "max")
			if err != nil {
				return err
			}
			result, err := newSimulator().SimulateStat(cmd.Context(), montecarlo.StatConfig{
				Family:     montecarlo.Family(family),
				Params:     params,
				Iterations: *iterations,
				Seed:       *seed,
				Min:        lo,
				Max:        hi,
				Round:      round,
				Line:       line,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&family, "family", string(montecarlo.FamilyNormal), "Distribution family")
	addParamFlags(cmd.Flags(), &params)
	cmd.Flags().Float64("line", 0, "Report P(X > line)")
	cmd.Flags().Float64("min", 0, "Clamp draws below this value")
	cmd.Flags().Float64("max", 0, "Clamp draws above this value")
	cmd.Flags().BoolVar(&round, "round", false, "Round each draw to an integer")
	return cmd
}

func newSimulatePropCmd(iterations *int, seed *int64) *cobra.Command {
	var (
		playerID string
		statName string
		line     float64
		oddsRaw  string
	)
	cmd := &cobra.Command{
		Use:     "prop",
		Short:   "Simulate a prop line from a player's fitted history",
		Example: `  props simulate prop --data dataset.json --player 237 --stat points --line 24.5 --odds -115/-105`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, desc, err := fitHistory(cmd.Context(), playerID, statName)
			if err != nil {
				return err
			}
			family, params := montecarlo.FromDescriptor(desc)
			spec := montecarlo.PropSpec{
				Name:   fmt.Sprintf("%s %s %.1f", playerID, statName, line),
				Family: family,
				Params: params,
				Line:   line,
				Round:  family.IsDiscrete(),
			}
			odds, err := parseOdds(oddsRaw, line)
			if err != nil {
				return err
			}
			if odds != nil {
				spec.OverOdds, spec.UnderOdds = odds.Over, odds.Under
			}
			result, err := newSimulator().SimulateProp(cmd.Context(), spec, *iterations, *seed)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&playerID, "player", "p", "", "Player ID")
	cmd.Flags().StringVarP(&statName, "stat", "s", string(models.StatPoints), "Stat type")
	cmd.Flags().Float64VarP(&line, "line", "l", 0, "Prop line")
	cmd.Flags().StringVar(&oddsRaw, "odds", "", "Over/under American odds, e.g. -115/-105")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("line")
	return cmd
}

func newSimulateGameCmd(iterations *int, seed *int64) *cobra.Command {
	var home, away montecarlo.TeamParams
	cmd := &cobra.Command{
		Use:     "game",
		Short:   "Simulate a game between two teams",
		Example: `  props simulate game --home-mean 112 --home-std-dev 11 --away-mean 108 --away-std-dev 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newSimulator().SimulateGame(cmd.Context(), home, away, *iterations, *seed)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&home.Name, "home", "home", "Home team name")
	cmd.Flags().Float64Var(&home.MeanScore, "home-mean", 110, "Home team mean score")
	cmd.Flags().Float64Var(&home.StdDev, "home-std-dev", 12, "Home team score standard deviation")
	cmd.Flags().StringVar(&away.Name, "away", "away", "Away team name")
	cmd.Flags().Float64Var(&away.MeanScore, "away-mean", 110, "Away team mean score")
	cmd.Flags().Float64Var(&away.StdDev, "away-std-dev", 12, "Away team score standard deviation")
	return cmd
}

func newSimulatePortfolioCmd(seed *int64) *cobra.Command {
	var (
		propsFile string
		pc        = montecarlo.DefaultPortfolioConfig()
	)
	cmd := &cobra.Command{
		Use:     "portfolio",
		Short:   "Simulate bankroll outcomes for a set of props",
		Example: `  props simulate portfolio --props props.json --trials 5000 --stake-fraction 0.02`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(propsFile)
			if err != nil {
				return fmt.Errorf("failed to read props file: %w", err)
			}
			var props []montecarlo.PropSpec
			if err := json.Unmarshal(data, &props); err != nil {
				return fmt.Errorf("failed to parse props file: %w", err)
			}
			pc.Seed = *seed
			result, err := newSimulator().SimulatePortfolio(cmd.Context(), props, pc)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&propsFile, "props", "", "JSON file holding an array of props")
	cmd.Flags().IntVar(&pc.Trials, "trials", 0, "Trials (0 uses the configured default)")
	cmd.Flags().Float64Var(&pc.InitialBankroll, "bankroll", pc.InitialBankroll, "Initial bankroll")
	cmd.Flags().Float64Var(&pc.StakeFraction, "stake-fraction", pc.StakeFraction, "Fraction of the current bankroll staked per prop")
	cmd.Flags().Float64Var(&pc.RuinLevel, "ruin-level", pc.RuinLevel, "Bankroll fraction treated as ruin")
	_ = cmd.MarkFlagRequired("props")
	return cmd
}

func newSimulateSeasonCmd(iterations *int, seed *int64) *cobra.Command {
	var (
		playerID  string
		statName  string
		remaining int
	)
	cmd := &cobra.Command{
		Use:     "season",
		Short:   "Project a player's season total",
		Example: `  props simulate season --data dataset.json --player 237 --stat points --remaining 57 --target 1800`,
		RunE: func(cmd *cobra.Command, args []string) error {
			series, desc, err := fitHistory(cmd.Context(), playerID, statName)
			if err != nil {
				return err
			}
			target, err := optionalFloat(cmd, "target")
			if err != nil {
				return err
			}
			family, params := montecarlo.FromDescriptor(desc)
			result, err := newSimulator().SimulateSeason(cmd.Context(), montecarlo.SeasonConfig{
				Family:         family,
				Params:         params,
				RemainingGames: remaining,
				CurrentTotal:   stats.Sum(series.Values),
				Target:         target,
				Iterations:     *iterations,
				Seed:           *seed,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&playerID, "player", "p", "", "Player ID")
	cmd.Flags().StringVarP(&statName, "stat", "s", string(models.StatPoints), "Stat type")
	cmd.Flags().IntVar(&remaining, "remaining", 0, "Games left to play")
	cmd.Flags().Float64("target", 0, "Report P(total >= target)")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("remaining")
	return cmd
}
