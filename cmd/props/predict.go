package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/clever-props/internal/cache"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/prediction"
)

func newPredictCmd() *cobra.Command {
	var (
		playerID  string
		gameID    string
		statName  string
		oddsRaw   string
		batchFile string
		recommend bool
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a player's stat line for an upcoming game",
		Example: `  props predict --data dataset.json --player 237 --game g026 --stat points --line 24.5
  props predict --data dataset.json --player 237 --game g026 --stat points --line 24.5 --recommend --odds -115/-105
  props predict --data dataset.json --batch requests.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			if batchFile != "" {
				return runBatch(cmd, engine, batchFile)
			}

			statType, err := parseStat(statName)
			if err != nil {
				return err
			}
			line, err := optionalFloat(cmd, "line")
			if err != nil {
				return err
			}
			req := prediction.Request{PlayerID: playerID, GameID: gameID, StatType: statType, Line: line}

			if recommend {
				if line == nil {
					return fmt.Errorf("--line is required with --recommend")
				}
				odds, err := parseOdds(oddsRaw, *line)
				if err != nil {
					return err
				}
				result, err := engine.Recommend(cmd.Context(), req, odds)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), result)
			}

			var predictor cache.Predictor = engine
			if cfg.Cache.Enabled {
				cached, err := cache.NewCachedEngine(engine, cfg.Cache, Version, appLogger)
				if err != nil {
					return err
				}
				predictor = cached
			}
			result, err := predictor.Predict(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&playerID, "player", "p", "", "Player ID")
	cmd.Flags().StringVarP(&gameID, "game", "g", "", "Upcoming game ID")
	cmd.Flags().StringVarP(&statName, "stat", "s", string(models.StatPoints), "Stat type")
	cmd.Flags().Float64P("line", "l", 0, "Prop line")
	cmd.Flags().StringVar(&oddsRaw, "odds", "", "Over/under American odds, e.g. -115/-105")
	cmd.Flags().BoolVar(&recommend, "recommend", false, "Price the prop and print a betting recommendation")
	cmd.Flags().StringVar(&batchFile, "batch", "", "JSON file holding an array of prediction requests")
	cmd.MarkFlagsMutuallyExclusive("batch", "player")
	cmd.MarkFlagsOneRequired("batch", "player")
	return cmd
}

func runBatch(cmd *cobra.Command, engine *prediction.Engine, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}
	var reqs []prediction.Request
	if err := json.Unmarshal(data, &reqs); err != nil {
		return fmt.Errorf("failed to parse batch file: %w", err)
	}

	return writeJSON(cmd.OutOrStdout(), engine.PredictBatch(cmd.Context(), reqs))
}
