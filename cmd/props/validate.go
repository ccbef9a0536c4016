package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/clever-props/internal/validation"
)

// validationFile is the on-disk form of validation.Input.
type validationFile struct {
	Predictions   []float64 `json:"predictions"`
	Actuals       []float64 `json:"actuals"`
	Probabilities []float64 `json:"probabilities,omitempty"`
	Lines         []float64 `json:"lines,omitempty"`
}

func loadValidationInput(path string) (validation.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return validation.Input{}, fmt.Errorf("failed to read validation file: %w", err)
	}
	var f validationFile
	if err := json.Unmarshal(data, &f); err != nil {
		return validation.Input{}, fmt.Errorf("failed to parse validation file: %w", err)
	}
	return validation.Input{
		Predictions:   f.Predictions,
		Actuals:       f.Actuals,
		Probabilities: f.Probabilities,
		Lines:         f.Lines,
	}, nil
}

func newValidateCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "validate <file>",
		Short:   "Score past predictions against realized values",
		Example: `  props validate results.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadValidationInput(args[0])
			if err != nil {
				return err
			}
			report, err := validation.ValidateWithConfig(in, validation.FromConfig(cfg))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprint(cmd.OutOrStdout(), validation.GenerateConsoleReport(report))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}
