package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/clever-props/internal/models"
)

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// optionalFloat returns the flag value only when the user set it.
func optionalFloat(cmd *cobra.Command, name string) (*float64, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseStat(raw string) (models.StatType, error) {
	st, err := models.ParseStatType(raw)
	if err != nil {
		return "", fmt.Errorf("invalid --stat: %w", err)
	}
	return st, nil
}

// parseOdds reads an "over/under" pair such as "-115/-105".
func parseOdds(raw string, line float64) (*models.Odds, error) {
	if raw == "" {
		return nil, nil
	}
	over, under, ok := strings.Cut(raw, "/")
	if !ok || over == "" || under == "" {
		return nil, fmt.Errorf("%w: odds %q must look like -110/-110", models.ErrInvalidInput, raw)
	}
	o, err := strconv.Atoi(over)
	if err != nil {
		return nil, fmt.Errorf("%w: over odds %q: %v", models.ErrInvalidInput, over, err)
	}
	u, err := strconv.Atoi(under)
	if err != nil {
		return nil, fmt.Errorf("%w: under odds %q: %v", models.ErrInvalidInput, under, err)
	}
	return &models.Odds{Line: line, Over: o, Under: u}, nil
}
