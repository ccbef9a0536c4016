package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-props/internal/models"
)

const datasetPath = "../../internal/repository/testdata/dataset.json"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "--data", datasetPath, "--log-level", "error"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// TestParseOdds tests the over/under odds flag format
func TestParseOdds(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *models.Odds
		wantErr bool
	}{
		{name: "empty", raw: "", want: nil},
		{name: "both negative", raw: "-115/-105", want: &models.Odds{Line: 24.5, Over: -115, Under: -105}},
		{name: "plus money", raw: "120/-140", want: &models.Odds{Line: 24.5, Over: 120, Under: -140}},
		{name: "missing side", raw: "-110/", wantErr: true},
		{name: "no separator", raw: "-110", wantErr: true},
		{name: "not a number", raw: "even/-110", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOdds(tt.raw, 24.5)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestLoadValidationInput tests reading a validation file
func TestLoadValidationInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"predictions":[1,2],"actuals":[1.5,2.5],"probabilities":[0.6,0.4],"lines":[1.5,2.5]}`), 0o644))

	in, err := loadValidationInput(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, in.Predictions)
	assert.Equal(t, []float64{1.5, 2.5}, in.Actuals)
	assert.Equal(t, []float64{0.6, 0.4}, in.Probabilities)

	_, err = loadValidationInput(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

// TestBuildFitReport tests the fit report sections
func TestBuildFitReport(t *testing.T) {
	series := models.Series{
		PlayerID: "237",
		StatType: models.StatRebounds,
		Values:   []float64{6, 8, 5, 7, 9, 6, 7, 8, 5, 10, 7, 6, 8, 9, 7},
		Minutes:  []float64{30, 34, 28, 32, 36, 31, 33, 34, 27, 38, 32, 30, 35, 36, 32},
	}

	report := buildFitReport(models.StatRebounds, series)
	assert.Equal(t, "237", report.PlayerID)
	assert.NotEmpty(t, report.Candidates)
	require.NotNil(t, report.Evidence)
	assert.NotEmpty(t, report.Evidence.Best)
	require.NotNil(t, report.PoissonFit, "integer data gets a Poisson goodness-of-fit")
	assert.True(t, report.Trend.Ok())
	require.NotNil(t, report.PerMinute)
	assert.Greater(t, report.PerMinute.Coefficients[0], 0.0)
}

// TestPredictCommand tests a single prediction from the dataset
func TestPredictCommand(t *testing.T) {
	out, err := execute(t, "predict", "--player", "237", "--game", "g026", "--stat", "points", "--line", "24.5")
	require.NoError(t, err)

	var result models.PredictionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Equal(t, "237", result.PlayerID)
	assert.InDelta(t, 1.0, result.OverProbability+result.UnderProbability, 1e-9)
}

// TestFitAndValidateCommands tests the report commands end to end
func TestFitAndValidateCommands(t *testing.T) {
	out, err := execute(t, "fit", "--player", "237", "--stat", "rebounds")
	require.NoError(t, err)
	var report fitReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, models.StatRebounds, report.StatType)

	predictions := make([]string, 25)
	actuals := make([]string, 25)
	for i := range predictions {
		predictions[i] = fmt.Sprint(20 + i%3)
		actuals[i] = fmt.Sprint(21 + i%4)
	}
	path := filepath.Join(t.TempDir(), "results.json")
	body := fmt.Sprintf(`{"predictions":[%s],"actuals":[%s]}`, strings.Join(predictions, ","), strings.Join(actuals, ","))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	out, err = execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Validation Report")
	assert.Contains(t, out, "Status: success")
}

// TestBacktestCommand tests both backtest modes and the exports
func TestBacktestCommand(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "points.json")
	csvPath := filepath.Join(dir, "points.csv")

	out, err := execute(t, "backtest", "--player", "237", "--stat", "points", "--mode", "all",
		"--output", jsonPath, "--csv", csvPath, "--test-size", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Backtest Report")
	assert.Contains(t, out, "Walk-Forward Report")

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Contains(t, payload, modeHistorical)
	assert.Contains(t, payload, modeWalkForward)

	_, err = os.Stat(csvPath)
	assert.NoError(t, err)

	_, err = execute(t, "backtest", "--player", "237", "--mode", "monte-carlo")
	assert.Error(t, err)
}
