package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevelAndFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New("debug", "production", buf)

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	dev := New("not-a-level", "development", buf)
	assert.Equal(t, logrus.InfoLevel, dev.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)
}

func TestOrDefault(t *testing.T) {
	assert.NotNil(t, OrDefault(nil))

	log, _ := setupTestLogger()
	assert.Same(t, log, OrDefault(log))
}

func TestPredictionLoggerPrediction(t *testing.T) {
	log, buf := setupTestLogger()
	predictionLogger := NewPredictionLogger(log)

	predictionLogger.LogPrediction("player_1", "game_9", "rebounds", "poisson", 7.4, 0.81, 5, 1.2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "prediction", logEntry["component"])
	assert.Equal(t, "player_1", logEntry["player_id"])
	assert.Equal(t, "poisson", logEntry["distribution"])
	assert.Equal(t, "Prediction completed", logEntry["msg"])
}

func TestPredictionLoggerError(t *testing.T) {
	log, buf := setupTestLogger()
	NewPredictionLogger(log).LogPredictionError("player_1", "game_9", "points", errors.New("provider down"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "error", logEntry["level"])
	assert.Equal(t, "provider down", logEntry["error"])
}

func TestSimulationLogger(t *testing.T) {
	log, buf := setupTestLogger()
	NewSimulationLogger(log).LogSimulation("run-1", "prop", 10000, 42, 24.1, 5.2, 3.4)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "simulation", logEntry["component"])
	assert.Equal(t, "prop", logEntry["kind"])
	assert.Equal(t, float64(10000), logEntry["iterations"])
}

func TestValidationLogger(t *testing.T) {
	log, buf := setupTestLogger()
	NewValidationLogger(log).LogBacktest("player_1", "assists", 60, 22, 0.59, 0.07, 12)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "validation", logEntry["component"])
	assert.Equal(t, float64(22), logEntry["picks"])
}
