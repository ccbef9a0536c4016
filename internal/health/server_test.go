package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-props/internal/logger"
	"github.com/yourusername/clever-props/internal/metrics"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

// TestHealthEndpoints tests liveness and version reporting
func TestHealthEndpoints(t *testing.T) {
	s := NewServer(Config{ServiceName: "props", Version: "1.2.0", Port: "0", Logger: logger.Discard()})
	rec := get(t, s.Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "1.2.0", body.Version)

	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/live").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/metrics").Code)
}

// TestReadyEndpoint tests readiness checks
func TestReadyEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		ready  bool
		db     DatabasePinger
		check  error
		status int
	}{
		{"not marked ready", false, nil, nil, http.StatusServiceUnavailable},
		{"ready", true, fakePinger{}, nil, http.StatusOK},
		{"database down", true, fakePinger{err: errors.New("refused")}, nil, http.StatusServiceUnavailable},
		{"scheduler stopped", true, nil, errors.New("not running"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErr := tt.check
			s := NewServer(Config{
				ServiceName: "props",
				Port:        "0",
				DB:          tt.db,
				Checks:      map[string]Check{"scheduler": func(context.Context) error { return checkErr }},
			})
			s.SetReady(tt.ready)
			rec := get(t, s.Handler(), "/ready")
			assert.Equal(t, tt.status, rec.Code)

			var body ReadyResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Checks, "scheduler")
		})
	}
}

// TestMetricsEndpoint tests mounting the Prometheus handler
func TestMetricsEndpoint(t *testing.T) {
	metrics.RecordRecommendation("over")
	s := NewServer(Config{Port: "0", Metrics: metrics.Handler(), MetricsPath: "/prom"})
	rec := get(t, s.Handler(), "/prom")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clever_props_recommendations_total")
}
