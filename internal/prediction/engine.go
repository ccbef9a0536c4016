package prediction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-props/internal/betting"
	"github.com/yourusername/clever-props/internal/logger"
	"github.com/yourusername/clever-props/internal/metrics"
	"github.com/yourusername/clever-props/internal/models"
)

// Engine runs the prediction pipeline against its providers. It holds no
// per-call state and is safe for concurrent use.
type Engine struct {
	config Config
	deps   Dependencies
	logger *logrus.Logger
	log    *logger.PredictionLogger
}

// NewEngine creates a new prediction engine
func NewEngine(cfg Config, deps Dependencies, log *logrus.Logger) (*Engine, error) {
	if deps.Stats == nil {
		return nil, fmt.Errorf("stats provider is required")
	}
	log = logger.OrDefault(log)
	return &Engine{
		config: cfg.withDefaults(),
		deps:   deps,
		logger: log,
		log:    logger.NewPredictionLogger(log),
	}, nil
}

// Config returns the effective engine configuration
func (e *Engine) Config() Config {
	return e.config
}

// Logger returns the engine logger
func (e *Engine) Logger() *logrus.Logger {
	return e.logger
}

// Validate checks a request's identifiers, stat type, line and context.
func (r Request) Validate() error {
	if err := models.ValidateStruct(r); err != nil {
		return err
	}
	if !r.StatType.Valid() {
		return fmt.Errorf("%w: field stat_type has unknown value %q", models.ErrInvalidInput, r.StatType)
	}
	return nil
}

// Predict fetches the history and context for the request and runs the
// pipeline. Invalid requests and unknown identifiers return an error; a short
// history returns an empty result.
func (e *Engine) Predict(ctx context.Context, req Request) (*models.PredictionResult, error) {
	start := time.Now()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	series, err := e.deps.Stats.History(ctx, req.PlayerID, req.StatType)
	if err != nil {
		e.record(req.StatType, models.StatusError, start)
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: field player_id %q: %w", models.ErrInvalidInput, req.PlayerID, err)
		}
		return nil, fmt.Errorf("failed to load history for %s: %w", req.PlayerID, err)
	}

	gameCtx, err := e.gameContext(ctx, req)
	if err != nil {
		e.record(req.StatType, models.StatusError, start)
		return nil, err
	}

	result := e.run(req.PlayerID, req.GameID, req.StatType, series, gameCtx, req.Line, false)
	e.finish(result, start)
	return result, nil
}

// PredictSeries runs the pipeline on a caller-supplied series without any
// provider. It is the path used by backtests and the CLI.
func (e *Engine) PredictSeries(statType models.StatType, series models.Series, gameCtx models.GameContext, line *float64) *models.PredictionResult {
	start := time.Now()
	if !statType.Valid() {
		err := fmt.Errorf("%w: field stat_type has unknown value %q", models.ErrInvalidInput, statType)
		result := models.FailedPrediction(series.PlayerID, "", statType, err)
		e.finish(result, start)
		return result
	}
	if err := gameCtx.Validate(); err != nil {
		result := models.FailedPrediction(series.PlayerID, "", statType, err)
		e.finish(result, start)
		return result
	}
	result := e.run(series.PlayerID, "", statType, series, gameCtx, line, true)
	e.finish(result, start)
	return result
}

func (e *Engine) gameContext(ctx context.Context, req Request) (models.GameContext, error) {
	gameCtx := models.DefaultGameContext()
	switch {
	case req.Context != nil:
		gameCtx = *req.Context
	case e.deps.Contexts != nil:
		fetched, err := e.deps.Contexts.Context(ctx, req.PlayerID, req.GameID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return gameCtx, fmt.Errorf("%w: field game_id %q: %w", models.ErrInvalidInput, req.GameID, err)
			}
			return gameCtx, fmt.Errorf("failed to load game context for %s: %w", req.GameID, err)
		}
		gameCtx = fetched
	}
	if err := gameCtx.Validate(); err != nil {
		return gameCtx, fmt.Errorf("game context: %w", err)
	}
	return gameCtx, nil
}

func (e *Engine) record(statType models.StatType, status models.Status, start time.Time) {
	metrics.RecordPrediction(string(statType), string(status), time.Since(start).Seconds())
}

func (e *Engine) finish(result *models.PredictionResult, start time.Time) {
	elapsed := time.Since(start)
	e.record(result.StatType, result.Status, start)
	switch result.Status {
	case models.StatusSuccess:
		metrics.RecordConfidence(string(result.StatType), result.Confidence)
		e.log.LogPrediction(result.PlayerID, result.GameID, string(result.StatType),
			string(result.Distribution.Type), result.PredictedValue, result.Confidence,
			len(result.Adjustments), float64(elapsed.Microseconds())/1000)
	case models.StatusEmpty:
		e.log.LogEmptyPrediction(result.PlayerID, result.GameID, string(result.StatType),
			result.Error, result.DataQuality.SampleSize)
	default:
		e.log.LogPredictionError(result.PlayerID, result.GameID, string(result.StatType), errors.New(result.Error))
	}
}

// RecommendationResult pairs a prediction with its betting decision.
type RecommendationResult struct {
	Prediction     *models.PredictionResult `json:"prediction"`
	Odds           *models.Odds             `json:"odds,omitempty"`
	Recommendation models.Recommendation    `json:"recommendation"`
}

// Recommend predicts the request and prices it. When odds is nil they are
// fetched from the OddsProvider; missing odds produce an avoid decision.
func (e *Engine) Recommend(ctx context.Context, req Request, odds *models.Odds) (*RecommendationResult, error) {
	if req.Line == nil {
		return nil, fmt.Errorf("%w: field line is required for a recommendation", models.ErrInvalidInput)
	}
	prediction, err := e.Predict(ctx, req)
	if err != nil {
		return nil, err
	}

	if odds == nil && e.deps.Odds != nil {
		fetched, err := e.deps.Odds.Odds(ctx, req.PlayerID, req.StatType, *req.Line)
		switch {
		case err == nil:
			odds = &fetched
		case errors.Is(err, models.ErrNotFound):
			e.logger.WithFields(logrus.Fields{"player_id": req.PlayerID, "stat_type": req.StatType}).Debug("No odds for prop")
		default:
			return nil, fmt.Errorf("failed to load odds for %s: %w", req.PlayerID, err)
		}
	}

	rec := betting.Recommend(betting.InputFromPrediction(prediction, odds), e.config.Betting)
	metrics.RecordRecommendation(string(rec.Action))
	e.log.LogRecommendation(req.PlayerID, string(req.StatType), string(rec.Action), *req.Line, rec.ExpectedValue, rec.Confidence)

	return &RecommendationResult{Prediction: prediction, Odds: odds, Recommendation: rec}, nil
}
