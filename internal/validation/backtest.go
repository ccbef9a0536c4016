package validation

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-props/internal/betting"
	"github.com/yourusername/clever-props/internal/config"
	"github.com/yourusername/clever-props/internal/logger"
	"github.com/yourusername/clever-props/internal/metrics"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/prediction"
	"github.com/yourusername/clever-props/internal/stats"
)

// DefaultMinHistory is the number of games played before the first
// backtested prediction.
const DefaultMinHistory = 10

// Pick outcomes
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
	OutcomePush = "push"
	OutcomeNone = "none"
)

// Predictor produces a prediction from the games played so far. The history
// it receives is a copy and never contains the game being predicted.
type Predictor func(history models.Series, line *float64) *models.PredictionResult

// EnginePredictor adapts the engine's quick path into a Predictor.
func EnginePredictor(engine *prediction.Engine, statType models.StatType, gameCtx models.GameContext) Predictor {
	return func(history models.Series, line *float64) *models.PredictionResult {
		return engine.PredictSeries(statType, history, gameCtx, line)
	}
}

// BacktestConfig configures a single backtest run
type BacktestConfig struct {
	MinHistory int
	StatType   models.StatType
	// Line is a fixed prop line. When nil each game gets a line derived from
	// the history before it.
	Line      *float64
	Predictor Predictor
	// Odds prices both sides; nil means -110/-110.
	Odds    *models.Odds
	Betting betting.Config
}

// GameRecord is the backtest outcome for one game
type GameRecord struct {
	Index           int           `json:"index"`
	GameID          string        `json:"game_id,omitempty"`
	Status          models.Status `json:"status"`
	Predicted       float64       `json:"predicted"`
	Actual          float64       `json:"actual"`
	Line            float64       `json:"line"`
	OverProbability float64       `json:"over_probability"`
	Confidence      float64       `json:"confidence"`
	Action          models.Action `json:"action"`
	Outcome         string        `json:"outcome"`
	Profit          float64       `json:"profit"`
	Bankroll        float64       `json:"bankroll"`
	Drawdown        float64       `json:"drawdown"`
}

// BacktestResult aggregates a backtest run
type BacktestResult struct {
	RunID        uuid.UUID               `json:"run_id"`
	PlayerID     string                  `json:"player_id"`
	StatType     models.StatType         `json:"stat_type"`
	Status       models.Status           `json:"status"`
	Games        []GameRecord            `json:"games"`
	Report       models.ValidationReport `json:"report"`
	Predicted    int                     `json:"predicted"`
	Skipped      int                     `json:"skipped"`
	Picks        int                     `json:"picks"`
	Wins         int                     `json:"wins"`
	Losses       int                     `json:"losses"`
	Pushes       int                     `json:"pushes"`
	HitRate      float64                 `json:"hit_rate"`
	LineAccuracy float64                 `json:"line_accuracy"`
	Profit       float64                 `json:"profit"`
	ROI          float64                 `json:"roi"`
	MaxDrawdown  float64                 `json:"max_drawdown"`
	Duration     time.Duration           `json:"duration"`
}

// Backtester replays player histories through a predictor
type Backtester struct {
	config Config
	logger *logrus.Logger
	log    *logger.ValidationLogger
}

// NewBacktester creates a new backtester
func NewBacktester(cfg Config, log *logrus.Logger) *Backtester {
	log = logger.OrDefault(log)
	return &Backtester{
		config: cfg.withDefaults(),
		logger: log,
		log:    logger.NewValidationLogger(log),
	}
}

// FromConfig converts app config to validator config
func FromConfig(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		MinSampleSize: cfg.Validation.MinSampleSize,
		WindowSize:    cfg.Validation.WindowSize,
		MinHistory:    cfg.Validation.MinHistory,
	}.withDefaults()
}

// Config returns the effective validator configuration
func (b *Backtester) Config() Config {
	return b.config
}

// Backtest runs a backtest with a default backtester.
func Backtest(ctx context.Context, series models.Series, cfg BacktestConfig) (*BacktestResult, error) {
	return NewBacktester(DefaultConfig(), nil).Backtest(ctx, series, cfg)
}

// Backtest walks the series game by game. For game i the predictor sees only
// games [0, i); its output is scored against game i.
func (b *Backtester) Backtest(ctx context.Context, series models.Series, cfg BacktestConfig) (*BacktestResult, error) {
	start := time.Now()
	cfg, err := b.backtestConfig(cfg)
	if err != nil {
		metrics.RecordValidationRun("backtest", string(models.StatusError))
		return nil, err
	}

	result := &BacktestResult{
		RunID:    uuid.New(),
		PlayerID: series.PlayerID,
		StatType: cfg.StatType,
	}
	records, err := replay(ctx, series, cfg.MinHistory, series.Len(), cfg)
	if err != nil {
		metrics.RecordValidationRun("backtest", string(models.StatusError))
		return nil, err
	}
	result.Games = records
	b.summarize(result)
	result.Duration = time.Since(start)

	metrics.RecordValidationRun("backtest", string(result.Status))
	metrics.RecordBacktestDuration(result.Duration.Seconds())
	if result.Picks > 0 {
		metrics.UpdateBacktestHitRate(result.PlayerID, string(result.StatType), result.HitRate)
	}
	b.log.LogBacktest(result.PlayerID, string(result.StatType), len(result.Games), result.Picks,
		result.HitRate, result.ROI, float64(result.Duration.Milliseconds()))
	return result, nil
}

func (b *Backtester) backtestConfig(cfg BacktestConfig) (BacktestConfig, error) {
	if cfg.Predictor == nil {
		return cfg, fmt.Errorf("%w: field predictor is required", models.ErrInvalidInput)
	}
	if cfg.StatType != "" && !cfg.StatType.Valid() {
		return cfg, fmt.Errorf("%w: field stat_type has unknown value %q", models.ErrInvalidInput, cfg.StatType)
	}
	if cfg.Line != nil && (*cfg.Line < 0 || math.IsNaN(*cfg.Line)) {
		return cfg, fmt.Errorf("%w: field line must be non-negative", models.ErrInvalidInput)
	}
	if cfg.MinHistory <= 0 {
		cfg.MinHistory = b.config.MinHistory
	}
	if cfg.Betting == (betting.Config{}) {
		cfg.Betting = betting.DefaultConfig()
	}
	return cfg, nil
}

// replay predicts games [from, to) of the series. Each prediction is made
// from series.Before(i), a fresh copy of the earlier games.
func replay(ctx context.Context, series models.Series, from, to int, cfg BacktestConfig) ([]GameRecord, error) {
	if from < 1 {
		from = 1
	}
	records := make([]GameRecord, 0, max(to-from, 0))
	var bankroll, peak float64
	for i := from; i < to; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("backtest cancelled at game %d: %w", i, err)
		}
		history := series.Before(i)
		line := gameLine(cfg.Line, history.Values)
		pred := cfg.Predictor(history, &line)

		rec := GameRecord{
			Index:   i,
			Actual:  series.Values[i],
			Line:    line,
			Action:  models.ActionAvoid,
			Outcome: OutcomeNone,
			Status:  models.StatusEmpty,
		}
		if len(series.GameIDs) == series.Len() {
			rec.GameID = series.GameIDs[i]
		}
		if pred != nil {
			rec.Status = pred.Status
		}
		if pred.IsUsable() {
			rec.Predicted = pred.PredictedValue
			rec.OverProbability = pred.OverProbability
			rec.Confidence = pred.Confidence
			settle(&rec, pred, cfg)
		}

		bankroll += rec.Profit
		peak = math.Max(peak, bankroll)
		rec.Bankroll = bankroll
		rec.Drawdown = peak - bankroll
		records = append(records, rec)
	}
	return records, nil
}

// gameLine returns the fixed line, or the history mean rounded down to a
// half point so that a push is impossible.
func gameLine(fixed *float64, history []float64) float64 {
	if fixed != nil {
		return *fixed
	}
	return math.Floor(stats.Mean(history)) + 0.5
}

// settle places a one-unit pick when the betting layer recommends a side and
// grades it against the actual value.
func settle(rec *GameRecord, pred *models.PredictionResult, cfg BacktestConfig) {
	odds := models.StandardOdds(rec.Line)
	if cfg.Odds != nil {
		odds = *cfg.Odds
		odds.Line = rec.Line
	}
	recommendation := betting.Recommend(betting.InputFromPrediction(pred, &odds), cfg.Betting)
	rec.Action = recommendation.Action
	if !recommendation.IsBet() {
		return
	}

	price := odds.Over
	won := rec.Actual > rec.Line
	if rec.Action == models.ActionUnder {
		price = odds.Under
		won = rec.Actual < rec.Line
	}
	dec, err := betting.AmericanToDecimal(price)
	if err != nil {
		rec.Action = models.ActionAvoid
		return
	}
	switch {
	case rec.Actual == rec.Line:
		rec.Outcome = OutcomePush
	case won:
		rec.Outcome = OutcomeWin
		rec.Profit = dec - 1
	default:
		rec.Outcome = OutcomeLoss
		rec.Profit = -1
	}
}

func (b *Backtester) summarize(result *BacktestResult) {
	var predictions, actuals, probabilities, lines []float64
	sideCalls, sideHits := 0, 0
	for _, g := range result.Games {
		if g.Status != models.StatusSuccess {
			result.Skipped++
			continue
		}
		predictions = append(predictions, g.Predicted)
		actuals = append(actuals, g.Actual)
		probabilities = append(probabilities, g.OverProbability)
		lines = append(lines, g.Line)

		if g.Predicted != g.Line && g.Actual != g.Line {
			sideCalls++
			if (g.Predicted > g.Line) == (g.Actual > g.Line) {
				sideHits++
			}
		}
		switch g.Outcome {
		case OutcomeWin:
			result.Wins++
		case OutcomeLoss:
			result.Losses++
		case OutcomePush:
			result.Pushes++
		}
		result.Profit += g.Profit
		result.MaxDrawdown = math.Max(result.MaxDrawdown, g.Drawdown)
	}
	result.Predicted = len(predictions)
	result.Picks = result.Wins + result.Losses + result.Pushes
	if decided := result.Wins + result.Losses; decided > 0 {
		result.HitRate = float64(result.Wins) / float64(decided)
	}
	if result.Picks > 0 {
		result.ROI = result.Profit / float64(result.Picks)
	}
	if sideCalls > 0 {
		result.LineAccuracy = float64(sideHits) / float64(sideCalls)
	}

	result.Status = models.StatusEmpty
	if result.Predicted > 0 {
		result.Status = models.StatusSuccess
	}
	report, err := ValidateWithConfig(Input{
		Predictions:   predictions,
		Actuals:       actuals,
		Probabilities: probabilities,
		Lines:         lines,
	}, b.config)
	if err != nil {
		report = models.ValidationReport{Status: models.StatusError, Error: err.Error()}
	}
	result.Report = report
	if report.Status == models.StatusSuccess {
		b.log.LogValidation(string(report.Status), report.SampleSize, report.Accuracy.MAE,
			report.Accuracy.RMSE, report.Accuracy.DirectionalAccuracy, report.TemporalStability.Trend)
	}
}
