package montecarlo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-props/internal/logger"
	"github.com/yourusername/clever-props/internal/metrics"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

const (
	// DefaultIterations is used when a run does not ask for a count.
	DefaultIterations = 10000
	// MaxIterations caps any single run.
	MaxIterations = 100000

	cancelCheckInterval = 1000
)

// Settings are the simulator-wide defaults.
type Settings struct {
	DefaultIterations int   `mapstructure:"default_iterations" json:"default_iterations"`
	MaxIterations     int   `mapstructure:"max_iterations" json:"max_iterations"`
	Seed              int64 `mapstructure:"seed" json:"seed"`
}

// DefaultSettings returns the standard iteration limits with time seeding.
func DefaultSettings() Settings {
	return Settings{
		DefaultIterations: DefaultIterations,
		MaxIterations:     MaxIterations,
	}
}

// Simulator runs Monte Carlo simulations. It holds no random state; every
// run builds its own Generator.
type Simulator struct {
	settings Settings
	log      *logger.SimulationLogger
}

// NewSimulator creates a simulator. A nil logger falls back to logrus.New().
func NewSimulator(settings Settings, log *logrus.Logger) *Simulator {
	if settings.DefaultIterations <= 0 {
		settings.DefaultIterations = DefaultIterations
	}
	if settings.MaxIterations <= 0 {
		settings.MaxIterations = MaxIterations
	}
	if settings.DefaultIterations > settings.MaxIterations {
		settings.DefaultIterations = settings.MaxIterations
	}
	return &Simulator{
		settings: settings,
		log:      logger.NewSimulationLogger(log),
	}
}

// Settings returns the effective settings.
func (s *Simulator) Settings() Settings {
	return s.settings
}

func (s *Simulator) iterations(kind string, requested int) int {
	if requested <= 0 {
		return s.settings.DefaultIterations
	}
	if requested > s.settings.MaxIterations {
		s.log.LogIterationsCapped(kind, requested, s.settings.MaxIterations)
		return s.settings.MaxIterations
	}
	return requested
}

func (s *Simulator) seed(requested int64) int64 {
	if requested != 0 {
		return requested
	}
	if s.settings.Seed != 0 {
		return s.settings.Seed
	}
	return time.Now().UnixNano()
}

// run wraps the bookkeeping shared by every simulation kind.
type run struct {
	kind       string
	id         uuid.UUID
	iterations int
	seed       int64
	gen        *Generator
	start      time.Time
}

func (s *Simulator) begin(kind string, iterations int, seed int64) *run {
	n := s.iterations(kind, iterations)
	sd := s.seed(seed)
	return &run{
		kind:       kind,
		id:         uuid.New(),
		iterations: n,
		seed:       sd,
		gen:        NewGenerator(sd),
		start:      time.Now(),
	}
}

func (s *Simulator) fail(r *run, err error) error {
	metrics.RecordSimulation(r.kind, string(models.StatusError), r.iterations, time.Since(r.start).Seconds())
	s.log.LogSimulationError(r.kind, err)
	return fmt.Errorf("%s simulation: %w", r.kind, err)
}

func (s *Simulator) done(r *run, sample []float64) {
	elapsed := time.Since(r.start)
	metrics.RecordSimulation(r.kind, string(models.StatusSuccess), r.iterations, elapsed.Seconds())
	s.log.LogSimulation(r.id.String(), r.kind, r.iterations, r.seed,
		stats.Mean(sample), stats.StdDev(sample), float64(elapsed.Microseconds())/1000)
}

func checkContext(ctx context.Context, i int) error {
	if i%cancelCheckInterval != 0 {
		return nil
	}
	return ctx.Err()
}
