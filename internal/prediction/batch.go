package prediction

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/clever-props/internal/metrics"
	"github.com/yourusername/clever-props/internal/models"
)

// PredictBatch predicts every request concurrently with at most
// BatchWorkers in flight. Results are index-aligned with reqs; a failing
// item becomes a StatusError result and never stops the others.
func (e *Engine) PredictBatch(ctx context.Context, reqs []Request) []*models.PredictionResult {
	start := time.Now()
	results := make([]*models.PredictionResult, len(reqs))

	var g errgroup.Group
	g.SetLimit(e.config.BatchWorkers)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = models.FailedPrediction(req.PlayerID, req.GameID, req.StatType, err)
				return nil
			}
			result, err := e.Predict(ctx, req)
			if err != nil {
				result = models.FailedPrediction(req.PlayerID, req.GameID, req.StatType, err)
			}
			results[i] = result
			return nil
		})
	}
	// Workers never return an error.
	_ = g.Wait()

	var succeeded, empty, failed int
	for _, r := range results {
		switch r.Status {
		case models.StatusSuccess:
			succeeded++
		case models.StatusEmpty:
			empty++
		default:
			failed++
		}
	}
	metrics.RecordBatch(len(reqs))
	e.log.LogBatch(len(reqs), succeeded, empty, failed, float64(time.Since(start).Microseconds())/1000)
	return results
}
