package regression

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

// Fold is one held-out evaluation.
type Fold struct {
	Index     int           `json:"index"`
	TrainSize int           `json:"train_size"`
	TestSize  int           `json:"test_size"`
	RSquared  float64       `json:"r_squared"`
	Status    models.Status `json:"status"`
}

// CrossValidation aggregates k folds.
type CrossValidation struct {
	K            int           `json:"k"`
	Folds        []Fold        `json:"folds"`
	MeanRSquared float64       `json:"mean_r_squared"`
	StdRSquared  float64       `json:"std_r_squared"`
	Status       models.Status `json:"status"`
	Error        string        `json:"error,omitempty"`
}

// CrossValidate randomly partitions the rows into k folds using a generator
// seeded with seed (0 picks a time-based seed), trains a multiple regression
// on k-1 folds and scores R² on the held-out fold.
func CrossValidate(predictors [][]float64, y []float64, k int, seed int64) CrossValidation {
	n := len(y)
	if k < 2 || k > n {
		return CrossValidation{K: k, Status: models.StatusError,
			Error: fmt.Sprintf("%s: k=%d for %d rows", models.ErrInvalidInput, k, n)}
	}
	for j, col := range predictors {
		if len(col) != n {
			return CrossValidation{K: k, Status: models.StatusError,
				Error: fmt.Sprintf("%s: predictor %d length mismatch", models.ErrInvalidInput, j)}
		}
	}
	if n < MinSampleSize {
		return CrossValidation{K: k, Status: models.StatusEmpty, Error: insufficientData}
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	assignment := make([]int, n)
	for i, row := range perm {
		assignment[row] = i % k
	}

	cv := CrossValidation{K: k, Status: models.StatusSuccess}
	var scores []float64
	for f := 0; f < k; f++ {
		trainX, trainY, testX, testY := split(predictors, y, assignment, f)
		fold := Fold{Index: f, TrainSize: len(trainY), TestSize: len(testY)}

		model := Multiple(trainX, trainY)
		fold.Status = model.Status
		if model.Ok() {
			fold.RSquared = heldOutRSquared(model, testX, testY)
			scores = append(scores, fold.RSquared)
		}
		cv.Folds = append(cv.Folds, fold)
	}

	if len(scores) == 0 {
		cv.Status = models.StatusEmpty
		cv.Error = "no fold had enough training data"
		return cv
	}
	cv.MeanRSquared = stats.Mean(scores)
	cv.StdRSquared = stats.StdDev(scores)
	return cv
}

func split(predictors [][]float64, y []float64, assignment []int, fold int) ([][]float64, []float64, [][]float64, []float64) {
	trainX := make([][]float64, len(predictors))
	testX := make([][]float64, len(predictors))
	var trainY, testY []float64
	for i, f := range assignment {
		if f == fold {
			testY = append(testY, y[i])
			for j, col := range predictors {
				testX[j] = append(testX[j], col[i])
			}
			continue
		}
		trainY = append(trainY, y[i])
		for j, col := range predictors {
			trainX[j] = append(trainX[j], col[i])
		}
	}
	return trainX, trainY, testX, testY
}

func heldOutRSquared(m Model, x [][]float64, y []float64) float64 {
	meanY := stats.Mean(y)
	ssRes, ssTot := 0.0, 0.0
	row := make([]float64, len(x))
	for i := range y {
		for j := range x {
			row[j] = x[j][i]
		}
		e := y[i] - m.Predict(row...)
		ssRes += e * e
		d := y[i] - meanY
		ssTot += d * d
	}
	return rSquared(ssRes, ssTot)
}
