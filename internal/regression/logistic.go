package regression

import (
	"fmt"
	"math"

	"github.com/yourusername/clever-props/internal/linalg"
	"github.com/yourusername/clever-props/internal/models"
)

// Newton-Raphson defaults
const (
	DefaultMaxIterations = 100
	DefaultTolerance     = 1e-6
	probabilityFloor     = 1e-15
)

// LogisticOptions controls the Newton-Raphson solver.
type LogisticOptions struct {
	MaxIterations int
	Tolerance     float64
}

// LogisticModel is a fitted binary classifier.
type LogisticModel struct {
	Status         models.Status `json:"status"`
	Error          string        `json:"error,omitempty"`
	Singular       bool          `json:"singular,omitempty"`
	Intercept      float64       `json:"intercept"`
	Coefficients   []float64     `json:"coefficients"`
	StandardErrors []float64     `json:"standard_errors,omitempty"`
	Iterations     int           `json:"iterations"`
	Converged      bool          `json:"converged"`
	LogLikelihood  float64       `json:"log_likelihood"`
	Accuracy       float64       `json:"accuracy"`
	SampleSize     int           `json:"sample_size"`
}

// Predict returns P(y = 1 | features).
func (m LogisticModel) Predict(features ...float64) float64 {
	z := m.Intercept
	for i, b := range m.Coefficients {
		if i < len(features) {
			z += b * features[i]
		}
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Logistic fits y ∈ {0,1} on the predictors. The best iterate is returned
// even when the solver does not converge.
func Logistic(predictors [][]float64, y []float64, opts LogisticOptions) LogisticModel {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}

	n, p := len(y), len(predictors)
	fail := func(err error) LogisticModel {
		return LogisticModel{Status: models.StatusError, Error: err.Error(), SampleSize: n}
	}
	if p == 0 {
		return fail(fmt.Errorf("%w: no predictors", models.ErrInvalidInput))
	}
	for j, col := range predictors {
		if len(col) != n {
			return fail(fmt.Errorf("%w: predictor %d has %d values, response has %d", models.ErrInvalidInput, j, len(col), n))
		}
	}
	for i, v := range y {
		if v != 0 && v != 1 {
			return fail(fmt.Errorf("%w: response %d is %.4f, want 0 or 1", models.ErrInvalidInput, i, v))
		}
	}
	if n < MinSampleSize {
		return LogisticModel{Status: models.StatusEmpty, Error: insufficientData, SampleSize: n}
	}

	x := designMatrix(predictors, n)
	beta := make([]float64, p+1)
	var covariance linalg.Matrix
	m := LogisticModel{Status: models.StatusSuccess, SampleSize: n}

	for iter := 1; iter <= opts.MaxIterations; iter++ {
		m.Iterations = iter
		gradient := make([]float64, p+1)
		hessian := linalg.New(p+1, p+1)
		for i := 0; i < n; i++ {
			mu := sigmoid(dot(x[i], beta))
			w := mu * (1 - mu)
			for a := 0; a <= p; a++ {
				gradient[a] += x[i][a] * (y[i] - mu)
				for b := 0; b <= p; b++ {
					hessian[a][b] += w * x[i][a] * x[i][b]
				}
			}
		}

		inv, err := linalg.Inverse(hessian)
		if err != nil {
			m.Singular = true
			m.Error = err.Error()
			break
		}
		covariance = inv
		step, err := linalg.MultiplyVector(inv, gradient)
		if err != nil {
			m.Error = err.Error()
			break
		}
		maxStep := 0.0
		for j := range beta {
			beta[j] += step[j]
			maxStep = math.Max(maxStep, math.Abs(step[j]))
		}
		if maxStep < opts.Tolerance {
			m.Converged = true
			break
		}
	}

	m.Intercept = beta[0]
	m.Coefficients = beta[1:]
	if covariance != nil {
		m.StandardErrors = make([]float64, p+1)
		for j := range m.StandardErrors {
			m.StandardErrors[j] = math.Sqrt(math.Max(covariance[j][j], 0))
		}
	}

	correct := 0
	for i := 0; i < n; i++ {
		mu := math.Min(math.Max(sigmoid(dot(x[i], beta)), probabilityFloor), 1-probabilityFloor)
		m.LogLikelihood += y[i]*math.Log(mu) + (1-y[i])*math.Log(1-mu)
		if (mu >= 0.5) == (y[i] == 1) {
			correct++
		}
	}
	m.Accuracy = float64(correct) / float64(n)
	return m
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
