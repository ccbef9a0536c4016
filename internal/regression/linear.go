// Package regression fits ordinary, polynomial, ridge and logistic models
// by solving the normal equations with the linalg package.
package regression

import (
	"errors"
	"fmt"
	"math"

	"github.com/yourusername/clever-props/internal/linalg"
	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

// MinSampleSize is the fewest observations any fit accepts.
const MinSampleSize = 10

const (
	heteroscedasticityCorrelation = 0.3
	outlierSigma                  = 2.5
	insufficientData              = "insufficient data"
)

// Model kinds
const (
	KindSimple     = "simple"
	KindMultiple   = "multiple"
	KindPolynomial = "polynomial"
	KindRidge      = "ridge"
)

// Diagnostics are residual checks for a fitted model.
type Diagnostics struct {
	ResidualMean    float64 `json:"residual_mean"`
	ResidualStdDev  float64 `json:"residual_std_dev"`
	Heteroscedastic bool    `json:"heteroscedastic"`
	Outliers        int     `json:"outliers"`
}

// Model is a fitted linear model. Coefficients exclude the intercept;
// StandardErrors and TStatistics list the intercept first.
type Model struct {
	Kind             string        `json:"kind"`
	Status           models.Status `json:"status"`
	Error            string        `json:"error,omitempty"`
	Singular         bool          `json:"singular,omitempty"`
	Intercept        float64       `json:"intercept"`
	Coefficients     []float64     `json:"coefficients"`
	StandardErrors   []float64     `json:"standard_errors"`
	TStatistics      []float64     `json:"t_statistics"`
	RSquared         float64       `json:"r_squared"`
	AdjustedRSquared float64       `json:"adjusted_r_squared,omitempty"`
	Residuals        []float64     `json:"residuals,omitempty"`
	Fitted           []float64     `json:"fitted,omitempty"`
	Diagnostics      Diagnostics   `json:"diagnostics"`
	SampleSize       int           `json:"sample_size"`
	Degree           int           `json:"degree,omitempty"`
	Lambda           float64       `json:"lambda,omitempty"`
}

// Ok reports a successful fit.
func (m Model) Ok() bool {
	return m.Status == models.StatusSuccess
}

// Predict evaluates the model. A polynomial model takes the single raw x and
// expands it to its powers.
func (m Model) Predict(features ...float64) float64 {
	if m.Degree > 0 && len(features) == 1 {
		features = powers(features[0], m.Degree)
	}
	y := m.Intercept
	for i, b := range m.Coefficients {
		if i < len(features) {
			y += b * features[i]
		}
	}
	return y
}

// Simple fits y = a + b·x.
func Simple(x, y []float64) Model {
	return fit(KindSimple, [][]float64{x}, y, 0)
}

// Multiple fits y on one or more predictor series.
func Multiple(predictors [][]float64, y []float64) Model {
	return fit(KindMultiple, predictors, y, 0)
}

// Polynomial fits y on x, x², ..., x^degree.
func Polynomial(x, y []float64, degree int) Model {
	if degree < 1 {
		return failed(KindPolynomial, fmt.Errorf("%w: degree %d", models.ErrInvalidInput, degree))
	}
	columns := make([][]float64, degree)
	for d := range columns {
		columns[d] = make([]float64, len(x))
	}
	for i, v := range x {
		for d, p := range powers(v, degree) {
			columns[d][i] = p
		}
	}
	m := fit(KindPolynomial, columns, y, 0)
	m.Degree = degree
	return m
}

// Ridge fits with an L2 penalty λ on every coefficient except the intercept.
func Ridge(predictors [][]float64, y []float64, lambda float64) Model {
	if lambda < 0 {
		return failed(KindRidge, fmt.Errorf("%w: ridge lambda %.4f", models.ErrInvalidInput, lambda))
	}
	m := fit(KindRidge, predictors, y, lambda)
	m.Lambda = lambda
	return m
}

func powers(x float64, degree int) []float64 {
	out := make([]float64, degree)
	p := 1.0
	for d := range out {
		p *= x
		out[d] = p
	}
	return out
}

func failed(kind string, err error) Model {
	return Model{Kind: kind, Status: models.StatusError, Error: err.Error()}
}

func designMatrix(predictors [][]float64, n int) linalg.Matrix {
	x := linalg.New(n, len(predictors)+1)
	for i := 0; i < n; i++ {
		x[i][0] = 1
		for j, col := range predictors {
			x[i][j+1] = col[i]
		}
	}
	return x
}

func fit(kind string, predictors [][]float64, y []float64, lambda float64) Model {
	n := len(y)
	p := len(predictors)
	if p == 0 {
		return failed(kind, fmt.Errorf("%w: no predictors", models.ErrInvalidInput))
	}
	for j, col := range predictors {
		if len(col) != n {
			return failed(kind, fmt.Errorf("%w: predictor %d has %d values, response has %d", models.ErrInvalidInput, j, len(col), n))
		}
	}
	if n < MinSampleSize || n <= p+1 {
		return Model{Kind: kind, Status: models.StatusEmpty, Error: insufficientData, SampleSize: n}
	}

	x := designMatrix(predictors, n)
	xt := linalg.Transpose(x)
	xtx, err := linalg.Multiply(xt, x)
	if err != nil {
		return failed(kind, err)
	}
	if lambda > 0 {
		xtx = linalg.AddDiagonal(xtx, lambda, 1)
	}
	inv, err := linalg.Inverse(xtx)
	if err != nil {
		m := failed(kind, err)
		m.Singular = errors.Is(err, linalg.ErrSingular)
		m.SampleSize = n
		return m
	}
	xty, err := linalg.MultiplyVector(xt, y)
	if err != nil {
		return failed(kind, err)
	}
	beta, err := linalg.MultiplyVector(inv, xty)
	if err != nil {
		return failed(kind, err)
	}

	fitted, err := linalg.MultiplyVector(x, beta)
	if err != nil {
		return failed(kind, err)
	}
	residuals := make([]float64, n)
	meanY := stats.Mean(y)
	ssRes, ssTot := 0.0, 0.0
	for i := range y {
		residuals[i] = y[i] - fitted[i]
		ssRes += residuals[i] * residuals[i]
		d := y[i] - meanY
		ssTot += d * d
	}

	m := Model{
		Kind:         kind,
		Status:       models.StatusSuccess,
		Intercept:    beta[0],
		Coefficients: beta[1:],
		RSquared:     rSquared(ssRes, ssTot),
		Residuals:    residuals,
		Fitted:       fitted,
		SampleSize:   n,
	}
	if kind == KindMultiple {
		m.AdjustedRSquared = 1 - (1-m.RSquared)*float64(n-1)/float64(n-p-1)
	}

	sigma2 := ssRes / float64(n-p-1)
	m.StandardErrors = make([]float64, p+1)
	m.TStatistics = make([]float64, p+1)
	for j := 0; j <= p; j++ {
		se := math.Sqrt(math.Max(sigma2*inv[j][j], 0))
		m.StandardErrors[j] = se
		if se > 0 {
			m.TStatistics[j] = beta[j] / se
		}
	}
	m.Diagnostics = diagnose(residuals, fitted)
	return m
}

func rSquared(ssRes, ssTot float64) float64 {
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

func diagnose(residuals, fitted []float64) Diagnostics {
	d := Diagnostics{
		ResidualMean:   stats.Mean(residuals),
		ResidualStdDev: stats.StdDev(residuals),
	}
	abs := make([]float64, len(residuals))
	for i, e := range residuals {
		abs[i] = math.Abs(e)
		if d.ResidualStdDev > 0 && abs[i] > outlierSigma*d.ResidualStdDev {
			d.Outliers++
		}
	}
	d.Heteroscedastic = math.Abs(stats.Correlation(abs, fitted)) > heteroscedasticityCorrelation
	return d
}
