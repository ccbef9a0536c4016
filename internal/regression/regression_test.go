package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/clever-props/internal/models"
)

func noisyLine(n int) ([]float64, []float64) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		y[i] = 3*x[i] + 2 + 0.5*math.Sin(float64(i))
	}
	return x, y
}

// TestSimpleRecoversLine checks slope, intercept and fit quality
func TestSimpleRecoversLine(t *testing.T) {
	x, y := noisyLine(50)

	m := Simple(x, y)
	require.True(t, m.Ok(), m.Error)

	require.Len(t, m.Coefficients, 1)
	assert.InDelta(t, 3.0, m.Coefficients[0], 0.05)
	assert.InDelta(t, 2.0, m.Intercept, 0.3)
	assert.Greater(t, m.RSquared, 0.9)
	assert.Len(t, m.Residuals, 50)
	assert.Len(t, m.StandardErrors, 2)
	assert.Greater(t, m.TStatistics[1], 10.0)
	assert.InDelta(t, 0, m.Diagnostics.ResidualMean, 1e-9)
	assert.InDelta(t, 3*10+2, m.Predict(10), 0.6)
}

// TestInsufficientData checks the minimum sample size
func TestInsufficientData(t *testing.T) {
	x, y := noisyLine(9)

	m := Simple(x, y)
	assert.Equal(t, models.StatusEmpty, m.Status)
	assert.Equal(t, "insufficient data", m.Error)
}

// TestLengthMismatchIsError checks input validation
func TestLengthMismatchIsError(t *testing.T) {
	x, y := noisyLine(20)
	m := Simple(x[:15], y)
	assert.Equal(t, models.StatusError, m.Status)
	assert.Contains(t, m.Error, "predictor 0")
}

// TestSingularDesign checks collinear predictors are flagged
func TestSingularDesign(t *testing.T) {
	x, y := noisyLine(20)

	m := Multiple([][]float64{x, x}, y)
	assert.Equal(t, models.StatusError, m.Status)
	assert.True(t, m.Singular)
}

// TestMultipleExactFit checks coefficient recovery with two predictors
func TestMultipleExactFit(t *testing.T) {
	n := 20
	a := make([]float64, n)
	b := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = float64(i)
		b[i] = float64((i * 7) % 5)
		y[i] = 1 + 2*a[i] - 3*b[i]
	}

	m := Multiple([][]float64{a, b}, y)
	require.True(t, m.Ok(), m.Error)
	assert.InDelta(t, 1.0, m.Intercept, 1e-8)
	assert.InDelta(t, 2.0, m.Coefficients[0], 1e-8)
	assert.InDelta(t, -3.0, m.Coefficients[1], 1e-8)
	assert.InDelta(t, 1.0, m.RSquared, 1e-9)
	assert.InDelta(t, 1.0, m.AdjustedRSquared, 1e-9)
	assert.InDelta(t, 1+2*5-3*2, m.Predict(5, 2), 1e-8)
}

// TestPolynomial checks quadratic recovery and raw-x prediction
func TestPolynomial(t *testing.T) {
	var x, y []float64
	for v := -5.0; v <= 5; v++ {
		x = append(x, v)
		y = append(y, 1+v*v)
	}

	m := Polynomial(x, y, 2)
	require.True(t, m.Ok(), m.Error)
	assert.InDelta(t, 0, m.Coefficients[0], 1e-8)
	assert.InDelta(t, 1, m.Coefficients[1], 1e-8)
	assert.InDelta(t, 10, m.Predict(3), 1e-8)

	assert.Equal(t, models.StatusError, Polynomial(x, y, 0).Status)
}

// TestRidgeShrinks checks that the penalty pulls the slope toward zero
func TestRidgeShrinks(t *testing.T) {
	x, y := noisyLine(30)

	ols := Simple(x, y)
	ridge := Ridge([][]float64{x}, y, 5000)
	require.True(t, ridge.Ok(), ridge.Error)

	assert.Less(t, math.Abs(ridge.Coefficients[0]), math.Abs(ols.Coefficients[0]))
	assert.Equal(t, 5000.0, ridge.Lambda)
	assert.Equal(t, models.StatusError, Ridge([][]float64{x}, y, -1).Status)
}

// TestOutlierDiagnostics checks the residual outlier count
func TestOutlierDiagnostics(t *testing.T) {
	x, y := noisyLine(40)
	y[20] += 100

	m := Simple(x, y)
	require.True(t, m.Ok())
	assert.GreaterOrEqual(t, m.Diagnostics.Outliers, 1)
}

// TestLogistic checks Newton-Raphson on overlapping classes
func TestLogistic(t *testing.T) {
	var x, y []float64
	for v := -5.0; v < 5; v += 0.5 {
		x = append(x, v)
		label := 0.0
		if v > 0 {
			label = 1
		}
		y = append(y, label)
	}
	// overlap keeps the classes from being separable
	y[9] = 1  // x = -0.5
	y[12] = 0 // x = 1.0

	m := Logistic([][]float64{x}, y, LogisticOptions{})
	require.Equal(t, models.StatusSuccess, m.Status, m.Error)
	assert.True(t, m.Converged)
	assert.Greater(t, m.Coefficients[0], 0.0)
	assert.GreaterOrEqual(t, m.Accuracy, 0.8)
	assert.Less(t, m.LogLikelihood, 0.0)
	assert.Greater(t, m.Predict(4), 0.9)
	assert.Less(t, m.Predict(-4), 0.1)
}

// TestLogisticRejectsNonBinary checks response validation
func TestLogisticRejectsNonBinary(t *testing.T) {
	x, y := noisyLine(20)
	m := Logistic([][]float64{x}, y, LogisticOptions{})
	assert.Equal(t, models.StatusError, m.Status)
}

// TestCrossValidate checks fold scores and seeded determinism
func TestCrossValidate(t *testing.T) {
	x, y := noisyLine(50)

	cv := CrossValidate([][]float64{x}, y, 5, 42)
	require.Equal(t, models.StatusSuccess, cv.Status, cv.Error)
	require.Len(t, cv.Folds, 5)
	for _, f := range cv.Folds {
		assert.Equal(t, 10, f.TestSize)
		assert.Equal(t, 40, f.TrainSize)
	}
	assert.Greater(t, cv.MeanRSquared, 0.9)

	again := CrossValidate([][]float64{x}, y, 5, 42)
	assert.Equal(t, cv.MeanRSquared, again.MeanRSquared)

	assert.Equal(t, models.StatusError, CrossValidate([][]float64{x}, y, 1, 42).Status)
}
