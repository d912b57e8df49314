package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 5.0, Mean([]float64{5}))
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{4, 4, 4}))

	// Population std dev of {2, 4, 4, 4, 5, 5, 7, 9} is exactly 2.
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

func TestZScore(t *testing.T) {
	assert.InDelta(t, 2.0, ZScore(10, 6, 2), 1e-9)
	assert.InDelta(t, 2.0, ZScore(2, 6, 2), 1e-9)

	// Zero spread means the score is undefined, not zero.
	assert.True(t, math.IsNaN(ZScore(6, 6, 0)))
}

func TestFitLinePerfectLine(t *testing.T) {
	values := []float64{1, 3, 5, 7, 9} // y = 2x + 1

	fit := FitLine(values)

	assert.InDelta(t, 2.0, fit.Slope, 1e-9)
	assert.InDelta(t, 1.0, fit.Intercept, 1e-9)
	assert.InDelta(t, 1.0, fit.RSquared, 1e-9)
	assert.InDelta(t, 0.0, fit.StdError, 1e-9)
	assert.Equal(t, 5, fit.N)

	assert.InDelta(t, 21.0, fit.At(10), 1e-9)
}

func TestFitLineNoisySeries(t *testing.T) {
	values := []float64{1, 2.9, 5.2, 6.8, 9.1}

	fit := FitLine(values)

	assert.InDelta(t, 2.0, fit.Slope, 0.1)
	assert.Greater(t, fit.RSquared, 0.99)
	assert.Greater(t, fit.StdError, 0.0)
	assert.InDelta(t, 10.0, fit.SumSqX, 1e-9) // x = 0..4 around mean 2
}

func TestFitLineShortSeries(t *testing.T) {
	fit := FitLine([]float64{42})
	assert.Equal(t, 1, fit.N)
	assert.Equal(t, 0.0, fit.Slope)
}

func TestAutocorrelationPeriodicSeries(t *testing.T) {
	period := 24
	values := make([]float64, 240)
	for i := range values {
		values[i] = math.Sin(2 * math.Pi * float64(i) / float64(period))
	}

	atPeriod := Autocorrelation(values, period)
	atHalfPeriod := Autocorrelation(values, period/2)

	assert.InDelta(t, 1.0, atPeriod, 0.01)
	assert.Less(t, atHalfPeriod, atPeriod)
}

func TestAutocorrelationShortPeriodicSeries(t *testing.T) {
	// Two full periods are enough for a clean correlation at the period
	// lag; the overlap normalization must not dilute it.
	period := 24
	values := make([]float64, 2*period)
	for i := range values {
		values[i] = math.Sin(2 * math.Pi * float64(i) / float64(period))
	}

	assert.InDelta(t, 1.0, Autocorrelation(values, period), 0.01)
}

func TestAutocorrelationEdgeCases(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	assert.Equal(t, 0.0, Autocorrelation(values, 0))
	assert.Equal(t, 0.0, Autocorrelation(values, -1))
	assert.Equal(t, 0.0, Autocorrelation(values, len(values)))

	// Constant series has zero variance.
	assert.Equal(t, 0.0, Autocorrelation([]float64{5, 5, 5, 5}, 1))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0.0, Clamp(-3, 0, 100))
	require.Equal(t, 100.0, Clamp(250, 0, 100))
	require.Equal(t, 42.0, Clamp(42, 0, 100))
}
