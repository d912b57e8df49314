package intelligence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testForecastConfig() ForecastConfig {
	return ForecastConfig{
		Algorithm:           AlgorithmLinear,
		LookbackPeriod:      24,
		ConfidenceThreshold: 0.75,
		SampleInterval:      5 * time.Minute,
	}
}

// linearSeries returns n values following start + i*slope.
func linearSeries(start, slope float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = start + float64(i)*slope
	}
	return values
}

func TestForecastLinearSeries(t *testing.T) {
	forecaster := newForecaster(testForecastConfig())
	now := time.Now()

	prediction := forecaster.forecast("request_throughput", linearSeries(0, 1, 24), now, 0)

	require.NotNil(t, prediction)
	assert.Equal(t, "request_throughput", prediction.Metric)
	assert.Equal(t, "7d", prediction.Timeframe)
	assert.Equal(t, TrendImproving, prediction.Trend)
	assert.InDelta(t, 100.0, prediction.Accuracy, 1e-6)

	require.Len(t, prediction.Predictions, 4)

	// 5-minute cadence maps the horizons to 12, 72, 288 and 2016 steps.
	// On a perfect y=x fit the projected value is the extrapolated index.
	assert.InDelta(t, 35.0, prediction.Predictions[0].Value, 1e-6)
	assert.InDelta(t, 95.0, prediction.Predictions[1].Value, 1e-6)
	assert.InDelta(t, 311.0, prediction.Predictions[2].Value, 1e-6)
	assert.InDelta(t, 2039.0, prediction.Predictions[3].Value, 1e-6)

	assert.Equal(t, now.Add(time.Hour), prediction.Predictions[0].Timestamp)
	assert.Equal(t, now.Add(7*24*time.Hour), prediction.Predictions[3].Timestamp)

	// A perfect fit has no residual spread, so the bounds collapse.
	for _, point := range prediction.Predictions {
		assert.InDelta(t, point.Value, point.UpperBound, 1e-6)
		assert.InDelta(t, point.Value, point.LowerBound, 1e-6)
	}
}

func TestForecastNeverGoesNegative(t *testing.T) {
	forecaster := newForecaster(testForecastConfig())

	prediction := forecaster.forecast("queue_depth", linearSeries(46, -2, 24), time.Now(), 0)

	require.NotNil(t, prediction)
	assert.Equal(t, TrendDegrading, prediction.Trend)
	for _, point := range prediction.Predictions {
		assert.GreaterOrEqual(t, point.Value, 0.0)
		assert.GreaterOrEqual(t, point.UpperBound, 0.0)
		assert.GreaterOrEqual(t, point.LowerBound, 0.0)
	}
}

func TestForecastStableTrend(t *testing.T) {
	forecaster := newForecaster(testForecastConfig())

	prediction := forecaster.forecast("cpu", linearSeries(50, 0.01, 24), time.Now(), 0)

	require.NotNil(t, prediction)
	assert.Equal(t, TrendStable, prediction.Trend)
}

func TestForecastTooLittleHistory(t *testing.T) {
	forecaster := newForecaster(testForecastConfig())
	assert.Nil(t, forecaster.forecast("cpu", linearSeries(0, 1, 23), time.Now(), 0))
}

func TestForecastConfidenceFloor(t *testing.T) {
	forecaster := newForecaster(testForecastConfig())

	// Alternating values fit a flat line badly, so accuracy approaches
	// zero while confidence stays on its floor.
	values := make([]float64, 24)
	for i := range values {
		if i%2 == 0 {
			values[i] = 10
		} else {
			values[i] = 90
		}
	}

	prediction := forecaster.forecast("flappy", values, time.Now(), 0)

	require.NotNil(t, prediction)
	assert.Less(t, prediction.Accuracy, 10.0)
	for _, point := range prediction.Predictions {
		assert.InDelta(t, 0.5, point.Confidence, 1e-9)
	}
}

func TestForecastRiskFactors(t *testing.T) {
	forecaster := newForecaster(testForecastConfig())

	t.Run("volatility", func(t *testing.T) {
		values := make([]float64, 24)
		for i := range values {
			if i%2 == 0 {
				values[i] = 10
			} else {
				values[i] = 90
			}
		}

		prediction := forecaster.forecast("spiky", values, time.Now(), 0)

		require.NotNil(t, prediction)
		assert.Contains(t, prediction.RiskFactors, "high volatility relative to the window mean")
	})

	t.Run("declining performance metric", func(t *testing.T) {
		prediction := forecaster.forecast("availability_score", linearSeries(100, -2, 24), time.Now(), 0)

		require.NotNil(t, prediction)
		assert.Contains(t, prediction.RiskFactors, "sustained declining trend")
	})

	t.Run("declining non-performance metric carries no trend risk", func(t *testing.T) {
		prediction := forecaster.forecast("queue_depth", linearSeries(100, -2, 24), time.Now(), 0)

		require.NotNil(t, prediction)
		assert.NotContains(t, prediction.RiskFactors, "sustained declining trend")
	})

	t.Run("anomaly frequency", func(t *testing.T) {
		prediction := forecaster.forecast("cpu", linearSeries(0, 1, 24), time.Now(), 3)

		require.NotNil(t, prediction)
		assert.Contains(t, prediction.RiskFactors, "elevated anomaly frequency: 3 in the last hour")
	})

	t.Run("calm series has none", func(t *testing.T) {
		prediction := forecaster.forecast("cpu", linearSeries(50, 0.01, 24), time.Now(), 0)

		require.NotNil(t, prediction)
		assert.Empty(t, prediction.RiskFactors)
	})
}
