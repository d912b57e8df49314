package intelligence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func predictionWithConfidence(metric string, accuracy, confidence float64) *Prediction {
	return &Prediction{
		Metric:      metric,
		Accuracy:    accuracy,
		Predictions: []PredictionPoint{{Confidence: confidence}},
	}
}

func TestComputeSummaryEmptyStores(t *testing.T) {
	summary := computeSummary(nil, nil, nil, time.Now())

	assert.Equal(t, 0, summary.Anomalies.Total)
	assert.Equal(t, 0, summary.Predictions.Total)
	assert.Equal(t, 0.0, summary.Predictions.AvgConfidence)
	assert.Equal(t, 0, summary.Patterns.Total)

	assert.Equal(t, 100.0, summary.Health.Score)
	assert.Equal(t, HealthStatusHealthy, summary.Health.Status)
	assert.Empty(t, summary.Health.Issues)
}

func TestComputeSummaryCounts(t *testing.T) {
	now := time.Now()
	anomalies := []Anomaly{
		{Severity: SeverityCritical, Timestamp: now.Add(-10 * time.Minute)},
		{Severity: SeverityLow, Timestamp: now.Add(-30 * time.Minute)},
		{Severity: SeverityMedium, Timestamp: now.Add(-2 * time.Hour)},
	}
	predictions := map[string]*Prediction{
		"a": predictionWithConfidence("a", 90, 0.9),
		"b": predictionWithConfidence("b", 60, 0.7),
	}
	patterns := []Pattern{
		{Type: PatternTypeSeasonal},
		{Type: PatternTypeSeasonal},
		{Type: PatternTypeCyclical},
	}

	summary := computeSummary(anomalies, predictions, patterns, now)

	assert.Equal(t, 3, summary.Anomalies.Total)
	assert.Equal(t, 1, summary.Anomalies.Critical)
	assert.Equal(t, 2, summary.Anomalies.RecentCount)

	assert.Equal(t, 2, summary.Predictions.Total)
	assert.Equal(t, 1, summary.Predictions.Accurate)
	assert.InDelta(t, 0.8, summary.Predictions.AvgConfidence, 1e-9)

	assert.Equal(t, 3, summary.Patterns.Total)
	assert.Equal(t, 2, summary.Patterns.Seasonal)
	assert.Equal(t, 1, summary.Patterns.Cyclical)
}

func TestComputeHealthPenalties(t *testing.T) {
	now := time.Now()

	t.Run("critical anomaly", func(t *testing.T) {
		anomalies := []Anomaly{{Severity: SeverityCritical, Timestamp: now.Add(-2 * time.Hour)}}

		summary := computeSummary(anomalies, nil, nil, now)

		assert.Equal(t, 70.0, summary.Health.Score)
		assert.Equal(t, HealthStatusWarning, summary.Health.Status)
		assert.Contains(t, summary.Health.Issues, "critical anomalies present")
	})

	t.Run("high recent anomaly rate", func(t *testing.T) {
		var anomalies []Anomaly
		for i := 0; i < 6; i++ {
			anomalies = append(anomalies, Anomaly{Severity: SeverityLow, Timestamp: now.Add(-time.Minute)})
		}

		summary := computeSummary(anomalies, nil, nil, now)

		assert.Equal(t, 80.0, summary.Health.Score)
		assert.Equal(t, HealthStatusHealthy, summary.Health.Status)
		assert.Contains(t, summary.Health.Issues, "high anomaly rate in the last hour")
	})

	t.Run("low prediction confidence", func(t *testing.T) {
		predictions := map[string]*Prediction{
			"a": predictionWithConfidence("a", 40, 0.5),
		}

		summary := computeSummary(nil, predictions, nil, now)

		assert.Equal(t, 85.0, summary.Health.Score)
		assert.Contains(t, summary.Health.Issues, "low average prediction confidence")
	})

	t.Run("no confidence penalty without predictions", func(t *testing.T) {
		summary := computeSummary(nil, nil, nil, now)
		assert.NotContains(t, summary.Health.Issues, "low average prediction confidence")
	})

	t.Run("penalties stack", func(t *testing.T) {
		var anomalies []Anomaly
		anomalies = append(anomalies, Anomaly{Severity: SeverityCritical, Timestamp: now.Add(-time.Minute)})
		for i := 0; i < 6; i++ {
			anomalies = append(anomalies, Anomaly{Severity: SeverityLow, Timestamp: now.Add(-time.Minute)})
		}
		predictions := map[string]*Prediction{
			"a": predictionWithConfidence("a", 40, 0.5),
		}

		summary := computeSummary(anomalies, predictions, nil, now)

		assert.Equal(t, 35.0, summary.Health.Score)
		assert.Equal(t, HealthStatusCritical, summary.Health.Status)
		require.Len(t, summary.Health.Issues, 3)
	})
}

func TestComputeHealthScoreStaysInRange(t *testing.T) {
	now := time.Now()

	var anomalies []Anomaly
	for i := 0; i < 50; i++ {
		anomalies = append(anomalies, Anomaly{Severity: SeverityCritical, Timestamp: now.Add(-time.Minute)})
	}

	summary := computeSummary(anomalies, nil, nil, now)

	assert.GreaterOrEqual(t, summary.Health.Score, 0.0)
	assert.LessOrEqual(t, summary.Health.Score, 100.0)
}
