package intelligence

import (
	"time"

	"github.com/inferloop/perfintel/internal/stats"
)

const (
	recentWindow = time.Hour

	healthyScore = 80.0
	warningScore = 60.0

	criticalPenalty        = 30.0
	recentAnomalyPenalty   = 20.0
	lowConfidencePenalty   = 15.0
	recentAnomalyThreshold = 5
	lowConfidenceThreshold = 0.7
)

// computeSummary aggregates the bounded result stores into counts and
// the derived health score. Callers hold the engine mutex.
func computeSummary(anomalies []Anomaly, predictions map[string]*Prediction, patterns []Pattern, now time.Time) Summary {
	summary := Summary{GeneratedAt: now}

	cutoff := now.Add(-recentWindow)
	summary.Anomalies.Total = len(anomalies)
	for _, anomaly := range anomalies {
		if anomaly.Severity == SeverityCritical {
			summary.Anomalies.Critical++
		}
		if anomaly.Timestamp.After(cutoff) {
			summary.Anomalies.RecentCount++
		}
	}

	summary.Predictions.Total = len(predictions)
	confidenceSum := 0.0
	for _, prediction := range predictions {
		if prediction.Accuracy >= accurateThreshold {
			summary.Predictions.Accurate++
		}
		if len(prediction.Predictions) > 0 {
			confidenceSum += prediction.Predictions[0].Confidence
		}
	}
	// max(total, 1) guards the division on an empty store.
	divisor := summary.Predictions.Total
	if divisor < 1 {
		divisor = 1
	}
	summary.Predictions.AvgConfidence = confidenceSum / float64(divisor)

	summary.Patterns.Total = len(patterns)
	for _, pattern := range patterns {
		switch pattern.Type {
		case PatternTypeSeasonal:
			summary.Patterns.Seasonal++
		case PatternTypeCyclical:
			summary.Patterns.Cyclical++
		}
	}

	summary.Health = computeHealth(summary)
	return summary
}

// computeHealth derives the 0-100 health score from the aggregated
// stats. The confidence penalty only applies once predictions exist, so
// a freshly cleared engine reads as a healthy baseline.
func computeHealth(summary Summary) Health {
	score := 100.0
	var issues []string

	if summary.Anomalies.Critical > 0 {
		score -= criticalPenalty
		issues = append(issues, "critical anomalies present")
	}
	if summary.Anomalies.RecentCount > recentAnomalyThreshold {
		score -= recentAnomalyPenalty
		issues = append(issues, "high anomaly rate in the last hour")
	}
	if summary.Predictions.Total > 0 && summary.Predictions.AvgConfidence < lowConfidenceThreshold {
		score -= lowConfidencePenalty
		issues = append(issues, "low average prediction confidence")
	}

	score = stats.Clamp(score, 0, 100)

	status := HealthStatusCritical
	switch {
	case score >= healthyScore:
		status = HealthStatusHealthy
	case score >= warningScore:
		status = HealthStatusWarning
	}

	return Health{Score: score, Status: status, Issues: issues}
}
