package intelligence

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/inferloop/perfintel/internal/stats"
)

const (
	maxAnomalyHistory = 100
	maxRelatedMetrics = 5

	// Trend anomaly detection compares the regression slope of the most
	// recent window against the preceding one.
	trendWindowSize      = 20
	minOlderTrendSamples = 10
	trendSlopeThreshold  = 0.5
)

// anomalyDetector finds point and trend anomalies in a metric series.
type anomalyDetector struct {
	cfg AnomalyConfig
}

func newAnomalyDetector(cfg AnomalyConfig) *anomalyDetector {
	return &anomalyDetector{cfg: cfg}
}

// detect inspects the latest sample of a series and its recent slope.
// tracked carries all metric names for related-metric grouping. A zero
// or NaN standard deviation produces no point anomaly: the z-score
// comparison fails closed.
func (d *anomalyDetector) detect(metric string, values []float64, ts time.Time, tracked []string) []Anomaly {
	if len(values) < d.cfg.MinDataPoints {
		return nil
	}

	var found []Anomaly

	window := values
	if len(window) > d.cfg.WindowSize {
		window = window[len(window)-d.cfg.WindowSize:]
	}

	mean := stats.Mean(window)
	stdDev := stats.StdDev(window)
	latest := values[len(values)-1]

	zScore := stats.ZScore(latest, mean, stdDev)
	if zScore > d.cfg.AlertThreshold {
		anomalyType := AnomalyTypeSpike
		if latest < mean {
			anomalyType = AnomalyTypeDrop
		}

		found = append(found, Anomaly{
			ID:              uuid.NewString(),
			Type:            anomalyType,
			Severity:        severityForScore(zScore),
			Metric:          metric,
			Value:           latest,
			ExpectedValue:   mean,
			Deviation:       latest - mean,
			Timestamp:       ts,
			Confidence:      math.Min(0.99, zScore/d.cfg.AlertThreshold),
			Description:     describePointAnomaly(metric, anomalyType, latest, mean),
			Recommendations: recommendationsFor(metric, anomalyType),
			RelatedMetrics:  relatedMetrics(metric, tracked, maxRelatedMetrics),
		})
	}

	if trend := d.detectTrendShift(metric, values, ts); trend != nil {
		found = append(found, *trend)
	}

	return found
}

// detectTrendShift emits a trend anomaly when the slope of the last 20
// samples differs from the slope of the preceding window by more than
// the threshold. The older window needs at least 10 samples.
func (d *anomalyDetector) detectTrendShift(metric string, values []float64, ts time.Time) *Anomaly {
	n := len(values)
	if n < trendWindowSize+minOlderTrendSamples {
		return nil
	}

	recent := values[n-trendWindowSize:]
	olderStart := n - 2*trendWindowSize
	if olderStart < 0 {
		olderStart = 0
	}
	older := values[olderStart : n-trendWindowSize]

	recentSlope := stats.FitLine(recent).Slope
	olderSlope := stats.FitLine(older).Slope
	delta := recentSlope - olderSlope

	if math.Abs(delta) <= trendSlopeThreshold {
		return nil
	}

	direction := "accelerating"
	if delta < 0 {
		direction = "decelerating"
	}

	return &Anomaly{
		ID:            uuid.NewString(),
		Type:          AnomalyTypeTrend,
		Severity:      severityForScore(2 * math.Abs(delta)),
		Metric:        metric,
		Value:         recentSlope,
		ExpectedValue: olderSlope,
		Deviation:     delta,
		Timestamp:     ts,
		Confidence:    math.Min(0.95, math.Abs(delta)),
		Description: fmt.Sprintf("%s trend is %s: slope changed from %.3f to %.3f",
			metric, direction, olderSlope, recentSlope),
		Recommendations: recommendationsFor(metric, AnomalyTypeTrend),
		RelatedMetrics:  nil,
	}
}

// severityForScore buckets a z-score (or scaled slope delta) into a
// severity grade.
func severityForScore(score float64) Severity {
	switch {
	case score < 2.5:
		return SeverityLow
	case score < 3.5:
		return SeverityMedium
	case score < 4.5:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}

// describePointAnomaly templates a human-readable description from the
// deviation direction and the percentage distance from the window mean.
func describePointAnomaly(metric string, anomalyType AnomalyType, latest, mean float64) string {
	direction := "spiked"
	relation := "above"
	if anomalyType == AnomalyTypeDrop {
		direction = "dropped"
		relation = "below"
	}

	if mean == 0 {
		return fmt.Sprintf("%s %s to %.2f against a zero mean", metric, direction, latest)
	}

	percent := math.Abs((latest-mean)/mean) * 100
	return fmt.Sprintf("%s %s %.1f%% %s the recent mean of %.2f",
		metric, direction, percent, relation, mean)
}
