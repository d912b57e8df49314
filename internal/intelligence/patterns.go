package intelligence

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inferloop/perfintel/internal/stats"
)

const (
	maxPatterns = 50

	// Minimum best-lag autocorrelation to report a seasonal pattern.
	seasonalCorrelation = 0.7
)

// patternDetector finds recurring periodicity in a metric series via
// lag autocorrelation.
type patternDetector struct {
	cfg PatternConfig
}

func newPatternDetector(cfg PatternConfig) *patternDetector {
	return &patternDetector{cfg: cfg}
}

// detectSeasonal computes the autocorrelation at each candidate lag and
// reports a seasonal pattern when the best lag correlates above the
// detection floor. Returns nil when the series is too short or no lag
// qualifies.
func (d *patternDetector) detectSeasonal(metric string, values []float64, now time.Time) *Pattern {
	if len(values) < d.cfg.MinPatternLength {
		return nil
	}

	bestLag := 0
	bestCorrelation := 0.0
	for _, lag := range d.cfg.SeasonalityLags {
		if lag >= len(values) {
			continue
		}
		correlation := stats.Autocorrelation(values, lag)
		if correlation > bestCorrelation {
			bestCorrelation = correlation
			bestLag = lag
		}
	}

	if bestCorrelation <= seasonalCorrelation {
		return nil
	}

	// Short overlaps can estimate slightly past 1; keep strength in range.
	strength := stats.Clamp(bestCorrelation, 0, 1)

	periodicity := d.periodicityLabel(bestLag)
	return &Pattern{
		ID:          uuid.NewString(),
		Name:        fmt.Sprintf("%s cycle in %s", periodicity, metric),
		Type:        PatternTypeSeasonal,
		Description: fmt.Sprintf("lag-%d autocorrelation %.2f indicates a %s cycle", bestLag, strength, periodicity),
		Strength:    strength,
		Periodicity: periodicity,
		// The detection strength doubles as the significance score.
		Significance: strength,
		Metrics:      []string{metric},
		DetectedAt:   now,
	}
}

// detectCyclical is a recognized extension point. Cyclical
// (non-calendar) periodicity detection is not implemented and
// deliberately returns nothing rather than fabricating findings.
func (d *patternDetector) detectCyclical(metric string, values []float64, now time.Time) *Pattern {
	return nil
}

// periodicityLabel names the matched lag: the shortest configured lag is
// labeled daily, anything longer weekly.
func (d *patternDetector) periodicityLabel(lag int) string {
	shortest := lag
	for _, candidate := range d.cfg.SeasonalityLags {
		if candidate < shortest {
			shortest = candidate
		}
	}
	if lag == shortest {
		return "daily"
	}
	return "weekly"
}
