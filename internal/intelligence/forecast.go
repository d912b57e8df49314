package intelligence

import (
	"fmt"
	"math"
	"time"

	"github.com/inferloop/perfintel/internal/stats"
)

// Forecast horizons. Step counts are derived from the configured
// sampling cadence, so a 5-minute interval maps these to 12, 72, 288
// and 2016 steps respectively.
var forecastHorizons = []struct {
	label    string
	duration time.Duration
}{
	{"1h", time.Hour},
	{"6h", 6 * time.Hour},
	{"24h", 24 * time.Hour},
	{"7d", 7 * 24 * time.Hour},
}

const (
	// 95% confidence interval multiplier for the regression margin.
	forecastZScore = 1.96

	improvingSlope = 0.1
	degradingSlope = -0.1

	volatilityRatio   = 0.3
	decliningSlope    = -1.0
	anomalyRiskCount  = 2
	accuracyFloor     = 0.5
	accurateThreshold = 80.0
)

// forecaster produces horizon-based predictions per metric from an
// index-vs-value least squares fit.
type forecaster struct {
	cfg ForecastConfig
}

func newForecaster(cfg ForecastConfig) *forecaster {
	return &forecaster{cfg: cfg}
}

// forecast fits the last lookback window and extrapolates to each
// horizon. recentAnomalies is the count of anomalies seen for this
// metric in the last hour, used for risk annotation. Returns nil when
// the series is shorter than the lookback period.
//
// The "polynomial" algorithm is a named extension point; it currently
// falls back to the linear path.
func (f *forecaster) forecast(metric string, values []float64, now time.Time, recentAnomalies int) *Prediction {
	if len(values) < f.cfg.LookbackPeriod {
		return nil
	}

	window := values[len(values)-f.cfg.LookbackPeriod:]
	fit := stats.FitLine(window)
	n := float64(fit.N)

	accuracy := stats.Clamp(fit.RSquared*100, 0, 100)
	confidence := math.Max(accuracyFloor, accuracy/100)

	points := make([]PredictionPoint, 0, len(forecastHorizons))
	for _, horizon := range forecastHorizons {
		steps := float64(horizon.duration / f.cfg.SampleInterval)
		if steps < 1 {
			steps = 1
		}

		value := math.Max(0, fit.At(n+steps-1))

		// Margin widens with extrapolation distance via the leverage term.
		margin := forecastZScore * fit.StdError * math.Sqrt(1+1/n+(steps*steps)/fit.SumSqX)

		points = append(points, PredictionPoint{
			Timestamp:  now.Add(horizon.duration),
			Value:      value,
			Confidence: confidence,
			UpperBound: math.Max(0, value+margin),
			LowerBound: math.Max(0, value-margin),
		})
	}

	return &Prediction{
		Metric:      metric,
		Timeframe:   forecastHorizons[len(forecastHorizons)-1].label,
		Predictions: points,
		Trend:       trendForSlope(fit.Slope),
		Accuracy:    accuracy,
		RiskFactors: f.riskFactors(metric, window, fit.Slope, recentAnomalies),
	}
}

// trendForSlope classifies the fitted slope.
func trendForSlope(slope float64) TrendDirection {
	switch {
	case slope > improvingSlope:
		return TrendImproving
	case slope < degradingSlope:
		return TrendDegrading
	default:
		return TrendStable
	}
}

// riskFactors annotates a forecast with qualitative risks derived from
// window volatility, slope and recent anomaly frequency.
func (f *forecaster) riskFactors(metric string, window []float64, slope float64, recentAnomalies int) []string {
	var risks []string

	mean := stats.Mean(window)
	stdDev := stats.StdDev(window)
	if mean != 0 && stdDev/math.Abs(mean) > volatilityRatio {
		risks = append(risks, "high volatility relative to the window mean")
	}

	if slope < decliningSlope && suggestsPerformanceMetric(metric) {
		risks = append(risks, "sustained declining trend")
	}

	if recentAnomalies > anomalyRiskCount {
		risks = append(risks, fmt.Sprintf("elevated anomaly frequency: %d in the last hour", recentAnomalies))
	}

	return risks
}
