package intelligence

import (
	"fmt"
	"time"
)

// Config contains configuration for the intelligence engine. It is
// immutable after construction; partial configs are merged over the
// documented defaults by New.
type Config struct {
	Anomaly  AnomalyConfig  `json:"anomaly" yaml:"anomaly"`
	Forecast ForecastConfig `json:"forecast" yaml:"forecast"`
	Pattern  PatternConfig  `json:"pattern" yaml:"pattern"`
}

// AnomalyConfig contains anomaly detection settings
type AnomalyConfig struct {
	Sensitivity    float64 `json:"sensitivity" yaml:"sensitivity"`
	MinDataPoints  int     `json:"min_data_points" yaml:"min_data_points"`
	WindowSize     int     `json:"window_size" yaml:"window_size"`
	AlertThreshold float64 `json:"alert_threshold" yaml:"alert_threshold"` // standard deviations
}

// ForecastConfig contains forecasting settings
type ForecastConfig struct {
	Algorithm           string        `json:"algorithm" yaml:"algorithm"` // "linear", "polynomial"
	LookbackPeriod      int           `json:"lookback_period" yaml:"lookback_period"`
	ConfidenceThreshold float64       `json:"confidence_threshold" yaml:"confidence_threshold"`
	UpdateFrequency     int           `json:"update_frequency" yaml:"update_frequency"` // advisory only, the engine has no timer
	SampleInterval      time.Duration `json:"sample_interval" yaml:"sample_interval"`   // sampling cadence assumed by horizon mapping
}

// PatternConfig contains pattern detection settings
type PatternConfig struct {
	MinPatternLength      int     `json:"min_pattern_length" yaml:"min_pattern_length"`
	SignificanceThreshold float64 `json:"significance_threshold" yaml:"significance_threshold"`
	SeasonalityLags       []int   `json:"seasonality_lags" yaml:"seasonality_lags"` // shorter lag labeled daily, longer weekly
}

// NewDefaultConfig creates the default engine configuration
func NewDefaultConfig() *Config {
	return &Config{
		Anomaly: AnomalyConfig{
			Sensitivity:    0.8,
			MinDataPoints:  10,
			WindowSize:     50,
			AlertThreshold: 2.5,
		},
		Forecast: ForecastConfig{
			Algorithm:           AlgorithmLinear,
			LookbackPeriod:      24,
			ConfidenceThreshold: 0.75,
			UpdateFrequency:     5,
			SampleInterval:      5 * time.Minute,
		},
		Pattern: PatternConfig{
			MinPatternLength:      20,
			SignificanceThreshold: 0.95,
			SeasonalityLags:       []int{24, 168},
		},
	}
}

// Forecast algorithm names. Polynomial is a named extension point and
// currently falls back to the linear path.
const (
	AlgorithmLinear     = "linear"
	AlgorithmPolynomial = "polynomial"
)

// WithDefaults merges a partial configuration over the defaults. Zero
// fields take the default value; unknown values are not validated, the
// caller is responsible for passing sane configuration. Safe on a nil
// receiver.
func (c *Config) WithDefaults() *Config {
	merged := *NewDefaultConfig()
	if c == nil {
		return &merged
	}

	if c.Anomaly.Sensitivity != 0 {
		merged.Anomaly.Sensitivity = c.Anomaly.Sensitivity
	}
	if c.Anomaly.MinDataPoints != 0 {
		merged.Anomaly.MinDataPoints = c.Anomaly.MinDataPoints
	}
	if c.Anomaly.WindowSize != 0 {
		merged.Anomaly.WindowSize = c.Anomaly.WindowSize
	}
	if c.Anomaly.AlertThreshold != 0 {
		merged.Anomaly.AlertThreshold = c.Anomaly.AlertThreshold
	}

	if c.Forecast.Algorithm != "" {
		merged.Forecast.Algorithm = c.Forecast.Algorithm
	}
	if c.Forecast.LookbackPeriod != 0 {
		merged.Forecast.LookbackPeriod = c.Forecast.LookbackPeriod
	}
	if c.Forecast.ConfidenceThreshold != 0 {
		merged.Forecast.ConfidenceThreshold = c.Forecast.ConfidenceThreshold
	}
	if c.Forecast.UpdateFrequency != 0 {
		merged.Forecast.UpdateFrequency = c.Forecast.UpdateFrequency
	}
	if c.Forecast.SampleInterval != 0 {
		merged.Forecast.SampleInterval = c.Forecast.SampleInterval
	}

	if c.Pattern.MinPatternLength != 0 {
		merged.Pattern.MinPatternLength = c.Pattern.MinPatternLength
	}
	if c.Pattern.SignificanceThreshold != 0 {
		merged.Pattern.SignificanceThreshold = c.Pattern.SignificanceThreshold
	}
	if len(c.Pattern.SeasonalityLags) > 0 {
		merged.Pattern.SeasonalityLags = append([]int(nil), c.Pattern.SeasonalityLags...)
	}

	return &merged
}

// Validate validates the engine configuration
func (c *Config) Validate() error {
	if c.Anomaly.MinDataPoints < 2 {
		return fmt.Errorf("min data points must be at least 2")
	}
	if c.Anomaly.WindowSize < 2 {
		return fmt.Errorf("window size must be at least 2")
	}
	if c.Anomaly.AlertThreshold <= 0 {
		return fmt.Errorf("alert threshold must be positive")
	}
	if c.Forecast.LookbackPeriod < 2 {
		return fmt.Errorf("lookback period must be at least 2")
	}
	if c.Forecast.SampleInterval <= 0 {
		return fmt.Errorf("sample interval must be positive")
	}
	if c.Pattern.MinPatternLength < 2 {
		return fmt.Errorf("min pattern length must be at least 2")
	}
	return nil
}
