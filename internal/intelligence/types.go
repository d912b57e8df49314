package intelligence

import "time"

// AnomalyType classifies how a sample deviates from its window.
type AnomalyType string

const (
	AnomalyTypeSpike AnomalyType = "spike"
	AnomalyTypeDrop  AnomalyType = "drop"
	AnomalyTypeTrend AnomalyType = "trend"
)

// Severity grades how far outside normal behavior an anomaly lies.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// TrendDirection classifies the slope of a forecast fit.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDegrading TrendDirection = "degrading"
)

// PatternType classifies a recurring pattern finding.
type PatternType string

const (
	PatternTypeSeasonal PatternType = "seasonal"
	PatternTypeCyclical PatternType = "cyclical"
)

// HealthStatus summarizes the derived health score.
type HealthStatus string

const (
	HealthStatusHealthy  HealthStatus = "healthy"
	HealthStatusWarning  HealthStatus = "warning"
	HealthStatusCritical HealthStatus = "critical"
)

// Anomaly describes a single detected deviation. Immutable once created.
type Anomaly struct {
	ID              string      `json:"id"`
	Type            AnomalyType `json:"type"`
	Severity        Severity    `json:"severity"`
	Metric          string      `json:"metric"`
	Value           float64     `json:"value"`
	ExpectedValue   float64     `json:"expected_value"`
	Deviation       float64     `json:"deviation"`
	Timestamp       time.Time   `json:"timestamp"`
	Confidence      float64     `json:"confidence"` // 0..1
	Description     string      `json:"description"`
	Recommendations []string    `json:"recommendations"`
	RelatedMetrics  []string    `json:"related_metrics"`
}

// PredictionPoint is a single horizon forecast with confidence bounds.
type PredictionPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Value      float64   `json:"value"`
	Confidence float64   `json:"confidence"`
	UpperBound float64   `json:"upper_bound"`
	LowerBound float64   `json:"lower_bound"`
}

// Prediction holds the live forecast for one metric. It is fully
// overwritten each analysis cycle.
type Prediction struct {
	Metric      string            `json:"metric"`
	Timeframe   string            `json:"timeframe"`
	Predictions []PredictionPoint `json:"predictions"`
	Trend       TrendDirection    `json:"trend"`
	Accuracy    float64           `json:"accuracy"` // 0..100, R² based
	RiskFactors []string          `json:"risk_factors"`
}

// Pattern describes a recurring periodicity finding.
type Pattern struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         PatternType `json:"type"`
	Description  string      `json:"description"`
	Strength     float64     `json:"strength"` // 0..1
	Periodicity  string      `json:"periodicity"`
	Significance float64     `json:"significance"` // 0..1
	Metrics      []string    `json:"metrics"`
	DetectedAt   time.Time   `json:"detected_at"`
}

// AnomalyFilter narrows GetAnomalies results. Zero fields match everything.
type AnomalyFilter struct {
	Severity       Severity `json:"severity,omitempty"`
	Metric         string   `json:"metric,omitempty"`
	TimeRangeHours int      `json:"time_range_hours,omitempty"`
}

// PatternFilter narrows GetPatterns results. Zero fields match everything.
type PatternFilter struct {
	Type   PatternType `json:"type,omitempty"`
	Metric string      `json:"metric,omitempty"`
}

// AnomalyStats aggregates anomaly history for the summary.
type AnomalyStats struct {
	Total       int `json:"total"`
	Critical    int `json:"critical"`
	RecentCount int `json:"recent_count"` // last hour
}

// PredictionStats aggregates live predictions for the summary.
type PredictionStats struct {
	Total         int     `json:"total"`
	Accurate      int     `json:"accurate"` // accuracy >= 80
	AvgConfidence float64 `json:"avg_confidence"`
}

// PatternStats aggregates pattern findings for the summary.
type PatternStats struct {
	Total    int `json:"total"`
	Seasonal int `json:"seasonal"`
	Cyclical int `json:"cyclical"`
}

// Health is the derived 0-100 health indicator.
type Health struct {
	Score  float64      `json:"score"`
	Status HealthStatus `json:"status"`
	Issues []string     `json:"issues"`
}

// Summary is the aggregate view over all bounded result stores.
type Summary struct {
	Anomalies   AnomalyStats    `json:"anomalies"`
	Predictions PredictionStats `json:"predictions"`
	Patterns    PatternStats    `json:"patterns"`
	Health      Health          `json:"health"`
	GeneratedAt time.Time       `json:"generated_at"`
}
