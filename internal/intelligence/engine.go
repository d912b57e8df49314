// Package intelligence implements the performance intelligence engine:
// a bounded, in-memory analytics cache that ingests scalar telemetry
// samples and derives anomaly alerts, horizon forecasts and
// recurring-pattern findings.
//
// The engine performs all analysis synchronously inside the ingestion
// call; it owns no goroutines or timers. A single mutex guards the whole
// instance, which is sufficient given the bounded, short-lived work per
// call. Hosting applications own the instance lifetime; there is no
// package-level default engine.
package intelligence

import (
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Instrumentation receives engine events for export. All methods must be
// cheap and non-blocking; the engine calls them under its mutex.
type Instrumentation interface {
	SamplesIngested(count int)
	AnalysisCompleted(duration time.Duration, trackedMetrics int)
	AnomalyDetected(anomalyType AnomalyType, severity Severity)
	HealthScore(score float64)
}

// Engine is the performance intelligence engine. Construct with New;
// the zero value is not usable.
type Engine struct {
	mu     sync.Mutex
	logger *logrus.Logger
	config *Config
	instr  Instrumentation

	store       *metricStore
	anomalies   []Anomaly              // most recent first, capped
	predictions map[string]*Prediction // one live prediction per metric
	patterns    []Pattern              // chronological, capped

	detector  *anomalyDetector
	forecast  *forecaster
	patterner *patternDetector
}

// New creates an engine. A nil config takes the documented defaults;
// partial configs are merged over them. A nil logger falls back to a
// default logrus logger.
func New(cfg *Config, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	merged := cfg.WithDefaults()

	return &Engine{
		logger:      logger,
		config:      merged,
		store:       newMetricStore(),
		predictions: make(map[string]*Prediction),
		detector:    newAnomalyDetector(merged.Anomaly),
		forecast:    newForecaster(merged.Forecast),
		patterner:   newPatternDetector(merged.Pattern),
	}
}

// SetInstrumentation attaches a metrics sink. Pass nil to detach.
func (e *Engine) SetInstrumentation(instr Instrumentation) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.instr = instr
}

// Config returns a copy of the effective engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// AddMetrics ingests a batch of named samples. The optional timestamp
// defaults to the call time. Once enough samples exist the full
// analysis pipeline runs synchronously before returning. Non-finite
// values are accepted and propagate into downstream statistics; this
// permissive behavior is intentional (see package docs). An empty batch
// is a no-op.
func (e *Engine) AddMetrics(samples map[string]float64, timestamp ...time.Time) {
	if len(samples) == 0 {
		return
	}

	ts := time.Now()
	if len(timestamp) > 0 {
		ts = timestamp[0]
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.add(samples, ts)
	if e.instr != nil {
		e.instr.SamplesIngested(len(samples))
	}

	if e.store.axisLen() >= e.config.Anomaly.MinDataPoints {
		e.runAnalysis(ts)
	}
}

// runAnalysis executes the anomaly, forecast and pattern stages in
// order for every tracked metric. Caller holds the mutex.
func (e *Engine) runAnalysis(now time.Time) {
	started := time.Now()
	names := e.store.metricNames()

	for _, name := range names {
		values := e.store.values(name)
		for _, anomaly := range e.detector.detect(name, values, now, names) {
			e.recordAnomaly(anomaly)
		}
	}

	for _, name := range names {
		values := e.store.values(name)
		recent := e.countRecentAnomalies(name, now)
		if prediction := e.forecast.forecast(name, values, now, recent); prediction != nil {
			e.predictions[name] = prediction
		}
	}

	for _, name := range names {
		values := e.store.values(name)
		if pattern := e.patterner.detectSeasonal(name, values, now); pattern != nil {
			e.recordPattern(*pattern)
		}
		if pattern := e.patterner.detectCyclical(name, values, now); pattern != nil {
			e.recordPattern(*pattern)
		}
	}

	if e.instr != nil {
		e.instr.AnalysisCompleted(time.Since(started), len(names))
		e.instr.HealthScore(computeSummary(e.anomalies, e.predictions, e.patterns, now).Health.Score)
	}
}

// recordAnomaly prepends to the bounded most-recent-first history.
func (e *Engine) recordAnomaly(anomaly Anomaly) {
	e.anomalies = append([]Anomaly{anomaly}, e.anomalies...)
	if len(e.anomalies) > maxAnomalyHistory {
		e.anomalies = e.anomalies[:maxAnomalyHistory]
	}

	if e.instr != nil {
		e.instr.AnomalyDetected(anomaly.Type, anomaly.Severity)
	}

	e.logger.WithFields(logrus.Fields{
		"metric":   anomaly.Metric,
		"type":     anomaly.Type,
		"severity": anomaly.Severity,
		"value":    anomaly.Value,
		"expected": anomaly.ExpectedValue,
	}).Debug("Anomaly detected")
}

// recordPattern appends, drops findings below the significance
// threshold and caps the list to the most recent entries.
func (e *Engine) recordPattern(pattern Pattern) {
	e.patterns = append(e.patterns, pattern)

	filtered := e.patterns[:0]
	for _, p := range e.patterns {
		if p.Significance >= e.config.Pattern.SignificanceThreshold {
			filtered = append(filtered, p)
		}
	}
	e.patterns = filtered

	if len(e.patterns) > maxPatterns {
		e.patterns = e.patterns[len(e.patterns)-maxPatterns:]
	}
}

// countRecentAnomalies counts history entries for a metric within the
// last hour relative to now.
func (e *Engine) countRecentAnomalies(metric string, now time.Time) int {
	cutoff := now.Add(-recentWindow)
	count := 0
	for _, anomaly := range e.anomalies {
		if anomaly.Metric == metric && anomaly.Timestamp.After(cutoff) {
			count++
		}
	}
	return count
}

// GetAnomalies returns the anomaly history narrowed by the filter,
// sorted by timestamp descending.
func (e *Engine) GetAnomalies(filter AnomalyFilter) []Anomaly {
	e.mu.Lock()
	defer e.mu.Unlock()

	var cutoff time.Time
	if filter.TimeRangeHours > 0 {
		cutoff = time.Now().Add(-time.Duration(filter.TimeRangeHours) * time.Hour)
	}

	result := make([]Anomaly, 0, len(e.anomalies))
	for _, anomaly := range e.anomalies {
		if filter.Severity != "" && anomaly.Severity != filter.Severity {
			continue
		}
		if filter.Metric != "" && anomaly.Metric != filter.Metric {
			continue
		}
		if !cutoff.IsZero() && !anomaly.Timestamp.After(cutoff) {
			continue
		}
		result = append(result, anomaly)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result
}

// GetPrediction returns the live prediction for a metric.
func (e *Engine) GetPrediction(metric string) (Prediction, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prediction, ok := e.predictions[metric]
	if !ok {
		return Prediction{}, false
	}
	return *prediction, true
}

// GetAllPredictions returns every live prediction, sorted by metric name.
func (e *Engine) GetAllPredictions() []Prediction {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := make([]Prediction, 0, len(e.predictions))
	for _, prediction := range e.predictions {
		result = append(result, *prediction)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Metric < result[j].Metric
	})
	return result
}

// GetPatterns returns pattern findings narrowed by the filter, sorted
// by strength descending.
func (e *Engine) GetPatterns(filter PatternFilter) []Pattern {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := make([]Pattern, 0, len(e.patterns))
	for _, pattern := range e.patterns {
		if filter.Type != "" && pattern.Type != filter.Type {
			continue
		}
		if filter.Metric != "" && !patternCoversMetric(pattern, filter.Metric) {
			continue
		}
		result = append(result, pattern)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Strength > result[j].Strength
	})
	return result
}

func patternCoversMetric(pattern Pattern, metric string) bool {
	for _, name := range pattern.Metrics {
		if name == metric {
			return true
		}
	}
	return false
}

// GetIntelligenceSummary aggregates the result stores and derives the
// health score.
func (e *Engine) GetIntelligenceSummary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return computeSummary(e.anomalies, e.predictions, e.patterns, time.Now())
}

// ClearData resets every store to empty. Subsequent summaries read as a
// fresh baseline.
func (e *Engine) ClearData() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.clear()
	e.anomalies = nil
	e.predictions = make(map[string]*Prediction)
	e.patterns = nil

	e.logger.Info("Intelligence stores cleared")
}
