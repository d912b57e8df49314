// Package metrics exports Prometheus instrumentation for the
// intelligence engine host.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inferloop/perfintel/internal/intelligence"
)

// Collector implements intelligence.Instrumentation backed by a private
// Prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	samplesIngested  prometheus.Counter
	analysisDuration prometheus.Histogram
	anomaliesTotal   *prometheus.CounterVec
	trackedMetrics   prometheus.Gauge
	healthScore      prometheus.Gauge
}

// NewCollector creates and registers the engine metrics under the given
// namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		samplesIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_ingested_total",
			Help:      "Total number of telemetry samples ingested",
		}),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a full synchronous analysis cycle",
			Buckets:   prometheus.DefBuckets,
		}),
		anomaliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "anomalies_detected_total",
			Help:      "Total anomalies detected by type and severity",
		}, []string{"type", "severity"}),
		trackedMetrics: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracked_metrics",
			Help:      "Number of metric series currently tracked",
		}),
		healthScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "health_score",
			Help:      "Derived health score, 0-100",
		}),
	}

	c.registry.MustRegister(
		c.samplesIngested,
		c.analysisDuration,
		c.anomaliesTotal,
		c.trackedMetrics,
		c.healthScore,
	)

	return c
}

// Handler returns an HTTP handler serving the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry exposes the underlying registry for additional collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// SamplesIngested implements intelligence.Instrumentation.
func (c *Collector) SamplesIngested(count int) {
	c.samplesIngested.Add(float64(count))
}

// AnalysisCompleted implements intelligence.Instrumentation.
func (c *Collector) AnalysisCompleted(duration time.Duration, trackedMetrics int) {
	c.analysisDuration.Observe(duration.Seconds())
	c.trackedMetrics.Set(float64(trackedMetrics))
}

// AnomalyDetected implements intelligence.Instrumentation.
func (c *Collector) AnomalyDetected(anomalyType intelligence.AnomalyType, severity intelligence.Severity) {
	c.anomaliesTotal.WithLabelValues(string(anomalyType), string(severity)).Inc()
}

// HealthScore implements intelligence.Instrumentation.
func (c *Collector) HealthScore(score float64) {
	c.healthScore.Set(score)
}
