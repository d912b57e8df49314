package intelligence

import "strings"

// recommendationRule maps metric name keywords to operator advice for
// spike and drop anomalies. Keeping the heuristics declarative makes
// them auditable and testable in isolation.
type recommendationRule struct {
	keywords []string
	spike    []string
	drop     []string
}

var recommendationRules = []recommendationRule{
	{
		keywords: []string{"latency", "response", "time"},
		spike: []string{
			"Check for connection pool exhaustion or slow downstream calls",
			"Compare against recent deployments for performance regressions",
			"Review resource utilization (CPU, memory, I/O) on serving hosts",
		},
		drop: []string{
			"Verify measurement pipeline is still reporting correctly",
			"Confirm caching layers have not started masking real latency",
		},
	},
	{
		keywords: []string{"error", "fail"},
		spike: []string{
			"Review application logs around the anomaly window",
			"Check health of downstream dependencies",
			"Consider enabling or tuning circuit breakers",
		},
		drop: []string{
			"Confirm error reporting is still wired up end to end",
		},
	},
	{
		keywords: []string{"throughput", "request", "traffic"},
		spike: []string{
			"Check for abnormal traffic sources (possible DDoS)",
			"Verify autoscaling is keeping up with demand",
		},
		drop: []string{
			"Check load balancer target health",
			"Verify upstream clients and DNS are routing correctly",
		},
	},
}

var defaultRecommendations = []string{
	"Correlate the anomaly window with deployment and incident timelines",
	"Review related metrics for the same service",
}

// recommendationsFor returns advice for a point anomaly, keyed on
// substrings of the metric name and the anomaly direction.
func recommendationsFor(metric string, anomalyType AnomalyType) []string {
	lower := strings.ToLower(metric)
	for _, rule := range recommendationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				if anomalyType == AnomalyTypeDrop {
					return append([]string(nil), rule.drop...)
				}
				return append([]string(nil), rule.spike...)
			}
		}
	}
	return append([]string(nil), defaultRecommendations...)
}

// metricSuffixes are stripped when grouping metrics by base name.
var metricSuffixes = []string{"_response", "_error", "_throughput", "_latency", "_time"}

// baseMetricName strips a trailing well-known suffix from a metric name.
func baseMetricName(name string) string {
	for _, suffix := range metricSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}

// relatedMetrics returns up to limit other tracked metrics sharing the
// same base name.
func relatedMetrics(metric string, tracked []string, limit int) []string {
	base := baseMetricName(metric)
	var related []string
	for _, name := range tracked {
		if name == metric {
			continue
		}
		if baseMetricName(name) == base {
			related = append(related, name)
			if len(related) >= limit {
				break
			}
		}
	}
	return related
}

// performanceIndicators mark metrics where a steep negative slope is a
// degradation signal for forecast risk factors.
var performanceIndicators = []string{"performance", "score", "health", "availability", "uptime"}

// suggestsPerformanceMetric reports whether the metric name looks like a
// higher-is-better performance or score metric.
func suggestsPerformanceMetric(metric string) bool {
	lower := strings.ToLower(metric)
	for _, kw := range performanceIndicators {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
