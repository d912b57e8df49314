package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendationsFor(t *testing.T) {
	tests := []struct {
		name        string
		metric      string
		anomalyType AnomalyType
		wantFirst   string
	}{
		{
			name:        "latency spike",
			metric:      "api_latency",
			anomalyType: AnomalyTypeSpike,
			wantFirst:   "Check for connection pool exhaustion or slow downstream calls",
		},
		{
			name:        "latency drop",
			metric:      "checkout_response_time",
			anomalyType: AnomalyTypeDrop,
			wantFirst:   "Verify measurement pipeline is still reporting correctly",
		},
		{
			name:        "error spike",
			metric:      "payment_error_rate",
			anomalyType: AnomalyTypeSpike,
			wantFirst:   "Review application logs around the anomaly window",
		},
		{
			name:        "traffic drop",
			metric:      "request_throughput",
			anomalyType: AnomalyTypeDrop,
			wantFirst:   "Check load balancer target health",
		},
		{
			name:        "unmatched metric falls back to defaults",
			metric:      "queue_depth",
			anomalyType: AnomalyTypeSpike,
			wantFirst:   "Correlate the anomaly window with deployment and incident timelines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recommendations := recommendationsFor(tt.metric, tt.anomalyType)

			assert.NotEmpty(t, recommendations)
			assert.Equal(t, tt.wantFirst, recommendations[0])
		})
	}
}

func TestRecommendationsForIsCaseInsensitive(t *testing.T) {
	recommendations := recommendationsFor("API_Latency", AnomalyTypeSpike)
	assert.Equal(t, "Check for connection pool exhaustion or slow downstream calls", recommendations[0])
}

func TestBaseMetricName(t *testing.T) {
	assert.Equal(t, "checkout", baseMetricName("checkout_latency"))
	assert.Equal(t, "checkout", baseMetricName("checkout_error"))
	assert.Equal(t, "checkout", baseMetricName("checkout_throughput"))
	assert.Equal(t, "queue_depth", baseMetricName("queue_depth"))
}

func TestRelatedMetrics(t *testing.T) {
	tracked := []string{
		"checkout_error",
		"checkout_latency",
		"checkout_throughput",
		"search_latency",
	}

	related := relatedMetrics("checkout_latency", tracked, 5)

	assert.Equal(t, []string{"checkout_error", "checkout_throughput"}, related)
}

func TestRelatedMetricsHonorsLimit(t *testing.T) {
	tracked := []string{
		"svc_error", "svc_latency", "svc_response", "svc_throughput", "svc_time",
	}

	related := relatedMetrics("svc_latency", tracked, 2)

	assert.Len(t, related, 2)
}

func TestSuggestsPerformanceMetric(t *testing.T) {
	assert.True(t, suggestsPerformanceMetric("availability_percent"))
	assert.True(t, suggestsPerformanceMetric("quality_score"))
	assert.True(t, suggestsPerformanceMetric("Service_Health"))
	assert.False(t, suggestsPerformanceMetric("api_latency"))
}
