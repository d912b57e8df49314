package intelligence

import (
	"sort"
	"time"
)

// maxSamplesPerMetric bounds each series and the shared timestamp axis.
// Oldest entries are evicted first.
const maxSamplesPerMetric = 1000

// metricStore holds the bounded per-metric sample buffers and the shared
// timestamp axis. It is not safe for concurrent use; the engine mutex
// guards all access.
type metricStore struct {
	series     map[string][]float64
	timestamps []time.Time
}

func newMetricStore() *metricStore {
	return &metricStore{
		series: make(map[string][]float64),
	}
}

// add appends one timestamp and one value per named metric, creating
// series lazily and trimming from the front past the capacity. NaN and
// Infinity values are stored as-is.
func (s *metricStore) add(samples map[string]float64, ts time.Time) {
	if len(samples) == 0 {
		return
	}

	s.timestamps = append(s.timestamps, ts)
	if len(s.timestamps) > maxSamplesPerMetric {
		s.timestamps = s.timestamps[len(s.timestamps)-maxSamplesPerMetric:]
	}

	for name, value := range samples {
		values := append(s.series[name], value)
		if len(values) > maxSamplesPerMetric {
			values = values[len(values)-maxSamplesPerMetric:]
		}
		s.series[name] = values
	}
}

// values returns the sample buffer for a metric, or nil if untracked.
func (s *metricStore) values(name string) []float64 {
	return s.series[name]
}

// metricNames returns all tracked metric names in sorted order so that
// analysis cycles are deterministic.
func (s *metricStore) metricNames() []string {
	names := make([]string, 0, len(s.series))
	for name := range s.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// axisLen returns the length of the shared timestamp axis.
func (s *metricStore) axisLen() int {
	return len(s.timestamps)
}

// clear resets every buffer to empty.
func (s *metricStore) clear() {
	s.series = make(map[string][]float64)
	s.timestamps = nil
}
