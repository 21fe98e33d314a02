// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	m := defaultNoopMetrics()
	assert.Nil(t, m.GetOrCreateHandler())

	// must not panic
	m.GetOrCreateCountMeter("c").Add(1)
	m.GetOrCreateCountVecMeter("cv", []string{"l"}).AddWithLabel(1, map[string]string{"l": "v"})
	m.GetOrCreateGaugeMeter("g").Set(1)
	m.GetOrCreateHistogramMeter("h", BucketExecution).Observe(1)
}

func TestPrometheusMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	Counter("test_count").Add(3)
	CounterVec("test_count_vec", []string{"result"}).AddWithLabel(2, map[string]string{"result": "valid"})
	Gauge("test_gauge").Set(7)
	Histogram("test_histogram", BucketExecution).Observe(42)

	// same meter is returned for the same name
	assert.Same(t, Counter("test_count"), Counter("test_count"))

	server := httptest.NewServer(HTTPHandler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, "drive_test_count 3")
	assert.Contains(t, text, `drive_test_count_vec{result="valid"} 2`)
	assert.Contains(t, text, "drive_test_gauge 7")
	assert.Contains(t, text, "drive_test_histogram_count 1")
}

func TestPrometheusMetrics_Families(t *testing.T) {
	InitializePrometheusMetrics()

	vec := CounterVec("families_transitions", []string{"result"})
	vec.AddWithLabel(4, map[string]string{"result": "accepted"})
	vec.AddWithLabel(1, map[string]string{"result": "rejected"})
	hist := Histogram("families_duration_ms", BucketExecution)
	hist.Observe(3)
	hist.Observe(700)

	server := httptest.NewServer(HTTPHandler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(resp.Body)
	require.NoError(t, err)

	transitions := families["drive_families_transitions"]
	require.NotNil(t, transitions)
	assert.Equal(t, dto.MetricType_COUNTER, transitions.GetType())
	var total float64
	for _, m := range transitions.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	assert.Equal(t, float64(5), total)

	duration := families["drive_families_duration_ms"]
	require.NotNil(t, duration)
	assert.Equal(t, dto.MetricType_HISTOGRAM, duration.GetType())
	assert.Equal(t, uint64(2), duration.GetMetric()[0].GetHistogram().GetSampleCount())
	assert.Equal(t, float64(703), duration.GetMetric()[0].GetHistogram().GetSampleSum())
}
