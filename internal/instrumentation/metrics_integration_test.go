package instrumentation

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// scrapeMetrics fetches the global Prometheus registry that the OTel
// prometheus exporter registers to, the same way the metrics server does.
func scrapeMetrics(t *testing.T) (int, string) {
	t.Helper()
	server := httptest.NewServer(promhttp.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("Failed to fetch metrics: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read metrics body: %v", err)
	}
	return resp.StatusCode, string(body)
}

// TestAllMetricsExposedViaPrometheus verifies every metric defined in
// metrics.go is recorded and exposed on the Prometheus endpoint.
func TestAllMetricsExposedViaPrometheus(t *testing.T) {
	config := Config{
		ServiceName:     "test-metrics-integration",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
		TracingExporter: ExporterNone,
	}

	ctx := context.Background()
	provider, err := NewProvider(ctx, config)
	if err != nil {
		t.Fatalf("Failed to create instrumentation provider: %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("Metrics should not be nil")
	}

	recordAllMetrics(ctx, metrics)

	status, metricsOutput := scrapeMetrics(t)
	if status != http.StatusOK {
		t.Skipf("metrics endpoint returned %d; another provider in this process registered the same series", status)
	}

	expectedMetrics := []struct {
		name        string
		isHistogram bool
	}{
		{"http_requests_total", false},
		{"http_request_duration_seconds", true},
		{"mcp_tool_calls_total", false},
		{"mcp_tool_call_duration_seconds", true},
		{"sacloud_api_requests_total", false},
		{"sacloud_api_request_duration_seconds", true},
		{"sacloud_api_errors_total", false},
		{"sacloud_docs_fetch_total", false},
	}

	for _, m := range expectedMetrics {
		found := false
		if m.isHistogram {
			for _, suffix := range []string{"_bucket", "_sum", "_count"} {
				if containsMetric(metricsOutput, m.name+suffix) {
					found = true
					break
				}
			}
		} else {
			found = containsMetric(metricsOutput, m.name)
		}

		if !found {
			t.Errorf("Missing metric %s", m.name)
		}
	}

	labels := []string{
		`method="POST"`,
		`path="/mcp"`,
		`tool="get_server_list"`,
		`resource_type="server"`,
		`zone_region="ishikari"`,
		`status_class="2xx"`,
		`kind="status"`,
		`source="manual"`,
	}
	for _, label := range labels {
		if !strings.Contains(metricsOutput, label) {
			t.Errorf("Missing label %s", label)
		}
	}
}

// recordAllMetrics calls every Record* function once.
func recordAllMetrics(ctx context.Context, m *Metrics) {
	m.RecordHTTPRequest(ctx, "POST", "/mcp", 200, 25*time.Millisecond)
	m.RecordToolCall(ctx, "get_server_list", StatusSuccess, 40*time.Millisecond)
	m.RecordAPIRequest(ctx, "GET", "https://secure.sakura.ad.jp/cloud/zone/is1a/api/cloud/1.1/server", 200, 30*time.Millisecond)
	m.RecordAPIError(ctx, "get_server_list", "status")
	m.RecordDocsFetch(ctx, "manual", StatusSuccess)
}

// containsMetric reports whether a sample line for metricName is present.
// The OTel exporter may append unit suffixes, so a prefix match on the
// line start is used.
func containsMetric(metricsOutput, metricName string) bool {
	for _, line := range strings.Split(metricsOutput, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, metricName) {
			return true
		}
	}
	return false
}
