package instrumentation

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrMethod       = "method"
	attrPath         = "path"
	attrStatus       = "status"
	attrStatusClass  = "status_class"
	attrOperation    = "operation"
	attrResourceType = "resource_type"
	attrZone         = "zone"
	attrZoneRegion   = "zone_region"
	attrTool         = "tool"
	attrKind         = "kind"
	attrSource       = "source"
)

var durationBuckets = []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP server metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// MCP tool metrics
	toolCallsTotal   metric.Int64Counter
	toolCallDuration metric.Float64Histogram

	// Sakura Cloud API metrics
	apiRequestsTotal   metric.Int64Counter
	apiRequestDuration metric.Float64Histogram
	apiErrorsTotal     metric.Int64Counter

	// Documentation scraping metrics
	docsFetchTotal metric.Int64Counter

	// detailedLabels adds the raw zone name to API metrics
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.toolCallsTotal, err = meter.Int64Counter(
		"mcp_tool_calls_total",
		metric.WithDescription("Total number of MCP tool calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_calls_total counter: %w", err)
	}

	m.toolCallDuration, err = meter.Float64Histogram(
		"mcp_tool_call_duration_seconds",
		metric.WithDescription("MCP tool call duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_call_duration_seconds histogram: %w", err)
	}

	m.apiRequestsTotal, err = meter.Int64Counter(
		"sacloud_api_requests_total",
		metric.WithDescription("Total number of Sakura Cloud API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sacloud_api_requests_total counter: %w", err)
	}

	m.apiRequestDuration, err = meter.Float64Histogram(
		"sacloud_api_request_duration_seconds",
		metric.WithDescription("Sakura Cloud API request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sacloud_api_request_duration_seconds histogram: %w", err)
	}

	m.apiErrorsTotal, err = meter.Int64Counter(
		"sacloud_api_errors_total",
		metric.WithDescription("Total number of failed Sakura Cloud tool calls by failure kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sacloud_api_errors_total counter: %w", err)
	}

	m.docsFetchTotal, err = meter.Int64Counter(
		"sacloud_docs_fetch_total",
		metric.WithDescription("Total number of manual and price page fetches"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sacloud_docs_fetch_total counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordToolCall records one MCP tool invocation. status is StatusSuccess or StatusError.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string, duration time.Duration) {
	if m == nil || m.toolCallsTotal == nil || m.toolCallDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	}

	m.toolCallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolCallDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordAPIRequest records one round trip to the Sakura Cloud API.
//
// The URL is reduced to an operation, a resource type and a zone region, so
// resource IDs never become label values. The raw zone is added only when
// detailed labels are enabled.
func (m *Metrics) RecordAPIRequest(ctx context.Context, method, rawURL string, statusCode int, duration time.Duration) {
	if m == nil || m.apiRequestsTotal == nil || m.apiRequestDuration == nil {
		return
	}

	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	zone := ZoneFromPath(path)

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, strings.ToUpper(method)),
		attribute.String(attrOperation, ClassifyOperation(method, path)),
		attribute.String(attrResourceType, ResourceTypeFromPath(path)),
		attribute.String(attrStatusClass, StatusClass(statusCode)),
		attribute.String(attrZoneRegion, ClassifyZone(zone)),
	}
	if m.detailedLabels {
		attrs = append(attrs, attribute.String(attrZone, zone))
	}

	m.apiRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.apiRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordAPIError counts a failed tool call by failure kind
// (validation, transport, status, unexpected).
func (m *Metrics) RecordAPIError(ctx context.Context, tool, kind string) {
	if m == nil || m.apiErrorsTotal == nil {
		return
	}

	m.apiErrorsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrKind, kind),
	))
}

// RecordDocsFetch counts a manual or price page fetch. source is one of
// "manual", "api_manual", "objectstorage_manual" or "price".
func (m *Metrics) RecordDocsFetch(ctx context.Context, source, status string) {
	if m == nil || m.docsFetchTotal == nil {
		return
	}

	m.docsFetchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrSource, source),
		attribute.String(attrStatus, status),
	))
}

// ZoneFromPath extracts the zone code from a "/cloud/zone/<zone>/..." path.
// It returns "" for paths without a zone segment.
func ZoneFromPath(path string) string {
	const marker = "/zone/"
	idx := strings.Index(path, marker)
	if idx < 0 {
		return ""
	}
	zone, _, _ := strings.Cut(path[idx+len(marker):], "/")
	return zone
}
