// Package instrumentation provides OpenTelemetry instrumentation for the
// mcp-sacloud server.
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Tool Metrics:
//   - mcp_tool_calls_total: Counter of tool calls by tool and status
//   - mcp_tool_call_duration_seconds: Histogram of tool call durations
//
// Sakura Cloud API Metrics:
//   - sacloud_api_requests_total: Counter of upstream calls by method, operation,
//     resource_type, status_class and zone_region
//   - sacloud_api_request_duration_seconds: Histogram of upstream call durations
//   - sacloud_api_errors_total: Counter of failed tool calls by failure kind
//   - sacloud_docs_fetch_total: Counter of manual and price page fetches
//
// # Cardinality
//
// Resource IDs never become label values. Zones are reduced to a region
// (ishikari, tokyo, sandbox, global) unless METRICS_DETAILED_LABELS is set,
// in which case the raw zone code is added as well. Use traces for
// per-resource debugging.
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: prometheus, otlp, stdout or none (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_EXPORTER_OTLP_INSECURE: Disable TLS for OTLP
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: mcp-sacloud)
//   - METRICS_DETAILED_LABELS: Add the zone label to API metrics
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordToolCall(ctx, "get_server_list", instrumentation.StatusSuccess, time.Since(start))
package instrumentation
