package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-sacloud/internal/instrumentation"
)

func TestStatusRecorder(t *testing.T) {
	t.Run("first status wins", func(t *testing.T) {
		rw := newStatusRecorder(httptest.NewRecorder())
		rw.WriteHeader(http.StatusBadGateway)
		rw.WriteHeader(http.StatusOK)
		assert.Equal(t, http.StatusBadGateway, rw.statusCode)
		assert.True(t, rw.written)
	})

	t.Run("write implies 200", func(t *testing.T) {
		rw := newStatusRecorder(httptest.NewRecorder())
		_, err := rw.Write([]byte(`{"ok":true}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rw.statusCode)
		assert.True(t, rw.written)
	})

	t.Run("flush and unwrap reach the recorder", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		rw := newStatusRecorder(recorder)
		rw.Flush()
		assert.True(t, recorder.Flushed)
		assert.Equal(t, recorder, rw.Unwrap())
	})
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/mcp", "/mcp"},
		{"/healthz", "/healthz"},
		{"/healthz/detailed", "/healthz/detailed"},
		{"/sse", "/sse"},
		{"/message", "/message"},
		{"/mcp/abc123xyz890def456", "/mcp/:session"},
		{"/message/session_id_12345", "/message/:session"},
		{"/files/550e8400-e29b-41d4-a716-446655440000", "/files/:uuid"},
		{"/server/113600000000/power", "/server/:id/power"},
		{"/server/113600000000", "/server/:id"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizePath(tt.input))
		})
	}
}

func TestHTTPMetrics_PassThrough(t *testing.T) {
	disabled, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{Enabled: false})
	require.NoError(t, err)
	noExport, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{
		Enabled:         true,
		MetricsExporter: instrumentation.ExporterNone,
		TracingExporter: instrumentation.ExporterNone,
	})
	require.NoError(t, err)

	providers := map[string]*instrumentation.Provider{
		"nil":      nil,
		"disabled": disabled,
		"enabled":  noExport,
	}

	for name, provider := range providers {
		t.Run(name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte(`{"jsonrpc":"2.0"}`))
			})

			req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			rec := httptest.NewRecorder()
			HTTPMetrics(provider)(handler).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusAccepted, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, `{"jsonrpc":"2.0"}`, rec.Body.String())
		})
	}
}
