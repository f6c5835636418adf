// Package testdata provides a fake Sakura Cloud API and helpers for testing
// the tool packages.
package testdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
)

// Compile-time interface compliance check.
var _ server.Logger = (*MockLogger)(nil)

// Test credentials installed by NewServerContext.
const (
	Token  = "test-token"
	Secret = "test-secret"
)

// RecordedRequest is one request received by the Upstream.
type RecordedRequest struct {
	Method   string
	Path     string
	Query    url.Values
	Body     string
	Username string
	Password string
}

// Upstream is an httptest server standing in for the Sakura Cloud API.
// Every request is recorded before the handler runs.
type Upstream struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewUpstream starts an Upstream answering with handler. It is closed when the test ends.
func NewUpstream(t *testing.T, handler http.HandlerFunc) *Upstream {
	t.Helper()
	u := &Upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		user, pass, _ := r.BasicAuth()
		u.mu.Lock()
		u.requests = append(u.requests, RecordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			Query:    r.URL.Query(),
			Body:     string(body),
			Username: user,
			Password: pass,
		})
		u.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

// JSON returns a handler writing body with status 200.
func JSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

// Requests returns a copy of the recorded requests.
func (u *Upstream) Requests() []RecordedRequest {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]RecordedRequest, len(u.requests))
	copy(out, u.requests)
	return out
}

// ZonePath returns the cloud API path prefix of zone on the Upstream.
func ZonePath(zone string) string {
	return fmt.Sprintf("/cloud/zone/%s/api/cloud/1.1/", zone)
}

// Zones returns a registry of is1a and tk1a pointing at the Upstream.
func (u *Upstream) Zones() *sacloud.Registry {
	return sacloud.NewRegistry(
		sacloud.Zone{Name: "is1a", BaseURL: u.URL + ZonePath("is1a")},
		sacloud.Zone{Name: "tk1a", BaseURL: u.URL + ZonePath("tk1a")},
	)
}

// ObjectStorageZones returns an object storage registry pointing at the Upstream.
func (u *Upstream) ObjectStorageZones() *sacloud.Registry {
	return sacloud.NewRegistry(
		sacloud.Zone{Name: sacloud.ObjectStorageFedZone, BaseURL: u.URL + "/objectstorage/1.0/"},
		sacloud.Zone{Name: sacloud.ObjectStorageS3Zone, BaseURL: u.URL},
	)
}

// NewServerContext returns a server context whose client and registries
// target the Upstream. Later options override the defaults.
func NewServerContext(t *testing.T, u *Upstream, opts ...server.Option) *server.ServerContext {
	t.Helper()
	return NewServerContextWithCredentials(t, u, sacloud.Credentials{Token: Token, Secret: Secret}, opts...)
}

// NewServerContextWithCredentials is NewServerContext with explicit credentials.
func NewServerContextWithCredentials(t *testing.T, u *Upstream, creds sacloud.Credentials, opts ...server.Option) *server.ServerContext {
	t.Helper()
	client := sacloud.NewClient(creds, sacloud.WithHTTPClient(u.Client()))
	all := append([]server.Option{
		server.WithClient(client),
		server.WithZones(u.Zones()),
		server.WithObjectStorageZones(u.ObjectStorageZones()),
		server.WithLogger(&MockLogger{}),
	}, opts...)
	sc, err := server.NewServerContext(context.Background(), all...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

// CallRequest builds a tool call request with args.
func CallRequest(name string, args map[string]any) mcp.CallToolRequest {
	if args == nil {
		args = map[string]any{}
	}
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	return request
}

// ResultText returns the text of the first content item of result.
func ResultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "first content item is not text")
	return text.Text
}

// MockLogger records the messages logged at each level.
type MockLogger struct {
	mu       sync.Mutex
	Warnings []string
	Errors   []string
}

// Debug implements server.Logger.
func (m *MockLogger) Debug(string, ...any) {}

// Info implements server.Logger.
func (m *MockLogger) Info(string, ...any) {}

// Warn implements server.Logger.
func (m *MockLogger) Warn(msg string, _ ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Warnings = append(m.Warnings, msg)
}

// Error implements server.Logger.
func (m *MockLogger) Error(msg string, _ ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, msg)
}

// With implements server.Logger.
func (m *MockLogger) With(...any) server.Logger {
	return m
}

// WarningCount returns the number of warnings logged so far.
func (m *MockLogger) WarningCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Warnings)
}
