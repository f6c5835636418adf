package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-sacloud/internal/instrumentation"
	"github.com/giantswarm/mcp-sacloud/internal/server/middleware"
)

const (
	// DefaultReadHeaderTimeout is the default timeout for reading request headers
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds a response; create operations on the API can be slow.
	DefaultWriteTimeout = 120 * time.Second

	// DefaultIdleTimeout is the default idle timeout for keepalive connections
	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout is the default timeout for graceful server shutdown
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultMaxRequestBytes limits JSON-RPC request bodies.
	DefaultMaxRequestBytes = 1 << 20
)

// Transport names accepted by HTTPServer.
const (
	TransportStreamableHTTP = "streamable-http"
	TransportSSE            = "sse"
)

// ErrUnsupportedTransport is returned for transports HTTPServer does not serve.
var ErrUnsupportedTransport = errors.New("unsupported HTTP transport")

// HTTPConfig configures the HTTP transports.
type HTTPConfig struct {
	Transport string
	Addr      string

	// Endpoint is the streamable HTTP MCP path.
	Endpoint string

	// SSEEndpoint and MessageEndpoint are the SSE transport paths.
	SSEEndpoint     string
	MessageEndpoint string

	// AllowedOrigins is a comma separated CORS origin list.
	AllowedOrigins string
	EnableHSTS     bool

	MaxRequestBytes int64

	InstrumentationProvider *instrumentation.Provider
}

// HTTPServer serves the MCP server over streamable HTTP or SSE together with
// the health endpoints.
type HTTPServer struct {
	mcpServer *mcpserver.MCPServer
	config    HTTPConfig
	health    *HealthChecker

	mu         sync.Mutex
	httpServer *http.Server
}

// NewHTTPServer validates config and prepares the server without listening.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, sc *ServerContext, config HTTPConfig) (*HTTPServer, error) {
	if mcpServer == nil {
		return nil, errors.New("mcp server is required")
	}
	switch config.Transport {
	case TransportStreamableHTTP, TransportSSE:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTransport, config.Transport)
	}
	if config.Endpoint == "" {
		config.Endpoint = "/mcp"
	}
	if config.SSEEndpoint == "" {
		config.SSEEndpoint = "/sse"
	}
	if config.MessageEndpoint == "" {
		config.MessageEndpoint = "/message"
	}
	if config.MaxRequestBytes == 0 {
		config.MaxRequestBytes = DefaultMaxRequestBytes
	}

	return &HTTPServer{
		mcpServer: mcpServer,
		config:    config,
		health:    NewHealthChecker(sc),
	}, nil
}

// HealthChecker returns the health checker serving /healthz and /readyz.
func (s *HTTPServer) HealthChecker() *HealthChecker {
	return s.health
}

// Handler builds the routed and wrapped handler.
func (s *HTTPServer) Handler() (http.Handler, error) {
	allowedOrigins, err := middleware.ValidateAllowedOrigins(s.config.AllowedOrigins)
	if err != nil {
		return nil, fmt.Errorf("invalid ALLOWED_ORIGINS: %w", err)
	}

	mux := http.NewServeMux()
	s.health.RegisterHealthEndpoints(mux)

	switch s.config.Transport {
	case TransportStreamableHTTP:
		mux.Handle(s.config.Endpoint, mcpserver.NewStreamableHTTPServer(s.mcpServer,
			mcpserver.WithEndpointPath(s.config.Endpoint),
		))
	case TransportSSE:
		sse := mcpserver.NewSSEServer(s.mcpServer,
			mcpserver.WithSSEEndpoint(s.config.SSEEndpoint),
			mcpserver.WithMessageEndpoint(s.config.MessageEndpoint),
		)
		mux.Handle(s.config.SSEEndpoint, sse)
		mux.Handle(s.config.MessageEndpoint, sse)
	}

	var handler http.Handler = mux
	handler = middleware.MaxRequestSize(s.config.MaxRequestBytes)(handler)
	handler = middleware.CORS(allowedOrigins)(handler)
	handler = middleware.SecurityHeaders(middleware.SecurityHeadersConfig{EnableHSTS: s.config.EnableHSTS})(handler)
	handler = middleware.HTTPMetrics(s.config.InstrumentationProvider)(handler)
	return handler, nil
}

// Start listens on the configured address until Shutdown is called.
// It returns http.ErrServerClosed after a graceful shutdown.
func (s *HTTPServer) Start() error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           handler,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}
	// SSE streams stay open for the session lifetime.
	if s.config.Transport == TransportSSE {
		srv.WriteTimeout = 0
	}

	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	return srv.ListenAndServe()
}

// Shutdown marks the server not ready and gracefully stops the listener.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
