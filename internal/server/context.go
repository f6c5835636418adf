package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/giantswarm/mcp-sacloud/internal/docs"
	"github.com/giantswarm/mcp-sacloud/internal/instrumentation"
	"github.com/giantswarm/mcp-sacloud/internal/logging"
	"github.com/giantswarm/mcp-sacloud/internal/objectstorage"
	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
)

// Logger is the logging interface used by the server and tool handlers.
type Logger = logging.Logger

// ServerContext encapsulates all dependencies needed by the MCP server
// and provides a clean abstraction for dependency injection and lifecycle management.
type ServerContext struct {
	// Core dependencies
	client *sacloud.Client
	logger Logger
	config *Config

	// Zone registries are read-only after construction.
	zones              *sacloud.Registry
	objectStorageZones *sacloud.Registry

	// Object storage S3 access. bucketClient is built on first use unless injected.
	objectStorageCredentials sacloud.ObjectStorageCredentials
	bucketClient             *objectstorage.Client
	bucketMu                 sync.Mutex

	docsClient *docs.Client

	instrumentationProvider *instrumentation.Provider

	// Context management
	ctx    context.Context
	cancel context.CancelFunc

	// Lifecycle management
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new ServerContext with default values.
// Use the provided functional options to customize the context.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:                serverCtx,
		cancel:             cancel,
		config:             NewDefaultConfig(),
		logger:             logging.DefaultLogger(),
		zones:              sacloud.DefaultZones(),
		objectStorageZones: sacloud.ObjectStorageZones(),
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if sc.docsClient == nil {
		sc.docsClient = docs.NewClient()
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	return sc, nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ctx
}

// Client returns the Sakura Cloud API client.
func (sc *ServerContext) Client() *sacloud.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.client
}

// Credentials returns the API key pair the client signs requests with.
func (sc *ServerContext) Credentials() sacloud.Credentials {
	return sc.Client().Credentials()
}

// Zones returns the registry of zone scoped API endpoints.
func (sc *ServerContext) Zones() *sacloud.Registry {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.zones
}

// ObjectStorageZones returns the registry of object storage endpoints.
func (sc *ServerContext) ObjectStorageZones() *sacloud.Registry {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.objectStorageZones
}

// ObjectStorageCredentials returns the S3 key pair.
func (sc *ServerContext) ObjectStorageCredentials() sacloud.ObjectStorageCredentials {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.objectStorageCredentials
}

// BucketClient returns the S3 client for the object storage endpoint,
// building it from the registry and credentials on first use.
func (sc *ServerContext) BucketClient() (*objectstorage.Client, error) {
	sc.bucketMu.Lock()
	defer sc.bucketMu.Unlock()

	if sc.bucketClient != nil {
		return sc.bucketClient, nil
	}

	endpoint, err := sc.ObjectStorageZones().URL(sacloud.ObjectStorageS3Zone)
	if err != nil {
		return nil, err
	}

	var httpClient *http.Client
	if c := sc.Client(); c != nil {
		httpClient = c.HTTPClient()
	}
	client, err := objectstorage.NewClient(endpoint, sc.ObjectStorageCredentials(), httpClient)
	if err != nil {
		return nil, err
	}
	sc.bucketClient = client
	return client, nil
}

// DocsClient returns the documentation client.
func (sc *ServerContext) DocsClient() *docs.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.docsClient
}

// InstrumentationProvider returns the OpenTelemetry provider, which may be nil.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.instrumentationProvider
}

// Logger returns the logger interface.
func (sc *ServerContext) Logger() Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// Shutdown cancels the server context and flushes the instrumentation provider.
// Calling it more than once is a no-op.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.logger.Info("Shutting down server context")

	var result *multierror.Error
	if sc.instrumentationProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		if err := sc.instrumentationProvider.Shutdown(ctx); err != nil {
			result = multierror.Append(result, err)
		}
		cancel()
	}

	if sc.cancel != nil {
		sc.cancel()
	}
	sc.shutdown = true

	sc.logger.Info("Server context shutdown complete")
	return result.ErrorOrNil()
}

// IsShutdown returns true if the server context has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// validate ensures all required dependencies are set.
func (sc *ServerContext) validate() error {
	if sc.client == nil {
		return ErrMissingClient
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	if sc.zones == nil || sc.objectStorageZones == nil {
		return ErrMissingZones
	}
	return nil
}

// Config holds the server configuration.
type Config struct {
	// Server settings
	ServerName string `json:"serverName"`
	Version    string `json:"version"`

	// NonDestructiveMode refuses every tool that creates, changes or removes resources.
	NonDestructiveMode bool `json:"nonDestructiveMode"`
	// DryRun returns the request a mutating tool would send instead of sending it.
	DryRun bool `json:"dryRun"`

	LogLevel string `json:"logLevel"`

	// MaxResponseBytes truncates tool output above this size. Zero disables truncation.
	MaxResponseBytes int `json:"maxResponseBytes"`

	RequestTimeout time.Duration `json:"requestTimeout"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName:         "sacloud",
		Version:            "0.1.0",
		NonDestructiveMode: false,
		DryRun:             false,
		LogLevel:           "info",
		RequestTimeout:     sacloud.DefaultTimeout,
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
