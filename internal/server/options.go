package server

import (
	"errors"

	"github.com/giantswarm/mcp-sacloud/internal/docs"
	"github.com/giantswarm/mcp-sacloud/internal/instrumentation"
	"github.com/giantswarm/mcp-sacloud/internal/objectstorage"
	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithClient sets the Sakura Cloud API client.
func WithClient(client *sacloud.Client) Option {
	return func(sc *ServerContext) error {
		if client == nil {
			return ErrMissingClient
		}
		sc.client = client
		return nil
	}
}

// WithZones replaces the zone registry.
func WithZones(zones *sacloud.Registry) Option {
	return func(sc *ServerContext) error {
		if zones == nil {
			return ErrMissingZones
		}
		sc.zones = zones
		return nil
	}
}

// WithObjectStorageZones replaces the object storage registry.
func WithObjectStorageZones(zones *sacloud.Registry) Option {
	return func(sc *ServerContext) error {
		if zones == nil {
			return ErrMissingZones
		}
		sc.objectStorageZones = zones
		return nil
	}
}

// WithObjectStorageCredentials sets the S3 key pair.
func WithObjectStorageCredentials(creds sacloud.ObjectStorageCredentials) Option {
	return func(sc *ServerContext) error {
		sc.objectStorageCredentials = creds
		return nil
	}
}

// WithBucketClient injects a prebuilt object storage client.
func WithBucketClient(client *objectstorage.Client) Option {
	return func(sc *ServerContext) error {
		sc.bucketClient = client
		return nil
	}
}

// WithDocsClient sets the documentation client.
func WithDocsClient(client *docs.Client) Option {
	return func(sc *ServerContext) error {
		sc.docsClient = client
		return nil
	}
}

// WithLogger sets the logger for the ServerContext.
func WithLogger(logger Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the configuration for the ServerContext.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config.Clone()
		return nil
	}
}

// WithServerName sets the server name in the configuration.
func WithServerName(name string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ServerName = name
		return nil
	}
}

// WithNonDestructiveMode enables or disables non-destructive mode.
func WithNonDestructiveMode(enabled bool) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.NonDestructiveMode = enabled
		return nil
	}
}

// WithDryRun enables or disables dry-run mode.
func WithDryRun(enabled bool) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.DryRun = enabled
		return nil
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.LogLevel = level
		return nil
	}
}

// WithMaxResponseBytes sets the tool output truncation limit.
func WithMaxResponseBytes(n int) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		if n < 0 {
			n = 0
		}
		sc.config.MaxResponseBytes = n
		return nil
	}
}

// WithInstrumentationProvider sets the OpenTelemetry instrumentation provider.
func WithInstrumentationProvider(provider *instrumentation.Provider) Option {
	return func(sc *ServerContext) error {
		sc.instrumentationProvider = provider
		return nil
	}
}

// Error definitions for ServerContext validation and operations.
var (
	ErrMissingClient  = errors.New("sacloud client is required")
	ErrMissingZones   = errors.New("zone registry is required")
	ErrMissingLogger  = errors.New("logger is required")
	ErrMissingConfig  = errors.New("configuration is required")
	ErrServerShutdown = errors.New("server context has been shutdown")
)
