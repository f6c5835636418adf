package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/giantswarm/mcp-sacloud/internal/docs"
	"github.com/giantswarm/mcp-sacloud/internal/instrumentation"
	"github.com/giantswarm/mcp-sacloud/internal/logging"
	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// envValueTrue is the string value used to enable boolean environment variables.
const envValueTrue = "true"

// Environment variables read by the serve command besides the credentials.
const (
	envMaxResponseBytes = "MAX_RESPONSE_BYTES"
	envRequestTimeout   = "REQUEST_TIMEOUT"
	envAllowedOrigins   = "ALLOWED_ORIGINS"
	envEnableHSTS       = "ENABLE_HSTS"
)

const defaultEnvFile = ".env"

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	// Tool behavior
	NonDestructiveMode bool
	DryRun             bool
	DebugMode          bool
	RequestTimeout     time.Duration
	MaxResponseBytes   int

	// EnvFile is loaded before the credentials are read. A missing file is
	// an error only when EnvFileRequired is set.
	EnvFile         string
	EnvFileRequired bool

	Metrics MetricsServeConfig
}

// MetricsServeConfig holds the dedicated metrics server configuration.
type MetricsServeConfig struct {
	Enabled bool
	Addr    string
}

// Validate checks the transport and the numeric limits.
func (c ServeConfig) Validate() error {
	switch c.Transport {
	case transportStdio, transportSSE, transportStreamableHTTP:
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", c.Transport)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxResponseBytes < 0 {
		return fmt.Errorf("max response bytes must not be negative, got %d", c.MaxResponseBytes)
	}
	return nil
}

// loadEnvFile loads path into the process environment. Variables that are
// already set keep their value.
func loadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// applyEnvDefaults fills settings from the environment for flags the user did not set.
func applyEnvDefaults(cmd *cobra.Command, config *ServeConfig) {
	if !cmd.Flags().Changed("max-response-bytes") {
		if n, ok := parseIntEnv(os.Getenv(envMaxResponseBytes), envMaxResponseBytes); ok {
			config.MaxResponseBytes = n
		}
	}
	if !cmd.Flags().Changed("request-timeout") {
		if d, ok := parseDurationEnv(os.Getenv(envRequestTimeout), envRequestTimeout); ok {
			config.RequestTimeout = d
		}
	}
}

// parseDurationEnv parses a duration from an environment variable value.
// Returns the parsed duration and true if successful, or zero and false if parsing fails.
// Logs a warning if the value is present but invalid.
func parseDurationEnv(value, envName string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in environment", "env", envName, "value", value, logging.KeyError, err)
		return 0, false
	}
	return d, true
}

// parseIntEnv parses an integer from an environment variable value.
// Returns the parsed int and true if successful, or zero and false if parsing fails.
// Logs a warning if the value is present but invalid.
func parseIntEnv(value, envName string) (int, bool) {
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment", "env", envName, "value", value, logging.KeyError, err)
		return 0, false
	}
	return n, true
}

// newLogger returns the process logger. It writes text records to w, which
// must not be stdout when the stdio transport is used.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newServerContext builds the server context from config and the environment.
// Missing credentials are reported but do not stop the server; the tools
// return the localized message instead.
func newServerContext(ctx context.Context, config ServeConfig, logger *slog.Logger, provider *instrumentation.Provider) (*server.ServerContext, error) {
	creds := sacloud.CredentialsFromEnv()
	if err := creds.Check(); err != nil {
		logger.Warn("Sakura Cloud credentials are incomplete", logging.KeyError, err)
	}

	userAgent := sacloud.DefaultUserAgent
	if rootCmd.Version != "" {
		userAgent += "/" + rootCmd.Version
	}

	metrics := provider.Metrics()
	client := sacloud.NewClient(creds,
		sacloud.WithHTTPClient(&http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   config.RequestTimeout,
		}),
		sacloud.WithUserAgent(userAgent),
		sacloud.WithClientLogger(logger),
		sacloud.WithRequestObserver(metrics.RecordAPIRequest),
	)
	docsClient := docs.NewClient(docs.WithFetchObserver(metrics.RecordDocsFetch))

	serverConfig := server.NewDefaultConfig()
	if rootCmd.Version != "" {
		serverConfig.Version = rootCmd.Version
	}
	serverConfig.NonDestructiveMode = config.NonDestructiveMode
	serverConfig.DryRun = config.DryRun
	serverConfig.MaxResponseBytes = config.MaxResponseBytes
	serverConfig.RequestTimeout = config.RequestTimeout
	if config.DebugMode {
		serverConfig.LogLevel = "debug"
	}

	return server.NewServerContext(ctx,
		server.WithConfig(serverConfig),
		server.WithClient(client),
		server.WithDocsClient(docsClient),
		server.WithObjectStorageCredentials(sacloud.ObjectStorageCredentialsFromEnv()),
		server.WithLogger(logging.NewSlogAdapter(logger)),
		server.WithInstrumentationProvider(provider),
	)
}
