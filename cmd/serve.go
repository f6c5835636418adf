package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/giantswarm/mcp-sacloud/internal/instrumentation"
	"github.com/giantswarm/mcp-sacloud/internal/logging"
	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools/output"
)

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	var (
		nonDestructiveMode bool
		dryRun             bool
		debugMode          bool
		requestTimeout     = sacloud.DefaultTimeout
		maxResponseBytes   int
		envFile            string

		// Transport options
		transport       string
		httpAddr        string
		sseEndpoint     string
		messageEndpoint string
		httpEndpoint    string

		// Metrics server options
		enableMetricsServer bool
		metricsAddr         string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP Sakura Cloud server",
		Long: `Start the MCP Sakura Cloud server to provide tools for the Sakura Cloud
API via the Model Context Protocol.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

Credentials:
  ACCESS_TOKEN and ACCESS_TOKEN_SECRET authenticate against the Sakura Cloud API.
  OBJECTSTORAGE_ACCESS_KEY_ID and OBJECTSTORAGE_SECRET_ACCESS_KEY are needed
  for the bucket list tool. Values are read from the environment after the
  file given by --env-file has been loaded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := ServeConfig{
				Transport:          transport,
				HTTPAddr:           httpAddr,
				SSEEndpoint:        sseEndpoint,
				MessageEndpoint:    messageEndpoint,
				HTTPEndpoint:       httpEndpoint,
				NonDestructiveMode: nonDestructiveMode,
				DryRun:             dryRun,
				DebugMode:          debugMode,
				RequestTimeout:     requestTimeout,
				MaxResponseBytes:   maxResponseBytes,
				EnvFile:            envFile,
				EnvFileRequired:    cmd.Flags().Changed("env-file"),
				Metrics: MetricsServeConfig{
					Enabled: enableMetricsServer,
					Addr:    metricsAddr,
				},
			}

			if err := loadEnvFile(config.EnvFile, config.EnvFileRequired); err != nil {
				return err
			}
			applyEnvDefaults(cmd, &config)

			return runServe(config)
		},
	}

	// Add flags for configuring the server
	cmd.Flags().BoolVar(&nonDestructiveMode, "non-destructive", false, "Reject tools that create, start, stop, attach or delete resources (default: false)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Return the request a mutating tool would send instead of sending it (default: false)")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging (default: false)")
	cmd.Flags().DurationVar(&requestTimeout, "request-timeout", sacloud.DefaultTimeout, "Timeout for a single Sakura Cloud API request (can also be set via REQUEST_TIMEOUT env var)")
	cmd.Flags().IntVar(&maxResponseBytes, "max-response-bytes", 0, fmt.Sprintf("Truncate tool responses above this many bytes, 0 disables truncation and %d suits small context windows (can also be set via MAX_RESPONSE_BYTES env var)", output.DefaultMaxResponseBytes))
	cmd.Flags().StringVar(&envFile, "env-file", defaultEnvFile, "Environment file loaded before reading credentials")

	// Transport flags
	cmd.Flags().StringVar(&transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&sseEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&messageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&httpEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// Metrics server flags
	cmd.Flags().BoolVar(&enableMetricsServer, "enable-metrics-server", false, "Serve Prometheus metrics on a dedicated port (requires INSTRUMENTATION_ENABLED=true)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address")

	return cmd
}

// runServe contains the main server logic with support for multiple transports
func runServe(config ServeConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	// stdout carries the MCP protocol in stdio mode, so logs always go to stderr.
	logger := newLogger(os.Stderr, config.DebugMode)

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry instrumentation provider
	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	instrumentationProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	instrumentationProvider.SetAuditLogger(logger)
	defer func() {
		if shutdownErr := instrumentationProvider.Shutdown(context.Background()); shutdownErr != nil {
			logger.Error("Error during instrumentation shutdown", logging.KeyError, shutdownErr)
		}
	}()

	if instrumentationProvider.Enabled() {
		logger.Info("OpenTelemetry instrumentation enabled",
			"metrics", instrumentationConfig.MetricsExporter,
			"tracing", instrumentationConfig.TracingExporter)
	}

	serverContext, err := newServerContext(shutdownCtx, config, logger, instrumentationProvider)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("Error during server context shutdown", logging.KeyError, err)
		}
	}()

	mcpSrv := newMCPServer(serverContext)
	if err := registerTools(mcpSrv, serverContext); err != nil {
		return err
	}

	switch config.Transport {
	case transportStdio:
		return runStdioServer(shutdownCtx, mcpSrv, logger)
	case transportSSE, transportStreamableHTTP:
		logger.Info("Starting MCP Sakura Cloud server", "transport", config.Transport)
		return runHTTPServer(shutdownCtx, mcpSrv, serverContext, config, instrumentationProvider, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", config.Transport)
	}
}
