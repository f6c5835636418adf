package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/mcp-sacloud/internal/instrumentation"
	"github.com/giantswarm/mcp-sacloud/internal/logging"
	"github.com/giantswarm/mcp-sacloud/internal/server"
)

// runHTTPServer runs the server with the SSE or streamable HTTP transport until
// ctx is cancelled. The optional metrics server runs next to it and both are
// shut down together.
func runHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, config ServeConfig, provider *instrumentation.Provider, logger *slog.Logger) error {
	httpServer, err := server.NewHTTPServer(mcpSrv, sc, server.HTTPConfig{
		Transport:               config.Transport,
		Addr:                    config.HTTPAddr,
		Endpoint:                config.HTTPEndpoint,
		SSEEndpoint:             config.SSEEndpoint,
		MessageEndpoint:         config.MessageEndpoint,
		AllowedOrigins:          os.Getenv(envAllowedOrigins),
		EnableHSTS:              os.Getenv(envEnableHSTS) == envValueTrue,
		InstrumentationProvider: provider,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	var metricsServer *server.MetricsServer
	if config.Metrics.Enabled {
		if !provider.Enabled() {
			logger.Warn("Metrics server requested but instrumentation is disabled; set INSTRUMENTATION_ENABLED=true")
		} else {
			metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
				Addr:                    config.Metrics.Addr,
				InstrumentationProvider: provider,
			})
			if err != nil {
				return fmt.Errorf("failed to create metrics server: %w", err)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting",
			"addr", config.HTTPAddr,
			"transport", config.Transport,
			"health_endpoints", []string{"/healthz", "/readyz"})
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		g.Go(func() error {
			logger.Info("metrics server starting", "addr", metricsServer.Addr(), "endpoint", "/metrics")
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server stopped with error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received, stopping HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()

		var sg errgroup.Group
		sg.Go(func() error {
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("error shutting down HTTP server: %w", err)
			}
			return nil
		})
		if metricsServer != nil {
			sg.Go(func() error {
				if err := metricsServer.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("error shutting down metrics server: %w", err)
				}
				return nil
			})
		}
		return sg.Wait()
	})

	if err := g.Wait(); err != nil {
		logger.Error("HTTP server stopped", logging.KeyError, err)
		return err
	}
	logger.Info("HTTP server gracefully stopped")
	return nil
}
