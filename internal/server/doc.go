// Package server holds the ServerContext shared by every tool handler and the
// HTTP infrastructure around the MCP server.
//
// ServerContext carries the Sakura Cloud API client, the zone registries, the
// object storage and documentation clients, the instrumentation provider, a
// logger and the server Config. Dependencies are injected with functional
// options:
//
//	sc, err := server.NewServerContext(ctx,
//		server.WithClient(sacloud.NewClient(sacloud.CredentialsFromEnv())),
//		server.WithObjectStorageCredentials(sacloud.ObjectStorageCredentialsFromEnv()),
//		server.WithNonDestructiveMode(true),
//	)
//	if err != nil {
//		return err
//	}
//	defer sc.Shutdown()
//
// Credentials are never required at construction time. Every tool checks them
// per call so the server starts, lists its tools and serves documentation
// without them.
//
// HTTPServer serves the streamable HTTP and SSE transports behind the
// middleware package, with /healthz, /readyz and /healthz/detailed from
// HealthChecker. MetricsServer exposes the Prometheus registry on a separate
// port.
package server
