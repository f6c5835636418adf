// Package logging provides structured logging utilities for the mcp-sacloud server.
//
// Logging goes through the standard library's slog package. The helpers here
// keep attribute names consistent and keep secrets out of log records.
//
// # Usage Patterns
//
//	logger := logging.WithTool(slog.Default(), "get_server_list")
//	logger.Info("listing servers", logging.Zone("is1a"))
//
// Sanitize data that may contain secrets or addresses before logging:
//
//	logger.Warn("request failed",
//	    logging.SanitizedErr(err),
//	    slog.String("url", logging.SanitizeURL(rawURL)))
//
// # Security Considerations
//
//   - Access tokens and secrets are never logged, only their length
//   - IP addresses are redacted from hosts and error messages
//   - Query strings and user info are stripped from URLs
package logging
