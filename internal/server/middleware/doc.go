// Package middleware provides the HTTP middleware wrapped around the MCP
// endpoints: request metrics, security headers, CORS and request size limits.
package middleware
