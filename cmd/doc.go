// Package cmd provides the command-line interface for mcp-sacloud.
//
// This package implements a Cobra-based CLI with multiple subcommands:
//   - serve: Starts the MCP server (default behavior when no subcommand is provided)
//   - version: Displays the application version
//   - self-update: Updates the binary to the latest version from GitHub releases
//
// Command Structure:
//
//	mcp-sacloud [flags]                 # Starts the MCP server (default)
//	mcp-sacloud serve [flags]           # Explicitly starts the MCP server
//	mcp-sacloud version                 # Shows version information
//	mcp-sacloud self-update             # Updates to latest release
//	mcp-sacloud help [command]          # Shows help information
//
// The serve command supports multiple transport options:
//   - stdio: Standard input/output (default) - for command-line integration
//   - sse: Server-Sent Events over HTTP - for web-based clients
//   - streamable-http: Streamable HTTP transport - for HTTP-based integration
//
// Transport Configuration Examples:
//
//	mcp-sacloud serve --transport stdio           # Default STDIO transport
//	mcp-sacloud serve --transport sse --http-addr :8080 --sse-endpoint /sse
//	mcp-sacloud serve --transport streamable-http --http-addr :9000 --http-endpoint /mcp
//
// The Sakura Cloud key pair is read from ACCESS_TOKEN and ACCESS_TOKEN_SECRET,
// the object storage key pair from OBJECTSTORAGE_ACCESS_KEY_ID and
// OBJECTSTORAGE_SECRET_ACCESS_KEY. A .env file is loaded first when present.
package cmd
