package appliance

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tidwall/gjson"

	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
	"github.com/giantswarm/mcp-sacloud/internal/tools/output"
)

// handleGetDatabases lists database appliances with their passwords masked.
func handleGetDatabases(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	databases, err := listAppliances(ctx, sc, request.GetArguments(), ClassDatabase)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	for i, db := range databases {
		masked, skipped := output.MaskDatabasePasswords(db)
		for _, path := range skipped {
			sc.Logger().Warn("Database password not masked, parent object missing",
				"path", path,
				"appliance_id", gjson.GetBytes(db, "ID").String())
		}
		databases[i] = json.RawMessage(masked)
	}

	return tools.ObjectResult(ctx, sc, databases), nil
}
