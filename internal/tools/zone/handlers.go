package zone

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

// handleGetZoneList lists zones. Every zone returns the same list, so the
// first one is asked. The endpoint answers without credentials.
func handleGetZoneList(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	base, err := tools.FirstZoneBase(sc)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodGet,
		URL:    sacloud.JoinPath(base, "zone"),
	}), nil
}

// handleGetRegionList lists regions through the first zone.
func handleGetRegionList(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if err := sc.Credentials().Check(); err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	base, err := tools.FirstZoneBase(sc)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodGet,
		URL:    sacloud.JoinPath(base, "region"),
	}), nil
}
