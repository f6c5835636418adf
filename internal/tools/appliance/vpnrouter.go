package appliance

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

// handleGetVPNRouters lists VPC routers, including the older vpnrouter class.
func handleGetVPNRouters(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	routers, err := listAppliances(ctx, sc, request.GetArguments(), ClassVPCRouter, ClassVPNRouter)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.ObjectResult(ctx, sc, routers), nil
}

// handleGetVPNMonitor returns the interface traffic of a VPC router.
func handleGetVPNMonitor(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	base, err := tools.ZoneBase(sc, args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	routerID := tools.StringArg(args, argVPNRouterID)
	if routerID == "" {
		return tools.ErrorResult(ctx, sacloud.NewValidationError("VPCルータIDは必須です。")), nil
	}

	query := url.Values{}
	if start := tools.StringArg(args, argStart); start != "" {
		query.Set("Start", start)
	}
	if end := tools.StringArg(args, argEnd); end != "" {
		query.Set("End", end)
	}

	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodGet,
		URL:    sacloud.JoinPath(base, "appliance", routerID, "interface", "monitor"),
		Query:  query,
	}), nil
}
