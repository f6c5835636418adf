package networking

import (
	"context"
	"net/http"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

var (
	validNetworkMaskLens = []int{27, 28}
	validBandwidthsMbps  = []int{100, 500, 1000}
)

const (
	msgRouterName     = "ルータ名は1-64文字で指定する必要があります。"
	msgNetworkMaskLen = "プレフィックス長は27 または 28を指定する必要があります。"
	msgBandwidth      = "帯域幅は100 または 500 または 1000 Mbpsを指定する必要があります。"
	msgRouterID       = "ルータIDは必須です。"
)

// Internet is the body section of a router creation request.
type Internet struct {
	Name           string `json:"Name"`
	NetworkMaskLen int    `json:"NetworkMaskLen"`
	BandWidthMbps  int    `json:"BandWidthMbps"`
	Description    string `json:"Description,omitempty"`
}

func handleGetRouterList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return listResource(ctx, request, sc, "internet"), nil
}

// handleCreateRouter creates a router with a global subnet of the requested size.
func handleCreateRouter(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if errResult := tools.CheckMutatingOperation(sc, tools.OperationCreate); errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	base, err := tools.ZoneBase(sc, args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	router, err := routerFromArgs(args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodPost,
		URL:    sacloud.JoinPath(base, "internet"),
		Body:   map[string]Internet{"Internet": router},
	}), nil
}

func routerFromArgs(args map[string]any) (Internet, error) {
	name := tools.StringArg(args, argName)
	if err := tools.CheckLength(name, maxNameLength, msgRouterName); err != nil {
		return Internet{}, err
	}

	maskLen, ok := tools.IntArg(args, argNetworkMaskLen)
	if !ok || !slices.Contains(validNetworkMaskLens, maskLen) {
		return Internet{}, sacloud.NewValidationError("%s", msgNetworkMaskLen)
	}

	bandwidth, ok := tools.IntArg(args, argBandwidthMbps)
	if !ok || !slices.Contains(validBandwidthsMbps, bandwidth) {
		return Internet{}, sacloud.NewValidationError("%s", msgBandwidth)
	}

	description := tools.StringArg(args, argDescription)
	if err := tools.CheckMaxLength(description, maxDescriptionLength, msgDescription); err != nil {
		return Internet{}, err
	}

	return Internet{
		Name:           name,
		NetworkMaskLen: maskLen,
		BandWidthMbps:  bandwidth,
		Description:    description,
	}, nil
}

// handleGetRouterMonitor returns the traffic graph data of a router.
func handleGetRouterMonitor(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	base, err := tools.ZoneBase(sc, args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	routerID := tools.StringArg(args, argRouterID)
	if routerID == "" {
		return tools.ErrorResult(ctx, sacloud.NewValidationError("%s", msgRouterID)), nil
	}

	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodGet,
		URL:    sacloud.JoinPath(base, "internet", routerID, "monitor"),
		Query:  monitorQuery(args),
	}), nil
}

func handleDeleteRouter(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return deleteResource(ctx, request, sc, "internet", argRouterID, msgRouterID), nil
}
