package networking

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

func handleGetBridgeList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return listResource(ctx, request, sc, "bridge"), nil
}

// handleCreateBridge creates a bridge. Only the name is validated.
func handleCreateBridge(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if errResult := tools.CheckMutatingOperation(sc, tools.OperationCreate); errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	base, err := tools.ZoneBase(sc, args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	name := tools.StringArg(args, argName)
	if name == "" {
		return tools.ErrorResult(ctx, sacloud.NewValidationError("ブリッジ名は必須です。")), nil
	}

	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodPost,
		URL:    sacloud.JoinPath(base, "bridge"),
		Body: map[string]NamedResource{
			"Bridge": {Name: name, Description: tools.StringArg(args, argDescription)},
		},
	}), nil
}

func handleDeleteBridge(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return deleteResource(ctx, request, sc, "bridge", argBridgeID, "ブリッジIDは必須です。"), nil
}
