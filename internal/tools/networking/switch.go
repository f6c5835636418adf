package networking

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

const msgSwitchName = "スイッチ名は1-64文字で指定する必要があります。"

func handleGetSwitchList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return listResource(ctx, request, sc, "switch"), nil
}

func handleCreateSwitch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if errResult := tools.CheckMutatingOperation(sc, tools.OperationCreate); errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	base, err := tools.ZoneBase(sc, args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	name := tools.StringArg(args, argName)
	if err := tools.CheckLength(name, maxNameLength, msgSwitchName); err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	description := tools.StringArg(args, argDescription)
	if err := tools.CheckMaxLength(description, maxDescriptionLength, msgDescription); err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodPost,
		URL:    sacloud.JoinPath(base, "switch"),
		Body: map[string]NamedResource{
			"Switch": {Name: name, Description: description},
		},
	}), nil
}
