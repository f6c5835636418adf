package networking

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

const (
	maxNameLength        = 64
	maxDescriptionLength = 512
)

const msgDescription = "説明は最大512文字まで指定できます。"

// NamedResource is the body section shared by bridge and switch creation.
type NamedResource struct {
	Name        string `json:"Name"`
	Description string `json:"Description,omitempty"`
}

// listResource handles the plain list tools of this package.
func listResource(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, resource string) *mcp.CallToolResult {
	base, err := tools.ZoneBase(sc, request.GetArguments())
	if err != nil {
		return tools.ErrorResult(ctx, err)
	}
	return tools.Execute(ctx, sc, sacloud.Request{Method: http.MethodGet, URL: sacloud.JoinPath(base, resource)})
}

// deleteResource validates the ID argument and deletes resource/{id}.
func deleteResource(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, resource, idArg, missingID string) *mcp.CallToolResult {
	if errResult := tools.CheckMutatingOperation(sc, tools.OperationDelete); errResult != nil {
		return errResult
	}

	args := request.GetArguments()
	base, err := tools.ZoneBase(sc, args)
	if err != nil {
		return tools.ErrorResult(ctx, err)
	}
	id := tools.StringArg(args, idArg)
	if id == "" {
		return tools.ErrorResult(ctx, sacloud.NewValidationError("%s", missingID))
	}
	return tools.Execute(ctx, sc, sacloud.Request{Method: http.MethodDelete, URL: sacloud.JoinPath(base, resource, id)})
}

// monitorQuery builds the Start/End query of the monitor endpoints.
// Omitted bounds are left to the API defaults.
func monitorQuery(args map[string]any) url.Values {
	query := url.Values{}
	if start := tools.StringArg(args, argStart); start != "" {
		query.Set("Start", start)
	}
	if end := tools.StringArg(args, argEnd); end != "" {
		query.Set("End", end)
	}
	return query
}
