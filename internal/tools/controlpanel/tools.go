// Package controlpanel registers the icon tools shared by every zone.
package controlpanel

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

// RegisterControlPanelTools registers the icon tools with the MCP server
func RegisterControlPanelTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// get_icon_list tool
	iconListTool := mcp.NewTool("get_icon_list",
		mcp.WithDescription("さくらのクラウドAPIからアイコン一覧を取得します (全ゾーン共通)。"),
	)
	s.AddTool(iconListTool, tools.WrapWithAuditLogging("get_icon_list", handleGetIconList, sc))

	// get_icon_tag_list tool
	iconTagListTool := mcp.NewTool("get_icon_tag_list",
		mcp.WithDescription("さくらのクラウドAPIからアイコンタグ一覧を取得します (全ゾーン共通)。"),
	)
	s.AddTool(iconTagListTool, tools.WrapWithAuditLogging("get_icon_tag_list", handleGetIconTagList, sc))

	return nil
}

func handleGetIconList(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return getSharedResource(ctx, sc, "icon"), nil
}

func handleGetIconTagList(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return getSharedResource(ctx, sc, "icon", "tag"), nil
}

// getSharedResource reads a resource that every zone serves identically
// through the first zone.
func getSharedResource(ctx context.Context, sc *server.ServerContext, path ...string) *mcp.CallToolResult {
	if err := sc.Credentials().Check(); err != nil {
		return tools.ErrorResult(ctx, err)
	}

	base, err := tools.FirstZoneBase(sc)
	if err != nil {
		return tools.ErrorResult(ctx, err)
	}

	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodGet,
		URL:    sacloud.JoinPath(base, path...),
	})
}
