// Package zone registers the tools listing Sakura Cloud zones and regions.
package zone

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

// RegisterZoneTools registers the zone and region tools with the MCP server
func RegisterZoneTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// get_zone_list tool
	zoneListTool := mcp.NewTool("get_zone_list",
		mcp.WithDescription("さくらのクラウドで利用可能なゾーン一覧を取得します。他のツールのzone引数にはここで返される名前を指定してください。"),
	)
	s.AddTool(zoneListTool, tools.WrapWithAuditLogging("get_zone_list", handleGetZoneList, sc))

	// get_region_list tool
	regionListTool := mcp.NewTool("get_region_list",
		mcp.WithDescription("さくらのクラウドで利用可能なリージョン一覧を取得します。"),
	)
	s.AddTool(regionListTool, tools.WrapWithAuditLogging("get_region_list", handleGetRegionList, sc))

	return nil
}
