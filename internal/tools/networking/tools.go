// Package networking registers the bridge, switch and router tools.
package networking

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

const (
	argName           = "name"
	argDescription    = "description"
	argBridgeID       = "bridge_id"
	argRouterID       = "router_id"
	argNetworkMaskLen = "network_mask_len"
	argBandwidthMbps  = "bandwidth_mbps"
	argStart          = "start"
	argEnd            = "end"
)

// RegisterNetworkingTools registers all networking tools with the MCP server
func RegisterNetworkingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerBridgeTools(s, sc)
	registerSwitchTools(s, sc)
	registerRouterTools(s, sc)
	return nil
}

func registerBridgeTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// get_bridge_list tool
	bridgeListTool := mcp.NewTool("get_bridge_list",
		mcp.WithDescription("さくらのクラウドAPIからブリッジ一覧を取得します。"),
		tools.ZoneParam(),
	)
	s.AddTool(bridgeListTool, tools.WrapWithAuditLogging("get_bridge_list", handleGetBridgeList, sc))

	// create_bridge tool
	createBridgeTool := mcp.NewTool("create_bridge",
		mcp.WithDescription("さくらのクラウドAPIでブリッジを作成します。"),
		tools.ZoneParam(),
		mcp.WithString(argName,
			mcp.Required(),
			mcp.Description("ブリッジ名"),
		),
		mcp.WithString(argDescription,
			mcp.Description("ブリッジの説明"),
		),
	)
	s.AddTool(createBridgeTool, tools.WrapWithAuditLogging("create_bridge", handleCreateBridge, sc))

	// delete_bridge tool
	deleteBridgeTool := mcp.NewTool("delete_bridge",
		mcp.WithDescription("さくらのクラウドAPIでブリッジを削除します。"),
		tools.ZoneParam(),
		mcp.WithString(argBridgeID,
			mcp.Required(),
			mcp.Description("ブリッジID"),
		),
	)
	s.AddTool(deleteBridgeTool, tools.WrapWithAuditLogging("delete_bridge", handleDeleteBridge, sc))
}

func registerSwitchTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// get_switch_list tool
	switchListTool := mcp.NewTool("get_switch_list",
		mcp.WithDescription("さくらのクラウドAPIからスイッチ一覧を取得します。"),
		tools.ZoneParam(),
	)
	s.AddTool(switchListTool, tools.WrapWithAuditLogging("get_switch_list", handleGetSwitchList, sc))

	// create_switch tool
	createSwitchTool := mcp.NewTool("create_switch",
		mcp.WithDescription("さくらのクラウドAPIでスイッチを作成します。"),
		tools.ZoneParam(),
		mcp.WithString(argName,
			mcp.Required(),
			mcp.Description("スイッチ名 (1-64文字)"),
		),
		mcp.WithString(argDescription,
			mcp.Description("スイッチの説明 (最大512文字)"),
		),
	)
	s.AddTool(createSwitchTool, tools.WrapWithAuditLogging("create_switch", handleCreateSwitch, sc))
}

func registerRouterTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// get_router_list tool
	routerListTool := mcp.NewTool("get_router_list",
		mcp.WithDescription("さくらのクラウドAPIからルータ一覧を取得します。"),
		tools.ZoneParam(),
	)
	s.AddTool(routerListTool, tools.WrapWithAuditLogging("get_router_list", handleGetRouterList, sc))

	// create_router tool
	createRouterTool := mcp.NewTool("create_router",
		mcp.WithDescription("さくらのクラウドAPIでルータを作成します。"),
		tools.ZoneParam(),
		mcp.WithString(argName,
			mcp.Required(),
			mcp.Description("ルータ名 (1-64文字)"),
		),
		mcp.WithNumber(argNetworkMaskLen,
			mcp.Required(),
			mcp.Description("プレフィックス長 (27 または 28)"),
		),
		mcp.WithNumber(argBandwidthMbps,
			mcp.Required(),
			mcp.Description("帯域幅 (100、500 または 1000 Mbps)"),
		),
		mcp.WithString(argDescription,
			mcp.Description("ルータの説明 (最大512文字)"),
		),
	)
	s.AddTool(createRouterTool, tools.WrapWithAuditLogging("create_router", handleCreateRouter, sc))

	// get_router_monitor tool
	routerMonitorTool := mcp.NewTool("get_router_monitor",
		mcp.WithDescription("さくらのクラウドAPIからルータのトラフィック監視データを取得します。"),
		tools.ZoneParam(),
		mcp.WithString(argRouterID,
			mcp.Required(),
			mcp.Description("ルータID"),
		),
		mcp.WithString(argStart,
			mcp.Description("開始時刻 (ISO 8601形式、省略時は終了時刻の24時間前)"),
		),
		mcp.WithString(argEnd,
			mcp.Description("終了時刻 (ISO 8601形式、省略時は開始時刻の24時間後)"),
		),
	)
	s.AddTool(routerMonitorTool, tools.WrapWithAuditLogging("get_router_monitor", handleGetRouterMonitor, sc))

	// delete_router tool
	deleteRouterTool := mcp.NewTool("delete_router",
		mcp.WithDescription("さくらのクラウドAPIでルータを削除します。"),
		tools.ZoneParam(),
		mcp.WithString(argRouterID,
			mcp.Required(),
			mcp.Description("ルータID"),
		),
	)
	s.AddTool(deleteRouterTool, tools.WrapWithAuditLogging("delete_router", handleDeleteRouter, sc))
}
