// Package compute registers the server, interface and packet filter tools.
package compute

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

// Argument names used by the compute tools.
const (
	argServerID    = "server_id"
	argName        = "name"
	argDescription = "description"
	argCPU         = "cpu"
	argMemoryMB    = "memory_mb"
	argGeneration  = "generation"
	argForce       = "force"
)

// RegisterComputeTools registers all server management tools with the MCP server
func RegisterComputeTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// get_server_list tool
	serverListTool := mcp.NewTool("get_server_list",
		mcp.WithDescription("さくらのクラウドAPIからサーバ一覧を取得します。"),
		tools.ZoneParam(),
	)
	s.AddTool(serverListTool, tools.WrapWithAuditLogging("get_server_list", handleGetServerList, sc))

	// get_server_plan tool
	serverPlanTool := mcp.NewTool("get_server_plan",
		mcp.WithDescription("さくらのクラウドAPIからサーバプラン一覧を取得します。"),
		tools.ZoneParam(),
	)
	s.AddTool(serverPlanTool, tools.WrapWithAuditLogging("get_server_plan", handleGetServerPlan, sc))

	// create_server tool
	createServerTool := mcp.NewTool("create_server",
		mcp.WithDescription("さくらのクラウドAPIからサーバを作成します。"+
			"作成前にget_server_planでプラン一覧を取得し、CPU数とメモリ容量をユーザに選択させてください。"+
			"サーバ作成後はディスクも作成してください。"),
		tools.ZoneParam(),
		mcp.WithString(argName,
			mcp.Required(),
			mcp.Description("サーバ名 (1-61文字)"),
		),
		mcp.WithString(argDescription,
			mcp.Description("サーバの説明 (最大512文字)"),
		),
		mcp.WithNumber(argCPU,
			mcp.Required(),
			mcp.Description("CPU数"),
		),
		mcp.WithNumber(argMemoryMB,
			mcp.Required(),
			mcp.Description("メモリ容量 (MB)"),
		),
		mcp.WithNumber(argGeneration,
			mcp.Description("サーバの世代 (100 または 200、省略時は100)"),
		),
	)
	s.AddTool(createServerTool, tools.WrapWithAuditLogging("create_server", handleCreateServer, sc))

	// get_server_power_status tool
	powerStatusTool := mcp.NewTool("get_server_power_status",
		mcp.WithDescription("さくらのクラウドAPIからサーバーの電源状態を取得します。Instance.Statusが\"up\"または\"down\"を示します。"),
		tools.ZoneParam(),
		mcp.WithString(argServerID,
			mcp.Required(),
			mcp.Description("サーバーID"),
		),
	)
	s.AddTool(powerStatusTool, tools.WrapWithAuditLogging("get_server_power_status", handleGetServerPowerStatus, sc))

	// start_server tool
	startServerTool := mcp.NewTool("start_server",
		mcp.WithDescription("さくらのクラウドAPIでサーバーを起動します。起動には時間がかかるため、リクエストがタイムアウトする場合があります。"),
		tools.ZoneParam(),
		mcp.WithString(argServerID,
			mcp.Required(),
			mcp.Description("サーバーID"),
		),
	)
	s.AddTool(startServerTool, tools.WrapWithAuditLogging("start_server", handleStartServer, sc))

	// stop_server tool
	stopServerTool := mcp.NewTool("stop_server",
		mcp.WithDescription("さくらのクラウドAPIでサーバーを停止します。"),
		tools.ZoneParam(),
		mcp.WithString(argServerID,
			mcp.Required(),
			mcp.Description("サーバーID"),
		),
		mcp.WithBoolean(argForce,
			mcp.Description("強制停止する場合はtrue (デフォルト: false)"),
		),
	)
	s.AddTool(stopServerTool, tools.WrapWithAuditLogging("stop_server", handleStopServer, sc))

	// get_interface_list tool
	interfaceListTool := mcp.NewTool("get_interface_list",
		mcp.WithDescription("さくらのクラウドAPIからネットワークインターフェース一覧を取得します。"),
		tools.ZoneParam(),
	)
	s.AddTool(interfaceListTool, tools.WrapWithAuditLogging("get_interface_list", handleGetInterfaceList, sc))

	// get_packet_filter_list tool
	packetFilterListTool := mcp.NewTool("get_packet_filter_list",
		mcp.WithDescription("さくらのクラウドAPIからパケットフィルタ一覧を取得します。"),
		tools.ZoneParam(),
	)
	s.AddTool(packetFilterListTool, tools.WrapWithAuditLogging("get_packet_filter_list", handleGetPacketFilterList, sc))

	return nil
}
