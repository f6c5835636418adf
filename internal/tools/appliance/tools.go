// Package appliance registers the database, load balancer and VPN router tools.
//
// Every appliance kind is served by the same appliance endpoint; the list
// tools fetch it once and keep the entries of the matching Class.
package appliance

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

const (
	argName          = "name"
	argDescription   = "description"
	argLBID          = "lb_id"
	argLBIP          = "lb_ip"
	argSwitchID      = "switch_id"
	argVRID          = "vrid"
	argNetworkMask   = "network_mask"
	argDefaultRouter = "default_router"
	argVIP           = "vip"
	argServerIPs     = "server_ips"
	argVPNRouterID   = "vpn_router_id"
	argStart         = "start"
	argEnd           = "end"
)

// RegisterApplianceTools registers all appliance tools with the MCP server
func RegisterApplianceTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// get_detabases tool, name kept for existing clients
	databaseListTool := mcp.NewTool("get_detabases",
		mcp.WithDescription("さくらのクラウドAPIからデータベース一覧を取得します。パスワードはマスクされます。"),
		tools.ZoneParam(),
	)
	s.AddTool(databaseListTool, tools.WrapWithAuditLogging("get_detabases", handleGetDatabases, sc))

	// get_loadbalancer tool
	loadBalancerListTool := mcp.NewTool("get_loadbalancer",
		mcp.WithDescription("さくらのクラウドAPIからロードバランサ一覧を取得します。"),
		tools.ZoneParam(),
	)
	s.AddTool(loadBalancerListTool, tools.WrapWithAuditLogging("get_loadbalancer", handleGetLoadBalancers, sc))

	// create_loadbalancer tool
	createLoadBalancerTool := mcp.NewTool("create_loadbalancer",
		mcp.WithDescription("さくらのクラウドAPIでロードバランサを作成します。"),
		tools.ZoneParam(),
		mcp.WithString(argName,
			mcp.Required(),
			mcp.Description("ロードバランサ名 (1-64文字)"),
		),
		mcp.WithString(argDescription,
			mcp.Description("ロードバランサの説明 (最大512文字)"),
		),
		mcp.WithString(argLBIP,
			mcp.Required(),
			mcp.Description("ロードバランサに付与するIPアドレス"),
		),
		mcp.WithString(argSwitchID,
			mcp.Required(),
			mcp.Description("接続するスイッチのID"),
		),
		mcp.WithNumber(argVRID,
			mcp.Required(),
			mcp.Description("VRRPのVRID (1-255)"),
		),
		mcp.WithNumber(argNetworkMask,
			mcp.Required(),
			mcp.Description("プレフィックス長 (8-29)"),
		),
		mcp.WithString(argDefaultRouter,
			mcp.Description("デフォルトゲートウェイのIPアドレス"),
		),
	)
	s.AddTool(createLoadBalancerTool, tools.WrapWithAuditLogging("create_loadbalancer", handleCreateLoadBalancer, sc))

	// attach_servers tool
	attachServersTool := mcp.NewTool("attach_servers",
		mcp.WithDescription("ロードバランサの仮想IPアドレスにサーバを登録し、設定を反映します。"+
			"ポート80でpingによるヘルスチェックを行います。"),
		tools.ZoneParam(),
		mcp.WithString(argLBID,
			mcp.Required(),
			mcp.Description("ロードバランサのID"),
		),
		mcp.WithString(argVIP,
			mcp.Required(),
			mcp.Description("仮想IPアドレス"),
		),
		mcp.WithArray(argServerIPs,
			mcp.Required(),
			mcp.Description("登録するサーバのIPアドレスの配列"),
			mcp.WithStringItems(),
		),
	)
	s.AddTool(attachServersTool, tools.WrapWithAuditLogging("attach_servers", handleAttachServers, sc))

	// get_vpn_router_list tool
	vpnRouterListTool := mcp.NewTool("get_vpn_router_list",
		mcp.WithDescription("さくらのクラウドAPIからVPCルータ一覧を取得します。"),
		tools.ZoneParam(),
	)
	s.AddTool(vpnRouterListTool, tools.WrapWithAuditLogging("get_vpn_router_list", handleGetVPNRouters, sc))

	// get_vpn_monitor tool
	vpnMonitorTool := mcp.NewTool("get_vpn_monitor",
		mcp.WithDescription("さくらのクラウドAPIからVPCルータのインターフェース流量のモニタ情報を取得します。"),
		tools.ZoneParam(),
		mcp.WithString(argVPNRouterID,
			mcp.Required(),
			mcp.Description("VPCルータのリソースID"),
		),
		mcp.WithString(argStart,
			mcp.Description("開始時刻 (ISO 8601形式、省略時は終了時刻の24時間前)"),
		),
		mcp.WithString(argEnd,
			mcp.Description("終了時刻 (ISO 8601形式、省略時は開始時刻の24時間後)"),
		),
	)
	s.AddTool(vpnMonitorTool, tools.WrapWithAuditLogging("get_vpn_monitor", handleGetVPNMonitor, sc))

	return nil
}
