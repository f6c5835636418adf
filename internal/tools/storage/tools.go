// Package storage registers the disk and archive tools.
package storage

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

const (
	argName            = "name"
	argDescription     = "description"
	argPlanID          = "plan_id"
	argSizeMB          = "size_mb"
	argSourceArchiveID = "source_archive_id"
	argServerID        = "server_id"
)

// RegisterStorageTools registers all disk and archive tools with the MCP server
func RegisterStorageTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// get_disk tool
	diskListTool := mcp.NewTool("get_disk",
		mcp.WithDescription("さくらのクラウドAPIからディスク一覧を取得します。"),
		tools.ZoneParam(),
	)
	s.AddTool(diskListTool, tools.WrapWithAuditLogging("get_disk", handleGetDisk, sc))

	// get_disk_plan tool
	diskPlanTool := mcp.NewTool("get_disk_plan",
		mcp.WithDescription("さくらのクラウドAPIからディスクプラン一覧を取得します。"),
		tools.ZoneParam(),
	)
	s.AddTool(diskPlanTool, tools.WrapWithAuditLogging("get_disk_plan", handleGetDiskPlan, sc))

	// create_disk tool
	createDiskTool := mcp.NewTool("create_disk",
		mcp.WithDescription("さくらのクラウドAPIでディスクを作成して、サーバーに接続します。"+
			"作成前にget_disk_planでプランと容量をユーザに選択させてください。"+
			"アーカイブIDはget_archive_listから取得してください。"),
		tools.ZoneParam(),
		mcp.WithString(argName,
			mcp.Required(),
			mcp.Description("ディスク名 (1-64文字)"),
		),
		mcp.WithString(argDescription,
			mcp.Description("ディスクの説明 (最大512文字)"),
		),
		mcp.WithString(argPlanID,
			mcp.Required(),
			mcp.Description("ディスクプランID。標準プランは4、SSDプランは2"),
		),
		mcp.WithNumber(argSizeMB,
			mcp.Required(),
			mcp.Description("ディスク容量 (MB、例: 20480)"),
		),
		mcp.WithString(argSourceArchiveID,
			mcp.Required(),
			mcp.Description("コピー元アーカイブのID"),
		),
		mcp.WithString(argServerID,
			mcp.Required(),
			mcp.Description("接続先サーバーのID"),
		),
	)
	s.AddTool(createDiskTool, tools.WrapWithAuditLogging("create_disk", handleCreateDisk, sc))

	// get_archive_list tool
	archiveListTool := mcp.NewTool("get_archive_list",
		mcp.WithDescription("さくらのクラウドAPIからアーカイブ一覧を取得します。名前とIDのみを返します。"),
		tools.ZoneParam(),
	)
	s.AddTool(archiveListTool, tools.WrapWithAuditLogging("get_archive_list", handleGetArchiveList, sc))

	return nil
}
