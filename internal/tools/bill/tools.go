// Package bill registers the billing and coupon tools of the system API.
package bill

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

const (
	argAccountID = "account_id"
	argYear      = "year"
	argMonth     = "month"
)

func accountParam() mcp.ToolOption {
	return mcp.WithString(argAccountID,
		mcp.Required(),
		mcp.Description("プロジェクトID (アカウントID)"),
	)
}

// RegisterBillTools registers the billing tools with the MCP server
func RegisterBillTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// get_bill_list tool
	billListTool := mcp.NewTool("get_bill_list",
		mcp.WithDescription("さくらのクラウドAPIから指定プロジェクトIDの請求一覧を取得します。"),
		accountParam(),
	)
	s.AddTool(billListTool, tools.WrapWithAuditLogging("get_bill_list", handleGetBillList, sc))

	// get_bill_list_by_month tool
	billByMonthTool := mcp.NewTool("get_bill_list_by_month",
		mcp.WithDescription("さくらのクラウドAPIから指定プロジェクトIDの特定年月の請求一覧を取得します。"),
		accountParam(),
		mcp.WithString(argYear,
			mcp.Required(),
			mcp.Description("年 (YYYY形式)"),
		),
		mcp.WithString(argMonth,
			mcp.Required(),
			mcp.Description("月 (MM形式、01-12)"),
		),
	)
	s.AddTool(billByMonthTool, tools.WrapWithAuditLogging("get_bill_list_by_month", handleGetBillListByMonth, sc))

	// get_coupon_list tool
	couponListTool := mcp.NewTool("get_coupon_list",
		mcp.WithDescription("さくらのクラウドAPIから指定プロジェクトIDのクーポン一覧を取得します。"),
		accountParam(),
	)
	s.AddTool(couponListTool, tools.WrapWithAuditLogging("get_coupon_list", handleGetCouponList, sc))

	return nil
}
