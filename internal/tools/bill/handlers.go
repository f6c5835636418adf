package bill

import (
	"context"
	"net/http"
	"regexp"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

var (
	yearPattern  = regexp.MustCompile(`^[0-9]{4}$`)
	monthPattern = regexp.MustCompile(`^[0-9]{2}$`)
)

// getSystemResource checks the credentials and reads path from the system
// API of the first zone. Billing is account wide, so any zone serves it.
func getSystemResource(ctx context.Context, sc *server.ServerContext, path ...string) *mcp.CallToolResult {
	if err := sc.Credentials().Check(); err != nil {
		return tools.ErrorResult(ctx, err)
	}

	base, err := tools.FirstZoneBase(sc)
	if err != nil {
		return tools.ErrorResult(ctx, err)
	}

	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodGet,
		URL:    sacloud.JoinPath(sacloud.SystemURL(base), path...),
	})
}

func accountID(args map[string]any) (string, error) {
	id := tools.StringArg(args, argAccountID)
	if id == "" {
		return "", sacloud.NewValidationError("アカウントIDは必須です。")
	}
	return id, nil
}

func handleGetBillList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	id, err := accountID(request.GetArguments())
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return getSystemResource(ctx, sc, "bill", "by-contract", id), nil
}

// handleGetBillListByMonth reads the bills of one month. The year and month
// are checked before the credentials.
func handleGetBillListByMonth(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	id, err := accountID(args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	year, month, err := yearMonth(args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	return getSystemResource(ctx, sc, "bill", "by-contract", id, year, month), nil
}

func yearMonth(args map[string]any) (string, string, error) {
	year := tools.StringArg(args, argYear)
	if year == "" {
		return "", "", sacloud.NewValidationError("年は必須です。")
	}
	month := tools.StringArg(args, argMonth)
	if month == "" {
		return "", "", sacloud.NewValidationError("月は必須です。")
	}
	if !yearPattern.MatchString(year) {
		return "", "", sacloud.NewValidationError("年はYYYY形式（4桁の数字）で指定してください。")
	}
	if !monthPattern.MatchString(month) {
		return "", "", sacloud.NewValidationError("月はMM形式（01-12）で指定してください。")
	}
	if m, _ := strconv.Atoi(month); m < 1 || m > 12 {
		return "", "", sacloud.NewValidationError("月はMM形式（01-12）で指定してください。")
	}
	return year, month, nil
}

func handleGetCouponList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	id, err := accountID(request.GetArguments())
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return getSystemResource(ctx, sc, "coupon", id), nil
}
