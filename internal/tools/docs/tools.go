// Package docstools registers the tools reading the public manuals and price list.
package docstools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

const argURL = "url"

// RegisterDocsTools registers the documentation tools with the MCP server
func RegisterDocsTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// get_manual_outline tool
	manualOutlineTool := mcp.NewTool("get_manual_outline",
		mcp.WithDescription("さくらのクラウドのマニュアルの目次を取得します。タイトルとURLの対応を返します。"),
	)
	s.AddTool(manualOutlineTool, tools.WrapWithAuditLogging("get_manual_outline", handleGetManualOutline, sc))

	// read_manual tool
	readManualTool := mcp.NewTool("read_manual",
		mcp.WithDescription("さくらのクラウドのマニュアルのページを読み込み、Markdownで返します。"),
		mcp.WithString(argURL,
			mcp.Required(),
			mcp.Description("https://manual.sakura.ad.jp/cloud/ で始まるマニュアルのURL。get_manual_outlineで確認してください。"),
		),
	)
	s.AddTool(readManualTool, tools.WrapWithAuditLogging("read_manual", handleReadManual, sc))

	// get_api_manual_outline tool
	apiManualOutlineTool := mcp.NewTool("get_api_manual_outline",
		mcp.WithDescription("さくらのクラウドのAPIマニュアルの目次を取得します。タイトルとURLの対応を返します。"),
	)
	s.AddTool(apiManualOutlineTool, tools.WrapWithAuditLogging("get_api_manual_outline", handleGetAPIManualOutline, sc))

	// read_api_manual tool
	readAPIManualTool := mcp.NewTool("read_api_manual",
		mcp.WithDescription("さくらのクラウドのAPIマニュアルのページを読み込み、Markdownで返します。"),
		mcp.WithString(argURL,
			mcp.Required(),
			mcp.Description("https://manual.sakura.ad.jp/cloud-api/ で始まるAPIマニュアルのURL。get_api_manual_outlineで確認してください。"),
		),
	)
	s.AddTool(readAPIManualTool, tools.WrapWithAuditLogging("read_api_manual", handleReadAPIManual, sc))

	// read_object_storage_api_manual tool
	objectStorageManualTool := mcp.NewTool("read_object_storage_api_manual",
		mcp.WithDescription("さくらのクラウドのオブジェクトストレージAPIマニュアルを読み込み、Markdownで返します。"),
	)
	s.AddTool(objectStorageManualTool, tools.WrapWithAuditLogging("read_object_storage_api_manual", handleReadObjectStorageAPIManual, sc))

	// get_price tool
	priceTool := mcp.NewTool("get_price",
		mcp.WithDescription("さくらのクラウドの料金表を取得します。"),
	)
	s.AddTool(priceTool, tools.WrapWithAuditLogging("get_price", handleGetPrice, sc))

	return nil
}

func handleGetManualOutline(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	outline, err := sc.DocsClient().ManualOutline(ctx)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.ObjectResult(ctx, sc, outline), nil
}

func handleReadManual(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	pageURL, err := tools.RequiredString(request.GetArguments(), argURL)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	text, err := sc.DocsClient().ReadManual(ctx, pageURL)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return mcp.NewToolResultText(text), nil
}

func handleGetAPIManualOutline(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	outline, err := sc.DocsClient().APIManualOutline(ctx)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.ObjectResult(ctx, sc, outline), nil
}

func handleReadAPIManual(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	pageURL, err := tools.RequiredString(request.GetArguments(), argURL)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	text, err := sc.DocsClient().ReadAPIManual(ctx, pageURL)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return mcp.NewToolResultText(text), nil
}

func handleReadObjectStorageAPIManual(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	text, err := sc.DocsClient().ReadObjectStorageAPIManual(ctx)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return mcp.NewToolResultText(text), nil
}

func handleGetPrice(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	raw, err := sc.DocsClient().Price(ctx)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.JSONResult(sc, raw), nil
}
