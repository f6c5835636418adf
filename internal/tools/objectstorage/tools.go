// Package objectstoragetools registers the object storage tools.
//
// Sites and access keys come from the federation API with the main key pair.
// Buckets are listed over the S3 API with the object storage key pair.
package objectstoragetools

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

const argSiteID = "site_id"

// RegisterObjectStorageTools registers the object storage tools with the MCP server
func RegisterObjectStorageTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// get_objectstorage_site_list tool
	siteListTool := mcp.NewTool("get_objectstorage_site_list",
		mcp.WithDescription("さくらのクラウドAPIからオブジェクトストレージのサイト一覧を取得します。"),
	)
	s.AddTool(siteListTool, tools.WrapWithAuditLogging("get_objectstorage_site_list", handleGetSiteList, sc))

	// get_objectstorage_accesskey_list tool
	accessKeyListTool := mcp.NewTool("get_objectstorage_accesskey_list",
		mcp.WithDescription("さくらのクラウドAPIからオブジェクトストレージのアクセスキー一覧を取得します。"),
		mcp.WithString(argSiteID,
			mcp.Required(),
			mcp.Description("サイトID。get_objectstorage_site_listで確認してください。"),
		),
	)
	s.AddTool(accessKeyListTool, tools.WrapWithAuditLogging("get_objectstorage_accesskey_list", handleGetAccessKeyList, sc))

	// get_objectstorage_bucket_list tool
	bucketListTool := mcp.NewTool("get_objectstorage_bucket_list",
		mcp.WithDescription("オブジェクトストレージのバケット一覧を取得します。"+
			"OBJECTSTORAGE_ACCESS_KEY_IDとOBJECTSTORAGE_SECRET_ACCESS_KEYの設定が必要です。"),
	)
	s.AddTool(bucketListTool, tools.WrapWithAuditLogging("get_objectstorage_bucket_list", handleGetBucketList, sc))

	return nil
}

// federationBase checks the main credentials and returns the federation API base.
func federationBase(sc *server.ServerContext) (string, error) {
	if err := sc.Credentials().Check(); err != nil {
		return "", err
	}
	return sc.ObjectStorageZones().URL(sacloud.ObjectStorageFedZone)
}

func handleGetSiteList(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	base, err := federationBase(sc)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodGet,
		URL:    sacloud.JoinPath(base, "fed", "v1", "clusters"),
	}), nil
}

func handleGetAccessKeyList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	base, err := federationBase(sc)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	siteID, err := tools.RequiredString(request.GetArguments(), argSiteID)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodGet,
		URL:    sacloud.JoinPath(base, siteID, "v2", "account", "keys"),
	}), nil
}

// handleGetBucketList lists buckets with the object storage key pair.
func handleGetBucketList(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if err := sc.ObjectStorageCredentials().Check(); err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	client, err := sc.BucketClient()
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	buckets, err := client.ListBuckets(ctx)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.ObjectResult(ctx, sc, buckets), nil
}
