package cmd

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
	"github.com/giantswarm/mcp-sacloud/internal/tools/appliance"
	"github.com/giantswarm/mcp-sacloud/internal/tools/bill"
	"github.com/giantswarm/mcp-sacloud/internal/tools/compute"
	"github.com/giantswarm/mcp-sacloud/internal/tools/controlpanel"
	docstools "github.com/giantswarm/mcp-sacloud/internal/tools/docs"
	"github.com/giantswarm/mcp-sacloud/internal/tools/networking"
	objectstoragetools "github.com/giantswarm/mcp-sacloud/internal/tools/objectstorage"
	"github.com/giantswarm/mcp-sacloud/internal/tools/storage"
	"github.com/giantswarm/mcp-sacloud/internal/tools/zone"
)

// serverInstructions is sent to the client during initialization.
const serverInstructions = `さくらのクラウドを操作するためのMCPサーバです。
ゾーンを指定するツールでは、まず get_zone_list で利用可能なゾーンを確認し、
is1a や tk1a のようにゾーン名を正確に指定してください。
リソースを作成するツールは課金が発生するため、実行前に内容をユーザーに確認してください。`

// toolGroup registers one category of tools.
type toolGroup struct {
	name     string
	register tools.RegisterFunc
}

// toolGroups lists every tool category in registration order.
var toolGroups = []toolGroup{
	{"zone", zone.RegisterZoneTools},
	{"compute", compute.RegisterComputeTools},
	{"storage", storage.RegisterStorageTools},
	{"networking", networking.RegisterNetworkingTools},
	{"appliance", appliance.RegisterApplianceTools},
	{"bill", bill.RegisterBillTools},
	{"control panel", controlpanel.RegisterControlPanelTools},
	{"object storage", objectstoragetools.RegisterObjectStorageTools},
	{"docs", docstools.RegisterDocsTools},
}

// newMCPServer creates the MCP server with tool and logging capabilities.
func newMCPServer(sc *server.ServerContext) *mcpserver.MCPServer {
	return mcpserver.NewMCPServer(sc.Config().ServerName, sc.Config().Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(serverInstructions),
	)
}

// registerTools registers every tool group with mcpSrv.
func registerTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext) error {
	for _, group := range toolGroups {
		if err := group.register(mcpSrv, sc); err != nil {
			return fmt.Errorf("failed to register %s tools: %w", group.name, err)
		}
	}
	return nil
}
