package appliance

import (
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-sacloud/internal/tools/testdata"
)

func TestRegisterApplianceTools(t *testing.T) {
	upstream := testdata.NewUpstream(t, testdata.JSON(`{}`))
	sc := testdata.NewServerContext(t, upstream)

	mcpSrv := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithToolCapabilities(true))
	require.NoError(t, RegisterApplianceTools(mcpSrv, sc))

	registered := mcpSrv.ListTools()
	for _, name := range []string{
		"get_detabases",
		"get_loadbalancer",
		"create_loadbalancer",
		"attach_servers",
		"get_vpn_router_list",
		"get_vpn_monitor",
	} {
		assert.Contains(t, registered, name)
	}
}
