package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
)

func TestRegisterTools(t *testing.T) {
	sc, err := server.NewServerContext(context.Background(),
		server.WithClient(sacloud.NewClient(sacloud.Credentials{Token: "t", Secret: "s"})),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	mcpSrv := newMCPServer(sc)
	require.NoError(t, registerTools(mcpSrv, sc))

	registered := mcpSrv.ListTools()
	for _, name := range []string{
		"get_zone_list",
		"get_region_list",
		"create_server",
		"stop_server",
		"create_disk",
		"get_archive_list",
		"create_switch",
		"get_router_monitor",
		"get_detabases",
		"create_loadbalancer",
		"get_bill_list",
		"get_icon_list",
		"get_objectstorage_bucket_list",
		"read_manual",
		"get_price",
	} {
		assert.Contains(t, registered, name)
	}
	assert.Len(t, registered, 43)
	assert.Len(t, toolGroups, 9)
}

func TestNewMCPServer_UsesConfiguredName(t *testing.T) {
	sc, err := server.NewServerContext(context.Background(),
		server.WithClient(sacloud.NewClient(sacloud.Credentials{})),
		server.WithServerName("sacloud-test"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	assert.NotNil(t, newMCPServer(sc))
	assert.Equal(t, "sacloud-test", sc.Config().ServerName)
}
