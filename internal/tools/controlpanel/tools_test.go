package controlpanel

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/tools/testdata"
)

func TestRegisterControlPanelTools(t *testing.T) {
	upstream := testdata.NewUpstream(t, testdata.JSON(`{}`))
	sc := testdata.NewServerContext(t, upstream)

	mcpSrv := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithToolCapabilities(true))
	require.NoError(t, RegisterControlPanelTools(mcpSrv, sc))

	registered := mcpSrv.ListTools()
	assert.Contains(t, registered, "get_icon_list")
	assert.Contains(t, registered, "get_icon_tag_list")
}

func TestIconTools(t *testing.T) {
	upstream := testdata.NewUpstream(t, testdata.JSON(`{"Icons":[]}`))
	sc := testdata.NewServerContext(t, upstream)

	result, err := handleGetIconList(context.Background(), testdata.CallRequest("get_icon_list", nil), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	result, err = handleGetIconTagList(context.Background(), testdata.CallRequest("get_icon_tag_list", nil), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	requests := upstream.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, testdata.ZonePath("is1a")+"icon", requests[0].Path)
	assert.Equal(t, testdata.ZonePath("is1a")+"icon/tag", requests[1].Path)
}

func TestIconTools_RequireCredentials(t *testing.T) {
	upstream := testdata.NewUpstream(t, testdata.JSON(`{}`))
	sc := testdata.NewServerContextWithCredentials(t, upstream, sacloud.Credentials{Secret: "s"})

	result, err := handleGetIconList(context.Background(), testdata.CallRequest("get_icon_list", nil), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "認証情報が設定されていません。ACCESS_TOKEN の環境変数を設定してください。", testdata.ResultText(t, result))
	assert.Empty(t, upstream.Requests())
}
