package compute

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
	"github.com/giantswarm/mcp-sacloud/internal/tools/testdata"
)

func TestListTools_Paths(t *testing.T) {
	tests := []struct {
		name    string
		handler tools.ToolHandler
		path    string
	}{
		{"get_server_list", handleGetServerList, "server"},
		{"get_server_plan", handleGetServerPlan, "product/server"},
		{"get_interface_list", handleGetInterfaceList, "interface"},
		{"get_packet_filter_list", handleGetPacketFilterList, "packetfilter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := testdata.NewUpstream(t, testdata.JSON(`{"Count":0}`))
			sc := testdata.NewServerContext(t, upstream)

			result, err := tt.handler(context.Background(), testdata.CallRequest(tt.name, map[string]any{"zone": "tk1a"}), sc)
			require.NoError(t, err)
			assert.False(t, result.IsError)
			assert.JSONEq(t, `{"Count":0}`, testdata.ResultText(t, result))

			requests := upstream.Requests()
			require.Len(t, requests, 1)
			assert.Equal(t, http.MethodGet, requests[0].Method)
			assert.Equal(t, testdata.ZonePath("tk1a")+tt.path, requests[0].Path)
		})
	}
}

func TestGetServerList_InvalidZone(t *testing.T) {
	upstream := testdata.NewUpstream(t, testdata.JSON(`{}`))
	sc := testdata.NewServerContext(t, upstream)

	result, err := handleGetServerList(context.Background(), testdata.CallRequest("get_server_list", map[string]any{"zone": "xx9z"}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "無効なゾーンです。利用可能なゾーン: is1a, tk1a", testdata.ResultText(t, result))
	assert.Empty(t, upstream.Requests())
}

func TestCreateServer_Body(t *testing.T) {
	upstream := testdata.NewUpstream(t, testdata.JSON(`{"Server":{"ID":"113600000001"},"is_ok":true}`))
	sc := testdata.NewServerContext(t, upstream)

	result, err := handleCreateServer(context.Background(), testdata.CallRequest("create_server", map[string]any{
		"zone":        "is1a",
		"name":        "web01",
		"description": "frontend",
		"cpu":         float64(2),
		"memory_mb":   float64(4096),
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError, testdata.ResultText(t, result))

	requests := upstream.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, testdata.ZonePath("is1a")+"server", requests[0].Path)
	assert.JSONEq(t, `{
		"Server": {
			"Name": "web01",
			"Description": "frontend",
			"ServerPlan": {"CPU": 2, "MemoryMB": 4096, "Commitment": "standard", "CPUModel": "uncategorized", "Generation": 100},
			"Icon": {},
			"Tags": [],
			"ConnectedSwitches": [{"Scope": "shared"}],
			"InterfaceDriver": "virtio"
		},
		"Count": 0
	}`, requests[0].Body)
}

func TestCreateServer_Validation(t *testing.T) {
	valid := func() map[string]any {
		return map[string]any{
			"zone":      "is1a",
			"name":      "web01",
			"cpu":       float64(1),
			"memory_mb": float64(1024),
		}
	}

	tests := []struct {
		name   string
		mutate func(args map[string]any)
		want   string
	}{
		{
			name:   "empty name",
			mutate: func(args map[string]any) { args["name"] = "" },
			want:   "サーバ名は1-61文字で指定する必要があります。",
		},
		{
			name:   "name too long",
			mutate: func(args map[string]any) { args["name"] = strings.Repeat("a", 62) },
			want:   "サーバ名は1-61文字で指定する必要があります。",
		},
		{
			name:   "description too long",
			mutate: func(args map[string]any) { args["description"] = strings.Repeat("あ", 513) },
			want:   "説明は最大512文字まで指定できます。",
		},
		{
			name:   "unknown generation",
			mutate: func(args map[string]any) { args["generation"] = float64(300) },
			want:   "サーバの世代は100 または 200 を指定する必要があります。",
		},
		{
			name:   "missing cpu",
			mutate: func(args map[string]any) { delete(args, "cpu") },
			want:   "cpu は必須です。",
		},
		{
			name: "zone checked first",
			mutate: func(args map[string]any) {
				args["zone"] = ""
				args["name"] = ""
			},
			want: "無効なゾーンです。利用可能なゾーン: is1a, tk1a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := testdata.NewUpstream(t, testdata.JSON(`{}`))
			sc := testdata.NewServerContext(t, upstream)

			args := valid()
			tt.mutate(args)
			result, err := handleCreateServer(context.Background(), testdata.CallRequest("create_server", args), sc)
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Equal(t, tt.want, testdata.ResultText(t, result))
			assert.Empty(t, upstream.Requests())
		})
	}
}

func TestCreateServer_Generation200(t *testing.T) {
	upstream := testdata.NewUpstream(t, testdata.JSON(`{}`))
	sc := testdata.NewServerContext(t, upstream)

	_, err := handleCreateServer(context.Background(), testdata.CallRequest("create_server", map[string]any{
		"zone":       "is1a",
		"name":       "web01",
		"cpu":        float64(1),
		"memory_mb":  float64(1024),
		"generation": float64(200),
	}), sc)
	require.NoError(t, err)

	requests := upstream.Requests()
	require.Len(t, requests, 1)
	assert.Contains(t, requests[0].Body, `"Generation":200`)
}

func TestPowerTools(t *testing.T) {
	tests := []struct {
		name       string
		handler    tools.ToolHandler
		args       map[string]any
		wantMethod string
		wantBody   string
	}{
		{
			name:       "status",
			handler:    handleGetServerPowerStatus,
			args:       map[string]any{"zone": "is1a", "server_id": "113600000001"},
			wantMethod: http.MethodGet,
		},
		{
			name:       "start",
			handler:    handleStartServer,
			args:       map[string]any{"zone": "is1a", "server_id": "113600000001"},
			wantMethod: http.MethodPut,
		},
		{
			name:       "graceful stop has no body",
			handler:    handleStopServer,
			args:       map[string]any{"zone": "is1a", "server_id": "113600000001"},
			wantMethod: http.MethodDelete,
		},
		{
			name:       "forced stop",
			handler:    handleStopServer,
			args:       map[string]any{"zone": "is1a", "server_id": "113600000001", "force": true},
			wantMethod: http.MethodDelete,
			wantBody:   `{"Force":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := testdata.NewUpstream(t, testdata.JSON(`{"Instance":{"Status":"up"},"is_ok":true}`))
			sc := testdata.NewServerContext(t, upstream)

			result, err := tt.handler(context.Background(), testdata.CallRequest(tt.name, tt.args), sc)
			require.NoError(t, err)
			assert.False(t, result.IsError)

			requests := upstream.Requests()
			require.Len(t, requests, 1)
			assert.Equal(t, tt.wantMethod, requests[0].Method)
			assert.Equal(t, testdata.ZonePath("is1a")+"server/113600000001/power", requests[0].Path)
			if tt.wantBody == "" {
				assert.Empty(t, requests[0].Body)
			} else {
				assert.JSONEq(t, tt.wantBody, requests[0].Body)
			}
		})
	}
}

func TestPowerTools_MissingServerID(t *testing.T) {
	for name, handler := range map[string]tools.ToolHandler{
		"get_server_power_status": handleGetServerPowerStatus,
		"start_server":            handleStartServer,
		"stop_server":             handleStopServer,
	} {
		t.Run(name, func(t *testing.T) {
			upstream := testdata.NewUpstream(t, testdata.JSON(`{}`))
			sc := testdata.NewServerContext(t, upstream)

			result, err := handler(context.Background(), testdata.CallRequest(name, map[string]any{"zone": "is1a"}), sc)
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Equal(t, "サーバーIDは必須です。", testdata.ResultText(t, result))
			assert.Empty(t, upstream.Requests())
		})
	}
}

func TestNonDestructiveModeBlocksMutatingTools(t *testing.T) {
	for name, handler := range map[string]tools.ToolHandler{
		"create_server": handleCreateServer,
		"start_server":  handleStartServer,
		"stop_server":   handleStopServer,
	} {
		t.Run(name, func(t *testing.T) {
			upstream := testdata.NewUpstream(t, testdata.JSON(`{}`))
			sc := testdata.NewServerContext(t, upstream, server.WithNonDestructiveMode(true))

			result, err := handler(context.Background(), testdata.CallRequest(name, map[string]any{"zone": "is1a", "server_id": "1"}), sc)
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, testdata.ResultText(t, result), "非破壊モード")
			assert.Empty(t, upstream.Requests())
		})
	}
}

func TestStopServer_DryRun(t *testing.T) {
	upstream := testdata.NewUpstream(t, testdata.JSON(`{}`))
	sc := testdata.NewServerContext(t, upstream,
		server.WithNonDestructiveMode(true),
		server.WithDryRun(true),
	)

	result, err := handleStopServer(context.Background(), testdata.CallRequest("stop_server", map[string]any{
		"zone":      "is1a",
		"server_id": "113600000001",
		"force":     true,
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, testdata.ResultText(t, result), `"DryRun":true`)
	assert.Empty(t, upstream.Requests())
}
