package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools/testdata"
)

func TestIntArg(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   int
		wantOK bool
	}{
		{name: "json number", value: float64(2048), want: 2048, wantOK: true},
		{name: "fraction", value: 1.5, wantOK: false},
		{name: "int", value: 4, want: 4, wantOK: true},
		{name: "json.Number", value: json.Number("100"), want: 100, wantOK: true},
		{name: "numeric string", value: "27", want: 27, wantOK: true},
		{name: "text", value: "many", wantOK: false},
		{name: "bool", value: true, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IntArg(map[string]any{"n": tt.value}, "n")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	_, ok := IntArg(map[string]any{}, "n")
	assert.False(t, ok)
}

func TestRequiredInt(t *testing.T) {
	_, err := RequiredInt(map[string]any{}, "cpu")
	assert.EqualError(t, err, "cpu は必須です。")
	assert.True(t, sacloud.IsValidation(err))

	_, err = RequiredInt(map[string]any{"cpu": "two"}, "cpu")
	assert.EqualError(t, err, "cpu は整数で指定してください。")

	n, err := RequiredInt(map[string]any{"cpu": float64(2)}, "cpu")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRequiredString(t *testing.T) {
	_, err := RequiredString(map[string]any{"lb_id": ""}, "lb_id")
	assert.EqualError(t, err, "lb_id は必須です。")

	s, err := RequiredString(map[string]any{"lb_id": "1"}, "lb_id")
	require.NoError(t, err)
	assert.Equal(t, "1", s)
}

func TestBoolArg(t *testing.T) {
	assert.True(t, BoolArg(map[string]any{"force": true}, "force"))
	assert.True(t, BoolArg(map[string]any{"force": "true"}, "force"))
	assert.False(t, BoolArg(map[string]any{"force": "nope"}, "force"))
	assert.False(t, BoolArg(map[string]any{}, "force"))
}

func TestStringSliceArg(t *testing.T) {
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"},
		StringSliceArg(map[string]any{"ips": []any{"10.0.0.1", 3, "", "10.0.0.2"}}, "ips"))
	assert.Equal(t, []string{"a"}, StringSliceArg(map[string]any{"ips": []string{"a"}}, "ips"))
	assert.Nil(t, StringSliceArg(map[string]any{"ips": "10.0.0.1"}, "ips"))
}

func TestCheckLength(t *testing.T) {
	const msg = "サーバ名は1-61文字で指定する必要があります。"

	assert.EqualError(t, CheckLength("", 61, msg), msg)
	assert.NoError(t, CheckLength("web", 61, msg))

	// characters, not bytes
	japanese := ""
	for i := 0; i < 61; i++ {
		japanese += "あ"
	}
	assert.NoError(t, CheckLength(japanese, 61, msg))
	assert.EqualError(t, CheckLength(japanese+"あ", 61, msg), msg)

	assert.NoError(t, CheckMaxLength("", 512, "x"))
	assert.Error(t, CheckMaxLength(japanese, 60, "x"))
}

func TestZoneBase(t *testing.T) {
	upstream := testdata.NewUpstream(t, testdata.JSON(`{}`))
	sc := testdata.NewServerContext(t, upstream)

	base, err := ZoneBase(sc, map[string]any{"zone": "tk1a"})
	require.NoError(t, err)
	assert.Equal(t, upstream.URL+testdata.ZonePath("tk1a"), base)

	_, err = ZoneBase(sc, map[string]any{})
	assert.EqualError(t, err, "無効なゾーンです。利用可能なゾーン: is1a, tk1a")
}

func TestZoneBase_ZoneCheckedBeforeCredentials(t *testing.T) {
	upstream := testdata.NewUpstream(t, testdata.JSON(`{}`))
	sc := testdata.NewServerContextWithCredentials(t, upstream, sacloud.Credentials{})

	_, err := ZoneBase(sc, map[string]any{"zone": "xx1a"})
	assert.EqualError(t, err, "無効なゾーンです。利用可能なゾーン: is1a, tk1a")

	_, err = ZoneBase(sc, map[string]any{"zone": "is1a"})
	assert.EqualError(t, err, "認証情報が設定されていません。ACCESS_TOKEN, ACCESS_TOKEN_SECRET の環境変数を設定してください。")
}

func TestFirstZoneBase(t *testing.T) {
	upstream := testdata.NewUpstream(t, testdata.JSON(`{}`))
	sc := testdata.NewServerContext(t, upstream)

	base, err := FirstZoneBase(sc)
	require.NoError(t, err)
	assert.Equal(t, upstream.URL+testdata.ZonePath("is1a"), base)

	empty := testdata.NewServerContext(t, upstream, server.WithZones(sacloud.NewRegistry()))
	_, err = FirstZoneBase(empty)
	assert.EqualError(t, err, "ゾーンが設定されていません。")
}
