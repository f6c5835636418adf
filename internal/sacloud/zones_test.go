package sacloud

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultZones(t *testing.T) {
	zones := DefaultZones()

	assert.Equal(t, []string{"is1a", "is1b", "tk1a", "tk1b", "tk1v"}, zones.Names())
	assert.Equal(t, 5, zones.Len())

	url, err := zones.URL("tk1v")
	require.NoError(t, err)
	assert.Equal(t, "https://secure.sakura.ad.jp/cloud/zone/tk1v/api/cloud/1.1/", url)
}

func TestRegistryValidate(t *testing.T) {
	zones := DefaultZones()
	want := "無効なゾーンです。利用可能なゾーン: is1a, is1b, tk1a, tk1b, tk1v"

	tests := []struct {
		name    string
		zone    string
		wantErr bool
	}{
		{name: "known zone", zone: "is1a"},
		{name: "last zone", zone: "tk1v"},
		{name: "empty zone", zone: "", wantErr: true},
		{name: "unknown zone", zone: "us-east-1", wantErr: true},
		{name: "case sensitive", zone: "IS1A", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := zones.Validate(tt.zone)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, want, err.Error())
			assert.True(t, IsValidation(err))
		})
	}
}

func TestRegistryKeepsInsertionOrder(t *testing.T) {
	zones := NewRegistry(
		Zone{Name: "b", BaseURL: "https://b/"},
		Zone{Name: "a", BaseURL: "https://a/"},
		Zone{Name: "b", BaseURL: "https://ignored/"},
	)

	assert.Equal(t, []string{"b", "a"}, zones.Names())
	url, err := zones.URL("b")
	require.NoError(t, err)
	assert.Equal(t, "https://b/", url)
	assert.EqualError(t, zones.Validate("c"), "無効なゾーンです。利用可能なゾーン: b, a")
}

func TestRegistryFirst(t *testing.T) {
	first, err := DefaultZones().First()
	require.NoError(t, err)
	assert.Equal(t, "is1a", first.Name)

	_, err = NewRegistry().First()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.True(t, errors.Is(err, ErrEmptyRegistry))
	assert.Equal(t, "ゾーンが設定されていません。", err.Error())

	var nilRegistry *Registry
	_, err = nilRegistry.First()
	assert.Error(t, err)
}

func TestSystemURL(t *testing.T) {
	got := SystemURL("https://secure.sakura.ad.jp/cloud/zone/is1a/api/cloud/1.1/")
	assert.Equal(t, "https://secure.sakura.ad.jp/cloud/zone/is1a/api/system/1.0/", got)
}

func TestJoinPath(t *testing.T) {
	base := "https://example.test/api/"
	assert.Equal(t, "https://example.test/api/server/123/power", JoinPath(base, "server", "123", "power"))
	assert.Equal(t, "https://example.test/api/server/a%2Fb", JoinPath(base, "server", "a/b"))
}

func TestObjectStorageZones(t *testing.T) {
	zones := ObjectStorageZones()
	assert.Equal(t, []string{ObjectStorageFedZone, ObjectStorageS3Zone}, zones.Names())

	s3URL, err := zones.URL(ObjectStorageS3Zone)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.isk01.sakurastorage.jp", s3URL)
}
