package sacloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsCheck(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  string
	}{
		{
			name:  "both set",
			creds: Credentials{Token: "token", Secret: "secret"},
		},
		{
			name:  "both missing",
			creds: Credentials{},
			want:  "認証情報が設定されていません。ACCESS_TOKEN, ACCESS_TOKEN_SECRET の環境変数を設定してください。",
		},
		{
			name:  "token missing",
			creds: Credentials{Secret: "secret"},
			want:  "認証情報が設定されていません。ACCESS_TOKEN の環境変数を設定してください。",
		},
		{
			name:  "secret missing",
			creds: Credentials{Token: "token"},
			want:  "認証情報が設定されていません。ACCESS_TOKEN_SECRET の環境変数を設定してください。",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Check()
			if tt.want == "" {
				assert.NoError(t, err)
				assert.True(t, tt.creds.Configured())
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.False(t, tt.creds.Configured())
		})
	}
}

func TestObjectStorageCredentialsCheck(t *testing.T) {
	err := ObjectStorageCredentials{}.Check()
	require.Error(t, err)
	assert.Equal(t,
		"オブジェクトストレージの認証情報が設定されていません。OBJECTSTORAGE_ACCESS_KEY_ID, OBJECTSTORAGE_SECRET_ACCESS_KEY の環境変数を設定してください。",
		err.Error())

	assert.NoError(t, ObjectStorageCredentials{AccessKeyID: "id", SecretAccessKey: "secret"}.Check())
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv(EnvAccessToken, "token")
	t.Setenv(EnvAccessTokenSecret, "secret")
	t.Setenv(EnvObjectStorageAccessKeyID, "id")
	t.Setenv(EnvObjectStorageSecretAccessKey, "")

	assert.Equal(t, Credentials{Token: "token", Secret: "secret"}, CredentialsFromEnv())
	assert.Equal(t, ObjectStorageCredentials{AccessKeyID: "id"}, ObjectStorageCredentialsFromEnv())
}

func TestCredentialsStringHidesSecrets(t *testing.T) {
	creds := Credentials{Token: "my-token", Secret: "my-secret"}
	s := creds.String()
	assert.NotContains(t, s, "my-token")
	assert.NotContains(t, s, "my-secret")

	osCreds := ObjectStorageCredentials{AccessKeyID: "key", SecretAccessKey: "shh"}
	assert.NotContains(t, osCreds.String(), "shh")
}

func TestValidateRequestContext(t *testing.T) {
	zones := DefaultZones()
	valid := Credentials{Token: "t", Secret: "s"}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateRequestContext("is1a", zones, valid))
	})

	t.Run("zone error wins over auth error", func(t *testing.T) {
		err := ValidateRequestContext("", zones, Credentials{})
		require.Error(t, err)
		assert.Equal(t, "無効なゾーンです。利用可能なゾーン: is1a, is1b, tk1a, tk1b, tk1v", err.Error())
	})

	t.Run("auth error with valid zone", func(t *testing.T) {
		err := ValidateRequestContext("tk1v", zones, Credentials{})
		require.Error(t, err)
		assert.Equal(t, "認証情報が設定されていません。ACCESS_TOKEN, ACCESS_TOKEN_SECRET の環境変数を設定してください。", err.Error())
	})
}
