package sacloud

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables holding the API key pairs.
const (
	EnvAccessToken                  = "ACCESS_TOKEN"
	EnvAccessTokenSecret            = "ACCESS_TOKEN_SECRET"
	EnvObjectStorageAccessKeyID     = "OBJECTSTORAGE_ACCESS_KEY_ID"
	EnvObjectStorageSecretAccessKey = "OBJECTSTORAGE_SECRET_ACCESS_KEY"
)

// Credentials is the Sakura Cloud API key pair used for basic authentication.
type Credentials struct {
	Token  string
	Secret string
}

// CredentialsFromEnv reads the API key pair from the environment.
// Missing values are not an error here; Check reports them per call.
func CredentialsFromEnv() Credentials {
	return Credentials{
		Token:  os.Getenv(EnvAccessToken),
		Secret: os.Getenv(EnvAccessTokenSecret),
	}
}

// Check returns a validation error naming every missing field, token first.
func (c Credentials) Check() error {
	var missing []string
	if c.Token == "" {
		missing = append(missing, EnvAccessToken)
	}
	if c.Secret == "" {
		missing = append(missing, EnvAccessTokenSecret)
	}
	if len(missing) == 0 {
		return nil
	}
	return NewValidationError("認証情報が設定されていません。%s の環境変数を設定してください。", strings.Join(missing, ", "))
}

// Configured reports whether both fields are set.
func (c Credentials) Configured() bool {
	return c.Check() == nil
}

// String never includes the secret material.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{token_set:%t, secret_set:%t}", c.Token != "", c.Secret != "")
}

// ObjectStorageCredentials is the key pair for the S3 compatible endpoint.
type ObjectStorageCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

// ObjectStorageCredentialsFromEnv reads the object storage key pair from the environment.
func ObjectStorageCredentialsFromEnv() ObjectStorageCredentials {
	return ObjectStorageCredentials{
		AccessKeyID:     os.Getenv(EnvObjectStorageAccessKeyID),
		SecretAccessKey: os.Getenv(EnvObjectStorageSecretAccessKey),
	}
}

// Check returns a validation error naming every missing field, key ID first.
func (c ObjectStorageCredentials) Check() error {
	var missing []string
	if c.AccessKeyID == "" {
		missing = append(missing, EnvObjectStorageAccessKeyID)
	}
	if c.SecretAccessKey == "" {
		missing = append(missing, EnvObjectStorageSecretAccessKey)
	}
	if len(missing) == 0 {
		return nil
	}
	return NewValidationError("オブジェクトストレージの認証情報が設定されていません。%s の環境変数を設定してください。", strings.Join(missing, ", "))
}

// Configured reports whether both fields are set.
func (c ObjectStorageCredentials) Configured() bool {
	return c.Check() == nil
}

// String never includes the secret material.
func (c ObjectStorageCredentials) String() string {
	return fmt.Sprintf("ObjectStorageCredentials{key_id_set:%t, secret_set:%t}", c.AccessKeyID != "", c.SecretAccessKey != "")
}

// ValidateRequestContext checks the zone and then the credentials, returning
// the first failure. A bad zone is reported even when the credentials are
// also missing.
func ValidateRequestContext(zone string, zones *Registry, creds Credentials) error {
	if err := zones.Validate(zone); err != nil {
		return err
	}
	return creds.Check()
}
