// Package objectstorage lists buckets on the Sakura Cloud S3 compatible object storage.
package objectstorage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
)

// Region is the signing region of the Sakura object storage endpoint.
const Region = "jp-north-1"

// ErrMissingEndpoint is returned when no S3 endpoint is configured.
var ErrMissingEndpoint = errors.New("object storage endpoint is required")

// BucketAPI is the subset of the S3 client used here.
type BucketAPI interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

// Bucket is one entry of a bucket listing.
type Bucket struct {
	Name         string     `json:"Name"`
	CreationDate *time.Time `json:"CreationDate,omitempty"`
}

// Owner identifies the account owning the buckets.
type Owner struct {
	ID          string `json:"ID,omitempty"`
	DisplayName string `json:"DisplayName,omitempty"`
}

// BucketList is the JSON document returned by the bucket list tool.
type BucketList struct {
	Buckets []Bucket `json:"Buckets"`
	Owner   *Owner   `json:"Owner,omitempty"`
}

// ListError wraps any failure of the bucket listing with its localized message.
type ListError struct {
	Cause error
}

// Error implements the error interface.
func (e *ListError) Error() string {
	return e.UserFacingError()
}

// Unwrap returns the underlying SDK error.
func (e *ListError) Unwrap() error {
	return e.Cause
}

// UserFacingError renders the localized message returned to the agent.
func (e *ListError) UserFacingError() string {
	return fmt.Sprintf("オブジェクトストレージのバケット一覧取得に失敗しました。%v", e.Cause)
}

// Diagnostic renders the out of band message for the client log.
func (e *ListError) Diagnostic() string {
	return fmt.Sprintf("get objectstorage failed:%v", e.Cause)
}

// Client lists buckets through the S3 API.
type Client struct {
	api BucketAPI
}

// NewClient builds an S3 client for endpoint, signing with creds using path style addressing.
// httpClient may be nil to use the SDK default.
func NewClient(endpoint string, creds sacloud.ObjectStorageCredentials, httpClient *http.Client) (*Client, error) {
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}

	cfg := aws.Config{
		Region:      Region,
		Credentials: credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, ""),
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	api := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	return &Client{api: api}, nil
}

// NewClientWithAPI wraps an existing BucketAPI implementation.
func NewClientWithAPI(api BucketAPI) *Client {
	return &Client{api: api}
}

// ListBuckets returns every bucket visible to the configured key pair.
func (c *Client) ListBuckets(ctx context.Context) (*BucketList, error) {
	out, err := c.api.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, &ListError{Cause: err}
	}

	list := &BucketList{Buckets: make([]Bucket, 0, len(out.Buckets))}
	for _, b := range out.Buckets {
		list.Buckets = append(list.Buckets, Bucket{
			Name:         aws.ToString(b.Name),
			CreationDate: b.CreationDate,
		})
	}
	if out.Owner != nil {
		list.Owner = &Owner{
			ID:          aws.ToString(out.Owner.ID),
			DisplayName: aws.ToString(out.Owner.DisplayName),
		}
	}
	return list, nil
}
