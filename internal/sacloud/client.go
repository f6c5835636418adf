package sacloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout bounds a single upstream round trip.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "mcp-sacloud"

// Request describes one upstream call.
type Request struct {
	Method string
	URL    string

	// Body is marshalled to JSON. It is ignored for GET and only sent with
	// DELETE when non-nil.
	Body any

	Query url.Values
}

// Reporter receives the diagnostic for each network failure.
type Reporter interface {
	ReportError(ctx context.Context, message string)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, message string)

// ReportError calls f.
func (f ReporterFunc) ReportError(ctx context.Context, message string) {
	f(ctx, message)
}

type reporterKey struct{}

// WithReporter attaches r to ctx. Execute reports diagnostics to it.
func WithReporter(ctx context.Context, r Reporter) context.Context {
	return context.WithValue(ctx, reporterKey{}, r)
}

func reporterFromContext(ctx context.Context) Reporter {
	if r, ok := ctx.Value(reporterKey{}).(Reporter); ok && r != nil {
		return r
	}
	return nil
}

// ReportError sends message to the Reporter attached to ctx, if any.
func ReportError(ctx context.Context, message string) {
	if r := reporterFromContext(ctx); r != nil && message != "" {
		r.ReportError(ctx, message)
	}
}

// RequestObserver is called once per completed or failed round trip.
// status is zero when no response was received.
type RequestObserver func(ctx context.Context, method, rawURL string, status int, duration time.Duration)

// Client executes authenticated requests against the Sakura Cloud API.
// It is safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	credentials Credentials
	userAgent   string
	logger      *slog.Logger
	observer    RequestObserver
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithClientLogger sets the logger used for failure logs.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestObserver registers a callback for request metrics.
func WithRequestObserver(o RequestObserver) ClientOption {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient returns a client authenticating with creds.
// The default transport is wrapped with otelhttp so every upstream call gets a client span.
func NewClient(creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   DefaultTimeout,
		},
		credentials: creds,
		userAgent:   DefaultUserAgent,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Credentials returns the key pair the client signs requests with.
func (c *Client) Credentials() Credentials {
	return c.credentials
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Execute performs req and returns the response body as raw JSON.
//
// Unsupported verbs fail with a validation error before any I/O. A non-2xx
// response is a status error regardless of its body. A 2xx response whose body
// is not JSON is an unexpected error.
func (c *Client) Execute(ctx context.Context, req Request) (json.RawMessage, error) {
	method := strings.ToUpper(req.Method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, NewValidationError("サポートされていないHTTPメソッドです: %s", req.Method)
	}

	httpReq, err := c.newRequest(ctx, method, req)
	if err != nil {
		return nil, c.fail(ctx, &Error{Kind: KindUnexpected, Method: method, URL: req.URL, Cause: err})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observe(ctx, method, req.URL, 0, time.Since(start))
		return nil, c.fail(ctx, &Error{Kind: KindTransport, Method: method, URL: req.URL, Cause: err})
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	c.observe(ctx, method, req.URL, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, c.fail(ctx, &Error{Kind: KindTransport, Method: method, URL: req.URL, Cause: fmt.Errorf("failed to read response body: %w", err)})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(ctx, &Error{
			Kind:       KindStatus,
			Method:     method,
			URL:        req.URL,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		})
	}

	if !gjson.ValidBytes(body) {
		return nil, c.fail(ctx, &Error{Kind: KindUnexpected, Method: method, URL: req.URL, Cause: ErrInvalidJSON})
	}

	return json.RawMessage(body), nil
}

func (c *Client) newRequest(ctx context.Context, method string, req Request) (*http.Request, error) {
	target, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}
	if len(req.Query) > 0 {
		q := target.Query()
		for key, values := range req.Query {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	var body io.Reader
	hasBody := method != http.MethodGet && req.Body != nil
	if hasBody {
		payload, err := encodeBody(req.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	// Incomplete key pairs are never sent; public endpoints such as zone go without them.
	if c.credentials.Configured() {
		httpReq.SetBasicAuth(c.credentials.Token, c.credentials.Secret)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if hasBody {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	default:
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		return payload, nil
	}
}

// fail logs the failure and emits its diagnostic exactly once.
func (c *Client) fail(ctx context.Context, e *Error) *Error {
	diagnostic := e.Diagnostic()
	c.logger.Error("sacloud API request failed",
		slog.String("kind", e.Kind.String()),
		slog.String("method", e.Method),
		slog.Int("status", e.StatusCode))
	ReportError(ctx, diagnostic)
	return e
}

func (c *Client) observe(ctx context.Context, method, rawURL string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer(ctx, method, rawURL, status, d)
	}
}
