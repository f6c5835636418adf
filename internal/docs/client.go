// Package docs fetches the public Sakura Cloud manuals and price list.
//
// Manual pages are scraped with goquery and the relevant fragment is converted
// to Markdown so an agent can read it directly.
package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

// Public locations of the documentation.
const (
	ManualPrefix               = "https://manual.sakura.ad.jp/cloud/"
	APIManualPrefix            = "https://manual.sakura.ad.jp/cloud-api/"
	APIManualIndexURL          = "https://manual.sakura.ad.jp/cloud-api/1.1/index.html"
	ObjectStorageAPIManualURL  = "https://manual.sakura.ad.jp/api/cloud/objectstorage/"
	PriceURL                   = "https://secure.sakura.ad.jp/cloud/zone/is1a/api/cloud/1.1/public/price.json"
	defaultTimeout             = 10 * time.Second
	manualOutlineFlightKey     = "manual-outline"
	manualNavigationSelector   = "[role=navigation] a[href], nav a[href]"
	manualMainSelector         = "[role=main]"
	apiManualContentSelector   = "#content"
	apiManualOutlineSelector   = "a.js-toggle-guides"
	objectStorageAPISelector   = "div.api-content"
	requestedWithHeader        = "X-Requested-With"
	requestedWithXMLHTTPHeader = "XMLHttpRequest"
)

// Subjects used in localized messages.
const (
	subjectManual           = "さくらのクラウドのマニュアル"
	subjectAPIManual        = "さくらのクラウドのAPIマニュアル"
	subjectObjectStorageAPI = "さくらのクラウドのオブジェクトストレージAPIマニュアル"
	subjectPrice            = "さくらのクラウドAPI"
)

// Validation messages.
const (
	msgInvalidManualURL    = "さくらのクラウドのマニュアルのurlではないので、有効なurlを指定してください"
	msgInvalidAPIManualURL = "さくらのクラウドのAPIマニュアルのurlではないので、有効なurlを指定してください"
	msgUnformattable       = "error:urlをフォーマットできなかった"
	msgEmptyPrice          = "さくらのクラウドの利用料金取得に失敗しました"
)

// ErrContentNotFound is the cause when the expected page fragment is missing.
var ErrContentNotFound = errors.New("page content not found")

// Client fetches documentation pages. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client

	manualIndexURL            string
	apiManualIndexURL         string
	objectStorageAPIManualURL string
	priceURL                  string

	observer FetchObserver

	group         singleflight.Group
	mu            sync.RWMutex
	manualOutline map[string]string
}

// FetchObserver is called once per upstream fetch with the document source
// and "success" or "error".
type FetchObserver func(ctx context.Context, source, status string)

// Sources passed to a FetchObserver.
const (
	SourceManual           = "manual"
	SourceAPIManual        = "api_manual"
	SourceObjectStorageAPI = "objectstorage_api_manual"
	SourcePrice            = "price"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithURLs overrides the fixed documentation locations.
// Empty values keep the defaults.
func WithURLs(manualIndex, apiManualIndex, objectStorageAPIManual, price string) Option {
	return func(c *Client) {
		if manualIndex != "" {
			c.manualIndexURL = manualIndex
		}
		if apiManualIndex != "" {
			c.apiManualIndexURL = apiManualIndex
		}
		if objectStorageAPIManual != "" {
			c.objectStorageAPIManualURL = objectStorageAPIManual
		}
		if price != "" {
			c.priceURL = price
		}
	}
}

// WithFetchObserver registers a callback for fetch metrics.
func WithFetchObserver(o FetchObserver) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient returns a documentation client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   defaultTimeout,
		},
		manualIndexURL:            ManualPrefix,
		apiManualIndexURL:         APIManualIndexURL,
		objectStorageAPIManualURL: ObjectStorageAPIManualURL,
		priceURL:                  PriceURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ManualOutline returns manual section titles mapped to their URLs.
// The first successful result is cached; concurrent callers share one fetch.
func (c *Client) ManualOutline(ctx context.Context) (map[string]string, error) {
	c.mu.RLock()
	cached := c.manualOutline
	c.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := c.group.Do(manualOutlineFlightKey, func() (interface{}, error) {
		doc, err := c.fetchDocument(ctx, c.manualIndexURL, subjectManual, nil)
		if err != nil {
			return nil, err
		}
		outline := collectLinks(doc.Find(manualNavigationSelector), c.manualIndexURL, c.manualIndexURL)
		if len(outline) == 0 {
			return nil, &FetchError{Kind: KindFormat, Subject: subjectManual, Cause: ErrContentNotFound}
		}

		c.mu.Lock()
		c.manualOutline = outline
		c.mu.Unlock()
		return outline, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}

// ReadManual converts the main section of a manual page to Markdown.
func (c *Client) ReadManual(ctx context.Context, pageURL string) (string, error) {
	if !strings.HasPrefix(pageURL, ManualPrefix) {
		return "", &FetchError{Kind: KindInvalidURL, Text: msgInvalidManualURL}
	}
	doc, err := c.fetchDocument(ctx, pageURL, subjectManual, nil)
	if err != nil {
		return "", err
	}
	return convertSelection(doc.Find(manualMainSelector), subjectManual)
}

// APIManualOutline returns the API manual guide titles mapped to their URLs.
func (c *Client) APIManualOutline(ctx context.Context) (map[string]string, error) {
	doc, err := c.fetchDocument(ctx, c.apiManualIndexURL, subjectAPIManual, nil)
	if err != nil {
		return nil, err
	}
	base := c.apiManualIndexURL[:strings.LastIndex(c.apiManualIndexURL, "/")+1]
	links := make(map[string]string)
	doc.Find(apiManualOutlineSelector).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		links[strings.TrimSpace(a.Text())] = base + href
	})
	return links, nil
}

// ReadAPIManual converts the content section of an API manual page to Markdown.
func (c *Client) ReadAPIManual(ctx context.Context, pageURL string) (string, error) {
	if !strings.HasPrefix(pageURL, APIManualPrefix) {
		return "", &FetchError{Kind: KindInvalidURL, Text: msgInvalidAPIManualURL}
	}
	doc, err := c.fetchDocument(ctx, pageURL, subjectAPIManual, nil)
	if err != nil {
		return "", err
	}
	return convertSelection(doc.Find(apiManualContentSelector), subjectAPIManual)
}

// ReadObjectStorageAPIManual converts the object storage API reference to Markdown.
func (c *Client) ReadObjectStorageAPIManual(ctx context.Context) (string, error) {
	doc, err := c.fetchDocument(ctx, c.objectStorageAPIManualURL, subjectObjectStorageAPI, nil)
	if err != nil {
		return "", err
	}
	return convertSelection(doc.Find(objectStorageAPISelector), subjectObjectStorageAPI)
}

// Price returns the public price list document.
func (c *Client) Price(ctx context.Context) (json.RawMessage, error) {
	header := http.Header{}
	header.Set(requestedWithHeader, requestedWithXMLHTTPHeader)
	body, err := c.fetch(ctx, c.priceURL, subjectPrice, header)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, &FetchError{Kind: KindFormat, Text: msgEmptyPrice, Subject: subjectPrice}
	}
	if !json.Valid(body) {
		return nil, &FetchError{Kind: KindUnexpected, Subject: subjectPrice, Cause: errors.New("price list is not valid JSON")}
	}
	return json.RawMessage(body), nil
}

func (c *Client) fetchDocument(ctx context.Context, pageURL, subject string, header http.Header) (*goquery.Document, error) {
	body, err := c.fetch(ctx, pageURL, subject, header)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{Kind: KindUnexpected, Subject: subject, Cause: err}
	}
	return doc, nil
}

func (c *Client) fetch(ctx context.Context, pageURL, subject string, header http.Header) ([]byte, error) {
	body, err := c.doFetch(ctx, pageURL, subject, header)
	if c.observer != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		c.observer(ctx, sourceFor(subject), status)
	}
	return body, err
}

func sourceFor(subject string) string {
	switch subject {
	case subjectAPIManual:
		return SourceAPIManual
	case subjectObjectStorageAPI:
		return SourceObjectStorageAPI
	case subjectPrice:
		return SourcePrice
	default:
		return SourceManual
	}
}

func (c *Client) doFetch(ctx context.Context, pageURL, subject string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindUnexpected, Subject: subject, Cause: err}
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, Subject: subject, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, Subject: subject, Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Kind: KindStatus, Subject: subject, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func convertSelection(sel *goquery.Selection, subject string) (string, error) {
	if sel.Length() == 0 {
		return "", &FetchError{Kind: KindFormat, Text: msgUnformattable, Subject: subject, Cause: ErrContentNotFound}
	}
	converter := md.NewConverter("", true, nil)
	markdown := strings.TrimSpace(converter.Convert(sel))
	if markdown == "" {
		return "", &FetchError{Kind: KindFormat, Text: msgUnformattable, Subject: subject, Cause: ErrContentNotFound}
	}
	return markdown, nil
}

// collectLinks resolves link targets against base and keeps those under prefix.
func collectLinks(links *goquery.Selection, base, prefix string) map[string]string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil
	}
	out := make(map[string]string)
	links.Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		title := strings.TrimSpace(a.Text())
		if title == "" || href == "" || strings.HasPrefix(href, "#") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := baseURL.ResolveReference(ref)
		resolved.Fragment = ""
		target := resolved.String()
		if !strings.HasPrefix(target, prefix) {
			return
		}
		if _, exists := out[title]; !exists {
			out[title] = target
		}
	})
	return out
}

// Kind classifies a documentation failure.
type Kind int

const (
	KindInvalidURL Kind = iota
	KindFormat
	KindTransport
	KindStatus
	KindUnexpected
)

// String returns the lowercase name of the kind, used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "validation"
	case KindFormat:
		return "format"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// FetchError is a documentation failure carrying its localized message.
type FetchError struct {
	Kind       Kind
	Subject    string
	Text       string
	StatusCode int
	Body       string
	Cause      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return e.UserFacingError()
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// UserFacingError renders the localized message returned to the agent.
func (e *FetchError) UserFacingError() string {
	switch e.Kind {
	case KindInvalidURL, KindFormat:
		if e.Text != "" {
			return e.Text
		}
		return msgUnformattable
	case KindTransport:
		return fmt.Sprintf("%sへのリクエストに失敗しました: %v", e.Subject, e.Cause)
	case KindStatus:
		return fmt.Sprintf("%sからエラーが返されました: %d - %s", e.Subject, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%sの内容取得で予期しないエラーが発生しました: %v", e.Subject, e.Cause)
	}
}

// Diagnostic renders the out of band message for the failure.
// Invalid URLs are caller mistakes and have no diagnostic.
func (e *FetchError) Diagnostic() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("HTTP Request Error:%v", e.Cause)
	case KindStatus:
		return fmt.Sprintf("HTTP Status Error:%d - %s", e.StatusCode, e.Body)
	case KindFormat:
		return "Failed Get Http Contents"
	case KindUnexpected:
		return fmt.Sprintf("Unexpected error:%v", e.Cause)
	default:
		return ""
	}
}
