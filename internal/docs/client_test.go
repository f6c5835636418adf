package docs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rewriteTransport sends every request to the test server, keeping the path.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = rt.target.Scheme
	out.URL.Host = rt.target.Host
	out.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(out)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	target, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return NewClient(WithHTTPClient(&http.Client{Transport: rewriteTransport{target: target}}))
}

func TestReadManual(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cloud/server/about.html", r.URL.Path)
		_, _ = w.Write([]byte(`<html><body>
<nav>menu</nav>
<div role="main"><h1>サーバ</h1><p>概要です。</p></div>
</body></html>`))
	}))

	got, err := client.ReadManual(context.Background(), "https://manual.sakura.ad.jp/cloud/server/about.html")
	require.NoError(t, err)
	assert.Contains(t, got, "# サーバ")
	assert.Contains(t, got, "概要です。")
	assert.NotContains(t, got, "menu")
}

func TestReadManual_RejectsForeignURL(t *testing.T) {
	client := NewClient()
	_, err := client.ReadManual(context.Background(), "https://example.com/cloud/")
	require.Error(t, err)
	assert.Equal(t, msgInvalidManualURL, err.Error())

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Empty(t, fetchErr.Diagnostic())
}

func TestReadManual_MissingMain(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>no main</p></body></html>`))
	}))

	_, err := client.ReadManual(context.Background(), ManualPrefix+"x.html")
	require.Error(t, err)
	assert.Equal(t, msgUnformattable, err.Error())
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestReadManual_StatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))

	_, err := client.ReadManual(context.Background(), ManualPrefix+"missing.html")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "さくらのクラウドのマニュアルからエラーが返されました: 404 - gone"))
}

func TestAPIManualOutline(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
<a class="js-toggle-guides" href="server.html"> サーバ </a>
<a class="js-toggle-guides" href="disk.html">ディスク</a>
<a class="other" href="ignored.html">ignored</a>
</body></html>`))
	}))

	links, err := client.APIManualOutline(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"サーバ":  "https://manual.sakura.ad.jp/cloud-api/1.1/server.html",
		"ディスク": "https://manual.sakura.ad.jp/cloud-api/1.1/disk.html",
	}, links)
}

func TestReadAPIManual(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="content"><h2>GET /server</h2></div></body></html>`))
	}))

	got, err := client.ReadAPIManual(context.Background(), APIManualPrefix+"1.1/server.html")
	require.NoError(t, err)
	assert.Contains(t, got, "GET /server")

	_, err = client.ReadAPIManual(context.Background(), ManualPrefix)
	assert.EqualError(t, err, msgInvalidAPIManualURL)
}

func TestReadObjectStorageAPIManual(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div class="api-content"><p>ListBuckets</p></div></body></html>`))
	}))

	got, err := client.ReadObjectStorageAPIManual(context.Background())
	require.NoError(t, err)
	assert.Contains(t, got, "ListBuckets")
}

func TestManualOutline_CachesResult(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`<html><body><nav>
<a href="server/">サーバ</a>
<a href="/cloud/disk/">ディスク</a>
<a href="#top">top</a>
<a href="https://example.com/">外部</a>
</nav></body></html>`))
	}))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.ManualOutline(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	outline, err := client.ManualOutline(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"サーバ":  "https://manual.sakura.ad.jp/cloud/server/",
		"ディスク": "https://manual.sakura.ad.jp/cloud/disk/",
	}, outline)
	assert.LessOrEqual(t, calls.Load(), int32(5))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))

	before := calls.Load()
	_, err = client.ManualOutline(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, calls.Load())
}

func TestPrice(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		_, _ = w.Write([]byte(`{"Count":1,"ServiceClasses":{}}`))
	}))

	got, err := client.Price(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"Count":1,"ServiceClasses":{}}`, string(got))
}

func TestPrice_Empty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := client.Price(context.Background())
	assert.EqualError(t, err, msgEmptyPrice)
}

func TestFetchError_Messages(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		err  *FetchError
		want string
	}{
		{&FetchError{Kind: KindTransport, Subject: subjectAPIManual, Cause: cause}, "さくらのクラウドのAPIマニュアルへのリクエストに失敗しました: boom"},
		{&FetchError{Kind: KindStatus, Subject: subjectPrice, StatusCode: 500, Body: "x"}, "さくらのクラウドAPIからエラーが返されました: 500 - x"},
		{&FetchError{Kind: KindUnexpected, Subject: subjectManual, Cause: cause}, "さくらのクラウドのマニュアルの内容取得で予期しないエラーが発生しました: boom"},
		{&FetchError{Kind: KindFormat}, msgUnformattable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.UserFacingError())
	}
}

func TestFetchObserver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/price.json" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	type event struct{ source, status string }
	var events []event
	client := NewClient(
		WithHTTPClient(srv.Client()),
		WithURLs("", srv.URL+"/index.html", "", srv.URL+"/price.json"),
		WithFetchObserver(func(_ context.Context, source, status string) {
			events = append(events, event{source, status})
		}),
	)

	_, err := client.Price(context.Background())
	require.NoError(t, err)
	_, err = client.APIManualOutline(context.Background())
	require.Error(t, err)

	assert.Equal(t, []event{{SourcePrice, "success"}, {SourceAPIManual, "error"}}, events)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindInvalidURL.String())
	assert.Equal(t, "format", KindFormat.String())
	assert.Equal(t, "status", KindStatus.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
