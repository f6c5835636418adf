package tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-sacloud/internal/docs"
	"github.com/giantswarm/mcp-sacloud/internal/logging"
	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools/output"
)

// userFacing is implemented by errors carrying a localized message.
type userFacing interface {
	UserFacingError() string
}

// diagnosable is implemented by errors carrying an out of band diagnostic.
type diagnosable interface {
	Diagnostic() string
}

type outcomeKey struct{}

// outcome collects what the wrapper needs to know about a failed call.
type outcome struct {
	kind string
}

// ErrorResult renders err as a tool error result with its localized message.
//
// Errors returned by the Sakura Cloud client have already reported their
// diagnostic. Any other error carrying one reports it here.
func ErrorResult(ctx context.Context, err error) *mcp.CallToolResult {
	if o, ok := ctx.Value(outcomeKey{}).(*outcome); ok {
		o.kind = errorKind(err)
	}

	var apiErr *sacloud.Error
	if !errors.As(err, &apiErr) {
		var d diagnosable
		if errors.As(err, &d) {
			sacloud.ReportError(ctx, d.Diagnostic())
		}
	}

	var uf userFacing
	if errors.As(err, &uf) {
		return mcp.NewToolResultError(uf.UserFacingError())
	}
	return mcp.NewToolResultError(err.Error())
}

func errorKind(err error) string {
	var apiErr *sacloud.Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind.String()
	}
	var fetchErr *docs.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind.String()
	}
	return sacloud.KindUnexpected.String()
}

// JSONResult returns raw as a text result, truncated to the configured
// response size limit.
func JSONResult(sc *server.ServerContext, raw []byte) *mcp.CallToolResult {
	out, warning := output.TruncateJSON(raw, sc.Config().MaxResponseBytes)
	if warning != nil {
		sc.Logger().Warn("Tool response truncated",
			"field", warning.Field,
			"shown", warning.Shown,
			"total", warning.Total)
	}
	return mcp.NewToolResultText(string(out))
}

// ObjectResult marshals v and returns it like JSONResult.
func ObjectResult(ctx context.Context, sc *server.ServerContext, v any) *mcp.CallToolResult {
	raw, err := json.Marshal(v)
	if err != nil {
		return ErrorResult(ctx, &sacloud.Error{Kind: sacloud.KindUnexpected, Cause: err})
	}
	return JSONResult(sc, raw)
}

// Execute sends req through the Sakura Cloud client and renders the outcome.
func Execute(ctx context.Context, sc *server.ServerContext, req sacloud.Request) *mcp.CallToolResult {
	raw, err := Send(ctx, sc, req)
	if err != nil {
		return ErrorResult(ctx, err)
	}
	return JSONResult(sc, raw)
}

// Send executes reqs in order and returns the body of the last one. It stops
// at the first failure. In dry-run mode a sequence containing any mutating
// request is not sent; the preview document is returned instead.
func Send(ctx context.Context, sc *server.ServerContext, reqs ...sacloud.Request) (json.RawMessage, error) {
	if sc.Config().DryRun && anyMutating(reqs) {
		sc.Logger().Info("Dry run, request not sent", logging.KeyMethod, reqs[0].Method)
		return json.Marshal(newDryRunPreview(reqs))
	}

	var last json.RawMessage
	for _, req := range reqs {
		raw, err := sc.Client().Execute(ctx, req)
		if err != nil {
			return nil, err
		}
		last = raw
	}
	return last, nil
}

// DryRunPreview is returned instead of the API response in dry-run mode.
type DryRunPreview struct {
	DryRun   bool             `json:"DryRun"`
	Requests []PreviewRequest `json:"Requests"`
}

// PreviewRequest is one request that would have been sent.
type PreviewRequest struct {
	Method string     `json:"Method"`
	URL    string     `json:"URL"`
	Query  url.Values `json:"Query,omitempty"`
	Body   any        `json:"Body,omitempty"`
}

func newDryRunPreview(reqs []sacloud.Request) DryRunPreview {
	preview := DryRunPreview{DryRun: true, Requests: make([]PreviewRequest, 0, len(reqs))}
	for _, req := range reqs {
		preview.Requests = append(preview.Requests, PreviewRequest{
			Method: req.Method,
			URL:    req.URL,
			Query:  req.Query,
			Body:   req.Body,
		})
	}
	return preview
}

func anyMutating(reqs []sacloud.Request) bool {
	for _, req := range reqs {
		if req.Method != http.MethodGet {
			return true
		}
	}
	return false
}
