// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-sacloud/internal/instrumentation"
	"github.com/giantswarm/mcp-sacloud/internal/logging"
	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
)

// resourceArgs maps ID arguments to the resource type recorded in the audit log.
// The first present argument wins.
var resourceArgs = []struct {
	arg          string
	resourceType string
}{
	{"server_id", "server"},
	{"lb_id", "loadbalancer"},
	{"vpn_router_id", "vpcrouter"},
	{"router_id", "internet"},
	{"bridge_id", "bridge"},
	{"site_id", "objectstorage_site"},
	{"account_id", "account"},
}

// WrapWithAuditLogging wraps a tool handler with the plumbing every tool shares.
// The wrapper:
//   - rejects calls after the server context has been shut down
//   - bounds the call by the configured request timeout
//   - forwards Sakura Cloud API diagnostics to the MCP client log
//   - traces the call and records tool and error metrics
//   - writes one audit record through the instrumentation provider
//
// Without an instrumentation provider the metrics and audit record are skipped.
func WrapWithAuditLogging(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if sc.IsShutdown() {
			return mcp.NewToolResultError(server.ErrServerShutdown.Error()), nil
		}

		config := sc.Config()
		if config.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, config.RequestTimeout)
			defer cancel()
		}

		invocation := instrumentation.NewToolInvocation(toolName)
		invocation.DryRun = config.DryRun
		extractAuditInfoFromArgs(invocation, request.GetArguments())

		attrs := instrumentation.NewSpanAttributeBuilder().
			WithZone(invocation.Zone).
			WithResource(invocation.ResourceType, invocation.ResourceID).
			WithDryRun(config.DryRun).
			Build()
		ctx, span := instrumentation.StartToolSpan(ctx, toolName, attrs...)
		defer span.End()
		invocation.WithSpanContext(ctx)

		out := &outcome{}
		ctx = context.WithValue(ctx, outcomeKey{}, out)
		ctx = sacloud.WithReporter(ctx, newClientReporter(sc, toolName))

		result, err := handler(ctx, request, sc)

		switch {
		case err != nil:
			invocation.CompleteWithError(err)
			instrumentation.SetSpanError(span, err)
		case result != nil && result.IsError:
			// MCP tool errors are returned in the result, not as Go errors
			invocation.Complete(false, nil)
			invocation.Error = resultText(result)
			invocation.ErrorKind = out.kind
			instrumentation.SetSpanError(span, errors.New(invocation.Error))
		default:
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)
		}

		if provider := sc.InstrumentationProvider(); provider != nil {
			metrics := provider.Metrics()
			metrics.RecordToolCall(ctx, toolName, invocation.Status(), invocation.Duration)
			if invocation.ErrorKind != "" {
				metrics.RecordAPIError(ctx, toolName, invocation.ErrorKind)
			}
			provider.AuditLogger().LogToolInvocation(invocation)
		}

		return result, err
	}
}

// extractAuditInfoFromArgs copies the zone and the target resource from the
// tool arguments into the invocation.
func extractAuditInfoFromArgs(invocation *instrumentation.ToolInvocation, args map[string]any) {
	if zone, ok := args["zone"].(string); ok && zone != "" {
		invocation.WithZone(zone)
	}

	for _, ra := range resourceArgs {
		if id, ok := args[ra.arg].(string); ok && id != "" {
			invocation.WithResource(ra.resourceType, id)
			return
		}
	}
	if name, ok := args["name"].(string); ok && name != "" {
		invocation.WithResource("", name)
	}
}

// newClientReporter returns the Reporter installed for one tool call. Each
// diagnostic is logged and sent to the client as an error level log message.
func newClientReporter(sc *server.ServerContext, toolName string) sacloud.Reporter {
	return sacloud.ReporterFunc(func(ctx context.Context, message string) {
		logger := sc.Logger()
		logger.Warn("Tool request failed", logging.KeyTool, toolName, "diagnostic", message)

		srv := mcpserver.ServerFromContext(ctx)
		if srv == nil {
			return
		}
		notification := mcp.NewLoggingMessageNotification(mcp.LoggingLevelError, sc.Config().ServerName, message)
		if err := srv.SendLogMessageToClient(ctx, notification); err != nil {
			logger.Debug("Could not forward diagnostic to client", logging.KeyError, err)
		}
	})
}

func resultText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if text, ok := result.Content[0].(mcp.TextContent); ok {
		return text.Text
	}
	return ""
}
