package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/giantswarm/mcp-sacloud/internal/server"
)

// Operation names checked by CheckMutatingOperation.
const (
	OperationCreate = "create"
	OperationDelete = "delete"
	OperationStart  = "start"
	OperationStop   = "stop"
	OperationAttach = "attach"
)

// CheckMutatingOperation verifies if a mutating operation is allowed given the current
// server configuration. Returns an error result if blocked, nil if allowed.
//
// Operations are allowed if NonDestructiveMode is disabled or DryRun mode is
// enabled, in which case the request is previewed and not sent.
func CheckMutatingOperation(sc *server.ServerContext, operation string) *mcp.CallToolResult {
	config := sc.Config()
	if !config.NonDestructiveMode || config.DryRun {
		return nil
	}

	return mcp.NewToolResultError(fmt.Sprintf(
		"%s 操作は非破壊モードでは実行できません。--dry-run を指定すると送信内容を確認できます。",
		cases.Title(language.English).String(operation),
	))
}
