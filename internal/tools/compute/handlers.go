package compute

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

const (
	maxServerNameLength  = 61
	maxDescriptionLength = 512
	defaultGeneration    = 100
)

var validGenerations = []int{100, 200}

var (
	msgServerName  = fmt.Sprintf("サーバ名は1-%d文字で指定する必要があります。", maxServerNameLength)
	msgDescription = fmt.Sprintf("説明は最大%d文字まで指定できます。", maxDescriptionLength)
	msgGeneration  = "サーバの世代は100 または 200 を指定する必要があります。"
	msgServerID    = "サーバーIDは必須です。"
)

// ServerPlan is the plan section of a server creation request.
type ServerPlan struct {
	CPU        int    `json:"CPU"`
	MemoryMB   int    `json:"MemoryMB"`
	Commitment string `json:"Commitment"`
	CPUModel   string `json:"CPUModel"`
	Generation int    `json:"Generation"`
}

// ConnectedSwitch is one NIC connection of a new server.
type ConnectedSwitch struct {
	Scope string `json:"Scope"`
}

// Server is the server section of a creation request.
type Server struct {
	Name              string            `json:"Name"`
	Description       string            `json:"Description"`
	ServerPlan        ServerPlan        `json:"ServerPlan"`
	Icon              struct{}          `json:"Icon"`
	Tags              []string          `json:"Tags"`
	ConnectedSwitches []ConnectedSwitch `json:"ConnectedSwitches"`
	InterfaceDriver   string            `json:"InterfaceDriver"`
}

// CreateServerRequest is the body of POST server.
type CreateServerRequest struct {
	Server Server `json:"Server"`
	Count  int    `json:"Count"`
}

// newCreateServerRequest builds a server on the shared segment with a virtio NIC.
func newCreateServerRequest(name, description string, cpu, memoryMB, generation int) CreateServerRequest {
	return CreateServerRequest{
		Server: Server{
			Name:        name,
			Description: description,
			ServerPlan: ServerPlan{
				CPU:        cpu,
				MemoryMB:   memoryMB,
				Commitment: "standard",
				CPUModel:   "uncategorized",
				Generation: generation,
			},
			Tags:              []string{},
			ConnectedSwitches: []ConnectedSwitch{{Scope: "shared"}},
			InterfaceDriver:   "virtio",
		},
	}
}

// getZoneResource handles the plain list tools of this package.
func getZoneResource(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, path ...string) *mcp.CallToolResult {
	base, err := tools.ZoneBase(sc, request.GetArguments())
	if err != nil {
		return tools.ErrorResult(ctx, err)
	}
	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodGet,
		URL:    sacloud.JoinPath(base, path...),
	})
}

// handleGetServerList lists the servers of a zone.
func handleGetServerList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return getZoneResource(ctx, request, sc, "server"), nil
}

// handleGetServerPlan lists the server plans of a zone.
func handleGetServerPlan(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return getZoneResource(ctx, request, sc, "product", "server"), nil
}

func handleGetInterfaceList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return getZoneResource(ctx, request, sc, "interface"), nil
}

func handleGetPacketFilterList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return getZoneResource(ctx, request, sc, "packetfilter"), nil
}

// handleCreateServer creates a server. The disk is created separately.
func handleCreateServer(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if errResult := tools.CheckMutatingOperation(sc, tools.OperationCreate); errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	base, err := tools.ZoneBase(sc, args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	name := tools.StringArg(args, argName)
	if err := tools.CheckLength(name, maxServerNameLength, msgServerName); err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	description := tools.StringArg(args, argDescription)
	if err := tools.CheckMaxLength(description, maxDescriptionLength, msgDescription); err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	generation := defaultGeneration
	if _, present := args[argGeneration]; present {
		gen, ok := tools.IntArg(args, argGeneration)
		if !ok || !slices.Contains(validGenerations, gen) {
			return tools.ErrorResult(ctx, sacloud.NewValidationError("%s", msgGeneration)), nil
		}
		generation = gen
	}

	cpu, err := tools.RequiredInt(args, argCPU)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	memoryMB, err := tools.RequiredInt(args, argMemoryMB)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodPost,
		URL:    sacloud.JoinPath(base, "server"),
		Body:   newCreateServerRequest(name, description, cpu, memoryMB, generation),
	}), nil
}

// powerURL validates the zone and server ID and returns the power endpoint.
func powerURL(sc *server.ServerContext, args map[string]any) (string, error) {
	base, err := tools.ZoneBase(sc, args)
	if err != nil {
		return "", err
	}
	serverID := tools.StringArg(args, argServerID)
	if serverID == "" {
		return "", sacloud.NewValidationError("%s", msgServerID)
	}
	return sacloud.JoinPath(base, "server", serverID, "power"), nil
}

// handleGetServerPowerStatus returns the power state of a server.
func handleGetServerPowerStatus(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	url, err := powerURL(sc, request.GetArguments())
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.Execute(ctx, sc, sacloud.Request{Method: http.MethodGet, URL: url}), nil
}

// handleStartServer powers a server on.
func handleStartServer(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if errResult := tools.CheckMutatingOperation(sc, tools.OperationStart); errResult != nil {
		return errResult, nil
	}

	url, err := powerURL(sc, request.GetArguments())
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.Execute(ctx, sc, sacloud.Request{Method: http.MethodPut, URL: url}), nil
}

// handleStopServer powers a server off. A body is only sent for a forced stop.
func handleStopServer(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if errResult := tools.CheckMutatingOperation(sc, tools.OperationStop); errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	url, err := powerURL(sc, args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	req := sacloud.Request{Method: http.MethodDelete, URL: url}
	if tools.BoolArg(args, argForce) {
		req.Body = map[string]bool{"Force": true}
	}
	return tools.Execute(ctx, sc, req), nil
}
