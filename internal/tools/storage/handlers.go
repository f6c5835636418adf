package storage

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

const (
	maxDiskNameLength    = 64
	maxDescriptionLength = 512
)

var (
	msgDiskName    = fmt.Sprintf("ディスク名は1-%d文字で指定する必要があります。", maxDiskNameLength)
	msgDescription = fmt.Sprintf("説明は最大%d文字まで指定できます。", maxDescriptionLength)
)

// ResourceRef references another resource by ID.
type ResourceRef struct {
	ID string `json:"ID"`
}

// Disk is the disk section of a creation request.
type Disk struct {
	Name          string      `json:"Name"`
	Description   string      `json:"Description"`
	Plan          ResourceRef `json:"Plan"`
	SizeMB        int         `json:"SizeMB"`
	Connection    string      `json:"Connection"`
	SourceArchive ResourceRef `json:"SourceArchive"`
	Server        ResourceRef `json:"Server"`
}

// CreateDiskRequest is the body of POST disk.
type CreateDiskRequest struct {
	Disk Disk `json:"Disk"`
}

// ArchiveSummary is one entry of the archive list tool.
type ArchiveSummary struct {
	Name string `json:"Name"`
	ID   string `json:"ID"`
}

func handleGetDisk(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	base, err := tools.ZoneBase(sc, request.GetArguments())
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.Execute(ctx, sc, sacloud.Request{Method: http.MethodGet, URL: sacloud.JoinPath(base, "disk")}), nil
}

func handleGetDiskPlan(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	base, err := tools.ZoneBase(sc, request.GetArguments())
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.Execute(ctx, sc, sacloud.Request{Method: http.MethodGet, URL: sacloud.JoinPath(base, "product", "disk")}), nil
}

// handleCreateDisk creates a disk from an archive and connects it to a server.
func handleCreateDisk(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if errResult := tools.CheckMutatingOperation(sc, tools.OperationCreate); errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	base, err := tools.ZoneBase(sc, args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	disk, err := diskFromArgs(args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodPost,
		URL:    sacloud.JoinPath(base, "disk"),
		Body:   CreateDiskRequest{Disk: disk},
	}), nil
}

func diskFromArgs(args map[string]any) (Disk, error) {
	name := tools.StringArg(args, argName)
	if err := tools.CheckLength(name, maxDiskNameLength, msgDiskName); err != nil {
		return Disk{}, err
	}
	description := tools.StringArg(args, argDescription)
	if err := tools.CheckMaxLength(description, maxDescriptionLength, msgDescription); err != nil {
		return Disk{}, err
	}
	planID, err := tools.RequiredString(args, argPlanID)
	if err != nil {
		return Disk{}, err
	}
	sizeMB, err := tools.RequiredInt(args, argSizeMB)
	if err != nil {
		return Disk{}, err
	}
	archiveID, err := tools.RequiredString(args, argSourceArchiveID)
	if err != nil {
		return Disk{}, err
	}
	serverID, err := tools.RequiredString(args, argServerID)
	if err != nil {
		return Disk{}, err
	}

	return Disk{
		Name:          name,
		Description:   description,
		Plan:          ResourceRef{ID: planID},
		SizeMB:        sizeMB,
		Connection:    "virtio",
		SourceArchive: ResourceRef{ID: archiveID},
		Server:        ResourceRef{ID: serverID},
	}, nil
}

// handleGetArchiveList lists archives reduced to their name and ID.
func handleGetArchiveList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	base, err := tools.ZoneBase(sc, request.GetArguments())
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	raw, err := tools.Send(ctx, sc, sacloud.Request{Method: http.MethodGet, URL: sacloud.JoinPath(base, "archive")})
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	return tools.ObjectResult(ctx, sc, summarizeArchives(raw)), nil
}

func summarizeArchives(raw []byte) []ArchiveSummary {
	return lo.Map(gjson.GetBytes(raw, "Archives").Array(), func(item gjson.Result, _ int) ArchiveSummary {
		return ArchiveSummary{
			Name: item.Get("Name").String(),
			ID:   item.Get("ID").String(),
		}
	})
}
