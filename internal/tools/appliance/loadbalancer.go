package appliance

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

const (
	maxNameLength        = 64
	maxDescriptionLength = 512

	// Load balancer servers are balanced on HTTP and checked with ping.
	balancedPort     = "80"
	delayLoopSeconds = "120"
)

const (
	msgLoadBalancerName = "ロードバランサ名は1-64文字で指定する必要があります。"
	msgDescription      = "説明は最大512文字まで指定できます。"
	msgVRID             = "VRIDは1から255の整数で指定する必要があります。"
	msgNetworkMask      = "プレフィックス長は8から29の整数で指定する必要があります。"
	msgServerIPs        = "server_ips には1つ以上のIPアドレスを指定してください。"
)

// ID references another resource.
type ID struct {
	ID string `json:"ID"`
}

// VRRP is the redundancy group of a load balancer.
type VRRP struct {
	VRID int `json:"VRID"`
}

// Network is the network section of a load balancer remark.
type Network struct {
	NetworkMaskLen int    `json:"NetworkMaskLen"`
	DefaultRoute   string `json:"DefaultRoute,omitempty"`
}

// IPAddress is one address of the load balancer itself.
type IPAddress struct {
	IPAddress string `json:"IPAddress"`
}

// Remark holds the placement of a new load balancer.
type Remark struct {
	Switch  ID          `json:"Switch"`
	VRRP    VRRP        `json:"VRRP"`
	Network Network     `json:"Network"`
	Servers []IPAddress `json:"Servers"`
}

// HealthCheck is the health check of a balanced server.
type HealthCheck struct {
	Protocol string `json:"Protocol"`
}

// BalancedServer is one real server behind a virtual IP.
type BalancedServer struct {
	IPAddress   string      `json:"IPAddress"`
	Port        string      `json:"Port"`
	HealthCheck HealthCheck `json:"HealthCheck"`
	Enabled     string      `json:"Enabled"`
}

// VirtualIP is one balanced address of a load balancer.
type VirtualIP struct {
	VirtualIPAddress string           `json:"VirtualIPAddress"`
	Port             string           `json:"Port"`
	DelayLoop        string           `json:"DelayLoop"`
	Servers          []BalancedServer `json:"Servers"`
}

// LoadBalancerSettings is the settings section of a load balancer.
type LoadBalancerSettings struct {
	LoadBalancer []VirtualIP `json:"LoadBalancer"`
}

// LoadBalancer is the appliance section of a load balancer creation request.
type LoadBalancer struct {
	Class       string               `json:"Class"`
	Name        string               `json:"Name"`
	Description string               `json:"Description"`
	Plan        ID                   `json:"Plan"`
	Settings    LoadBalancerSettings `json:"Settings"`
	Remark      Remark               `json:"Remark"`
}

// SettingsUpdate is the appliance section of a settings update.
type SettingsUpdate struct {
	Settings LoadBalancerSettings `json:"Settings"`
}

// handleGetLoadBalancers lists load balancer appliances.
func handleGetLoadBalancers(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	balancers, err := listAppliances(ctx, sc, request.GetArguments(), ClassLoadBalancer)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.ObjectResult(ctx, sc, balancers), nil
}

// handleCreateLoadBalancer creates a single plan load balancer on a switch
// with no virtual IP configured yet.
func handleCreateLoadBalancer(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if errResult := tools.CheckMutatingOperation(sc, tools.OperationCreate); errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	base, err := tools.ZoneBase(sc, args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	lb, err := loadBalancerFromArgs(args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	return tools.Execute(ctx, sc, sacloud.Request{
		Method: http.MethodPost,
		URL:    sacloud.JoinPath(base, "appliance"),
		Body:   map[string]LoadBalancer{"Appliance": lb},
	}), nil
}

func loadBalancerFromArgs(args map[string]any) (LoadBalancer, error) {
	name := tools.StringArg(args, argName)
	if err := tools.CheckLength(name, maxNameLength, msgLoadBalancerName); err != nil {
		return LoadBalancer{}, err
	}
	description := tools.StringArg(args, argDescription)
	if err := tools.CheckMaxLength(description, maxDescriptionLength, msgDescription); err != nil {
		return LoadBalancer{}, err
	}
	lbIP, err := tools.RequiredString(args, argLBIP)
	if err != nil {
		return LoadBalancer{}, err
	}
	switchID, err := tools.RequiredString(args, argSwitchID)
	if err != nil {
		return LoadBalancer{}, err
	}
	vrid, ok := tools.IntArg(args, argVRID)
	if !ok || vrid < 1 || vrid > 255 {
		return LoadBalancer{}, sacloud.NewValidationError("%s", msgVRID)
	}
	maskLen, ok := tools.IntArg(args, argNetworkMask)
	if !ok || maskLen < 8 || maskLen > 29 {
		return LoadBalancer{}, sacloud.NewValidationError("%s", msgNetworkMask)
	}

	return LoadBalancer{
		Class:       ClassLoadBalancer,
		Name:        name,
		Description: description,
		Plan:        ID{ID: "1"},
		Settings:    LoadBalancerSettings{LoadBalancer: []VirtualIP{}},
		Remark: Remark{
			Switch: ID{ID: switchID},
			VRRP:   VRRP{VRID: vrid},
			Network: Network{
				NetworkMaskLen: maskLen,
				DefaultRoute:   tools.StringArg(args, argDefaultRouter),
			},
			Servers: []IPAddress{{IPAddress: lbIP}},
		},
	}, nil
}

// handleAttachServers replaces the virtual IP settings of a load balancer and
// applies them. The settings update and the config apply are sent in order;
// the apply is skipped when the update fails.
func handleAttachServers(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if errResult := tools.CheckMutatingOperation(sc, tools.OperationAttach); errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	base, err := tools.ZoneBase(sc, args)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}

	lbID, err := tools.RequiredString(args, argLBID)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	vip, err := tools.RequiredString(args, argVIP)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	serverIPs := tools.StringSliceArg(args, argServerIPs)
	if len(serverIPs) == 0 {
		return tools.ErrorResult(ctx, sacloud.NewValidationError("%s", msgServerIPs)), nil
	}

	raw, err := tools.Send(ctx, sc,
		sacloud.Request{
			Method: http.MethodPut,
			URL:    sacloud.JoinPath(base, "appliance", lbID),
			Body:   map[string]SettingsUpdate{"Appliance": newSettingsUpdate(vip, serverIPs)},
		},
		sacloud.Request{
			Method: http.MethodPut,
			URL:    sacloud.JoinPath(base, "appliance", lbID, "config"),
		},
	)
	if err != nil {
		return tools.ErrorResult(ctx, err), nil
	}
	return tools.JSONResult(sc, raw), nil
}

func newSettingsUpdate(vip string, serverIPs []string) SettingsUpdate {
	servers := make([]BalancedServer, 0, len(serverIPs))
	for _, ip := range serverIPs {
		servers = append(servers, BalancedServer{
			IPAddress:   ip,
			Port:        balancedPort,
			HealthCheck: HealthCheck{Protocol: "ping"},
			Enabled:     "True",
		})
	}
	return SettingsUpdate{
		Settings: LoadBalancerSettings{
			LoadBalancer: []VirtualIP{{
				VirtualIPAddress: vip,
				Port:             balancedPort,
				DelayLoop:        delayLoopSeconds,
				Servers:          servers,
			}},
		},
	}
}
