package appliance

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
	"github.com/giantswarm/mcp-sacloud/internal/tools"
)

// Appliance classes returned by the appliance endpoint.
const (
	ClassDatabase     = "database"
	ClassLoadBalancer = "loadbalancer"
	ClassVPCRouter    = "vpcrouter"
	ClassVPNRouter    = "vpnrouter"
)

// listAppliances fetches the appliances of the zone in args and keeps those
// whose Class is one of classes, in API order.
func listAppliances(ctx context.Context, sc *server.ServerContext, args map[string]any, classes ...string) ([]json.RawMessage, error) {
	base, err := tools.ZoneBase(sc, args)
	if err != nil {
		return nil, err
	}

	raw, err := tools.Send(ctx, sc, sacloud.Request{Method: http.MethodGet, URL: sacloud.JoinPath(base, "appliance")})
	if err != nil {
		return nil, err
	}

	return filterByClass(raw, classes...), nil
}

func filterByClass(raw []byte, classes ...string) []json.RawMessage {
	matching := lo.Filter(gjson.GetBytes(raw, "Appliances").Array(), func(item gjson.Result, _ int) bool {
		return slices.Contains(classes, item.Get("Class").String())
	})
	return lo.Map(matching, func(item gjson.Result, _ int) json.RawMessage {
		return json.RawMessage(item.Raw)
	})
}
