package tools

import (
	"encoding/json"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-sacloud/internal/sacloud"
	"github.com/giantswarm/mcp-sacloud/internal/server"
)

// Common argument names.
const (
	ArgZone = "zone"
)

// ZoneParam returns the zone argument shared by every zone scoped tool.
func ZoneParam() mcp.ToolOption {
	return mcp.WithString(ArgZone,
		mcp.Required(),
		mcp.Description("対象のゾーン (例: is1a)。利用可能なゾーンはget_zone_listで確認してください。"),
	)
}

// ZoneBase validates the zone argument and the credentials, in that order,
// and returns the base URL of the zone.
func ZoneBase(sc *server.ServerContext, args map[string]any) (string, error) {
	zone := StringArg(args, ArgZone)
	if err := sacloud.ValidateRequestContext(zone, sc.Zones(), sc.Credentials()); err != nil {
		return "", err
	}
	return sc.Zones().URL(zone)
}

// FirstZoneBase returns the base URL of the first zone, used by endpoints
// that are not zone scoped.
func FirstZoneBase(sc *server.ServerContext) (string, error) {
	zone, err := sc.Zones().First()
	if err != nil {
		return "", err
	}
	return zone.BaseURL, nil
}

// StringArg returns the string argument key, or "" when absent or not a string.
func StringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// RequiredString returns the string argument key, or a validation error when it is empty.
func RequiredString(args map[string]any, key string) (string, error) {
	s := StringArg(args, key)
	if s == "" {
		return "", sacloud.NewValidationError("%s は必須です。", key)
	}
	return s, nil
}

// IntArg returns the integer argument key. JSON numbers arrive as float64;
// numeric strings are accepted too. ok is false when the argument is absent
// or not an integer.
func IntArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	default:
		return 0, false
	}
}

// RequiredInt returns the integer argument key or a validation error.
func RequiredInt(args map[string]any, key string) (int, error) {
	if _, present := args[key]; !present {
		return 0, sacloud.NewValidationError("%s は必須です。", key)
	}
	n, ok := IntArg(args, key)
	if !ok {
		return 0, sacloud.NewValidationError("%s は整数で指定してください。", key)
	}
	return n, nil
}

// BoolArg returns the boolean argument key, false when absent.
func BoolArg(args map[string]any, key string) bool {
	switch v := args[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// StringSliceArg returns the string elements of the array argument key.
// Non string elements are skipped.
func StringSliceArg(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// CheckLength returns a validation error with message when value is empty
// or longer than max characters.
func CheckLength(value string, max int, message string) error {
	if value == "" || utf8.RuneCountInString(value) > max {
		return sacloud.NewValidationError("%s", message)
	}
	return nil
}

// CheckMaxLength is CheckLength for optional values.
func CheckMaxLength(value string, max int, message string) error {
	if utf8.RuneCountInString(value) > max {
		return sacloud.NewValidationError("%s", message)
	}
	return nil
}
