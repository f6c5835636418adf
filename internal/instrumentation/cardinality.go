package instrumentation

import (
	"net/http"
	"strconv"
	"strings"
)

// Cardinality management helpers for metrics.
// Raw zone names, resource IDs and URLs are never used as label values; they
// are reduced to the small fixed sets below first.

// ZoneRegion represents a classification of Sakura Cloud zones for metrics.
type ZoneRegion string

// Zone region classifications for metrics cardinality control.
const (
	// ZoneRegionIshikari covers the Ishikari data centers (is1a, is1b, ...).
	ZoneRegionIshikari ZoneRegion = "ishikari"

	// ZoneRegionTokyo covers the Tokyo data centers (tk1a, tk1b, ...).
	ZoneRegionTokyo ZoneRegion = "tokyo"

	// ZoneRegionSandbox is the tk1v sandbox zone, which is billed and behaves differently.
	ZoneRegionSandbox ZoneRegion = "sandbox"

	// ZoneRegionGlobal is used for calls that are not bound to a zone (bills, documentation).
	ZoneRegionGlobal ZoneRegion = "global"

	// ZoneRegionUnknown represents zones that don't match any known pattern.
	ZoneRegionUnknown ZoneRegion = "unknown"
)

// ClassifyZone classifies a zone name into a region for metrics.
//
//	ClassifyZone("is1a") // "ishikari"
//	ClassifyZone("tk1b") // "tokyo"
//	ClassifyZone("tk1v") // "sandbox"
//	ClassifyZone("")     // "global"
//	ClassifyZone("xx9z") // "unknown"
func ClassifyZone(zone string) string {
	z := strings.ToLower(zone)
	switch {
	case z == "":
		return string(ZoneRegionGlobal)
	case z == "tk1v":
		return string(ZoneRegionSandbox)
	case strings.HasPrefix(z, "is"), strings.HasPrefix(z, "s3is"):
		return string(ZoneRegionIshikari)
	case strings.HasPrefix(z, "tk"):
		return string(ZoneRegionTokyo)
	}
	return string(ZoneRegionUnknown)
}

// StatusClass collapses an HTTP status code into "2xx", "4xx" and so on.
// A zero code (no response received) is reported as "none".
func StatusClass(code int) string {
	if code <= 0 {
		return "none"
	}
	if code < 100 || code > 599 {
		return StatusUnknown
	}
	return strconv.Itoa(code/100) + "xx"
}

// ClassifyOperation derives the operation label from a request method and path.
//
//	ClassifyOperation("GET", "/api/cloud/1.1/server")              // "list"
//	ClassifyOperation("GET", "/api/cloud/1.1/server/113300000001") // "get"
//	ClassifyOperation("PUT", "/api/cloud/1.1/server/1/power")      // "power"
//	ClassifyOperation("DELETE", "/api/cloud/1.1/server/1/power")   // "power"
func ClassifyOperation(method, path string) string {
	path = strings.TrimSuffix(path, "/")
	if strings.HasSuffix(path, "/power") {
		return OperationPower
	}

	switch strings.ToUpper(method) {
	case http.MethodGet:
		last := path[strings.LastIndex(path, "/")+1:]
		if _, err := strconv.ParseUint(last, 10, 64); err == nil {
			return OperationGet
		}
		return OperationList
	case http.MethodPost:
		return OperationCreate
	case http.MethodPut:
		return OperationUpdate
	case http.MethodDelete:
		return OperationDelete
	}
	return StatusUnknown
}

// ResourceTypeFromPath returns the first path segment after the API version,
// e.g. "server" for "/cloud/zone/is1a/api/cloud/1.1/server/1/power".
// Paths outside the cloud and system APIs return "other".
func ResourceTypeFromPath(path string) string {
	for _, marker := range []string{"/api/cloud/1.1/", "/api/system/1.0/"} {
		idx := strings.Index(path, marker)
		if idx < 0 {
			continue
		}
		rest := path[idx+len(marker):]
		if seg, _, _ := strings.Cut(rest, "/"); seg != "" {
			return strings.ToLower(seg)
		}
	}
	return "other"
}
