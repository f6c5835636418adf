package sacloud

import (
	"errors"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

const (
	// cloudAPIPath is the path segment of the zone scoped cloud API.
	cloudAPIPath = "/api/cloud/1.1/"

	// systemAPIPath replaces cloudAPIPath for account level endpoints such as billing.
	systemAPIPath = "/api/system/1.0/"
)

// Object storage registry keys.
const (
	ObjectStorageFedZone = "is1a"
	ObjectStorageS3Zone  = "s3is1a"
)

// ErrEmptyRegistry is returned when a zone agnostic endpoint needs a base URL
// but the registry holds no zones.
var ErrEmptyRegistry = errors.New("zone registry is empty")

// Zone is one entry of a Registry.
type Zone struct {
	Name    string
	BaseURL string
}

// Registry is an ordered, read-only mapping from zone code to base URL.
// The order is significant: error messages list zones in it and zone
// agnostic endpoints use the first entry.
type Registry struct {
	zones []Zone
	index map[string]string
}

// NewRegistry builds a registry from the given zones. Later duplicates are ignored.
func NewRegistry(zones ...Zone) *Registry {
	r := &Registry{index: make(map[string]string, len(zones))}
	for _, z := range zones {
		if _, ok := r.index[z.Name]; ok {
			continue
		}
		r.zones = append(r.zones, z)
		r.index[z.Name] = z.BaseURL
	}
	return r
}

// DefaultZones returns the registry of Sakura Cloud zones.
func DefaultZones() *Registry {
	return NewRegistry(
		zoneFor("is1a"),
		zoneFor("is1b"),
		zoneFor("tk1a"),
		zoneFor("tk1b"),
		zoneFor("tk1v"),
	)
}

// ObjectStorageZones returns the registry used by the object storage tools.
// ObjectStorageFedZone is the federation API and ObjectStorageS3Zone the S3
// compatible endpoint.
func ObjectStorageZones() *Registry {
	return NewRegistry(
		Zone{Name: ObjectStorageFedZone, BaseURL: "https://secure.sakura.ad.jp/cloud/zone/is1a/api/objectstorage/1.0/"},
		Zone{Name: ObjectStorageS3Zone, BaseURL: "https://s3.isk01.sakurastorage.jp"},
	)
}

func zoneFor(name string) Zone {
	return Zone{Name: name, BaseURL: "https://secure.sakura.ad.jp/cloud/zone/" + name + cloudAPIPath}
}

// Names returns the zone codes in registry order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return lo.Map(r.zones, func(z Zone, _ int) string { return z.Name })
}

// Zones returns a copy of the registry entries in order.
func (r *Registry) Zones() []Zone {
	if r == nil {
		return nil
	}
	out := make([]Zone, len(r.zones))
	copy(out, r.zones)
	return out
}

// Len returns the number of zones.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.zones)
}

// Contains reports whether zone is a known zone code.
func (r *Registry) Contains(zone string) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[zone]
	return ok
}

// Validate returns a validation error listing every known zone when zone is
// not in the registry.
func (r *Registry) Validate(zone string) error {
	if r.Contains(zone) {
		return nil
	}
	return NewValidationError("無効なゾーンです。利用可能なゾーン: %s", strings.Join(r.Names(), ", "))
}

// URL validates zone and returns its base URL.
func (r *Registry) URL(zone string) (string, error) {
	if err := r.Validate(zone); err != nil {
		return "", err
	}
	return r.index[zone], nil
}

// First returns the first zone, used by endpoints that are not zone scoped.
func (r *Registry) First() (Zone, error) {
	if r.Len() == 0 {
		return Zone{}, &Error{Kind: KindValidation, Text: "ゾーンが設定されていません。", Cause: ErrEmptyRegistry}
	}
	return r.zones[0], nil
}

// SystemURL converts a zone cloud API base URL to the system API base URL.
func SystemURL(base string) string {
	return strings.Replace(base, cloudAPIPath, systemAPIPath, 1)
}

// JoinPath appends escaped path elements to a base URL that ends with a slash.
func JoinPath(base string, elems ...string) string {
	escaped := lo.Map(elems, func(e string, _ int) string { return url.PathEscape(e) })
	return base + strings.Join(escaped, "/")
}
