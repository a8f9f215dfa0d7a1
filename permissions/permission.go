package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission describes who may call one route. An empty Permissions list admits
// any authenticated caller; Skip makes the route public.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route.
func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(path, method string) string {
	return strings.ToUpper(method) + " " + normalizePath(path)
}

// normalizePath treats "/v1/rooms" and "/v1/rooms/" as the same route.
func normalizePath(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}

	return path
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]Permission, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		key := routeKey(endpoint.Path, endpoint.Method)

		if _, ok := r.index[key]; ok {
			log.Warn().Str("route", key).Msg("Duplicate permission entry, keeping the first one")

			continue
		}

		r.index[key] = endpoint
	}
}

// FindPermissions returns the rule for a chi route pattern, or the zero Permission
// when the route is not listed.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	key := routeKey(path, method)

	if r.index != nil {
		return r.index[key]
	}

	for _, endpoint := range r.Endpoints {
		if routeKey(endpoint.Path, endpoint.Method) == key {
			return endpoint
		}
	}

	return Permission{}
}

// Parse decodes a permission document.
func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, err //nolint:wrapcheck
	}

	permissions.buildIndex()

	return &permissions, nil
}

// Get loads the embedded permission document.
func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
