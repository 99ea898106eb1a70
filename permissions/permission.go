// Package permissions holds the route access table that the RBAC middleware
// consults. The table is embedded at build time from permissions.json and is
// keyed by the chi route pattern, not the concrete request path.
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

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the endpoint. An entry with no roles
// listed is open to any authenticated caller.
func (p Permission) Allows(role string) bool {
	if p.Skip || len(p.Permissions) == 0 {
		return true
	}

	return slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]int
}

func key(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]int, len(r.Endpoints))

	for i, endpoint := range r.Endpoints {
		k := key(endpoint.Method, endpoint.Path)
		if _, dup := r.index[k]; dup {
			log.Warn().Str("endpoint", k).Msg("duplicate permission entry, first one wins")

			continue
		}

		r.index[k] = i
	}
}

// FindPermissions returns the zero Permission when path/method is not listed.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index == nil {
		r.buildIndex()
	}

	idx, ok := r.index[key(method, path)]
	if !ok {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func Get() *PermissionData {
	var permissions PermissionData

	if err := json.Unmarshal(permissionsData, &permissions); err != nil {
		log.Err(err).Msg("failed to decode embedded permissions")

		return nil
	}

	permissions.buildIndex()

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("permissions loaded")

	return &permissions
}
