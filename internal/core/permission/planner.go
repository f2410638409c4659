// Package permission plans RBAC permission synthesis from named routes.
// BuildPlan is pure; persistence happens in the caller.
package permission

import (
	"strings"

	"github.com/example/crudgen/internal/core/naming"
)

// Entry is one permission derived from a route name.
type Entry struct {
	Key  string // route name, e.g. "roles.index"
	Name string // display name, e.g. "Roles Index"
}

// Group collects the permissions sharing a route-name prefix.
type Group struct {
	Prefix  string // first route-name segment, e.g. "roles"
	Name    string // stored group name, e.g. "ROLES"
	Entries []Entry
}

// Plan is the ordered set of groups to find-or-create.
type Plan struct {
	Groups []Group
}

// PermissionCount returns the number of entries across all groups.
func (p Plan) PermissionCount() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Entries)
	}
	return n
}

// BuildPlan groups dotted route names by their first segment.
// Names without a dot are ignored. Groups and entries keep first-seen order
// and a repeated route name is planned once.
func BuildPlan(routeNames []string) Plan {
	var plan Plan
	index := make(map[string]int)
	seen := make(map[string]bool)

	for _, route := range routeNames {
		prefix, _, ok := strings.Cut(route, ".")
		if !ok || seen[route] {
			continue
		}
		seen[route] = true

		i, exists := index[prefix]
		if !exists {
			i = len(plan.Groups)
			index[prefix] = i
			plan.Groups = append(plan.Groups, Group{
				Prefix: prefix,
				Name:   strings.ToUpper(prefix),
			})
		}
		plan.Groups[i].Entries = append(plan.Groups[i].Entries, Entry{
			Key:  route,
			Name: naming.HeadlineSep(route, "."),
		})
	}

	return plan
}
