package repository

import (
	"sort"

	"go-approval-flow/internal/model"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// RoleDirectory is the read-only lookup over the loaded role records. An
// empty directory is valid; lookups simply miss and dependents degrade to
// "no roster available".
type RoleDirectory interface {
	FindAll() []model.Role
	FindByID(id string) (*model.Role, bool)
	// FindByName matches the display name exactly. No case folding; role
	// names are a human-entered business contract.
	FindByName(name string) (*model.Role, bool)
	// Suggest returns ranked near-matches for a name that failed to resolve.
	// Advisory output for diagnostics only, never used for resolution.
	Suggest(name string) []string
}

type roleDirectory struct {
	roles  []model.Role
	byID   map[string]*model.Role
	byName map[string]*model.Role
	names  []string
}

// NewRoleDirectory builds the directory from raw role records. Employee
// counts are derived here; a role with no employees stays listed.
func NewRoleDirectory(roles []model.Role) RoleDirectory {
	d := &roleDirectory{
		roles:  make([]model.Role, len(roles)),
		byID:   make(map[string]*model.Role, len(roles)),
		byName: make(map[string]*model.Role, len(roles)),
		names:  make([]string, 0, len(roles)),
	}
	for i, role := range roles {
		if role.Employees == nil {
			role.Employees = []model.Employee{}
		}
		role.EmployeeCount = len(role.Employees)
		d.roles[i] = role
		d.byID[role.ID] = &d.roles[i]
		d.byName[role.Name] = &d.roles[i]
		d.names = append(d.names, role.Name)
	}
	return d
}

func (d *roleDirectory) FindAll() []model.Role {
	return d.roles
}

func (d *roleDirectory) FindByID(id string) (*model.Role, bool) {
	if id == "" {
		return nil, false
	}
	role, ok := d.byID[id]
	return role, ok
}

func (d *roleDirectory) FindByName(name string) (*model.Role, bool) {
	if name == "" {
		return nil, false
	}
	role, ok := d.byName[name]
	return role, ok
}

const maxSuggestions = 5

func (d *roleDirectory) Suggest(name string) []string {
	if name == "" || len(d.names) == 0 {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(name, d.names)
	sort.Sort(ranks)
	out := make([]string, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, rank.Target)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
