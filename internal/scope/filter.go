package scope

import (
	"sort"
	"strings"
)

// Status classes a filter can select on. A group (company) is authorized when
// at least one of its scopes is authorized, unauthorized when at least one is
// not, and partial when both hold.
const (
	StatusAuthorized   = "authorized"
	StatusUnauthorized = "unauthorized"
	StatusPartial      = "partial"
)

// Filter is the conjunction of the panel's filter inputs. Zero values mean
// "no constraint".
type Filter struct {
	Search  string `json:"search"`
	GroupID string `json:"group_id"`
	Status  string `json:"status" validate:"omitempty,oneof=authorized unauthorized partial"`
}

// matchScope applies the per-scope constraints: case-insensitive substring
// search against department and company labels, and exact group-id equality.
func (f Filter) matchScope(s Scope) bool {
	if f.GroupID != "" && s.GroupID != f.GroupID {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(s.Department), q) &&
			!strings.Contains(strings.ToLower(s.Company), q) {
			return false
		}
	}
	return true
}

// matchStatus applies the group-level status class.
func (f Filter) matchStatus(hasAuthorized, hasUnauthorized bool) bool {
	switch f.Status {
	case StatusAuthorized:
		return hasAuthorized
	case StatusUnauthorized:
		return hasUnauthorized
	case StatusPartial:
		return hasAuthorized && hasUnauthorized
	default:
		return true
	}
}

// Group is one company's scopes inside a partition view.
type Group struct {
	Company     string  `json:"company"`
	CompanyName string  `json:"company_name,omitempty"`
	GroupID     string  `json:"group_id,omitempty"`
	Scopes      []Scope `json:"scopes"`
}

// Counts are the panel's aggregate statistics. They are always computed from
// the unfiltered full set so that totals do not shift with the active filter.
type Counts struct {
	Authorized   int `json:"authorized"`
	Unauthorized int `json:"unauthorized"`
	Total        int `json:"total"`
	// Companies is the number of distinct companies holding at least one
	// authorized scope.
	Companies int `json:"companies"`
	// Groups is the number of distinct group ids across the whole set.
	Groups int `json:"groups"`
}

// View is the projection the panel renders: both partitions grouped by
// company label, alphabetically sorted, plus the full-set statistics and the
// distinct company labels for the company filter dropdown.
type View struct {
	Authorized     []Group  `json:"authorized"`
	Unauthorized   []Group  `json:"unauthorized"`
	CompanyOptions []string `json:"company_options"`
	Counts         Counts   `json:"counts"`
}

// View projects the set through the filter. It never mutates the set.
func (s *Set) View(f Filter) View {
	return View{
		Authorized:     s.project(s.authorized, f),
		Unauthorized:   s.project(s.unauthorized, f),
		CompanyOptions: s.companyOptions(),
		Counts:         s.Counts(),
	}
}

func (s *Set) project(part map[string][]Scope, f Filter) []Group {
	groups := []Group{}
	for company, scopes := range part {
		if !f.matchStatus(s.groupStatus(company)) {
			continue
		}
		g := Group{Company: company}
		for _, sc := range scopes {
			if !f.matchScope(sc) {
				continue
			}
			if g.CompanyName == "" {
				g.CompanyName = sc.CompanyName
			}
			if g.GroupID == "" {
				g.GroupID = sc.GroupID
			}
			g.Scopes = append(g.Scopes, sc)
		}
		if len(g.Scopes) == 0 {
			continue
		}
		sort.Slice(g.Scopes, func(i, j int) bool {
			return g.Scopes[i].Department < g.Scopes[j].Department
		})
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Company < groups[j].Company
	})
	return groups
}

// Counts computes the aggregate statistics from the full set.
func (s *Set) Counts() Counts {
	c := Counts{Total: s.total}
	groupIDs := make(map[string]struct{})
	for _, scopes := range s.authorized {
		c.Authorized += len(scopes)
		for _, sc := range scopes {
			if sc.GroupID != "" {
				groupIDs[sc.GroupID] = struct{}{}
			}
		}
	}
	c.Companies = len(s.authorized)
	for _, scopes := range s.unauthorized {
		c.Unauthorized += len(scopes)
		for _, sc := range scopes {
			if sc.GroupID != "" {
				groupIDs[sc.GroupID] = struct{}{}
			}
		}
	}
	c.Groups = len(groupIDs)
	return c
}

// companyOptions returns the distinct company labels across both partitions,
// sorted, for the panel's company dropdown.
func (s *Set) companyOptions() []string {
	seen := make(map[string]struct{})
	for company := range s.authorized {
		seen[company] = struct{}{}
	}
	for company := range s.unauthorized {
		seen[company] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for company := range seen {
		out = append(out, company)
	}
	sort.Strings(out)
	return out
}
