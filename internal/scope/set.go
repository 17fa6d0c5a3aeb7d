package scope

import (
	"errors"
	"sort"
)

var (
	// ErrScopeNotFound is returned when a key matches no scope in the set.
	ErrScopeNotFound = errors.New("scope not found")
	// ErrAmbiguousKey is returned by the bare-label compatibility lookup when
	// the same department label exists under more than one company or group.
	ErrAmbiguousKey = errors.New("department label matches more than one scope")
)

// Set holds the bipartite authorized/unauthorized partition of an employee's
// authorization scopes, grouped by company label. Every scope lives in
// exactly one partition at all times; all operations move scopes atomically
// and conserve the total count.
type Set struct {
	authorized   map[string][]Scope
	unauthorized map[string][]Scope
	total        int
}

// NewSet normalizes a raw document into a partition set.
func NewSet(doc Document) *Set {
	s := &Set{
		authorized:   make(map[string][]Scope),
		unauthorized: make(map[string][]Scope),
	}
	auth, unauth := normalize(doc)
	for _, sc := range auth {
		s.authorized[sc.Company] = append(s.authorized[sc.Company], sc)
		s.total++
	}
	for _, sc := range unauth {
		s.unauthorized[sc.Company] = append(s.unauthorized[sc.Company], sc)
		s.total++
	}
	return s
}

// Total returns the number of scopes in the set across both partitions.
func (s *Set) Total() int { return s.total }

// Toggle moves the scope identified by key to the opposite partition and
// reports whether it is authorized afterwards.
func (s *Set) Toggle(key Key) (bool, error) {
	if sc, ok := s.take(s.authorized, key); ok {
		s.put(s.unauthorized, sc)
		return false, nil
	}
	if sc, ok := s.take(s.unauthorized, key); ok {
		s.put(s.authorized, sc)
		return true, nil
	}
	return false, ErrScopeNotFound
}

// ToggleDepartment is the legacy bare-label toggle. Department labels are not
// globally unique; when the label matches scopes under more than one
// company/group the call fails instead of guessing.
func (s *Set) ToggleDepartment(department string) (Key, bool, error) {
	var matches []Key
	for _, part := range []map[string][]Scope{s.authorized, s.unauthorized} {
		for _, scopes := range part {
			for _, sc := range scopes {
				if sc.Department == department {
					matches = append(matches, sc.Key())
				}
			}
		}
	}
	switch len(matches) {
	case 0:
		return Key{}, false, ErrScopeNotFound
	case 1:
		authorized, err := s.Toggle(matches[0])
		return matches[0], authorized, err
	default:
		return Key{}, false, ErrAmbiguousKey
	}
}

// MoveGroupToAuthorized authorizes every scope under the company label.
// Returns the number of scopes moved; zero when the group has no
// unauthorized members.
func (s *Set) MoveGroupToAuthorized(company string) int {
	return s.moveGroup(s.unauthorized, s.authorized, company)
}

// MoveGroupToUnauthorized revokes every scope under the company label.
func (s *Set) MoveGroupToUnauthorized(company string) int {
	return s.moveGroup(s.authorized, s.unauthorized, company)
}

func (s *Set) moveGroup(from, to map[string][]Scope, company string) int {
	scopes, ok := from[company]
	if !ok {
		return 0
	}
	delete(from, company)
	for _, sc := range scopes {
		s.put(to, sc)
	}
	return len(scopes)
}

// MoveFilteredToAuthorized authorizes every unauthorized scope matching the
// filter ("authorize all visible"). Returns the number of scopes moved.
func (s *Set) MoveFilteredToAuthorized(f Filter) int {
	return s.moveFiltered(s.unauthorized, s.authorized, f)
}

// MoveFilteredToUnauthorized revokes every authorized scope matching the
// filter ("deselect all visible").
func (s *Set) MoveFilteredToUnauthorized(f Filter) int {
	return s.moveFiltered(s.authorized, s.unauthorized, f)
}

func (s *Set) moveFiltered(from, to map[string][]Scope, f Filter) int {
	moved := 0
	for company := range from {
		if !f.matchStatus(s.groupStatus(company)) {
			continue
		}
		var keep []Scope
		for _, sc := range from[company] {
			if f.matchScope(sc) {
				s.put(to, sc)
				moved++
			} else {
				keep = append(keep, sc)
			}
		}
		if len(keep) == 0 {
			delete(from, company)
		} else {
			from[company] = keep
		}
	}
	return moved
}

// ClearAllAuthorized revokes every authorized scope.
func (s *Set) ClearAllAuthorized() int {
	moved := 0
	for company, scopes := range s.authorized {
		for _, sc := range scopes {
			s.put(s.unauthorized, sc)
			moved++
		}
		delete(s.authorized, company)
	}
	return moved
}

// FlattenAuthorized returns the authorized partition as a flat list sorted by
// company then department. This is the save payload handed to the external
// persistence collaborator.
func (s *Set) FlattenAuthorized() []Scope {
	out := []Scope{}
	for _, scopes := range s.authorized {
		out = append(out, scopes...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Company != out[j].Company {
			return out[i].Company < out[j].Company
		}
		return out[i].Department < out[j].Department
	})
	return out
}

// take removes and returns the scope with the given key from a partition.
func (s *Set) take(part map[string][]Scope, key Key) (Scope, bool) {
	scopes, ok := part[key.Company]
	if !ok {
		return Scope{}, false
	}
	for i, sc := range scopes {
		if sc.Key() == key {
			part[key.Company] = append(scopes[:i:i], scopes[i+1:]...)
			if len(part[key.Company]) == 0 {
				delete(part, key.Company)
			}
			return sc, true
		}
	}
	return Scope{}, false
}

func (s *Set) put(part map[string][]Scope, sc Scope) {
	part[sc.Company] = append(part[sc.Company], sc)
}

// groupStatus reports whether the company group currently has authorized and
// unauthorized members.
func (s *Set) groupStatus(company string) (hasAuthorized, hasUnauthorized bool) {
	return len(s.authorized[company]) > 0, len(s.unauthorized[company]) > 0
}
