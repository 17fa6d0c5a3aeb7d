package scope

// Scope is one department/company authorization record that can be granted or
// revoked for an employee.
type Scope struct {
	Department  string `json:"department"`
	Company     string `json:"company"`
	CompanyName string `json:"company_name,omitempty"`
	GroupID     string `json:"group_id,omitempty"`
}

// Key identifies a scope within a set. Department labels are not guaranteed
// unique across companies, so the key is the composite of all three
// dimensions.
type Key struct {
	Department string `json:"department"`
	Company    string `json:"company"`
	GroupID    string `json:"group_id,omitempty"`
}

// Key returns the composite key of the scope.
func (s Scope) Key() Key {
	return Key{Department: s.Department, Company: s.Company, GroupID: s.GroupID}
}

// Document is the wire form of an authorization dataset. Three physical
// layouts exist in the field; exactly one of the fields below is expected to
// be populated. All three normalize to the same flat scope list.
type Document struct {
	// Flat list, one record per scope, with a Y/N flag.
	Data []FlatRecord `json:"data,omitempty"`
	// Partitioned into authorized/unauthorized company lists, keyed by
	// department label.
	Departments map[string]DepartmentPartition `json:"departments,omitempty"`
	// Partitioned by department type (group), each holding companies with
	// their own authorized/unauthorized department lists.
	Groups map[string]GroupPartition `json:"groups,omitempty"`
}

// FlatRecord is one row of the flat-flagged layout.
type FlatRecord struct {
	Department  string `json:"department"`
	Company     string `json:"company"`
	CompanyName string `json:"company_name,omitempty"`
	GroupID     string `json:"group_id,omitempty"`
	Flag        string `json:"flag"` // "Y" authorized, anything else not
}

// CompanyRef is a company entry inside a department-keyed partition.
type CompanyRef struct {
	Company     string `json:"company"`
	CompanyName string `json:"company_name,omitempty"`
	GroupID     string `json:"group_id,omitempty"`
}

// DepartmentPartition is the Y/N split of one department across companies.
type DepartmentPartition struct {
	Authorized   []CompanyRef `json:"authorized"`
	Unauthorized []CompanyRef `json:"unauthorized"`
}

// GroupPartition is one department type holding its companies.
type GroupPartition struct {
	Companies []GroupCompany `json:"companies"`
}

// GroupCompany is a company inside a group partition with its departments
// already split into Y/N lists.
type GroupCompany struct {
	Company      string   `json:"company"`
	CompanyName  string   `json:"company_name,omitempty"`
	Authorized   []string `json:"authorized"`
	Unauthorized []string `json:"unauthorized"`
}

// normalize flattens whichever layout the document carries into authorized
// and unauthorized scope slices.
func normalize(doc Document) (authorized, unauthorized []Scope) {
	switch {
	case len(doc.Data) > 0:
		for _, rec := range doc.Data {
			s := Scope{
				Department:  rec.Department,
				Company:     rec.Company,
				CompanyName: rec.CompanyName,
				GroupID:     rec.GroupID,
			}
			if rec.Flag == "Y" {
				authorized = append(authorized, s)
			} else {
				unauthorized = append(unauthorized, s)
			}
		}
	case len(doc.Departments) > 0:
		for dept, part := range doc.Departments {
			for _, ref := range part.Authorized {
				authorized = append(authorized, Scope{
					Department:  dept,
					Company:     ref.Company,
					CompanyName: ref.CompanyName,
					GroupID:     ref.GroupID,
				})
			}
			for _, ref := range part.Unauthorized {
				unauthorized = append(unauthorized, Scope{
					Department:  dept,
					Company:     ref.Company,
					CompanyName: ref.CompanyName,
					GroupID:     ref.GroupID,
				})
			}
		}
	case len(doc.Groups) > 0:
		for groupID, part := range doc.Groups {
			for _, company := range part.Companies {
				for _, dept := range company.Authorized {
					authorized = append(authorized, Scope{
						Department:  dept,
						Company:     company.Company,
						CompanyName: company.CompanyName,
						GroupID:     groupID,
					})
				}
				for _, dept := range company.Unauthorized {
					unauthorized = append(unauthorized, Scope{
						Department:  dept,
						Company:     company.Company,
						CompanyName: company.CompanyName,
						GroupID:     groupID,
					})
				}
			}
		}
	}
	return authorized, unauthorized
}
