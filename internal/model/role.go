package model

// Role is a named approver category with the employee roster attached to it
// at load time. Directory entries are templates: workflow nodes always receive
// copies of the roster, never references into it.
type Role struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	EmployeeCount int        `json:"employee_count"`
	Employees     []Employee `json:"employees,omitempty"`
}

// Employee is one approver attached to a role or a workflow node.
type Employee struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name" validate:"required"`
	Title  string `json:"title"`
	RoleID string `json:"role_id,omitempty"`
}

// UnknownTitle is the last-resort title when neither the employee record nor
// the node carries one.
const UnknownTitle = "unknown position"

// Roster returns copies of the role's employees, suitable for attaching to a
// workflow node. Source order is preserved. fallbackTitle fills in when an
// employee record has no title of its own.
func (r *Role) Roster(fallbackTitle string) []Employee {
	if r == nil || len(r.Employees) == 0 {
		return []Employee{}
	}
	out := make([]Employee, len(r.Employees))
	for i, emp := range r.Employees {
		title := emp.Title
		if title == "" {
			title = fallbackTitle
		}
		if title == "" {
			title = UnknownTitle
		}
		out[i] = Employee{
			ID:     emp.ID,
			UserID: emp.UserID,
			Name:   emp.Name,
			Title:  title,
			RoleID: r.ID,
		}
	}
	return out
}
