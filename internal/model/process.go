package model

// Process is an approval workflow template: an ordered sequence of approval
// steps. The sequence is owned by the process; the workflow service is its
// single mutator while the process is selected.
type Process struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	AmountLimit *float64        `json:"amount_limit"` // nil means no amount limit
	CreatedBy   string          `json:"created_by,omitempty"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
	Nodes       []*WorkflowNode `json:"nodes"`
}

// WorkflowNode is one approval step. Role binding is by reference: RoleID is
// authoritative, RoleName is the human-entered label, RoleAlias is a legacy
// fallback label. Employees holds copies resolved from the role directory or
// attached manually; it is never nil after resolution and its order is the
// approval order.
type WorkflowNode struct {
	ID        string     `json:"id"`
	RoleID    string     `json:"role_id,omitempty"`
	RoleName  string     `json:"role_name,omitempty"`
	RoleAlias string     `json:"role_alias,omitempty"`
	Employees []Employee `json:"employees"`
}

// Label returns the display label for the node's role binding, preferring the
// primary name over the alias over the raw id.
func (n *WorkflowNode) Label() string {
	if n.RoleName != "" {
		return n.RoleName
	}
	if n.RoleAlias != "" {
		return n.RoleAlias
	}
	return n.RoleID
}

// HasManualRoster reports whether the node already carries usable employee
// data. A roster counts as manual when it is non-empty and its first entry
// has a display name; such rosters are never overwritten by resolution.
func (n *WorkflowNode) HasManualRoster() bool {
	return len(n.Employees) > 0 && n.Employees[0].Name != ""
}
