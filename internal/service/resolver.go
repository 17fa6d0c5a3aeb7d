package service

import (
	"go-approval-flow/internal/model"
	"go-approval-flow/internal/repository"
)

// ResolutionReport describes a node left without approvers after resolution.
// This is a reportable condition, not an error: the process stays usable, the
// step simply has no approver yet.
type ResolutionReport struct {
	NodeID    string `json:"node_id"`
	RoleLabel string `json:"role_label,omitempty"`
	// Attempted lists the identifiers tried, in precedence order.
	Attempted []string `json:"attempted"`
	// RoleFound is true when a role resolved but its roster was empty.
	RoleFound bool `json:"role_found"`
	// Suggestions are advisory near-matches for the unresolved label.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Resolver binds workflow nodes to roles and fills their employee rosters
// from the directory.
type Resolver struct {
	directory repository.RoleDirectory
}

func NewResolver(directory repository.RoleDirectory) *Resolver {
	return &Resolver{directory: directory}
}

// ResolveNodes resolves each node in order and returns reports for the nodes
// that ended up without approvers. Resolution is idempotent and never raises
// on malformed nodes; absent fields are treated as "no match".
func (r *Resolver) ResolveNodes(nodes []*model.WorkflowNode) []ResolutionReport {
	reports := []ResolutionReport{}
	for _, node := range nodes {
		if report := r.resolveNode(node); report != nil {
			reports = append(reports, *report)
		}
	}
	return reports
}

// resolveNode applies the lookup precedence id -> name -> alias. The order is
// a business contract: changing it silently changes who gets auto-enrolled as
// an approver.
func (r *Resolver) resolveNode(node *model.WorkflowNode) *ResolutionReport {
	// Manually curated rosters are never overwritten.
	if node.HasManualRoster() {
		return nil
	}
	node.Employees = []model.Employee{}

	var attempted []string
	var role *model.Role

	if node.RoleID != "" {
		attempted = append(attempted, node.RoleID)
		role, _ = r.directory.FindByID(node.RoleID)
	}
	if role == nil && node.RoleName != "" {
		attempted = append(attempted, node.RoleName)
		if found, ok := r.directory.FindByName(node.RoleName); ok {
			role = found
			node.RoleID = found.ID
		}
	}
	if role == nil && node.RoleAlias != "" {
		attempted = append(attempted, node.RoleAlias)
		if found, ok := r.directory.FindByName(node.RoleAlias); ok {
			role = found
			node.RoleID = found.ID
			node.RoleName = node.RoleAlias
		}
	}

	if role == nil {
		report := &ResolutionReport{
			NodeID:    node.ID,
			RoleLabel: node.Label(),
			Attempted: attempted,
		}
		if label := node.Label(); label != "" {
			report.Suggestions = r.directory.Suggest(label)
		}
		return report
	}

	node.Employees = role.Roster(node.Label())
	if len(node.Employees) == 0 {
		return &ResolutionReport{
			NodeID:    node.ID,
			RoleLabel: node.Label(),
			Attempted: attempted,
			RoleFound: true,
		}
	}
	return nil
}
