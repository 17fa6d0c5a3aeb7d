package dataset

import "go-approval-flow/internal/model"

func limit(v float64) *float64 { return &v }

// DefaultProcesses is the fallback process list used when processes.json is
// not reachable. Role labels here must match the names in roles.json exactly
// or the steps resolve to empty rosters.
func DefaultProcesses() []*model.Process {
	return []*model.Process{
		{
			ID:          "process1",
			Name:        "Expense Reimbursement",
			AmountLimit: limit(10000),
			CreatedBy:   "ADMIN",
			UpdatedAt:   "2025-01-01 10:30:00",
			Nodes: []*model.WorkflowNode{
				{ID: "node1", RoleName: "Department Manager", Employees: []model.Employee{}},
				{ID: "node2", RoleName: "Finance Approval 3", Employees: []model.Employee{}},
				{ID: "node3", RoleName: "Deputy General Manager", Employees: []model.Employee{}},
			},
		},
		{
			ID:        "process2",
			Name:      "Leave Request",
			CreatedBy: "ADMIN",
			UpdatedAt: "2025-01-02 14:20:00",
			Nodes: []*model.WorkflowNode{
				{ID: "node1", RoleName: "Direct Supervisor", Employees: []model.Employee{}},
				{ID: "node2", RoleName: "HR Approval", Employees: []model.Employee{}},
			},
		},
		{
			ID:          "process3",
			Name:        "Purchase Approval",
			AmountLimit: limit(50000),
			CreatedBy:   "ADMIN",
			UpdatedAt:   "2025-01-03 09:15:00",
			Nodes: []*model.WorkflowNode{
				{ID: "node1", RoleName: "Procurement Review", Employees: []model.Employee{}},
				{ID: "node2", RoleName: "Finance Director", Employees: []model.Employee{}},
				{ID: "node3", RoleName: "Chairman", Employees: []model.Employee{}},
			},
		},
	}
}
