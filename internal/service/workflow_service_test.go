package service

import (
	"testing"

	"go-approval-flow/internal/model"
	"go-approval-flow/internal/repository"

	"github.com/stretchr/testify/require"
)

func testWorkflow(t *testing.T) WorkflowService {
	t.Helper()
	processes := []*model.Process{
		{
			ID:   "p1",
			Name: "Expense Reimbursement",
			Nodes: []*model.WorkflowNode{
				{ID: "nodeA", RoleName: "Department Manager"},
				{ID: "nodeB", RoleName: "Finance Approval 3"},
				{ID: "nodeC", RoleName: "Chairman"},
			},
		},
		{ID: "p2", Name: "Leave Request"},
	}
	return NewWorkflowService(testDirectory(), repository.NewProcessRepo(processes), nil)
}

func nodeIDs(nodes []*model.WorkflowNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestSelectProcess(t *testing.T) {
	t.Run("resolves rosters on selection", func(t *testing.T) {
		s := testWorkflow(t)
		process, diagnostics, err := s.SelectProcess("p1")
		require.NoError(t, err)
		require.Equal(t, "p1", process.ID)
		require.Len(t, process.Nodes[0].Employees, 2)
		require.Equal(t, "r1", process.Nodes[0].RoleID)
		// Chairman resolves but has no employees.
		require.Len(t, diagnostics, 1)
		require.Equal(t, "nodeC", diagnostics[0].NodeID)
		require.True(t, diagnostics[0].RoleFound)
	})

	t.Run("unknown process", func(t *testing.T) {
		s := testWorkflow(t)
		_, _, err := s.SelectProcess("p99")
		require.ErrorIs(t, err, ErrProcessNotFound)
		require.Empty(t, s.Nodes())
	})

	t.Run("re-selection keeps manual edits", func(t *testing.T) {
		s := testWorkflow(t)
		_, _, err := s.SelectProcess("p1")
		require.NoError(t, err)
		_, err = s.AddEmployee("nodeC", model.Employee{Name: "Dave"})
		require.NoError(t, err)

		_, _, err = s.SelectProcess("p2")
		require.NoError(t, err)
		_, diagnostics, err := s.SelectProcess("p1")
		require.NoError(t, err)
		require.Empty(t, diagnostics)

		employees, err := s.NodeEmployees("nodeC")
		require.NoError(t, err)
		require.Len(t, employees, 1)
		require.Equal(t, "Dave", employees[0].Name)
	})
}

func TestAppendNode(t *testing.T) {
	t.Run("copies the role roster", func(t *testing.T) {
		s := testWorkflow(t)
		_, _, err := s.SelectProcess("p2")
		require.NoError(t, err)

		node, err := s.AppendNode("Department Manager")
		require.NoError(t, err)
		require.Equal(t, "r1", node.RoleID)
		require.Len(t, node.Employees, 2)
		require.Equal(t, []string{node.ID}, nodeIDs(s.Nodes()))
	})

	t.Run("unknown role yields an empty step", func(t *testing.T) {
		s := testWorkflow(t)
		_, _, err := s.SelectProcess("p2")
		require.NoError(t, err)

		node, err := s.AppendNode("Mystery Role")
		require.NoError(t, err)
		require.Empty(t, node.RoleID)
		require.NotNil(t, node.Employees)
		require.Empty(t, node.Employees)
	})

	t.Run("requires a selected process", func(t *testing.T) {
		s := testWorkflow(t)
		_, err := s.AppendNode("Department Manager")
		require.ErrorIs(t, err, ErrNoProcessSelected)
	})
}

func TestInsertNodeBefore(t *testing.T) {
	t.Run("splices before the index", func(t *testing.T) {
		s := testWorkflow(t)
		_, _, err := s.SelectProcess("p1")
		require.NoError(t, err)

		node, err := s.InsertNodeBefore("Finance Approval 3", 1)
		require.NoError(t, err)
		require.Equal(t, []string{"nodeA", node.ID, "nodeB", "nodeC"}, nodeIDs(s.Nodes()))
	})

	t.Run("index may equal length", func(t *testing.T) {
		s := testWorkflow(t)
		_, _, err := s.SelectProcess("p1")
		require.NoError(t, err)

		node, err := s.InsertNodeBefore("Chairman", 3)
		require.NoError(t, err)
		require.Equal(t, node.ID, s.Nodes()[3].ID)
	})

	t.Run("out-of-range index is rejected without mutation", func(t *testing.T) {
		s := testWorkflow(t)
		_, _, err := s.SelectProcess("p1")
		require.NoError(t, err)

		_, err = s.InsertNodeBefore("Chairman", 4)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = s.InsertNodeBefore("Chairman", -1)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
		require.Equal(t, []string{"nodeA", "nodeB", "nodeC"}, nodeIDs(s.Nodes()))
	})
}

func TestDeleteNode(t *testing.T) {
	s := testWorkflow(t)
	_, _, err := s.SelectProcess("p1")
	require.NoError(t, err)

	require.True(t, s.DeleteNode("nodeB"))
	require.Equal(t, []string{"nodeA", "nodeC"}, nodeIDs(s.Nodes()))
	// Unknown id is a no-op.
	require.False(t, s.DeleteNode("nodeB"))
	require.Equal(t, []string{"nodeA", "nodeC"}, nodeIDs(s.Nodes()))
}

func TestAddEmployee(t *testing.T) {
	s := testWorkflow(t)
	_, _, err := s.SelectProcess("p1")
	require.NoError(t, err)

	t.Run("fills id and title defaults", func(t *testing.T) {
		node, err := s.AddEmployee("nodeC", model.Employee{Name: "Dave"})
		require.NoError(t, err)
		added := node.Employees[len(node.Employees)-1]
		require.NotEmpty(t, added.ID)
		require.Equal(t, "Chairman", added.Title)
	})

	t.Run("unknown node", func(t *testing.T) {
		_, err := s.AddEmployee("nope", model.Employee{Name: "Dave"})
		require.ErrorIs(t, err, ErrNodeNotFound)
	})
}

// Covers the full load-select-delete-recreate round trip: the re-appended
// step resolves back to the same roster.
func TestWorkflowRoundTrip(t *testing.T) {
	directory := repository.NewRoleDirectory([]model.Role{
		{ID: "r1", Name: "Manager", Employees: []model.Employee{{ID: "e1", Name: "Alice"}}},
	})
	processes := []*model.Process{
		{ID: "p1", Name: "Approval", Nodes: []*model.WorkflowNode{{ID: "n1", RoleName: "Manager"}}},
	}
	s := NewWorkflowService(directory, repository.NewProcessRepo(processes), nil)

	_, diagnostics, err := s.SelectProcess("p1")
	require.NoError(t, err)
	require.Empty(t, diagnostics)

	nodes := s.Nodes()
	require.Len(t, nodes, 1)
	require.Equal(t, "Alice", nodes[0].Employees[0].Name)
	require.Equal(t, "r1", nodes[0].Employees[0].RoleID)

	require.True(t, s.DeleteNode("n1"))
	require.Empty(t, s.Nodes())

	node, err := s.AppendNode("Manager")
	require.NoError(t, err)
	require.Len(t, node.Employees, 1)
	require.Equal(t, "Alice", node.Employees[0].Name)
	require.Equal(t, "r1", node.Employees[0].RoleID)

	saved, err := s.Save()
	require.NoError(t, err)
	require.Equal(t, []*model.WorkflowNode{node}, saved)
}
