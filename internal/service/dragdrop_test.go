package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func testDrag(t *testing.T) (*DragController, WorkflowService) {
	t.Helper()
	workflow := testWorkflow(t)
	_, _, err := workflow.SelectProcess("p1")
	require.NoError(t, err)
	return NewDragController(workflow), workflow
}

func snapshot(t *testing.T, w WorkflowService) []byte {
	t.Helper()
	raw, err := json.Marshal(w.Nodes())
	require.NoError(t, err)
	return raw
}

func TestDragStateMachine(t *testing.T) {
	t.Run("idle by default", func(t *testing.T) {
		c, _ := testDrag(t)
		status := c.Status()
		require.False(t, status.Dragging)
		require.Empty(t, status.Role)
	})

	t.Run("start enters dragging", func(t *testing.T) {
		c, _ := testDrag(t)
		require.NoError(t, c.StartDrag("Chairman"))
		status := c.Status()
		require.True(t, status.Dragging)
		require.Equal(t, "Chairman", status.Role)
	})

	t.Run("single drag slot", func(t *testing.T) {
		c, _ := testDrag(t)
		require.NoError(t, c.StartDrag("Chairman"))
		require.ErrorIs(t, c.StartDrag("Department Manager"), ErrDragInProgress)
	})

	t.Run("target tracking keeps at most one active target", func(t *testing.T) {
		c, _ := testDrag(t)
		require.ErrorIs(t, c.EnterTarget("nodeA"), ErrNotDragging)

		require.NoError(t, c.StartDrag("Chairman"))
		require.NoError(t, c.EnterTarget("nodeA"))
		require.NoError(t, c.EnterTarget("nodeB"))
		require.Equal(t, "nodeB", c.Status().ActiveTarget)

		// Leaving a stale target does not clear the current one.
		c.LeaveTarget("nodeA")
		require.Equal(t, "nodeB", c.Status().ActiveTarget)
		c.LeaveTarget("nodeB")
		require.Empty(t, c.Status().ActiveTarget)
	})
}

func TestDragDrop(t *testing.T) {
	t.Run("drop on canvas appends", func(t *testing.T) {
		c, w := testDrag(t)
		require.NoError(t, c.StartDrag("Department Manager"))
		node, err := c.DropOnCanvas()
		require.NoError(t, err)

		nodes := w.Nodes()
		require.Equal(t, node.ID, nodes[len(nodes)-1].ID)
		require.False(t, c.Status().Dragging)
	})

	t.Run("drop on node inserts above it wherever the drag began", func(t *testing.T) {
		c, w := testDrag(t)
		require.NoError(t, c.StartDrag("Chairman"))
		require.NoError(t, c.EnterTarget("nodeB"))
		node, err := c.DropOnNode("nodeB")
		require.NoError(t, err)
		require.Equal(t, []string{"nodeA", node.ID, "nodeB", "nodeC"}, nodeIDs(w.Nodes()))
		require.False(t, c.Status().Dragging)
	})

	t.Run("drop on unknown node ends the drag without mutation", func(t *testing.T) {
		c, w := testDrag(t)
		before := snapshot(t, w)
		require.NoError(t, c.StartDrag("Chairman"))
		_, err := c.DropOnNode("gone")
		require.ErrorIs(t, err, ErrNodeNotFound)
		require.Equal(t, before, snapshot(t, w))
		require.False(t, c.Status().Dragging)
	})

	t.Run("drop without a drag", func(t *testing.T) {
		c, _ := testDrag(t)
		_, err := c.DropOnCanvas()
		require.ErrorIs(t, err, ErrNotDragging)
		_, err = c.DropOnNode("nodeA")
		require.ErrorIs(t, err, ErrNotDragging)
	})
}

func TestDragCancellation(t *testing.T) {
	c, w := testDrag(t)
	before := snapshot(t, w)

	require.NoError(t, c.StartDrag("Chairman"))
	require.NoError(t, c.EnterTarget("nodeB"))
	c.Cancel()

	status := c.Status()
	require.False(t, status.Dragging)
	require.Empty(t, status.ActiveTarget)
	// The sequence is byte-for-byte what it was before the drag.
	require.Equal(t, before, snapshot(t, w))

	// A fresh drag can start after cancellation.
	require.NoError(t, c.StartDrag("Chairman"))
}
