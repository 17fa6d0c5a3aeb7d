package service

import (
	"errors"
	"sync"

	"go-approval-flow/internal/model"
)

var (
	ErrNotDragging    = errors.New("no drag in progress")
	ErrDragInProgress = errors.New("drag already in progress")
)

// DragStatus is a snapshot of the drag state machine for the UI.
type DragStatus struct {
	Dragging     bool   `json:"dragging"`
	Role         string `json:"role,omitempty"`
	ActiveTarget string `json:"active_target,omitempty"`
}

// DragController translates pointer drag events from the role palette into
// workflow insert/append calls. There is a single drag slot (one pointer), so
// concurrent drags are impossible by construction. Only an explicit drop
// mutates the workflow; any drag can be abandoned without side effects.
type DragController struct {
	mu       sync.Mutex
	workflow WorkflowService

	role         string // role being dragged; empty means idle
	activeTarget string // at most one highlighted drop target
}

func NewDragController(workflow WorkflowService) *DragController {
	return &DragController{workflow: workflow}
}

func (c *DragController) Status() DragStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DragStatus{
		Dragging:     c.role != "",
		Role:         c.role,
		ActiveTarget: c.activeTarget,
	}
}

// StartDrag enters the Dragging state with the picked role card.
func (c *DragController) StartDrag(roleName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.role != "" {
		return ErrDragInProgress
	}
	c.role = roleName
	return nil
}

// EnterTarget marks a node as the active drop target, deactivating any
// previous one.
func (c *DragController) EnterTarget(nodeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.role == "" {
		return ErrNotDragging
	}
	c.activeTarget = nodeID
	return nil
}

// LeaveTarget clears the indicator if it still points at the given node.
func (c *DragController) LeaveTarget(nodeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeTarget == nodeID {
		c.activeTarget = ""
	}
}

// DropOnCanvas commits the drag as an append at the end of the sequence.
func (c *DragController) DropOnCanvas() (*model.WorkflowNode, error) {
	c.mu.Lock()
	role := c.role
	c.reset()
	c.mu.Unlock()
	if role == "" {
		return nil, ErrNotDragging
	}
	return c.workflow.AppendNode(role)
}

// DropOnNode commits the drag as an insert immediately above the target node,
// regardless of where the drag began.
func (c *DragController) DropOnNode(targetID string) (*model.WorkflowNode, error) {
	c.mu.Lock()
	role := c.role
	c.reset()
	c.mu.Unlock()
	if role == "" {
		return nil, ErrNotDragging
	}
	index := -1
	for i, node := range c.workflow.Nodes() {
		if node.ID == targetID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, ErrNodeNotFound
	}
	return c.workflow.InsertNodeBefore(role, index)
}

// Cancel abandons the drag without mutating the workflow.
func (c *DragController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *DragController) reset() {
	c.role = ""
	c.activeTarget = ""
}
