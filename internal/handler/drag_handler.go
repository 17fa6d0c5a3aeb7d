package handler

import (
	"errors"

	"go-approval-flow/internal/service"
	"go-approval-flow/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type DragHandler struct {
	drag *service.DragController
}

func NewDragHandler(drag *service.DragController) *DragHandler {
	return &DragHandler{drag: drag}
}

type startDragRequest struct {
	RoleName string `json:"role_name" validate:"required"`
}

type dragTargetRequest struct {
	NodeID string `json:"node_id" validate:"required"`
}

// Status returns the drag state machine snapshot
// GET /api/v1/drag
func (h *DragHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.drag.Status())
}

// Start picks up a role card
// POST /api/v1/drag/start
func (h *DragHandler) Start(c *fiber.Ctx) error {
	var req startDragRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validationMessage(errs[0])})
	}
	if err := h.drag.StartDrag(req.RoleName); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.drag.Status())
}

// Enter highlights a node as the active drop target
// POST /api/v1/drag/enter
func (h *DragHandler) Enter(c *fiber.Ctx) error {
	var req dragTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validationMessage(errs[0])})
	}
	if err := h.drag.EnterTarget(req.NodeID); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.drag.Status())
}

// Leave clears the drop indicator for a node
// POST /api/v1/drag/leave
func (h *DragHandler) Leave(c *fiber.Ctx) error {
	var req dragTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	h.drag.LeaveTarget(req.NodeID)
	return c.JSON(h.drag.Status())
}

// DropOnCanvas commits the drag as an append
// POST /api/v1/drag/drop-canvas
func (h *DragHandler) DropOnCanvas(c *fiber.Ctx) error {
	node, err := h.drag.DropOnCanvas()
	if err != nil {
		return dragError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Node appended", "data": node})
}

// DropOnNode commits the drag as an insert above the target node
// POST /api/v1/drag/drop-node
func (h *DragHandler) DropOnNode(c *fiber.Ctx) error {
	var req dragTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validationMessage(errs[0])})
	}
	node, err := h.drag.DropOnNode(req.NodeID)
	if err != nil {
		return dragError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Node inserted", "data": node})
}

// Cancel abandons the drag without mutating the workflow
// POST /api/v1/drag/cancel
func (h *DragHandler) Cancel(c *fiber.Ctx) error {
	h.drag.Cancel()
	return c.JSON(h.drag.Status())
}

func dragError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNodeNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Target node not found"})
	case errors.Is(err, service.ErrNotDragging),
		errors.Is(err, service.ErrNoProcessSelected):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}
