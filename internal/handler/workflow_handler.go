package handler

import (
	"errors"
	"fmt"

	"go-approval-flow/internal/model"
	"go-approval-flow/internal/service"
	"go-approval-flow/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type WorkflowHandler struct {
	workflow service.WorkflowService
}

func NewWorkflowHandler(workflow service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflow: workflow}
}

type appendNodeRequest struct {
	RoleName string `json:"role_name" validate:"required"`
}

type insertNodeRequest struct {
	RoleName string `json:"role_name" validate:"required"`
	Index    *int   `json:"index" validate:"required"`
}

type addEmployeeRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name" validate:"required"`
	Title  string `json:"title"`
}

// GetNodes returns the active process's node sequence
// GET /api/v1/workflow/nodes
func (h *WorkflowHandler) GetNodes(c *fiber.Ctx) error {
	return c.JSON(h.workflow.Nodes())
}

// GetDiagnostics returns the unresolved-node reports of the last resolution
// GET /api/v1/workflow/diagnostics
func (h *WorkflowHandler) GetDiagnostics(c *fiber.Ctx) error {
	return c.JSON(h.workflow.Diagnostics())
}

// AppendNode adds an approval step at the end of the sequence
// POST /api/v1/workflow/nodes
func (h *WorkflowHandler) AppendNode(c *fiber.Ctx) error {
	var req appendNodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validationMessage(errs[0])})
	}
	node, err := h.workflow.AppendNode(req.RoleName)
	if err != nil {
		return workflowError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Node appended", "data": node})
}

// InsertNode splices a new approval step before the given index
// POST /api/v1/workflow/nodes/insert
func (h *WorkflowHandler) InsertNode(c *fiber.Ctx) error {
	var req insertNodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validationMessage(errs[0])})
	}
	node, err := h.workflow.InsertNodeBefore(req.RoleName, *req.Index)
	if err != nil {
		return workflowError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Node inserted", "data": node})
}

// DeleteNode removes an approval step
// DELETE /api/v1/workflow/nodes/:id
func (h *WorkflowHandler) DeleteNode(c *fiber.Ctx) error {
	if !h.workflow.DeleteNode(c.Params("id")) {
		return c.Status(404).JSON(fiber.Map{"error": "Node not found"})
	}
	return c.JSON(fiber.Map{"message": "Node deleted"})
}

// AddEmployee attaches a validated employee record to a node
// POST /api/v1/workflow/nodes/:id/employees
func (h *WorkflowHandler) AddEmployee(c *fiber.Ctx) error {
	var req addEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validationMessage(errs[0])})
	}
	node, err := h.workflow.AddEmployee(c.Params("id"), model.Employee{
		ID:     req.ID,
		UserID: req.UserID,
		Name:   req.Name,
		Title:  req.Title,
	})
	if err != nil {
		return workflowError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Employee added", "data": node})
}

// GetNodeEmployees lists the approvers of one node
// GET /api/v1/workflow/nodes/:id/employees
func (h *WorkflowHandler) GetNodeEmployees(c *fiber.Ctx) error {
	employees, err := h.workflow.NodeEmployees(c.Params("id"))
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(employees)
}

// Save flattens the current sequence and emits it for persistence
// POST /api/v1/workflow/save
func (h *WorkflowHandler) Save(c *fiber.Ctx) error {
	nodes, err := h.workflow.Save()
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Workflow saved", "data": nodes})
}

// Export downloads the current sequence as a JSON document
// GET /api/v1/workflow/export
func (h *WorkflowHandler) Export(c *fiber.Ctx) error {
	process := h.workflow.SelectedProcess()
	if process == nil {
		return c.Status(400).JSON(fiber.Map{"error": "No process selected"})
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="workflow.json"`)
	return c.JSON(process.Nodes)
}

// workflowError maps service errors onto the API status codes.
func workflowError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNodeNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Node not found"})
	case errors.Is(err, service.ErrNoProcessSelected),
		errors.Is(err, service.ErrIndexOutOfRange):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}

func validationMessage(e *validator.ErrorResponse) string {
	return fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", e.FailedField, e.Tag)
}
