package handler

import (
	"errors"

	"go-approval-flow/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProcessHandler struct {
	workflow service.WorkflowService
}

func NewProcessHandler(workflow service.WorkflowService) *ProcessHandler {
	return &ProcessHandler{workflow: workflow}
}

// GetProcesses returns all approval process templates
// GET /api/v1/processes
func (h *ProcessHandler) GetProcesses(c *fiber.Ctx) error {
	return c.JSON(h.workflow.Processes())
}

// SelectProcess makes a process the active one and resolves its node rosters
// POST /api/v1/processes/:id/select
func (h *ProcessHandler) SelectProcess(c *fiber.Ctx) error {
	process, diagnostics, err := h.workflow.SelectProcess(c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrProcessNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Process not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"process":     process,
		"diagnostics": diagnostics,
	})
}
