package handler

import (
	"go-approval-flow/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type RoleHandler struct {
	directory repository.RoleDirectory
}

func NewRoleHandler(directory repository.RoleDirectory) *RoleHandler {
	return &RoleHandler{directory: directory}
}

// GetRoles returns the role palette with employee counts
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	return c.JSON(h.directory.FindAll())
}

// SuggestRoles returns advisory near-matches for a role label
// GET /api/v1/roles/suggest?q=<label>
func (h *RoleHandler) SuggestRoles(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Missing query parameter 'q'"})
	}
	return c.JSON(fiber.Map{"query": q, "suggestions": h.directory.Suggest(q)})
}
