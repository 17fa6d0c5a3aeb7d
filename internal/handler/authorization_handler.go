package handler

import (
	"errors"

	"go-approval-flow/internal/scope"
	"go-approval-flow/internal/service"
	"go-approval-flow/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type AuthorizationHandler struct {
	auth service.AuthorizationService
}

func NewAuthorizationHandler(auth service.AuthorizationService) *AuthorizationHandler {
	return &AuthorizationHandler{auth: auth}
}

type openSessionRequest struct {
	EmployeeID   string `json:"employee_id" validate:"required"`
	EmployeeName string `json:"employee_name" validate:"required"`
	RoleName     string `json:"role_name"`
}

type toggleRequest struct {
	Department string `json:"department" validate:"required"`
	Company    string `json:"company"`
	GroupID    string `json:"group_id"`
}

type moveGroupRequest struct {
	Company   string `json:"company" validate:"required"`
	Authorize bool   `json:"authorize"`
}

type moveFilteredRequest struct {
	Search    string `json:"search"`
	GroupID   string `json:"group_id"`
	Status    string `json:"status" validate:"omitempty,oneof=authorized unauthorized partial"`
	Authorize bool   `json:"authorize"`
}

// OpenSession opens the authorization panel for an employee
// POST /api/v1/authorizations/sessions
func (h *AuthorizationHandler) OpenSession(c *fiber.Ctx) error {
	var req openSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validationMessage(errs[0])})
	}
	session, view, err := h.auth.Open(req.EmployeeID, req.EmployeeName, req.RoleName)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"session": session, "view": view})
}

// GetView projects the session's partition through the filter inputs
// GET /api/v1/authorizations/sessions/:id/view?search=&group_id=&status=
func (h *AuthorizationHandler) GetView(c *fiber.Ctx) error {
	f := scope.Filter{
		Search:  c.Query("search"),
		GroupID: c.Query("group_id"),
		Status:  c.Query("status"),
	}
	if errs := validator.ValidateStruct(&f); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validationMessage(errs[0])})
	}
	view, err := h.auth.View(c.Params("id"), f)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(view)
}

// Toggle flips one scope between the partitions. The composite key
// (department, company, group) is authoritative; a request carrying only the
// department label uses the legacy lookup, which fails on ambiguity rather
// than guessing.
// POST /api/v1/authorizations/sessions/:id/toggle
func (h *AuthorizationHandler) Toggle(c *fiber.Ctx) error {
	var req toggleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validationMessage(errs[0])})
	}

	sessionID := c.Params("id")
	var (
		key        scope.Key
		authorized bool
		err        error
	)
	if req.Company == "" {
		key, authorized, err = h.auth.ToggleDepartment(sessionID, req.Department)
	} else {
		key = scope.Key{Department: req.Department, Company: req.Company, GroupID: req.GroupID}
		authorized, err = h.auth.Toggle(sessionID, key)
	}
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(fiber.Map{"key": key, "authorized": authorized})
}

// MoveGroup bulk-moves every scope under a company label
// POST /api/v1/authorizations/sessions/:id/move-group
func (h *AuthorizationHandler) MoveGroup(c *fiber.Ctx) error {
	var req moveGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validationMessage(errs[0])})
	}
	moved, err := h.auth.MoveGroup(c.Params("id"), req.Company, req.Authorize)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(fiber.Map{"moved": moved})
}

// MoveFiltered bulk-moves every currently visible scope
// POST /api/v1/authorizations/sessions/:id/move-filtered
func (h *AuthorizationHandler) MoveFiltered(c *fiber.Ctx) error {
	var req moveFilteredRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validationMessage(errs[0])})
	}
	f := scope.Filter{Search: req.Search, GroupID: req.GroupID, Status: req.Status}
	moved, err := h.auth.MoveFiltered(c.Params("id"), f, req.Authorize)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(fiber.Map{"moved": moved})
}

// Clear revokes every authorized scope in the session
// POST /api/v1/authorizations/sessions/:id/clear
func (h *AuthorizationHandler) Clear(c *fiber.Ctx) error {
	moved, err := h.auth.ClearAllAuthorized(c.Params("id"))
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(fiber.Map{"moved": moved})
}

// Save flattens the authorized partition and emits it for persistence
// POST /api/v1/authorizations/sessions/:id/save
func (h *AuthorizationHandler) Save(c *fiber.Ctx) error {
	result, err := h.auth.Save(c.Params("id"))
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Authorization saved", "data": result})
}

// CloseSession discards the panel session
// DELETE /api/v1/authorizations/sessions/:id
func (h *AuthorizationHandler) CloseSession(c *fiber.Ctx) error {
	if !h.auth.Close(c.Params("id")) {
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	}
	return c.JSON(fiber.Map{"message": "Session closed"})
}

func authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	case errors.Is(err, scope.ErrScopeNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Scope not found"})
	case errors.Is(err, scope.ErrAmbiguousKey):
		return c.Status(409).JSON(fiber.Map{"error": "Department label is ambiguous; provide company and group"})
	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}
