package handlers

import (
	"vcard.link/configs/configslog"
	"vcard.link/middlewares"
	"vcard.link/pkg/validation"
	"vcard.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CardHandler yöneticinin kullanıcılara şablon ataması (Dashboard).
type CardHandler struct {
	service services.IAssignmentService
}

func NewCardHandler(service services.IAssignmentService) *CardHandler {
	return &CardHandler{service: service}
}

func (h *CardHandler) targetUserID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("userId")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *CardHandler) fail(c *fiber.Ctx, err error) error {
	resp, status := services.AssignmentErrorResponse(err)
	if status >= fiber.StatusInternalServerError {
		configslog.Log.Error("Dashboard atama isteği başarısız", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(resp)
}

func invalidUser(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(services.ErrorResponse{
		Code:  services.AssignmentCodeInvalidInput,
		Error: "invalid user id",
	})
}

// GetAssignment GET /api/admin/visiting-card/assignments/:userId
func (h *CardHandler) GetAssignment(c *fiber.Ctx) error {
	userID, ok := h.targetUserID(c)
	if !ok {
		return invalidUser(c)
	}
	a, err := h.service.GetAssignment(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(services.AssignmentResponse{Success: true, Assignment: a})
}

// AssignTemplates PUT /api/admin/visiting-card/assignments/:userId
func (h *CardHandler) AssignTemplates(c *fiber.Ctx) error {
	userID, ok := h.targetUserID(c)
	if !ok {
		return invalidUser(c)
	}
	var input services.AssignmentInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, services.ErrAssignmentInvalidInput)
	}
	if err := validation.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(services.ErrorResponse{
			Code:  services.AssignmentCodeInvalidInput,
			Error: err.Error(),
		})
	}
	a, err := h.service.AssignTemplates(c.UserContext(), userID, input)
	if err != nil {
		return h.fail(c, err)
	}
	configslog.Log.Info("Şablon ataması yönetici tarafından değiştirildi",
		zap.Uint("admin_id", middlewares.UserID(c)), zap.Uint("user_id", userID))
	return c.JSON(services.AssignmentResponse{Success: true, Assignment: a})
}

// ResetAssignments POST /api/admin/visiting-card/assignments/reset
func (h *CardHandler) ResetAssignments(c *fiber.Ctx) error {
	if err := h.service.ResetAssignments(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(services.SuccessResponse{Success: true})
}
