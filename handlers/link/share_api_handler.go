package handlers

import (
	"vcard.link/configs/configslog"
	"vcard.link/pkg/queryparams"
	"vcard.link/pkg/validation"
	"vcard.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShareAPIHandler /api/share/visiting-card altındaki JSON uç noktaları. Kullanıcı
// kimliği middleware tarafından istek context'ine yazılır.
type ShareAPIHandler struct {
	service services.IShareService
}

func NewShareAPIHandler(service services.IShareService) *ShareAPIHandler {
	return &ShareAPIHandler{service: service}
}

func (h *ShareAPIHandler) fail(c *fiber.Ctx, err error) error {
	resp, status := services.ShareErrorResponse(err)
	if status >= fiber.StatusInternalServerError {
		configslog.Log.Error("Paylaşım API hatası", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(resp)
}

func (h *ShareAPIHandler) invalid(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(services.ErrorResponse{
		Code:  services.ShareCodeInvalidInput,
		Error: err.Error(),
	})
}

// CreateShare POST /create
func (h *ShareAPIHandler) CreateShare(c *fiber.Ctx) error {
	var req services.CreateShareRequest
	if err := c.BodyParser(&req); err != nil {
		configslog.Log.Debug("CreateShare: gövde çözülemedi", zap.Error(err))
		return h.invalid(c, services.ErrShareInvalidInput)
	}
	if err := validation.Struct(req); err != nil {
		return h.invalid(c, err)
	}
	res, err := h.service.CreateShare(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(services.CreateShareResponse{Success: true, CreateShareResult: *res})
}

// GetShare GET /:shareId
func (h *ShareAPIHandler) GetShare(c *fiber.Ctx) error {
	view, err := h.service.GetShare(c.UserContext(), c.Params("shareId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(services.ShareViewResponse{Success: true, ShareView: *view})
}

// UpdateShare PATCH /:shareId
func (h *ShareAPIHandler) UpdateShare(c *fiber.Ctx) error {
	var upd services.ShareUpdate
	if err := c.BodyParser(&upd); err != nil {
		return h.invalid(c, services.ErrShareInvalidInput)
	}
	if err := validation.Struct(upd); err != nil {
		return h.invalid(c, err)
	}
	view, err := h.service.UpdateShare(c.UserContext(), c.Params("shareId"), upd)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(services.ShareViewResponse{Success: true, ShareView: *view})
}

// DeleteShare DELETE /:shareId
func (h *ShareAPIHandler) DeleteShare(c *fiber.Ctx) error {
	if err := h.service.DeleteShare(c.UserContext(), c.Params("shareId")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(services.SuccessResponse{Success: true})
}

// GetUserShares GET /user/shares
func (h *ShareAPIHandler) GetUserShares(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams("createdAt")
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("GetUserShares: sorgu parametreleri çözülemedi", zap.Error(err))
		params = queryparams.DefaultListParams("createdAt")
	}
	res, err := h.service.GetUserShares(c.UserContext(), params)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(services.UserSharesResponse{Success: true, UserSharesResult: *res})
}

// GetShareAnalytics GET /:shareId/analytics
func (h *ShareAPIHandler) GetShareAnalytics(c *fiber.Ctx) error {
	analytics, err := h.service.GetShareAnalytics(c.UserContext(), c.Params("shareId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(services.ShareAnalyticsResponse{Success: true, ShareAnalytics: *analytics})
}
