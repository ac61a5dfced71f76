package handlers // handlers/panel paketi

import (
	"slices"

	"vcard.link/configs/configslog"
	"vcard.link/middlewares"
	"vcard.link/models"
	"vcard.link/pkg/cardcatalog"
	"vcard.link/pkg/metrics"
	"vcard.link/pkg/sharecodec"
	"vcard.link/pkg/validation"
	"vcard.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelCardHandler üyenin kendi kartviziti için şablon seçimi, önizleme ve token paylaşımı.
type PanelCardHandler struct {
	assignments services.IAssignmentService
	cardData    services.ICardDataService
	catalog     *cardcatalog.Catalog
	metrics     *metrics.ShareMetrics
	linkOrigin  string
}

func NewPanelCardHandler(assignments services.IAssignmentService, cardData services.ICardDataService, catalog *cardcatalog.Catalog, m *metrics.ShareMetrics, linkOrigin string) *PanelCardHandler {
	return &PanelCardHandler{
		assignments: assignments,
		cardData:    cardData,
		catalog:     catalog,
		metrics:     m,
		linkOrigin:  linkOrigin,
	}
}

type templateChoice struct {
	TemplateID int `json:"templateId" validate:"required,min=1"`
}

// PreviewRequest kimlik ipuçları rehberde arama için, profil ise rehberin doldurmadığı alanlar içindir.
type PreviewRequest struct {
	Hints      services.IdentityHints `json:"hints"`
	Profile    models.CardProfile     `json:"profile"`
	TemplateID int                    `json:"templateId" validate:"gte=0"`
	Width      int                    `json:"width" validate:"gte=0,lte=4000"`
	Height     int                    `json:"height" validate:"gte=0,lte=4000"`
}

type PreviewResponse struct {
	Success    bool               `json:"success"`
	TemplateID int                `json:"templateId"`
	Profile    models.CardProfile `json:"profile"`
	HTML       string             `json:"html"`
}

type ShareTokenRequest struct {
	TemplateID int            `json:"templateId" validate:"gte=0"`
	CardData   map[string]any `json:"cardData" validate:"required"`
}

type ShareTokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	URL     string `json:"url"`
}

func (h *PanelCardHandler) fail(c *fiber.Ctx, err error) error {
	resp, status := services.AssignmentErrorResponse(err)
	if status >= fiber.StatusInternalServerError {
		configslog.Log.Error("Panel şablon isteği başarısız", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(resp)
}

func (h *PanelCardHandler) invalid(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(services.ErrorResponse{
		Code:  services.AssignmentCodeInvalidInput,
		Error: err.Error(),
	})
}

// ListTemplates GET /api/visiting-card/templates
func (h *PanelCardHandler) ListTemplates(c *fiber.Ctx) error {
	res, err := h.assignments.Resolve(c.UserContext(), middlewares.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(services.TemplatesResponse{
		Success:    true,
		Resolution: *res,
		Templates:  h.catalog.Entries(res.AvailableTemplateIDs...),
	})
}

// SaveSelection PUT /api/visiting-card/templates/selection
func (h *PanelCardHandler) SaveSelection(c *fiber.Ctx) error {
	var req templateChoice
	if err := h.parse(c, &req); err != nil {
		return h.invalid(c, err)
	}
	a, err := h.assignments.SaveSelection(c.UserContext(), middlewares.UserID(c), req.TemplateID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(services.AssignmentResponse{Success: true, Assignment: a})
}

// SetDefault PUT /api/visiting-card/templates/default
func (h *PanelCardHandler) SetDefault(c *fiber.Ctx) error {
	var req templateChoice
	if err := h.parse(c, &req); err != nil {
		return h.invalid(c, err)
	}
	a, err := h.assignments.SetDefault(c.UserContext(), middlewares.UserID(c), req.TemplateID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(services.AssignmentResponse{Success: true, Assignment: a})
}

// Preview POST /api/visiting-card/preview. Şablon verilmezse kullanıcının başlangıç şablonu kullanılır.
func (h *PanelCardHandler) Preview(c *fiber.Ctx) error {
	var req PreviewRequest
	if err := h.parse(c, &req); err != nil {
		return h.invalid(c, err)
	}
	ctx := c.UserContext()

	res, err := h.assignments.Resolve(ctx, middlewares.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	templateID := req.TemplateID
	if templateID == 0 {
		templateID = res.InitialTemplateID
	}
	if !slices.Contains(res.AvailableTemplateIDs, templateID) {
		return h.fail(c, services.ErrTemplateNotAllowed)
	}

	profile, err := h.cardData.Resolve(ctx, req.Hints, req.Profile)
	if err != nil {
		configslog.Log.Error("Önizleme profili çözümlenemedi", zap.Uint("user_id", middlewares.UserID(c)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(services.ErrorResponse{Code: "profile_failed", Error: "card data could not be loaded"})
	}

	out, err := h.catalog.RenderHTML(templateID, profile, cardcatalog.Dimensions{Width: req.Width, Height: req.Height}, cardcatalog.RenderOptions{})
	if err != nil {
		return h.fail(c, services.ErrUnknownTemplate)
	}
	return c.JSON(PreviewResponse{Success: true, TemplateID: templateID, Profile: profile, HTML: string(out)})
}

// ShareToken POST /api/visiting-card/share/token. Sunucuda hiçbir şey saklanmaz.
func (h *PanelCardHandler) ShareToken(c *fiber.Ctx) error {
	var req ShareTokenRequest
	if err := h.parse(c, &req); err != nil {
		return h.invalid(c, err)
	}
	if len(sharecodec.Sanitize(req.CardData)) == 0 {
		return h.invalid(c, services.ErrShareInvalidInput)
	}
	token, err := sharecodec.Encode(models.SharePayload{TemplateID: req.TemplateID, CardData: req.CardData})
	if err != nil {
		configslog.Log.Error("Paylaşım token'ı üretilemedi", zap.Uint("user_id", middlewares.UserID(c)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(services.ErrorResponse{Code: services.ShareCodeSaveFailed, Error: "share token could not be created"})
	}
	h.metrics.IncCreated("token")
	return c.JSON(ShareTokenResponse{Success: true, Token: token, URL: sharecodec.Link(h.linkOrigin, token)})
}

func (h *PanelCardHandler) parse(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return services.ErrAssignmentInvalidInput
	}
	return validation.Struct(out)
}
