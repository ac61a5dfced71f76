package handlers

import (
	"errors"

	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/pkg/cardcatalog"
	"vcard.link/pkg/metrics"
	"vcard.link/pkg/sharecodec"
	"vcard.link/services"
	"vcard.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	publicLayout = "layouts/public"

	expiredShareMessage  = "This shared card has expired and is no longer available."
	notFoundShareMessage = "This shared card does not exist or has been removed."
	invalidShareMessage  = "This share link is not valid."
)

// LinkHandler paylaşılan kartların herkese açık sayfaları. Token ile gelen kart sunucuya
// hiç sorulmadan çözülür; kısa bağlantılar paylaşım servisinden okunur.
type LinkHandler struct {
	catalog    *cardcatalog.Catalog
	shares     services.IShareService
	qr         services.IQRCodeService
	metrics    *metrics.ShareMetrics
	linkOrigin string
}

func NewLinkHandler(catalog *cardcatalog.Catalog, shares services.IShareService, qr services.IQRCodeService, m *metrics.ShareMetrics, linkOrigin string) *LinkHandler {
	return &LinkHandler{catalog: catalog, shares: shares, qr: qr, metrics: m, linkOrigin: linkOrigin}
}

// decodeToken çözülemeyen her token için aynı genel mesaj gösterilir; aşama sadece loglanır.
func (h *LinkHandler) decodeToken(c *fiber.Ctx) (models.SharePayload, bool) {
	token := c.Params("token")
	payload, err := sharecodec.Decode(token)
	if err != nil {
		stage := "unknown"
		var derr *sharecodec.DecodeError
		if errors.As(err, &derr) {
			stage = string(derr.Stage)
		}
		h.metrics.IncDecodeFailure(stage)
		configslog.Log.Info("Paylaşım token'ı çözülemedi", zap.String("stage", stage), zap.Int("length", len(token)), zap.Error(err))
		return payload, false
	}
	return payload, true
}

// ShowSharedToken GET /share/visiting-card/:token
func (h *LinkHandler) ShowSharedToken(c *fiber.Ctx) error {
	payload, ok := h.decodeToken(c)
	if !ok {
		return h.renderError(c, fiber.StatusBadRequest, "Card unavailable", sharecodec.UserMessage)
	}
	return h.renderCard(c, payload.TemplateID, payload.CardData, true, "/share/visiting-card/"+c.Params("token")+"/qr.png")
}

// ShowSharedTokenQR GET /share/visiting-card/:token/qr.png
func (h *LinkHandler) ShowSharedTokenQR(c *fiber.Ctx) error {
	if _, ok := h.decodeToken(c); !ok {
		return h.renderError(c, fiber.StatusBadRequest, "Card unavailable", sharecodec.UserMessage)
	}
	return h.sendQR(c, sharecodec.Link(h.linkOrigin, c.Params("token")))
}

// ShowShare GET /card/:shareId
func (h *LinkHandler) ShowShare(c *fiber.Ctx) error {
	shareID := c.Params("shareId")
	view, err := h.shares.GetShare(c.UserContext(), shareID)
	if err != nil {
		return h.renderShareError(c, shareID, err)
	}
	if view.IsExpired {
		return h.renderError(c, fiber.StatusGone, "Link expired", expiredShareMessage)
	}
	return h.renderCard(c, view.TemplateID, view.CardData, view.AllowDownload, "/card/"+view.ShareID+"/qr.png")
}

// ShowShareQR GET /card/:shareId/qr.png. Kayda bakılmaz; görüntülenme sayılmaz.
func (h *LinkHandler) ShowShareQR(c *fiber.Ctx) error {
	shareID := c.Params("shareId")
	if !utils.IsValidShareID(shareID) {
		return h.renderError(c, fiber.StatusBadRequest, "Invalid link", invalidShareMessage)
	}
	return h.sendQR(c, h.linkOrigin+"/card/"+shareID)
}

func (h *LinkHandler) renderShareError(c *fiber.Ctx, shareID string, err error) error {
	switch {
	case errors.Is(err, services.ErrShareInvalidID):
		return h.renderError(c, fiber.StatusBadRequest, "Invalid link", invalidShareMessage)
	case errors.Is(err, services.ErrShareNotFound):
		return h.renderError(c, fiber.StatusNotFound, "Card not found", notFoundShareMessage)
	}
	configslog.Log.Error("Paylaşım sayfası yüklenemedi", zap.String("share_id", shareID), zap.Error(err))
	return h.renderError(c, fiber.StatusInternalServerError, "Something went wrong", "The card could not be loaded. Please try again later.")
}

// renderCard alıcı tarafında şablon seçimi kapalıdır; bilinmeyen şablon varsayılana düşer.
func (h *LinkHandler) renderCard(c *fiber.Ctx, templateID int, cardData map[string]any, allowDownload bool, qrURL string) error {
	profile := models.CardProfileFromCardData(sharecodec.Sanitize(cardData))
	id := h.catalog.Fallback(templateID)
	if id != templateID {
		configslog.Log.Debug("Bilinmeyen şablon varsayılana düştü", zap.Int("requested", templateID), zap.Int("used", id))
	}
	cardHTML, err := h.catalog.RenderHTML(id, profile, cardcatalog.DefaultDimensions, cardcatalog.RenderOptions{SelectionDisabled: true})
	if err != nil {
		configslog.Log.Error("Kart oluşturulamadı", zap.Int("template_id", id), zap.Error(err))
		return h.renderError(c, fiber.StatusInternalServerError, "Something went wrong", "The card could not be displayed.")
	}

	title := profile.MemberName
	if title == "" {
		title = "Visiting card"
	}
	return c.Render("public/card_view", fiber.Map{
		"Title":         title,
		"CardHTML":      cardHTML,
		"AllowDownload": allowDownload,
		"QRCodeURL":     qrURL,
	}, publicLayout)
}

func (h *LinkHandler) sendQR(c *fiber.Ctx, content string) error {
	png, err := h.qr.GeneratePNG(content)
	if err != nil {
		configslog.Log.Error("QR kodu üretilemedi", zap.Error(err))
		return h.renderError(c, fiber.StatusInternalServerError, "Something went wrong", "The QR code could not be generated.")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.Send(png)
}

func (h *LinkHandler) renderError(c *fiber.Ctx, status int, title, message string) error {
	view := "errors/500"
	switch status {
	case fiber.StatusBadRequest:
		view = "errors/400"
	case fiber.StatusNotFound:
		view = "errors/404"
	case fiber.StatusGone:
		view = "errors/410"
	}
	return c.Status(status).Render(view, fiber.Map{
		"Title":   title,
		"Message": message,
	}, publicLayout)
}
