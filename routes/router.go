package routes

import (
	"vcard.link/pkg/authtoken"
	"vcard.link/pkg/cardcatalog"
	"vcard.link/pkg/metrics"
	"vcard.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies rotaların ihtiyaç duyduğu servisler; main.go'da kurulur.
type Dependencies struct {
	Catalog     *cardcatalog.Catalog
	Assignments services.IAssignmentService
	CardData    services.ICardDataService
	Shares      services.IShareService
	QRCode      services.IQRCodeService
	Metrics     *metrics.ShareMetrics
	Gatherer    prometheus.Gatherer
	Auth        authtoken.Config
	AdminUserID uint
	LinkOrigin  string
	AccessLog   bool
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if deps.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	guards := newAuthGuards(deps)

	// --- Rota Grupları ---
	registerShareAPIRoutes(app, deps, guards)
	registerPanelRoutes(app, deps, guards)
	registerDashboardRoutes(app, deps, guards)
	registerPublicLinkRoutes(app, deps)

	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(services.ErrorResponse{Code: "not_found", Error: "resource not found", NotFound: true})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
			"Title":   "Page not found",
			"Message": "The page you are looking for does not exist.",
		}, "layouts/public")
	}
}
