package middlewares

import (
	"strings"

	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/pkg/authtoken"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LocalsUserID doğrulanmış kullanıcının fiber Locals anahtarı.
const LocalsUserID = "userID"

type errorBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

func bearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

func setUser(c *fiber.Ctx, userID uint) {
	c.Locals(LocalsUserID, userID)
	c.SetUserContext(models.ContextWithUserID(c.UserContext(), userID))
}

// AuthMiddleware geçerli bir Bearer token ister; kullanıcı kimliği hem Locals'a hem
// istek context'ine yazılır.
func AuthMiddleware(cfg authtoken.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Code: "unauthorized", Error: "authentication required"})
		}
		userID, err := authtoken.Parse(cfg, token)
		if err != nil {
			configslog.Log.Debug("Geçersiz erişim token'ı", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Code: "unauthorized", Error: "invalid or expired token"})
		}
		setUser(c, userID)
		return c.Next()
	}
}

// OptionalAuth token varsa ve geçerliyse kullanıcıyı tanır, yoksa anonim devam eder.
func OptionalAuth(cfg authtoken.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if userID, err := authtoken.Parse(cfg, token); err == nil {
				setUser(c, userID)
			}
		}
		return c.Next()
	}
}

// RequireAdmin AuthMiddleware'den sonra çalışır.
func RequireAdmin(adminUserID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(LocalsUserID).(uint)
		if userID == 0 || userID != adminUserID {
			configslog.Log.Warn("Yönetici olmayan kullanıcı yönetim uç noktasına erişmeye çalıştı",
				zap.Uint("user_id", userID), zap.String("path", c.Path()))
			return c.Status(fiber.StatusForbidden).JSON(errorBody{Code: "forbidden", Error: "administrator access required"})
		}
		return c.Next()
	}
}

// UserID Locals'taki kullanıcı kimliği; yoksa 0.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalsUserID).(uint)
	return id
}
