package middlewares

import (
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"vcard.link/models"
	"vcard.link/pkg/authtoken"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuth = authtoken.Config{Secret: "test-secret", Issuer: "vcard.test", TTL: time.Hour}

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatUint(uint64(models.UserIDFromContext(c.UserContext())), 10) +
			"/" + strconv.FormatUint(uint64(UserID(c)), 10))
	})
	app.Get("/", handlers...)
	return app
}

func do(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func mint(t *testing.T, userID uint) string {
	t.Helper()
	tok, err := authtoken.Mint(testAuth, time.Now(), userID)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	app := newApp(AuthMiddleware(testAuth))

	status, _ := do(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = do(t, app, "Bearer not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := do(t, app, "Bearer "+mint(t, 42))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "42/42", body)

	status, body = do(t, app, "bearer "+mint(t, 7))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "7/7", body)
}

func TestAuthMiddleware_RejectsForeignSecret(t *testing.T) {
	other := testAuth
	other.Secret = "another-secret"
	tok, err := authtoken.Mint(other, time.Now(), 42)
	require.NoError(t, err)

	status, _ := do(t, newApp(AuthMiddleware(testAuth)), "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestOptionalAuth(t *testing.T) {
	app := newApp(OptionalAuth(testAuth))

	status, body := do(t, app, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "0/0", body)

	_, body = do(t, app, "Bearer broken")
	assert.Equal(t, "0/0", body)

	_, body = do(t, app, "Bearer "+mint(t, 9))
	assert.Equal(t, "9/9", body)
}

func TestRequireAdmin(t *testing.T) {
	app := newApp(AuthMiddleware(testAuth), RequireAdmin(1))

	status, _ := do(t, app, "Bearer "+mint(t, 2))
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body := do(t, app, "Bearer "+mint(t, 1))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "1/1", body)
}
