package services_test

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"vcard.link/pkg/authtoken"
	"vcard.link/pkg/cardcatalog"
	"vcard.link/pkg/keyvalue"
	"vcard.link/pkg/queryparams"
	"vcard.link/repositories"
	"vcard.link/routes"
	"vcard.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clientAuth = authtoken.Config{Secret: "client-test-secret", Issuer: "vcard.test", TTL: time.Hour}

// startShareServer paylaşım API'sini gerçek bir portta çalıştırır.
func startShareServer(t *testing.T) string {
	t.Helper()
	catalog, err := cardcatalog.New()
	require.NoError(t, err)
	kv := keyvalue.NewMemoryStore()

	app := fiber.New(fiber.Config{Views: catalog.Engine(), DisableStartupMessage: true})
	routes.SetupRoutes(app, routes.Dependencies{
		Catalog:     catalog,
		Assignments: services.NewAssignmentService(repositories.NewKVAssignmentStore(kv), catalog, 1, nil),
		CardData:    services.NewCardDataService(nil, nil, ""),
		Shares:      services.NewLocalShareService(kv, "https://cards.example.org", 0, nil),
		QRCode:      services.NewQRCodeService(128, "M"),
		Auth:        clientAuth,
		AdminUserID: 1,
		LinkOrigin:  "https://cards.example.org",
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func clientFor(t *testing.T, baseURL string, userID uint) *services.ShareAPIClient {
	t.Helper()
	token := ""
	if userID != 0 {
		var err error
		token, err = authtoken.Mint(clientAuth, time.Now(), userID)
		require.NoError(t, err)
	}
	return services.NewShareAPIClient(baseURL, token, 5*time.Second)
}

func TestShareAPIClient_RoundTrip(t *testing.T) {
	baseURL := startShareServer(t)
	ctx := context.Background()
	owner := clientFor(t, baseURL, 7)
	stranger := clientFor(t, baseURL, 8)
	anonymous := clientFor(t, baseURL, 0)

	_, err := anonymous.CreateShare(ctx, services.CreateShareRequest{CardData: map[string]any{"memberName": "x"}})
	assert.ErrorIs(t, err, services.ErrShareUnauthorized)

	created, err := owner.CreateShare(ctx, services.CreateShareRequest{
		TemplateID: 2,
		CardData:   map[string]any{"memberName": "Lena Ortiz", "dob": "1991-03-03"},
		ExpiresIn:  "12h",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cards.example.org/card/"+created.ShareID, created.ShortURL)
	require.NotNil(t, created.ExpiresAt)

	view, err := anonymous.GetShare(ctx, created.ShareID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TemplateID)
	assert.Equal(t, map[string]any{"memberName": "Lena Ortiz"}, view.CardData)

	_, err = anonymous.GetShare(ctx, "bad!")
	assert.ErrorIs(t, err, services.ErrShareInvalidID)
	_, err = anonymous.GetShare(ctx, "Missing123")
	assert.ErrorIs(t, err, services.ErrShareNotFound)

	tpl := 6
	_, err = stranger.UpdateShare(ctx, created.ShareID, services.ShareUpdate{TemplateID: &tpl})
	assert.ErrorIs(t, err, services.ErrShareNotFoundOrDenied)
	updated, err := owner.UpdateShare(ctx, created.ShareID, services.ShareUpdate{TemplateID: &tpl})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.TemplateID)

	list, err := owner.GetUserShares(ctx, queryparams.ListParams{Page: 1, PerPage: 10, SortBy: "createdAt", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, list.Shares, 1)
	assert.Equal(t, "Lena Ortiz", list.Shares[0].MemberName)
	assert.Equal(t, int64(1), list.Meta.TotalItems)

	analytics, err := owner.GetShareAnalytics(ctx, created.ShareID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), analytics.ViewCount)

	assert.ErrorIs(t, stranger.DeleteShare(ctx, created.ShareID), services.ErrShareNotFoundOrDenied)
	require.NoError(t, owner.DeleteShare(ctx, created.ShareID))
	_, err = anonymous.GetShare(ctx, created.ShareID)
	assert.ErrorIs(t, err, services.ErrShareNotFound)
}

func TestShareAPIClient_TransportFailures(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := services.NewShareAPIClient("http://"+addr, "", time.Second)
	_, err = client.GetShare(context.Background(), "AbCdEf1234")
	assert.ErrorIs(t, err, services.ErrShareRequestFailed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.GetShare(ctx, "AbCdEf1234")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShareAPIClient_RejectsInvalidIDWithoutRequest(t *testing.T) {
	var hits atomic.Int64
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(func(c *fiber.Ctx) error {
		hits.Add(1)
		return c.Status(fiber.StatusNotFound).JSON(services.ErrorResponse{Success: false, Code: services.ShareCodeNotFound, Error: "not found"})
	})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	client := services.NewShareAPIClient("http://"+ln.Addr().String(), "", time.Second)
	ctx := context.Background()
	tpl := 2
	for _, id := range []string{"short", "..", "../../healthz", "AbCd/1234", "ThirteenChars"} {
		_, err := client.GetShare(ctx, id)
		assert.ErrorIs(t, err, services.ErrShareInvalidID, id)
		_, err = client.UpdateShare(ctx, id, services.ShareUpdate{TemplateID: &tpl})
		assert.ErrorIs(t, err, services.ErrShareInvalidID, id)
		assert.ErrorIs(t, client.DeleteShare(ctx, id), services.ErrShareInvalidID, id)
		_, err = client.GetShareAnalytics(ctx, id)
		assert.ErrorIs(t, err, services.ErrShareInvalidID, id)
	}
	assert.Zero(t, hits.Load())

	_, err = client.GetShare(ctx, "AbCdEf1234")
	assert.ErrorIs(t, err, services.ErrShareNotFound)
	assert.Equal(t, int64(1), hits.Load())
}

func TestShareAPIClient_UnsupportedScheme(t *testing.T) {
	client := services.NewShareAPIClient("ftp://cards.example.org", "", time.Second)
	for i := 0; i < 3; i++ {
		_, err := client.GetShare(context.Background(), "AbCdEf1234")
		assert.ErrorIs(t, err, services.ErrShareRequestFailed)
	}
}
