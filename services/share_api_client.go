package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vcard.link/configs/configslog"
	"vcard.link/pkg/queryparams"
	"vcard.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const shareAPIPath = "/api/share/visiting-card"

// ShareAPIClient IShareService'i uzak paylaşım API'sine HTTP ile bağlar. Kimlik biçimi
// istek gönderilmeden doğrulanır. İstekler başladıktan sonra iptal edilemez; context
// sadece başlamadan önce kontrol edilir.
type ShareAPIClient struct {
	baseURL string
	token   string
	timeout time.Duration
}

func NewShareAPIClient(baseURL, bearerToken string, timeout time.Duration) *ShareAPIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ShareAPIClient{baseURL: strings.TrimRight(baseURL, "/"), token: bearerToken, timeout: timeout}
}

func (c *ShareAPIClient) url(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.baseURL + shareAPIPath + "/" + strings.Join(escaped, "/")
}

// do isteği gönderir; başarılı yanıtı out'a çözer, başarısızsa servis hatası döner.
func (c *ShareAPIClient) do(ctx context.Context, agent *fiber.Agent, body any, out any) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(agent)
		return err
	}
	agent.Timeout(c.timeout)
	if c.token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if body != nil {
		agent.JSON(body)
	}
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return fmt.Errorf("%w: %v", ErrShareRequestFailed, err)
	}
	status, raw, errs := agent.Bytes()
	if len(errs) > 0 {
		configslog.Log.Warn("Paylaşım API isteği başarısız", zap.Errors("errors", errs))
		return fmt.Errorf("%w: %v", ErrShareRequestFailed, errs[0])
	}

	var envelope ErrorResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: HTTP %d, geçersiz yanıt", ErrShareRequestFailed, status)
	}
	if !envelope.Success {
		return fmt.Errorf("%w: %s", envelope.Err(), envelope.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: yanıt çözülemedi: %v", ErrShareRequestFailed, err)
	}
	return nil
}

func (c *ShareAPIClient) CreateShare(ctx context.Context, req CreateShareRequest) (*CreateShareResult, error) {
	var resp CreateShareResponse
	if err := c.do(ctx, fiber.Post(c.url("create")), req, &resp); err != nil {
		return nil, err
	}
	return &resp.CreateShareResult, nil
}

func (c *ShareAPIClient) GetShare(ctx context.Context, shareID string) (*ShareView, error) {
	if !utils.IsValidShareID(shareID) {
		return nil, ErrShareInvalidID
	}
	var resp ShareViewResponse
	if err := c.do(ctx, fiber.Get(c.url(shareID)), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.ShareView, nil
}

func (c *ShareAPIClient) UpdateShare(ctx context.Context, shareID string, upd ShareUpdate) (*ShareView, error) {
	if !utils.IsValidShareID(shareID) {
		return nil, ErrShareInvalidID
	}
	var resp ShareViewResponse
	if err := c.do(ctx, fiber.Patch(c.url(shareID)), upd, &resp); err != nil {
		return nil, err
	}
	return &resp.ShareView, nil
}

func (c *ShareAPIClient) DeleteShare(ctx context.Context, shareID string) error {
	if !utils.IsValidShareID(shareID) {
		return ErrShareInvalidID
	}
	return c.do(ctx, fiber.Delete(c.url(shareID)), nil, nil)
}

func (c *ShareAPIClient) GetUserShares(ctx context.Context, params queryparams.ListParams) (*UserSharesResult, error) {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		q.Set("limit", strconv.Itoa(params.PerPage))
	}
	if params.SortBy != "" {
		q.Set("sortBy", params.SortBy)
	}
	if params.SortOrder != "" {
		q.Set("sortOrder", params.SortOrder)
	}
	agent := fiber.Get(c.url("user", "shares"))
	agent.QueryString(q.Encode())

	var resp UserSharesResponse
	if err := c.do(ctx, agent, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.UserSharesResult, nil
}

func (c *ShareAPIClient) GetShareAnalytics(ctx context.Context, shareID string) (*ShareAnalytics, error) {
	if !utils.IsValidShareID(shareID) {
		return nil, ErrShareInvalidID
	}
	var resp ShareAnalyticsResponse
	if err := c.do(ctx, fiber.Get(c.url(shareID, "analytics")), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.ShareAnalytics, nil
}

var _ IShareService = (*ShareAPIClient)(nil)
