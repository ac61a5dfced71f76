package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/pkg/keyvalue"
	"vcard.link/pkg/metrics"
	"vcard.link/pkg/queryparams"
	"vcard.link/pkg/sharecodec"
	"vcard.link/repositories"
	"vcard.link/utils"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ShareServiceError paylaşım servis hataları
type ShareServiceError string

func (e ShareServiceError) Error() string { return string(e) }

const (
	ErrShareInvalidID        ShareServiceError = "invalid share id"
	ErrShareInvalidInput     ShareServiceError = "invalid share input"
	ErrShareNotFound         ShareServiceError = "share not found"
	ErrShareNotFoundOrDenied ShareServiceError = "share not found or access denied"
	ErrShareUnauthorized     ShareServiceError = "authentication required"
	ErrShareSaveFailed       ShareServiceError = "failed to save share"
	ErrShareRequestFailed    ShareServiceError = "share request failed"
)

// DefaultShareTTL süre belirtilmeyen veya yorumlanamayan paylaşımlar için.
const DefaultShareTTL = 30 * 24 * time.Hour

// ExpiresInNever süresiz paylaşım.
const ExpiresInNever = "never"

const maxShareIDAttempts = 5

var expiresInPattern = regexp.MustCompile(`^(\d+)([mhd])$`)

// sortByColumns API'deki sıralama adlarını sütunlara çevirir.
var sortByColumns = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"viewCount":    "view_count",
	"expiresAt":    "expires_at",
	"lastViewedAt": "last_viewed_at",
	"templateId":   "template_id",
}

// CreateShareRequest isPublic ve allowDownload verilmezse true kabul edilir.
type CreateShareRequest struct {
	CardData      map[string]any `json:"cardData" validate:"required"`
	TemplateID    int            `json:"templateId" validate:"gte=0"`
	ExpiresIn     string         `json:"expiresIn"`
	IsPublic      *bool          `json:"isPublic"`
	AllowDownload *bool          `json:"allowDownload"`
}

type CreateShareResult struct {
	ShareID   string     `json:"shareId"`
	ShortURL  string     `json:"shortUrl"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// ShareView alıcının gördüğü paylaşım. Süresi dolmuşsa AllowDownload her zaman false.
type ShareView struct {
	ShareID       string         `json:"shareId"`
	TemplateID    int            `json:"templateId"`
	CardData      map[string]any `json:"cardData"`
	IsExpired     bool           `json:"isExpired"`
	AllowDownload bool           `json:"allowDownload"`
	IsPublic      bool           `json:"isPublic"`
	ExpiresAt     *time.Time     `json:"expiresAt"`
}

// ShareUpdate nil alanlar değişmez.
type ShareUpdate struct {
	TemplateID    *int           `json:"templateId" validate:"omitempty,min=1"`
	CardData      map[string]any `json:"cardData"`
	ExpiresIn     *string        `json:"expiresIn"`
	IsPublic      *bool          `json:"isPublic"`
	AllowDownload *bool          `json:"allowDownload"`
}

type ShareSummary struct {
	ShareID       string     `json:"shareId"`
	ShortURL      string     `json:"shortUrl"`
	TemplateID    int        `json:"templateId"`
	MemberName    string     `json:"memberName,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	IsExpired     bool       `json:"isExpired"`
	IsPublic      bool       `json:"isPublic"`
	AllowDownload bool       `json:"allowDownload"`
	ViewCount     int64      `json:"viewCount"`
}

type UserSharesResult struct {
	Shares []ShareSummary             `json:"shares"`
	Meta   queryparams.PaginationMeta `json:"meta"`
}

type ShareAnalytics struct {
	ShareID      string     `json:"shareId"`
	ViewCount    int64      `json:"viewCount"`
	LastViewedAt *time.Time `json:"lastViewedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	ExpiresAt    *time.Time `json:"expiresAt"`
	IsExpired    bool       `json:"isExpired"`
	IsActive     bool       `json:"isActive"`
}

// IShareService sunucu, yerel ve uzak (HTTP) uygulamaların ortak arayüzü. İşlemi yapan
// kullanıcı context'ten okunur (models.ContextWithUserID).
type IShareService interface {
	CreateShare(ctx context.Context, req CreateShareRequest) (*CreateShareResult, error)
	GetShare(ctx context.Context, shareID string) (*ShareView, error)
	UpdateShare(ctx context.Context, shareID string, upd ShareUpdate) (*ShareView, error)
	DeleteShare(ctx context.Context, shareID string) error
	GetUserShares(ctx context.Context, params queryparams.ListParams) (*UserSharesResult, error)
	GetShareAnalytics(ctx context.Context, shareID string) (*ShareAnalytics, error)
}

// ShareService IShareService'in depo tabanlı uygulaması.
type ShareService struct {
	store      repositories.IShareStore
	linkOrigin string
	defaultTTL time.Duration
	metrics    *metrics.ShareMetrics
	now        func() time.Time
}

func NewShareService(store repositories.IShareStore, linkOrigin string, defaultTTL time.Duration, m *metrics.ShareMetrics) *ShareService {
	if defaultTTL <= 0 {
		defaultTTL = DefaultShareTTL
	}
	return &ShareService{
		store:      store,
		linkOrigin: strings.TrimRight(linkOrigin, "/"),
		defaultTTL: defaultTTL,
		metrics:    m,
		now:        time.Now,
	}
}

// NewLocalShareService paylaşımları anahtar-değer deposunda tutan uygulama.
func NewLocalShareService(kv keyvalue.Store, linkOrigin string, defaultTTL time.Duration, m *metrics.ShareMetrics) *ShareService {
	return NewShareService(repositories.NewKVShareStore(kv), linkOrigin, defaultTTL, m)
}

// ParseExpiresIn "<sayı><m|h|d>" veya "never" okur. never=true ise süre yoktur.
// Boş, sıfır veya yorumlanamayan değerlerde fallback döner.
func ParseExpiresIn(s string, fallback time.Duration) (ttl time.Duration, never bool) {
	s = strings.TrimSpace(s)
	if s == ExpiresInNever {
		return 0, true
	}
	m := expiresInPattern.FindStringSubmatch(s)
	if m == nil {
		return fallback, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n <= 0 {
		return fallback, false
	}
	unit := time.Minute
	switch m[2] {
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	}
	if n > int64((1<<63-1)/unit) {
		return fallback, false
	}
	return time.Duration(n) * unit, false
}

// ShortURL sunucu tabanlı paylaşım bağlantısı.
func (s *ShareService) ShortURL(shareID string) string {
	return s.linkOrigin + "/card/" + shareID
}

func (s *ShareService) expiresAt(expiresIn string, now time.Time) *time.Time {
	ttl, never := ParseExpiresIn(expiresIn, s.defaultTTL)
	if never {
		return nil
	}
	t := now.Add(ttl)
	return &t
}

func (s *ShareService) CreateShare(ctx context.Context, req CreateShareRequest) (*CreateShareResult, error) {
	userID := models.UserIDFromContext(ctx)
	if userID == 0 {
		return nil, ErrShareUnauthorized
	}
	cardData := sharecodec.Sanitize(req.CardData)
	if len(cardData) == 0 {
		return nil, fmt.Errorf("%w: paylaşılabilir alan yok", ErrShareInvalidInput)
	}
	templateID := req.TemplateID
	if templateID < 1 {
		templateID = sharecodec.DefaultTemplateID
	}

	shareID, err := s.generateShareID(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rec := &models.ShareRecord{
		ShareID:       shareID,
		TemplateID:    templateID,
		CardData:      datatypes.JSONMap(cardData),
		ExpiresAt:     s.expiresAt(req.ExpiresIn, now),
		IsPublic:      boolOr(req.IsPublic, true),
		AllowDownload: boolOr(req.AllowDownload, true),
		CreatedBy:     userID,
		IsActive:      true,
	}
	rec.CreatedAt = now
	if err := s.store.Create(ctx, rec); err != nil {
		configslog.Log.Error("Paylaşım kaydedilemedi", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrShareSaveFailed
	}
	s.metrics.IncCreated("stored")
	configslog.SLog.Infof("Paylaşım oluşturuldu: %s (Oluşturan: %d)", shareID, userID)
	return &CreateShareResult{ShareID: shareID, ShortURL: s.ShortURL(shareID), ExpiresAt: rec.ExpiresAt}, nil
}

func (s *ShareService) generateShareID(ctx context.Context) (string, error) {
	for i := 0; i < maxShareIDAttempts; i++ {
		candidate, err := utils.GenerateSecureRandomString(utils.ShareIDLength)
		if err != nil {
			configslog.Log.Error("Paylaşım kimliği üretilemedi", zap.Error(err))
			return "", ErrShareSaveFailed
		}
		exists, err := s.store.ShareIDExists(ctx, candidate)
		if err != nil {
			return "", ErrShareSaveFailed
		}
		if !exists {
			return candidate, nil
		}
		configslog.Log.Warn("Paylaşım kimliği çakışması, yeniden deneniyor", zap.String("share_id", candidate))
	}
	return "", fmt.Errorf("%w: benzersiz kimlik üretilemedi", ErrShareSaveFailed)
}

// GetShare kimlik biçimini depoya gitmeden doğrular. Süresi dolmuş kayıt yine döner
// ama görüntülenme sayılmaz.
func (s *ShareService) GetShare(ctx context.Context, shareID string) (*ShareView, error) {
	if !utils.IsValidShareID(shareID) {
		s.metrics.IncRetrieval("invalid_id")
		return nil, ErrShareInvalidID
	}
	rec, err := s.store.FindByShareID(ctx, shareID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.metrics.IncRetrieval("not_found")
			return nil, ErrShareNotFound
		}
		configslog.Log.Error("Paylaşım okunamadı", zap.String("share_id", shareID), zap.Error(err))
		return nil, ErrShareRequestFailed
	}
	caller := models.UserIDFromContext(ctx)
	if !rec.IsActive || (!rec.IsPublic && caller != rec.CreatedBy) {
		s.metrics.IncRetrieval("not_found")
		return nil, ErrShareNotFound
	}

	now := s.now()
	view := toShareView(rec)
	if rec.IsExpiredAt(now) {
		view.IsExpired = true
		view.AllowDownload = false
		s.metrics.IncRetrieval("expired")
		return view, nil
	}

	if err := s.store.IncrementViewCount(ctx, shareID, now); err != nil {
		configslog.Log.Warn("Görüntülenme sayacı artırılamadı", zap.String("share_id", shareID), zap.Error(err))
	}
	s.metrics.IncRetrieval("ok")
	return view, nil
}

// ownedRecord kaydı sadece oluşturana döndürür; yokluk ve yetkisizlik ayırt edilmez.
func (s *ShareService) ownedRecord(ctx context.Context, shareID string, includeInactive bool) (*models.ShareRecord, uint, error) {
	if !utils.IsValidShareID(shareID) {
		return nil, 0, ErrShareInvalidID
	}
	caller := models.UserIDFromContext(ctx)
	if caller == 0 {
		return nil, 0, ErrShareUnauthorized
	}
	rec, err := s.store.FindByShareID(ctx, shareID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, caller, ErrShareNotFoundOrDenied
		}
		configslog.Log.Error("Paylaşım okunamadı", zap.String("share_id", shareID), zap.Error(err))
		return nil, caller, ErrShareRequestFailed
	}
	if rec.CreatedBy != caller || (!includeInactive && !rec.IsActive) {
		configslog.Log.Warn("Paylaşıma yetkisiz erişim denemesi", zap.String("share_id", shareID), zap.Uint("user_id", caller))
		return nil, caller, ErrShareNotFoundOrDenied
	}
	return rec, caller, nil
}

func (s *ShareService) UpdateShare(ctx context.Context, shareID string, upd ShareUpdate) (*ShareView, error) {
	rec, caller, err := s.ownedRecord(ctx, shareID, false)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{}
	if upd.TemplateID != nil {
		if *upd.TemplateID < 1 {
			return nil, fmt.Errorf("%w: templateId", ErrShareInvalidInput)
		}
		data["template_id"] = *upd.TemplateID
		rec.TemplateID = *upd.TemplateID
	}
	if upd.CardData != nil {
		cardData := sharecodec.Sanitize(upd.CardData)
		if len(cardData) == 0 {
			return nil, fmt.Errorf("%w: paylaşılabilir alan yok", ErrShareInvalidInput)
		}
		data["card_data"] = datatypes.JSONMap(cardData)
		rec.CardData = datatypes.JSONMap(cardData)
	}
	if upd.ExpiresIn != nil {
		rec.ExpiresAt = s.expiresAt(*upd.ExpiresIn, s.now())
		data["expires_at"] = rec.ExpiresAt
	}
	if upd.IsPublic != nil {
		data["is_public"] = *upd.IsPublic
		rec.IsPublic = *upd.IsPublic
	}
	if upd.AllowDownload != nil {
		data["allow_download"] = *upd.AllowDownload
		rec.AllowDownload = *upd.AllowDownload
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: güncellenecek alan yok", ErrShareInvalidInput)
	}

	if err := s.store.Update(ctx, shareID, data); err != nil {
		configslog.Log.Error("Paylaşım güncellenemedi", zap.String("share_id", shareID), zap.Error(err))
		return nil, ErrShareSaveFailed
	}
	configslog.SLog.Infof("Paylaşım güncellendi: %s (Güncelleyen: %d)", shareID, caller)

	view := toShareView(rec)
	if rec.IsExpiredAt(s.now()) {
		view.IsExpired = true
		view.AllowDownload = false
	}
	return view, nil
}

// DeleteShare kaydı pasifleştirir; analiz geçmişi korunur.
func (s *ShareService) DeleteShare(ctx context.Context, shareID string) error {
	_, caller, err := s.ownedRecord(ctx, shareID, false)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, shareID, map[string]interface{}{"is_active": false}); err != nil {
		configslog.Log.Error("Paylaşım silinemedi", zap.String("share_id", shareID), zap.Error(err))
		return ErrShareSaveFailed
	}
	configslog.SLog.Infof("Paylaşım silindi: %s (Silen: %d)", shareID, caller)
	return nil
}

func (s *ShareService) GetUserShares(ctx context.Context, params queryparams.ListParams) (*UserSharesResult, error) {
	caller := models.UserIDFromContext(ctx)
	if caller == 0 {
		return nil, ErrShareUnauthorized
	}
	if col, ok := sortByColumns[params.SortBy]; ok {
		params.SortBy = col
	}
	params.Validate("created_at", repositories.ShareSortColumns...)

	records, total, err := s.store.ListActiveByCreator(ctx, caller, params)
	if err != nil {
		configslog.Log.Error("Kullanıcı paylaşımları listelenemedi", zap.Uint("user_id", caller), zap.Error(err))
		return nil, ErrShareRequestFailed
	}

	now := s.now()
	out := &UserSharesResult{
		Shares: make([]ShareSummary, 0, len(records)),
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  total,
			TotalPages:  queryparams.CalculateTotalPages(total, params.PerPage),
		},
	}
	for i := range records {
		r := &records[i]
		name, _ := r.CardData["memberName"].(string)
		out.Shares = append(out.Shares, ShareSummary{
			ShareID:       r.ShareID,
			ShortURL:      s.ShortURL(r.ShareID),
			TemplateID:    r.TemplateID,
			MemberName:    name,
			CreatedAt:     r.CreatedAt,
			ExpiresAt:     r.ExpiresAt,
			IsExpired:     r.IsExpiredAt(now),
			IsPublic:      r.IsPublic,
			AllowDownload: r.AllowDownload,
			ViewCount:     r.ViewCount,
		})
	}
	return out, nil
}

// GetShareAnalytics silinmiş paylaşımlar dahil sadece oluşturana açıktır.
func (s *ShareService) GetShareAnalytics(ctx context.Context, shareID string) (*ShareAnalytics, error) {
	rec, _, err := s.ownedRecord(ctx, shareID, true)
	if err != nil {
		return nil, err
	}
	return &ShareAnalytics{
		ShareID:      rec.ShareID,
		ViewCount:    rec.ViewCount,
		LastViewedAt: rec.LastViewedAt,
		CreatedAt:    rec.CreatedAt,
		ExpiresAt:    rec.ExpiresAt,
		IsExpired:    rec.IsExpiredAt(s.now()),
		IsActive:     rec.IsActive,
	}, nil
}

func toShareView(rec *models.ShareRecord) *ShareView {
	cardData := map[string]any(rec.CardData)
	if cardData == nil {
		cardData = map[string]any{}
	}
	return &ShareView{
		ShareID:       rec.ShareID,
		TemplateID:    rec.TemplateID,
		CardData:      cardData,
		AllowDownload: rec.AllowDownload,
		IsPublic:      rec.IsPublic,
		ExpiresAt:     rec.ExpiresAt,
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

var _ IShareService = (*ShareService)(nil)
