package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/repositories"

	"go.uber.org/zap"
)

// DirectoryLookup üye rehberinden kimlik alanına göre kayıt getirir.
type DirectoryLookup interface {
	FindByKey(ctx context.Context, key repositories.MemberKey, value string) (*models.Member, error)
}

// SocialLookup kullanıcı kimliğine göre sosyal profil getirir.
type SocialLookup interface {
	FindByUserID(ctx context.Context, userID string) (*models.SocialProfile, error)
}

// IdentityHints çağıranın elindeki kimlik ipuçları; hangisinin dolu olduğu bilinmez.
type IdentityHints struct {
	ID              string `json:"id"`
	CompanyDetailID string `json:"companyDetailId"`
	UserDetailID    string `json:"userDetailId"`
	UserID          string `json:"userId"`
}

// identityExtractors rehber eşleştirme sırası; ilk bulunan kayıt kazanır.
var identityExtractors = []struct {
	key  repositories.MemberKey
	hint func(IdentityHints) string
}{
	{repositories.MemberKeyID, func(h IdentityHints) string { return h.ID }},
	{repositories.MemberKeyCompanyDetailID, func(h IdentityHints) string { return h.CompanyDetailID }},
	{repositories.MemberKeyUserDetailID, func(h IdentityHints) string { return h.UserDetailID }},
	{repositories.MemberKeyUserID, func(h IdentityHints) string { return h.UserID }},
}

// membershipDateLayouts rehberden gelen ham üyelik bitiş tarihinin olası biçimleri.
var membershipDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

type ICardDataService interface {
	Resolve(ctx context.Context, hints IdentityHints, supplied models.CardProfile) (models.CardProfile, error)
}

type CardDataService struct {
	directory    DirectoryLookup
	social       SocialLookup
	assetBaseURL string
}

func NewCardDataService(directory DirectoryLookup, social SocialLookup, assetBaseURL string) ICardDataService {
	return &CardDataService{directory: directory, social: social, assetBaseURL: strings.TrimRight(assetBaseURL, "/")}
}

// Resolve üç kaynağı birleştirir: rehber kaydı, çağıranın profili (sadece rehberin
// doldurmadığı alanlar) ve en son sosyal profil. Boş değer hiçbir zaman dolu alanı ezmez.
func (s *CardDataService) Resolve(ctx context.Context, hints IdentityHints, supplied models.CardProfile) (models.CardProfile, error) {
	if err := ctx.Err(); err != nil {
		return models.CardProfile{}, err
	}

	var profile models.CardProfile
	member := s.lookupMember(ctx, hints)
	if member != nil {
		profile = profileFromMember(member)
	}
	profile.FillFrom(supplied)

	socialUserID := hints.UserID
	if member != nil && member.UserID != "" {
		socialUserID = member.UserID
	}
	if sp := s.lookupSocial(ctx, socialUserID); sp != nil {
		overlaySocial(&profile, sp)
	}

	for _, f := range profile.SocialFields() {
		*f.Value = NormalizeSocialURL(*f.Value)
	}
	profile.MemberPhoto = s.absoluteAsset(profile.MemberPhoto)
	profile.CompanyLogo = s.absoluteAsset(profile.CompanyLogo)
	return profile, nil
}

func (s *CardDataService) lookupMember(ctx context.Context, hints IdentityHints) *models.Member {
	if s.directory == nil {
		return nil
	}
	for _, ex := range identityExtractors {
		value := strings.TrimSpace(ex.hint(hints))
		if value == "" {
			continue
		}
		m, err := s.directory.FindByKey(ctx, ex.key, value)
		if err == nil && m != nil {
			return m
		}
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			configslog.Log.Warn("Rehber araması başarısız, sonraki kimlik deneniyor",
				zap.String("key", string(ex.key)), zap.Error(err))
		}
	}
	return nil
}

func (s *CardDataService) lookupSocial(ctx context.Context, userID string) *models.SocialProfile {
	if s.social == nil || strings.TrimSpace(userID) == "" {
		return nil
	}
	sp, err := s.social.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			configslog.Log.Warn("Sosyal profil alınamadı", zap.String("user_id", userID), zap.Error(err))
		}
		return nil
	}
	return sp
}

func profileFromMember(m *models.Member) models.CardProfile {
	p := models.CardProfile{
		MemberName:     m.MemberName,
		MembershipID:   m.MembershipID,
		Email:          m.Email,
		Phone:          m.Phone,
		CompanyName:    m.CompanyName,
		CompanyTagline: m.CompanyTagline,
		Title:          m.Title,
		CompanyID:      m.CompanyID,
		DOB:            m.DOB,
		BloodGroup:     m.BloodGroup,
		Address:        m.Address,
		IssuedUpto:     FormatMembershipDate(m.MembershipValidUntil),
		MemberPhoto:    m.MemberPhoto,
		CompanyLogo:    m.CompanyLogo,
	}
	for _, f := range p.Fields() {
		*f.Value = strings.TrimSpace(*f.Value)
	}
	return p
}

// overlaySocial sosyal alanları sadece dolu değerlerle ezer.
func overlaySocial(p *models.CardProfile, sp *models.SocialProfile) {
	social := models.CardProfile{
		FacebookURL:  NormalizeSocialURL(sp.FacebookURL),
		InstagramURL: NormalizeSocialURL(sp.InstagramURL),
		LinkedinURL:  NormalizeSocialURL(sp.LinkedinURL),
		YoutubeURL:   NormalizeSocialURL(sp.YoutubeURL),
		TwitterURL:   NormalizeSocialURL(sp.TwitterURL),
		PinterestURL: NormalizeSocialURL(sp.PinterestURL),
	}
	target := p.SocialFields()
	for i, f := range social.SocialFields() {
		if *f.Value != "" {
			*target[i].Value = *f.Value
		}
	}
}

// NormalizeSocialURL boş değeri yok sayar, şemasız değere https:// ekler.
func NormalizeSocialURL(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return v
	}
	return "https://" + strings.TrimLeft(v, "/")
}

// FormatMembershipDate ham tarihi "Jan 2026" biçimine çevirir; çözülemezse ham değeri döndürür.
func FormatMembershipDate(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	for _, layout := range membershipDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return v
}

func (s *CardDataService) absoluteAsset(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || s.assetBaseURL == "" {
		return path
	}
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	if strings.HasPrefix(path, "//") {
		return "https:" + path
	}
	return s.assetBaseURL + "/" + strings.TrimLeft(path, "/")
}

var _ ICardDataService = (*CardDataService)(nil)
