package models

import (
	"fmt"
	"strings"
)

// CardProfile kartvizitin tek, düz veri kaydıdır. Boş string "gösterilmez" demektir
// ve JSON'a hiç yazılmaz.
type CardProfile struct {
	MemberName     string `json:"memberName,omitempty"`
	MembershipID   string `json:"membershipId,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	CompanyTagline string `json:"companyTagline,omitempty"`
	Title          string `json:"title,omitempty"`
	CompanyID      string `json:"companyId,omitempty"`
	DOB            string `json:"dob,omitempty"`
	BloodGroup     string `json:"bloodGroup,omitempty"`
	Address        string `json:"address,omitempty"`
	IssuedUpto     string `json:"issuedUpto,omitempty"`
	MemberPhoto    string `json:"memberPhoto,omitempty"`
	CompanyLogo    string `json:"companyLogo,omitempty"`

	// Sosyal medya
	FacebookURL  string `json:"facebookUrl,omitempty"`
	InstagramURL string `json:"instagramUrl,omitempty"`
	LinkedinURL  string `json:"linkedinUrl,omitempty"`
	YoutubeURL   string `json:"youtubeUrl,omitempty"`
	TwitterURL   string `json:"twitterUrl,omitempty"`
	PinterestURL string `json:"pinterestUrl,omitempty"`
}

// XURLAlias twitterUrl için kabul edilen eski ad.
const XURLAlias = "xUrl"

// ProfileField profil alanının JSON adı ve değerine işaretçi.
type ProfileField struct {
	Key   string
	Value *string
}

// Fields alanları sabit sırada, düzenlenebilir işaretçilerle döndürür.
func (p *CardProfile) Fields() []ProfileField {
	return []ProfileField{
		{"memberName", &p.MemberName},
		{"membershipId", &p.MembershipID},
		{"email", &p.Email},
		{"phone", &p.Phone},
		{"companyName", &p.CompanyName},
		{"companyTagline", &p.CompanyTagline},
		{"title", &p.Title},
		{"companyId", &p.CompanyID},
		{"dob", &p.DOB},
		{"bloodGroup", &p.BloodGroup},
		{"address", &p.Address},
		{"issuedUpto", &p.IssuedUpto},
		{"memberPhoto", &p.MemberPhoto},
		{"companyLogo", &p.CompanyLogo},
		{"facebookUrl", &p.FacebookURL},
		{"instagramUrl", &p.InstagramURL},
		{"linkedinUrl", &p.LinkedinURL},
		{"youtubeUrl", &p.YoutubeURL},
		{"twitterUrl", &p.TwitterURL},
		{"pinterestUrl", &p.PinterestURL},
	}
}

// SocialFields sadece sosyal medya URL alanlarını döndürür.
func (p *CardProfile) SocialFields() []ProfileField {
	return []ProfileField{
		{"facebookUrl", &p.FacebookURL},
		{"instagramUrl", &p.InstagramURL},
		{"linkedinUrl", &p.LinkedinURL},
		{"youtubeUrl", &p.YoutubeURL},
		{"twitterUrl", &p.TwitterURL},
		{"pinterestUrl", &p.PinterestURL},
	}
}

// FillFrom sadece boş alanları diğer profilden doldurur; dolu alan asla ezilmez.
func (p *CardProfile) FillFrom(other CardProfile) {
	src := other.Fields()
	for i, f := range p.Fields() {
		if strings.TrimSpace(*f.Value) == "" {
			*f.Value = strings.TrimSpace(*src[i].Value)
		}
	}
}

// IsEmpty hiçbir alan dolu değilse true döner.
func (p CardProfile) IsEmpty() bool {
	for _, f := range p.Fields() {
		if strings.TrimSpace(*f.Value) != "" {
			return false
		}
	}
	return true
}

// ToCardData dolu alanları paylaşım haritasına çevirir.
func (p CardProfile) ToCardData() map[string]any {
	out := make(map[string]any)
	for _, f := range p.Fields() {
		if v := strings.TrimSpace(*f.Value); v != "" {
			out[f.Key] = v
		}
	}
	return out
}

// CardProfileFromCardData paylaşım haritasını profile çevirir. Bilinmeyen anahtarlar atlanır,
// xUrl twitterUrl olarak okunur.
func CardProfileFromCardData(data map[string]any) CardProfile {
	var p CardProfile
	for _, f := range p.Fields() {
		if v, ok := data[f.Key]; ok {
			*f.Value = scalarString(v)
		}
	}
	if p.TwitterURL == "" {
		if v, ok := data[XURLAlias]; ok {
			p.TwitterURL = scalarString(v)
		}
	}
	return p
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool, int, int64, float32, uint, uint64:
		return fmt.Sprint(t)
	default:
		return ""
	}
}
