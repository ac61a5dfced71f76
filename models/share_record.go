package models

import (
	"time"

	"gorm.io/datatypes"
)

// SharePayload hem token'a hem sunucu kaydına giden paylaşım verisidir.
type SharePayload struct {
	TemplateID int            `json:"templateId"`
	CardData   map[string]any `json:"cardData"`
}

// ShareRecord sunucuda saklanan, süresi dolabilen ve görüntülenme sayılan paylaşımdır.
// Silme işlemi IsActive=false yapar; kayıt analiz geçmişi için korunur.
type ShareRecord struct {
	BaseModel
	ShareID       string            `gorm:"type:varchar(12);uniqueIndex;not null" json:"shareId"`
	TemplateID    int               `gorm:"not null" json:"templateId"`
	CardData      datatypes.JSONMap `json:"cardData"`
	ExpiresAt     *time.Time        `gorm:"index" json:"expiresAt"`
	IsPublic      bool              `gorm:"not null" json:"isPublic"`
	AllowDownload bool              `gorm:"not null" json:"allowDownload"`
	CreatedBy     uint              `gorm:"index;not null" json:"createdBy"`
	ViewCount     int64             `gorm:"not null;default:0" json:"viewCount"`
	LastViewedAt  *time.Time        `json:"lastViewedAt,omitempty"`
	IsActive      bool              `gorm:"not null;index" json:"isActive"`
}

// IsExpiredAt süre kontrolü okuma anında yapılır.
func (r *ShareRecord) IsExpiredAt(now time.Time) bool {
	return r.ExpiresAt != nil && !now.Before(*r.ExpiresAt)
}
