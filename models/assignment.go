package models

import (
	"slices"

	"gorm.io/datatypes"
)

// Kartvizit şablon kategorileri
const (
	CategoryBasic    = "basic"
	CategoryStandard = "standard"
	CategoryPremium  = "premium"
)

// Assignment bir kullanıcının kullanabileceği şablonları ve seçimlerini tutar.
type Assignment struct {
	BaseModel
	UserID             uint                     `gorm:"uniqueIndex;not null" json:"userId"`
	Category           string                   `gorm:"type:varchar(30);not null" json:"category"`
	TemplateIDs        datatypes.JSONSlice[int] `json:"templateIds"`
	SelectedTemplateID int                      `gorm:"not null;default:0" json:"selectedTemplateId"`
	DefaultTemplateID  *int                     `json:"defaultTemplateId,omitempty"`
}

// HasTemplate id kullanıcının kayıtlı kümesinde mi?
func (a *Assignment) HasTemplate(id int) bool {
	return slices.Contains([]int(a.TemplateIDs), id)
}
