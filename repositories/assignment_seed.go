package repositories

import (
	"vcard.link/models"

	"gorm.io/datatypes"
)

// DefaultAssignments ilk kullanımda ve toplu sıfırlamada yazılan örnek atamalar.
// Her çağrı yeni bir dilim döndürür.
func DefaultAssignments() []models.Assignment {
	standardDefault := 3
	return []models.Assignment{
		{UserID: 2, Category: models.CategoryBasic, TemplateIDs: datatypes.JSONSlice[int]{1, 2}, SelectedTemplateID: 1},
		{UserID: 3, Category: models.CategoryStandard, TemplateIDs: datatypes.JSONSlice[int]{1, 2, 3, 4}, SelectedTemplateID: 3, DefaultTemplateID: &standardDefault},
		{UserID: 4, Category: models.CategoryPremium, TemplateIDs: datatypes.JSONSlice[int]{5}, SelectedTemplateID: 5},
	}
}
