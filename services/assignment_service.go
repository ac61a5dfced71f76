package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/pkg/cardcatalog"
	"vcard.link/pkg/metrics"
	"vcard.link/repositories"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// AssignmentServiceError şablon ataması hataları
type AssignmentServiceError string

func (e AssignmentServiceError) Error() string { return string(e) }

const (
	ErrUnableToDetermineUser  AssignmentServiceError = "unable to determine user"
	ErrUnknownTemplate        AssignmentServiceError = "unknown template"
	ErrTemplateNotAllowed     AssignmentServiceError = "template is not available for this user"
	ErrAssignmentNotFound     AssignmentServiceError = "template assignment not found"
	ErrAssignmentInvalidInput AssignmentServiceError = "invalid template assignment"
	ErrAssignmentSaveFailed   AssignmentServiceError = "failed to save template assignment"
)

// TemplateCatalog çözümleyicinin katalogdan ihtiyaç duyduğu kısım.
type TemplateCatalog interface {
	IDs() []int
	IDsByCategory(category cardcatalog.Category) []int
	Has(id int) bool
}

// Resolution kullanıcının seçebileceği şablonlar ve etkin/varsayılan şablon.
type Resolution struct {
	AvailableTemplateIDs []int  `json:"availableTemplateIds"`
	InitialTemplateID    int    `json:"initialTemplateId"`
	DefaultTemplateID    int    `json:"defaultTemplateId"`
	Unrestricted         bool   `json:"unrestricted"`
	Category             string `json:"category,omitempty"`
}

// AssignmentInput yönetici atama isteği. TemplateIDs boşsa kategorinin tüm şablonları atanır.
type AssignmentInput struct {
	Category    string `json:"category" validate:"required,oneof=basic standard premium"`
	TemplateIDs []int  `json:"templateIds" validate:"omitempty,dive,min=1"`
}

// IAssignmentService şablon ataması çözümleme ve kaydetme işlemleri.
type IAssignmentService interface {
	Resolve(ctx context.Context, userID uint) (*Resolution, error)
	SaveSelection(ctx context.Context, userID uint, templateID int) (*models.Assignment, error)
	SetDefault(ctx context.Context, userID uint, templateID int) (*models.Assignment, error)
	AssignTemplates(ctx context.Context, userID uint, input AssignmentInput) (*models.Assignment, error)
	GetAssignment(ctx context.Context, userID uint) (*models.Assignment, error)
	ResetAssignments(ctx context.Context) error
}

type AssignmentService struct {
	store       repositories.IAssignmentStore
	catalog     TemplateCatalog
	adminUserID uint
	metrics     *metrics.ShareMetrics
}

func NewAssignmentService(store repositories.IAssignmentStore, catalog TemplateCatalog, adminUserID uint, m *metrics.ShareMetrics) IAssignmentService {
	return &AssignmentService{store: store, catalog: catalog, adminUserID: adminUserID, metrics: m}
}

// Resolve salt okunur. Kayıt yoksa veya yönetici ise kullanıcı kısıtsızdır; kayıtlı
// şablonların hiçbiri katalogda yoksa tüm katalog döner (kullanıcı özellikten kilitlenmez).
func (s *AssignmentService) Resolve(ctx context.Context, userID uint) (*Resolution, error) {
	all := s.catalog.IDs()
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: katalog boş", ErrUnknownTemplate)
	}

	var a *models.Assignment
	if userID != 0 {
		found, err := s.store.FindByUserID(ctx, userID)
		switch {
		case err == nil:
			a = found
		case errors.Is(err, repositories.ErrNotFound):
		default:
			configslog.Log.Warn("assignment fail-open: atama okunamadı", zap.Uint("user_id", userID), zap.Error(err))
			s.metrics.IncFailOpen()
		}
	}

	res := &Resolution{}
	if a == nil || userID == s.adminUserID {
		res.AvailableTemplateIDs = all
		res.Unrestricted = true
	} else {
		res.Category = a.Category
		res.AvailableTemplateIDs = s.filterKnown(a.TemplateIDs)
		if len(res.AvailableTemplateIDs) == 0 {
			configslog.Log.Warn("assignment fail-open: atanmış şablonların hiçbiri katalogda yok",
				zap.Uint("user_id", userID), zap.Ints("template_ids", a.TemplateIDs))
			s.metrics.IncFailOpen()
			res.AvailableTemplateIDs = all
			res.Unrestricted = true
		}
	}

	res.InitialTemplateID = res.AvailableTemplateIDs[0]
	if a != nil && slices.Contains(res.AvailableTemplateIDs, a.SelectedTemplateID) {
		res.InitialTemplateID = a.SelectedTemplateID
	}
	res.DefaultTemplateID = res.InitialTemplateID
	if a != nil && a.DefaultTemplateID != nil && slices.Contains(res.AvailableTemplateIDs, *a.DefaultTemplateID) {
		res.DefaultTemplateID = *a.DefaultTemplateID
	}
	if len(res.AvailableTemplateIDs) == 1 {
		res.DefaultTemplateID = res.AvailableTemplateIDs[0]
	}
	return res, nil
}

// filterKnown kayıtlı sırayı koruyarak katalogda olmayan ve tekrarlanan kimlikleri atar.
func (s *AssignmentService) filterKnown(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if s.catalog.Has(id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// SaveSelection aynı seçimi iki kez kaydetmek aynı kaydı üretir.
func (s *AssignmentService) SaveSelection(ctx context.Context, userID uint, templateID int) (*models.Assignment, error) {
	return s.upsertOwned(ctx, userID, templateID, func(a *models.Assignment) {
		a.SelectedTemplateID = templateID
	})
}

// SetDefault kullanıcının varsayılan şablonunu işaretler.
func (s *AssignmentService) SetDefault(ctx context.Context, userID uint, templateID int) (*models.Assignment, error) {
	return s.upsertOwned(ctx, userID, templateID, func(a *models.Assignment) {
		id := templateID
		a.DefaultTemplateID = &id
	})
}

// upsertOwned kullanıcının kendi kaydını günceller. Kayıt yoksa şablon kümesi
// [templateID] olarak başlatılır.
func (s *AssignmentService) upsertOwned(ctx context.Context, userID uint, templateID int, mutate func(*models.Assignment)) (*models.Assignment, error) {
	if userID == 0 {
		return nil, ErrUnableToDetermineUser
	}
	if !s.catalog.Has(templateID) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTemplate, templateID)
	}
	res, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(res.AvailableTemplateIDs, templateID) {
		return nil, fmt.Errorf("%w: %d", ErrTemplateNotAllowed, templateID)
	}

	a, err := s.store.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		a = &models.Assignment{
			UserID:             userID,
			Category:           s.categoryOf(templateID),
			TemplateIDs:        datatypes.JSONSlice[int]{templateID},
			SelectedTemplateID: templateID,
		}
	case err != nil:
		configslog.Log.Error("Atama okunamadı", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrAssignmentSaveFailed
	case !a.HasTemplate(templateID):
		// kısıtsız (fail-open) çözümde seçilen şablon kümeye eklenir
		a.TemplateIDs = append(a.TemplateIDs, templateID)
	}
	if !a.HasTemplate(a.SelectedTemplateID) {
		a.SelectedTemplateID = templateID
	}
	mutate(a)

	if err := s.store.Save(ctx, a); err != nil {
		configslog.Log.Error("Atama kaydedilemedi", zap.Uint("user_id", userID), zap.Int("template_id", templateID), zap.Error(err))
		return nil, ErrAssignmentSaveFailed
	}
	return a, nil
}

func (s *AssignmentService) categoryOf(templateID int) string {
	for _, c := range []cardcatalog.Category{cardcatalog.CategoryBasic, cardcatalog.CategoryStandard, cardcatalog.CategoryPremium} {
		if slices.Contains(s.catalog.IDsByCategory(c), templateID) {
			return string(c)
		}
	}
	return models.CategoryBasic
}

// AssignTemplates yöneticinin kategori ve şablon kümesini belirlemesi.
func (s *AssignmentService) AssignTemplates(ctx context.Context, userID uint, input AssignmentInput) (*models.Assignment, error) {
	if userID == 0 {
		return nil, ErrUnableToDetermineUser
	}
	category := cardcatalog.Category(input.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: kategori %q", ErrAssignmentInvalidInput, input.Category)
	}

	ids := input.TemplateIDs
	if len(ids) == 0 {
		ids = s.catalog.IDsByCategory(category)
	}
	var set []int
	for _, id := range ids {
		if !s.catalog.Has(id) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownTemplate, id)
		}
		if !slices.Contains(set, id) {
			set = append(set, id)
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: şablon kümesi boş", ErrAssignmentInvalidInput)
	}

	a, err := s.store.FindByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		a = &models.Assignment{UserID: userID}
	} else if err != nil {
		configslog.Log.Error("Atama okunamadı", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrAssignmentSaveFailed
	}

	a.Category = string(category)
	a.TemplateIDs = datatypes.JSONSlice[int](set)
	if !slices.Contains(set, a.SelectedTemplateID) {
		a.SelectedTemplateID = set[0]
	}
	if a.DefaultTemplateID != nil && !slices.Contains(set, *a.DefaultTemplateID) {
		a.DefaultTemplateID = nil
	}

	if err := s.store.Save(ctx, a); err != nil {
		configslog.Log.Error("Atama kaydedilemedi", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrAssignmentSaveFailed
	}
	configslog.SLog.Infof("Şablon ataması güncellendi: kullanıcı %d, kategori %s, şablonlar %v", userID, a.Category, set)
	return a, nil
}

func (s *AssignmentService) GetAssignment(ctx context.Context, userID uint) (*models.Assignment, error) {
	if userID == 0 {
		return nil, ErrUnableToDetermineUser
	}
	a, err := s.store.FindByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("atama okunamadı: %w", err)
	}
	return a, nil
}

// ResetAssignments tüm atamaları siler ve örnek atamaları geri yükler.
func (s *AssignmentService) ResetAssignments(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		configslog.Log.Error("Atamalar sıfırlanamadı", zap.Error(err))
		return ErrAssignmentSaveFailed
	}
	configslog.SLog.Info("Şablon atamaları varsayılanlara döndürüldü")
	return nil
}

var _ IAssignmentService = (*AssignmentService)(nil)
