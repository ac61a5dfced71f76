package repositories

import (
	"context"
	"errors"

	"vcard.link/configs/configsdatabase"
	"vcard.link/configs/configslog"
	"vcard.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IAssignmentStore kullanıcı şablon atamalarının kalıcı deposu. Kaydetme son yazan kazanır.
type IAssignmentStore interface {
	FindByUserID(ctx context.Context, userID uint) (*models.Assignment, error)
	Save(ctx context.Context, assignment *models.Assignment) error
	Reset(ctx context.Context) error
}

// AssignmentRepository IAssignmentStore'un gorm uygulaması.
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository() IAssignmentStore {
	return &AssignmentRepository{db: configsdatabase.GetDB()}
}

func NewAssignmentRepositoryTx(tx *gorm.DB) IAssignmentStore {
	return &AssignmentRepository{db: tx}
}

func (r *AssignmentRepository) getDB(ctx context.Context) *gorm.DB {
	return getTxDB(ctx, r.db)
}

func (r *AssignmentRepository) FindByUserID(ctx context.Context, userID uint) (*models.Assignment, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	var a models.Assignment
	err := r.getDB(ctx).Where("user_id = ?", userID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("AssignmentRepository.FindByUserID: DB hatası", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &a, nil
}

// Save mevcut kaydı günceller; yeni kayıtta user_id üzerinden upsert yapar.
func (r *AssignmentRepository) Save(ctx context.Context, a *models.Assignment) error {
	if a == nil || a.UserID == 0 {
		return errors.New("kaydedilecek atama geçerli değil")
	}
	if a.ID != 0 {
		return r.getDB(ctx).Save(a).Error
	}
	return r.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"category", "template_ids", "selected_template_id", "default_template_id", "updated_at"}),
	}).Create(a).Error
}

// Reset tüm atamaları silip varsayılanları yazar.
func (r *AssignmentRepository) Reset(ctx context.Context) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Assignment{}).Error; err != nil {
			configslog.Log.Error("AssignmentRepository.Reset: silme başarısız", zap.Error(err))
			return err
		}
		defaults := DefaultAssignments()
		return tx.Create(&defaults).Error
	})
}

var _ IAssignmentStore = (*AssignmentRepository)(nil)
