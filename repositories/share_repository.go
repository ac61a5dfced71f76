package repositories

import (
	"context"
	"errors"
	"time"

	"vcard.link/configs/configsdatabase"
	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ShareSortColumns listeleme için izin verilen sıralama sütunları.
var ShareSortColumns = []string{"created_at", "updated_at", "view_count", "expires_at", "last_viewed_at", "template_id"}

// IShareStore sunucu tarafı paylaşım kayıtlarının deposu.
type IShareStore interface {
	Create(ctx context.Context, record *models.ShareRecord) error
	FindByShareID(ctx context.Context, shareID string) (*models.ShareRecord, error) // pasif kayıtlar dahil
	ShareIDExists(ctx context.Context, shareID string) (bool, error)
	Update(ctx context.Context, shareID string, data map[string]interface{}) error
	IncrementViewCount(ctx context.Context, shareID string, viewedAt time.Time) error
	ListActiveByCreator(ctx context.Context, creatorID uint, params queryparams.ListParams) ([]models.ShareRecord, int64, error)
}

// ShareRepository IShareStore'un gorm uygulaması.
type ShareRepository struct {
	db *gorm.DB
}

func NewShareRepository() IShareStore {
	return &ShareRepository{db: configsdatabase.GetDB()}
}

func NewShareRepositoryTx(tx *gorm.DB) IShareStore {
	return &ShareRepository{db: tx}
}

func (r *ShareRepository) getDB(ctx context.Context) *gorm.DB {
	return getTxDB(ctx, r.db)
}

func (r *ShareRepository) Create(ctx context.Context, record *models.ShareRecord) error {
	if record == nil {
		return errors.New("oluşturulacak paylaşım nil olamaz")
	}
	return r.getDB(ctx).Create(record).Error
}

func (r *ShareRepository) FindByShareID(ctx context.Context, shareID string) (*models.ShareRecord, error) {
	if shareID == "" {
		return nil, errors.New("aranacak paylaşım kimliği boş olamaz")
	}
	var rec models.ShareRecord
	err := r.getDB(ctx).Where("share_id = ?", shareID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ShareRepository.FindByShareID: DB hatası", zap.String("share_id", shareID), zap.Error(err))
		return nil, err
	}
	return &rec, nil
}

func (r *ShareRepository) ShareIDExists(ctx context.Context, shareID string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.ShareRecord{}).Where("share_id = ?", shareID).Count(&count).Error
	if err != nil {
		configslog.Log.Error("ShareRepository.ShareIDExists: DB hatası", zap.String("share_id", shareID), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// Update sütun adı -> değer eşlemesiyle günceller. nil değer NULL yazar.
func (r *ShareRepository) Update(ctx context.Context, shareID string, data map[string]interface{}) error {
	if len(data) == 0 {
		return errors.New("güncellenecek veri boş olamaz")
	}
	db := r.getDB(ctx)
	result := db.Model(&models.ShareRecord{}).Where("share_id = ?", shareID).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := db.Model(&models.ShareRecord{}).Where("share_id = ?", shareID).Count(&exists).Error; err == nil && exists == 0 {
			return ErrNotFound
		}
		configslog.Log.Debug("ShareRepository.Update: satır etkilenmedi", zap.String("share_id", shareID))
	}
	return nil
}

// IncrementViewCount sayacı veritabanında atomik olarak artırır.
func (r *ShareRepository) IncrementViewCount(ctx context.Context, shareID string, viewedAt time.Time) error {
	result := r.getDB(ctx).Model(&models.ShareRecord{}).
		Where("share_id = ?", shareID).
		UpdateColumns(map[string]interface{}{
			"view_count":     gorm.Expr("view_count + ?", 1),
			"last_viewed_at": viewedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ShareRepository) ListActiveByCreator(ctx context.Context, creatorID uint, params queryparams.ListParams) ([]models.ShareRecord, int64, error) {
	params.Validate("created_at", ShareSortColumns...)

	query := r.getDB(ctx).Model(&models.ShareRecord{}).Where("created_by = ? AND is_active = ?", creatorID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		configslog.Log.Error("ShareRepository.ListActiveByCreator: sayım hatası", zap.Uint("creator_id", creatorID), zap.Error(err))
		return nil, 0, err
	}

	var records []models.ShareRecord
	err := query.
		Order(params.SortBy + " " + params.SortOrder).
		Order("id " + params.SortOrder).
		Offset(params.CalculateOffset()).
		Limit(params.PerPage).
		Find(&records).Error
	if err != nil {
		configslog.Log.Error("ShareRepository.ListActiveByCreator: listeleme hatası", zap.Uint("creator_id", creatorID), zap.Error(err))
		return nil, 0, err
	}
	return records, total, nil
}

var _ IShareStore = (*ShareRepository)(nil)
