package seeders

import (
	"errors"
	"fmt"

	"vcard.link/configs/configslog"
	"vcard.link/repositories"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedAssignments örnek şablon atamalarını ekler; kaydı olan kullanıcıya dokunmaz.
func SeedAssignments(db *gorm.DB) error {
	var createdCount int64
	var errs error

	configslog.SLog.Info("Şablon atamaları seed işlemi başlıyor...")

	for _, a := range repositories.DefaultAssignments() {
		var count int64
		if err := db.Model(&a).Where("user_id = ?", a.UserID).Count(&count).Error; err != nil {
			configslog.Log.Error("Atama kontrol edilirken veritabanı hatası", zap.Uint("user_id", a.UserID), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("kullanıcı %d: %w", a.UserID, err))
			continue
		}
		if count > 0 {
			configslog.SLog.Debugf("Kullanıcı %d için atama zaten mevcut, atlanıyor.", a.UserID)
			continue
		}
		if err := db.Create(&a).Error; err != nil {
			configslog.Log.Error("Atama oluşturulamadı", zap.Uint("user_id", a.UserID), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("kullanıcı %d: %w", a.UserID, err))
			continue
		}
		configslog.SLog.Infof("Kullanıcı %d için '%s' ataması oluşturuldu (ID: %d).", a.UserID, a.Category, a.ID)
		createdCount++
	}

	if errs != nil {
		return errors.Join(errors.New("şablon atamaları seed edilirken hata oluştu"), errs)
	}
	if createdCount > 0 {
		configslog.SLog.Infof("%d adet yeni şablon ataması seed edildi.", createdCount)
	} else {
		configslog.SLog.Info("Tüm örnek atamalar zaten mevcut, yeni ekleme yapılmadı.")
	}
	return nil
}
