package migrations

import (
	"vcard.link/configs/configslog"
	"vcard.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateShareRecordsTable sunucu tabanlı paylaşım kayıtları.
func MigrateShareRecordsTable(db *gorm.DB) error {
	configslog.SLog.Info("share_records tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.ShareRecord{}); err != nil {
		configslog.Log.Error("share_records tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("share_records tablosu migrate işlemi tamamlandı.")
	return nil
}
