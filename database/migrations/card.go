package migrations

import (
	"vcard.link/configs/configslog"
	"vcard.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateMemberTables kart verisinin okunduğu rehber ve sosyal profil tabloları.
func MigrateMemberTables(db *gorm.DB) error {
	configslog.SLog.Info("members ve social_profiles tabloları migrate ediliyor...")
	err := db.AutoMigrate(&models.Member{}, &models.SocialProfile{})
	if err != nil {
		configslog.Log.Error("members ve social_profiles tabloları migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("members ve social_profiles tabloları migrate işlemi tamamlandı.")
	return nil
}
