package migrations

import (
	"errors"

	"vcard.link/configs/configslog"
	"vcard.link/models"

	"gorm.io/gorm"
)

func MigrateAssignmentsTable(db *gorm.DB) error {
	configslog.SLog.Info("Assignment tablosu migrate ediliyor...")

	if err := db.AutoMigrate(&models.Assignment{}); err != nil {
		errMsg := "Assignment tablosu migrate edilemedi: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}

	configslog.SLog.Info("Assignment tablosu migrate işlemi tamamlandı.")
	return nil
}
