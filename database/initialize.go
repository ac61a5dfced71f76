package database

import (
	"errors"

	"vcard.link/configs/configslog"
	"vcard.link/database/migrations"
	"vcard.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyon ve seed işlemlerini tek transaction içinde çalıştırır; hata
// olursa hiçbir değişiklik kalmaz.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")
	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			configslog.SLog.Info("Migrasyonlar çalıştırılıyor...")
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("Migrasyon başarısız oldu", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Migrasyonlar tamamlandı.")
		} else {
			configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
		}

		if seed {
			configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
			if err := CheckAndRunSeeders(tx); err != nil {
				configslog.Log.Error("Seeding başarısız oldu", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Seeder'lar tamamlandı.")
		} else {
			configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
		}
		return nil
	})
	if err != nil {
		configslog.SLog.Warn("Başlatma sırasında hata oluştuğu için işlem geri alındı.")
		return err
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"Assignment", migrations.MigrateAssignmentsTable},
		{"ShareRecord", migrations.MigrateShareRecordsTable},
		{"Member", migrations.MigrateMemberTables},
	}
	for _, step := range steps {
		configslog.SLog.Infof(" -> %s migrasyonları çalıştırılıyor...", step.name)
		if err := step.run(db); err != nil {
			return errors.Join(errors.New(step.name+" migrasyonu başarısız oldu"), err)
		}
	}
	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info(" -> Şablon ataması seeder çalıştırılıyor...")
	if err := seeders.SeedAssignments(db); err != nil {
		return err
	}
	configslog.SLog.Info(" -> Örnek üye seeder çalıştırılıyor...")
	if err := seeders.SeedDemoMembers(db); err != nil {
		return err
	}
	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
