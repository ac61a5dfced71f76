package main

import (
	"flag"
	"os"

	"vcard.link/configs/configsdatabase"
	"vcard.link/configs/configsenv"
	"vcard.link/configs/configslog"
	"vcard.link/database"

	"go.uber.org/zap"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "Veritabanı başlatma işlemini çalıştır (migrasyonları içerir)")
	seedFlag := flag.Bool("seed", false, "Veritabanı başlatma işlemini çalıştır (seederları içerir)")
	envFile := flag.String("env", ".env", "Okunacak .env dosyası")
	flag.Parse()

	configslog.InitBootstrapLogger()
	cfg, err := configsenv.Load(*envFile)
	if err != nil {
		configslog.Log.Fatal("Konfigürasyon okunamadı", zap.Error(err))
	}
	configslog.InitLogger(cfg.App.LogLevel, cfg.App.Env)
	defer configslog.SyncLogger()

	configsdatabase.InitDB(cfg.Database)
	defer configsdatabase.CloseDB()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	if err := database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag); err != nil {
		configslog.Log.Error("Veritabanı başlatılamadı", zap.Error(err))
		configslog.SyncLogger()
		configsdatabase.CloseDB()
		os.Exit(1)
	}
	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
