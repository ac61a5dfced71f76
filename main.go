package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vcard.link/configs/configsenv"
	"vcard.link/configs/configslog"
	"vcard.link/routes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitBootstrapLogger()
	cfg, err := configsenv.Load()
	if err != nil {
		configslog.Log.Fatal("Konfigürasyon okunamadı", zap.Error(err))
	}
	configslog.InitLogger(cfg.App.LogLevel, cfg.App.Env)
	defer configslog.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, closer, err := buildDependencies(ctx, cfg)
	if err != nil {
		configslog.Log.Fatal("Uygulama bileşenleri kurulamadı", zap.Error(err))
	}
	defer func() {
		if err := closer(); err != nil {
			configslog.Log.Error("Kaynaklar kapatılırken hata", zap.Error(err))
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:               "vcard.link",
		Views:                 deps.Catalog.Engine(),
		DisableStartupMessage: cfg.App.IsProduction(),
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
	})
	routes.SetupRoutes(app, deps)

	go func() {
		<-ctx.Done()
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Sunucu %s portunda başlatılıyor (ortam: %s)", cfg.App.Port, cfg.App.Env)
	if err := app.Listen(":" + cfg.App.Port); err != nil && !errors.Is(err, context.Canceled) {
		configslog.Log.Error("Sunucu hatası", zap.Error(err))
	}
}
