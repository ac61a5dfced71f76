package main

import (
	"context"
	"fmt"
	"strings"

	"vcard.link/configs/configsdatabase"
	"vcard.link/configs/configsenv"
	"vcard.link/configs/configslog"
	"vcard.link/configs/configsredis"
	"vcard.link/pkg/authtoken"
	"vcard.link/pkg/cardcatalog"
	"vcard.link/pkg/keyvalue"
	"vcard.link/pkg/metrics"
	"vcard.link/repositories"
	"vcard.link/routes"
	"vcard.link/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

// buildDependencies yapılandırmada seçilen depoları açar ve servisleri kurar. Dönen
// kapatıcı açılan tüm bağlantıları kapatır.
func buildDependencies(ctx context.Context, cfg *configsenv.Config) (routes.Dependencies, func() error, error) {
	var closers []func() error
	closeAll := func() error {
		var errs error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = multierr.Append(errs, closers[i]())
		}
		return errs
	}

	catalog, err := cardcatalog.New()
	if err != nil {
		return routes.Dependencies{}, closeAll, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewShareMetrics(reg)

	useDB := needsDatabase(cfg.Storage)
	if useDB {
		configsdatabase.InitDB(cfg.Database)
		closers = append(closers, func() error {
			configsdatabase.CloseDB()
			return nil
		})
	}

	var kv keyvalue.Store
	if needsKeyValue(cfg.Storage) {
		store, closeKV, err := openKeyValue(ctx, cfg)
		if err != nil {
			return routes.Dependencies{}, closeAll, err
		}
		kv = store
		if closeKV != nil {
			closers = append(closers, closeKV)
		}
	}

	var assignmentStore repositories.IAssignmentStore
	if strings.EqualFold(cfg.Storage.AssignmentStore, configsenv.StoreKeyValue) {
		assignmentStore = repositories.NewKVAssignmentStore(kv)
	} else {
		assignmentStore = repositories.NewAssignmentRepository()
	}

	linkOrigin := cfg.Card.ShareLinkOrigin
	if linkOrigin == "" {
		linkOrigin = cfg.App.BaseURL
	}
	linkOrigin = strings.TrimRight(linkOrigin, "/")

	var shares services.IShareService
	if strings.EqualFold(cfg.Storage.ShareBackend, configsenv.ShareLocal) {
		shares = services.NewLocalShareService(kv, linkOrigin, cfg.Card.ShareDefaultTTL, m)
	} else {
		shares = services.NewShareService(repositories.NewShareRepository(), linkOrigin, cfg.Card.ShareDefaultTTL, m)
	}

	// Rehber sadece veritabanında tutulur; veritabanı yoksa kart verisi çağırandan gelir.
	var directory services.DirectoryLookup
	var social services.SocialLookup
	if useDB {
		directory = repositories.NewMemberRepository()
		social = repositories.NewSocialProfileRepository()
	}

	if cfg.Auth.JWTSecret == "" {
		configslog.Log.Warn("VCARD_JWT_SECRET boş; oturum gerektiren tüm istekler reddedilecek")
	}
	configslog.SLog.Infof("Depolar: atama=%s, paylaşım=%s, anahtar-değer=%s",
		cfg.Storage.AssignmentStore, cfg.Storage.ShareBackend, cfg.Storage.KVBackend)

	deps := routes.Dependencies{
		Catalog:     catalog,
		Assignments: services.NewAssignmentService(assignmentStore, catalog, cfg.Auth.AdminUserID, m),
		CardData:    services.NewCardDataService(directory, social, cfg.Card.AssetBaseURL),
		Shares:      shares,
		QRCode:      services.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel),
		Metrics:     m,
		Gatherer:    reg,
		Auth: authtoken.Config{
			Secret: cfg.Auth.JWTSecret,
			Issuer: cfg.Auth.JWTIssuer,
			TTL:    cfg.Auth.TokenTTL,
		},
		AdminUserID: cfg.Auth.AdminUserID,
		LinkOrigin:  linkOrigin,
		AccessLog:   true,
	}
	return deps, closeAll, nil
}

func needsDatabase(s configsenv.StorageConfig) bool {
	return !strings.EqualFold(s.AssignmentStore, configsenv.StoreKeyValue) ||
		!strings.EqualFold(s.ShareBackend, configsenv.ShareLocal)
}

func needsKeyValue(s configsenv.StorageConfig) bool {
	return strings.EqualFold(s.AssignmentStore, configsenv.StoreKeyValue) ||
		strings.EqualFold(s.ShareBackend, configsenv.ShareLocal)
}

func openKeyValue(ctx context.Context, cfg *configsenv.Config) (keyvalue.Store, func() error, error) {
	switch strings.ToLower(cfg.Storage.KVBackend) {
	case configsenv.KVMemory, "":
		configslog.Log.Warn("Bellek içi anahtar-değer deposu kullanılıyor; kayıtlar yeniden başlatmada kaybolur")
		return keyvalue.NewMemoryStore(), nil, nil
	case configsenv.KVFile:
		store, err := keyvalue.NewFileStore(cfg.Storage.KVFilePath)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case configsenv.KVRedis:
		client, err := configsredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return keyvalue.NewRedisStore(client, cfg.Storage.KVNamespace), client.Close, nil
	}
	return nil, nil, fmt.Errorf("desteklenmeyen anahtar-değer deposu: %s", cfg.Storage.KVBackend)
}
