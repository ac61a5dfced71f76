package configsenv

import (
	"fmt"
	"os"
	"strings"
	"time"

	"vcard.link/configs/configslog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// EnvPrefix tüm ortam değişkenlerinin ön ekidir (örn. VCARD_APP_PORT).
const EnvPrefix = "VCARD"

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"

	StoreDatabase = "database"
	StoreKeyValue = "keyvalue"
	ShareLocal    = "local"

	KVMemory = "memory"
	KVFile   = "file"
	KVRedis  = "redis"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Card     CardConfig
	QRCode   QRCodeConfig
}

type AppConfig struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	Port     string `envconfig:"APP_PORT" default:"3000"`
	BaseURL  string `envconfig:"APP_BASE_URL" default:"http://localhost:3000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, AppEnvProduction)
}

type DatabaseConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DSN      string `envconfig:"DB_DSN"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"vcard"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
}

// ConnectionString sürücüye uygun DSN'i döndürür. DSN verilmişse aynen kullanılır.
func (d DatabaseConfig) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}
	if strings.EqualFold(d.Driver, "sqlite") {
		return "vcard.db"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode, d.TimeZone)
}

type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	Address      string        `envconfig:"REDIS_ADDRESS"`
	Password     string        `envconfig:"REDIS_PASSWORD"`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// StorageConfig atama ve paylaşım kayıtlarının hangi depoda tutulacağını seçer.
type StorageConfig struct {
	AssignmentStore string `envconfig:"ASSIGNMENT_STORE" default:"database"` // database | keyvalue
	ShareBackend    string `envconfig:"SHARE_BACKEND" default:"database"`    // database | local
	KVBackend       string `envconfig:"KV_BACKEND" default:"memory"`         // memory | file | redis
	KVFilePath      string `envconfig:"KV_FILE_PATH" default:"data/vcard-store.json"`
	KVNamespace     string `envconfig:"KV_NAMESPACE" default:"vcard"`
}

type AuthConfig struct {
	JWTSecret   string `envconfig:"JWT_SECRET"`
	JWTIssuer   string `envconfig:"JWT_ISSUER" default:"vcard.link"`
	AdminUserID uint   `envconfig:"ADMIN_USER_ID" default:"1"`

	TokenTTL time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

type CardConfig struct {
	AssetBaseURL    string        `envconfig:"ASSET_BASE_URL"`
	ShareDefaultTTL time.Duration `envconfig:"SHARE_DEFAULT_TTL" default:"720h"`
	ShareLinkOrigin string        `envconfig:"SHARE_LINK_ORIGIN"`
}

type QRCodeConfig struct {
	Size                 int    `envconfig:"QRCODE_SIZE" default:"256"`
	ErrorCorrectionLevel string `envconfig:"QRCODE_LEVEL" default:"M"`
}

// Load .env dosyasını (varsa) okur ve ortam değişkenlerini Config'e işler.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, statErr := os.Stat(f); statErr != nil {
			continue // .env opsiyonel
		}
		if err := godotenv.Load(f); err != nil {
			configslog.Log.Warn(".env dosyası okunamadı", zap.String("file", f), zap.Error(err))
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("ortam değişkenleri işlenemedi: %w", err)
	}
	if cfg.Card.ShareLinkOrigin == "" {
		cfg.Card.ShareLinkOrigin = cfg.App.BaseURL
	}
	cfg.App.BaseURL = strings.TrimRight(cfg.App.BaseURL, "/")
	cfg.Card.ShareLinkOrigin = strings.TrimRight(cfg.Card.ShareLinkOrigin, "/")

	if cfg.App.IsProduction() && cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("%s_JWT_SECRET production ortamında zorunludur", EnvPrefix)
	}
	return &cfg, nil
}
