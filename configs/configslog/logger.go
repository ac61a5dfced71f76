package configslog

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış (structured) logger, SLog ise printf tarzı kullanım içindir.
// InitLogger çağrılana kadar ikisi de no-op logger'dır.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger global logger'ları ortam ve seviyeye göre kurar.
func InitLogger(level, env string) {
	var cfg zap.Config
	if strings.EqualFold(env, "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		// Logger kurulamazsa uygulama yine de çalışabilmeli
		logger = zap.NewExample()
		logger.Warn("Logger yapılandırılamadı, örnek logger kullanılıyor", zap.Error(err))
	}
	Log = logger
	SLog = logger.Sugar()
}

// InitBootstrapLogger konfigürasyon okunmadan önceki hatalar için stderr'e yazan
// logger'ı kurar. Konfigürasyon okunduktan sonra InitLogger ile değiştirilir.
func InitBootstrapLogger() {
	InitLogger("info", "production")
}

// SyncLogger buffer'daki logları boşaltır. main içinde defer ile çağrılır.
func SyncLogger() {
	_ = Log.Sync()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
