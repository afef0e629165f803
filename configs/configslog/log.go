package configslog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış logger, SLog ise printf tarzı kullanım için sugared logger'dır.
// InitLogger çağrılana kadar hiçbir şey yazmayan (nop) logger'lar kullanılır.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger APP_ENV ve LOG_LEVEL ortam değişkenlerine göre global logger'ı kurar.
// development ortamında renkli konsol çıktısı, diğer ortamlarda JSON kullanılır.
func InitLogger() {
	env := strings.ToLower(os.Getenv("APP_ENV"))

	var cfg zap.Config
	if env == "" || env == "development" || env == "local" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level, err := zapcore.ParseLevel(lvl)
		if err == nil {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		// Logger kurulamazsa nop logger ile devam et
		return
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger tamponlanmış logları diske/çıktıya yazar.
func SyncLogger() {
	_ = Log.Sync()
}
