package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış (structured) global logger.
// SLog printf tarzı kullanım için sugared versiyonu.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger global logger'ları APP_ENV'e göre başlatır.
// production dışındaki ortamlarda development config (renkli, debug seviyesi) kullanılır.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logger kurulamazsa uygulamanın devam etmesinin anlamı yok.
		panic("logger başlatılamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger buffer'lanmış log kayıtlarını flush eder (defer ile çağrılır).
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
