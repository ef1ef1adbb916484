package configsapp

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"uzmanrandevu.link/configs/configslog"
)

// AppConfig uygulama genel ayarlarını tutar.
type AppConfig struct {
	Port              string
	SessionSecret     string
	RequireActivePlan bool // Rezervasyon için aktif plan şartı (deployment bazında açılıp kapanabilir)
}

var config *AppConfig

// LoadEnv .env dosyasını yükler (dosya yoksa sessizce env değişkenleri
// kullanılır). Logger kurulmadan önce çağrılır; SLog bu noktada nil olabilir.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && configslog.SLog != nil {
		configslog.SLog.Info(".env dosyası bulunamadı, mevcut ortam değişkenleri kullanılacak.")
	}
}

// GetConfig uygulama ayarlarını env'den okur (ilk çağrıda cache'lenir).
func GetConfig() *AppConfig {
	if config != nil {
		return config
	}

	requirePlan := true // Varsayılan: entitlement kontrolü açık
	if v := os.Getenv("REQUIRE_ACTIVE_PLAN"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			configslog.SLog.Warnf("REQUIRE_ACTIVE_PLAN değeri geçersiz (%s), varsayılan (true) kullanılıyor.", v)
		} else {
			requirePlan = parsed
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	config = &AppConfig{
		Port:              port,
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		RequireActivePlan: requirePlan,
	}
	return config
}
