package configsdatabase

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"uzmanrandevu.link/configs/configslog"
)

var db *gorm.DB

// InitDB Postgres bağlantısını kurar ve bağlantı havuzunu ayarlar.
// DSN önce DATABASE_DSN'den, yoksa tekil DB_* değişkenlerinden oluşturulur.
func InitDB() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "uzmanrandevu"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true, // gorm.ErrDuplicatedKey gibi sürücü hatalarını çevir
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı kurulamadı", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		configslog.Log.Fatal("Veritabanı havuzu alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db = gormDB
	configslog.SLog.Info("Veritabanı bağlantısı kuruldu.")
}

// GetDB global GORM örneğini döndürür.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB çağrıldı ama InitDB henüz çalıştırılmadı")
	}
	return db
}

// CloseDB bağlantı havuzunu kapatır (defer ile çağrılır).
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Veritabanı kapatılırken havuz alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
