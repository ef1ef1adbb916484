package seeders

import (
	"errors"
	"os"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser sistem yöneticisi hesabını oluşturur veya e-posta/şifreyi
// env değerleriyle günceller. Hesap IsSystem işaretlidir ve silinemez.
func SeedSystemUser(db *gorm.DB) error {
	email := os.Getenv("SYSTEM_USER_EMAIL")
	if email == "" {
		email = "admin@uzmanrandevu.link"
	}
	password := os.Getenv("SYSTEM_USER_PASSWORD")
	if password == "" {
		password = "admin123"
		configslog.SLog.Warn("SYSTEM_USER_PASSWORD tanımlı değil, varsayılan şifre kullanılıyor. Üretimde mutlaka değiştirin.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı şifresi hashlenemedi", zap.Error(err))
		return err
	}

	var existing models.User
	result := db.Where("is_system = ?", true).First(&existing)
	if result.Error == nil {
		existing.Email = email
		existing.Password = string(hashedPassword)
		if err := db.Save(&existing).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı güncellenemedi", zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Sistem kullanıcısı güncellendi (ID: %d).", existing.ID)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	systemUser := models.User{
		Name:     "Sistem Yöneticisi",
		Email:    email,
		Password: string(hashedPassword),
		IsSystem: true,
		IsActive: true,
	}
	if err := db.Create(&systemUser).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu (ID: %d, E-posta: %s).", systemUser.ID, email)
	return nil
}
