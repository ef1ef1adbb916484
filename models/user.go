package models

import "time"

// User hem uzmanları hem danışanları temsil eder; rol IsSpecialist ile ayrılır.
// IsSystem yönetici (dashboard) erişimi içindir.
type User struct {
	BaseModel
	Name          string `gorm:"type:varchar(100);not null"`
	Email         string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password      string `gorm:"type:varchar(255);not null"` // bcrypt hash
	IsSystem      bool   `gorm:"default:false;index"`
	IsSpecialist  bool   `gorm:"default:false;index"`
	IsActive      bool   `gorm:"default:true;index"`
	HasActivePlan bool   `gorm:"default:false"` // Rezervasyon entitlement bayrağı (abonelik/tek seferlik ödeme)

	// Şifre sıfırlama
	ResetToken          *string    `gorm:"type:varchar(36);index"`
	ResetTokenExpiresAt *time.Time `gorm:"type:timestamptz"`
}
