package models

import "strings"

// SpecialistProfile uzmanın public profil kaydıdır (kullanıcı başına bir adet).
// Price dolu olmayan profiller public listede gösterilmez.
type SpecialistProfile struct {
	BaseModel
	UserID       uint     `gorm:"uniqueIndex;not null"` // users.id FK
	ProfessionID *uint    `gorm:"index"`
	Description  string   `gorm:"type:text"`
	Price        *float64 `gorm:"type:numeric(10,2)"` // Görüşme ücreti
	Phone        string   `gorm:"type:varchar(20)"`
	PhotoURL     string   `gorm:"type:varchar(500)"`

	// GORM İlişkileri
	User       User        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Profession *Profession `gorm:"foreignKey:ProfessionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

// CleanPhone telefonu yalnız rakamlarla döndürür (WhatsApp linki için).
func (p *SpecialistProfile) CleanPhone() string {
	replacer := strings.NewReplacer("(", "", ")", "", "-", "", " ", "", "+", "")
	return replacer.Replace(p.Phone)
}
