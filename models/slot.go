package models

import "time"

// Slot bir uzmanın yayınladığı rezerve edilebilir zaman dilimidir.
// Bir uzman aynı (date, time) için ikinci bir slot yayınlayamaz; bu kural
// uygulama kontrolüne değil, bileşik unique index'e dayanır.
// IsBooked ve ClientID her zaman birlikte değişir: is_booked=true iken
// client_id dolu, false iken NULL olmalıdır (check constraint).
type Slot struct {
	BaseModel
	SpecialistID uint      `gorm:"not null;index;uniqueIndex:idx_slots_specialist_date_time"` // users.id FK, oluşturulduktan sonra değişmez
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:idx_slots_specialist_date_time"`
	Time         string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_slots_specialist_date_time"` // "HH:MM"
	IsBooked     bool      `gorm:"not null;default:false;index;check:chk_slots_booking,is_booked = (client_id IS NOT NULL)"`
	ClientID     *uint     `gorm:"index"` // Rezerve eden danışan; açıkken NULL

	// GORM İlişkileri
	Specialist User  `gorm:"foreignKey:SpecialistID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Client     *User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

// DateString tarihi form/görünüm formatında döndürür.
func (s *Slot) DateString() string {
	return s.Date.Format("2006-01-02")
}
