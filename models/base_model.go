package models

import (
	"time"

	"gorm.io/gorm"
)

type contextKey string

// CtxUserIDKey audit hook'larının işlemi yapan kullanıcıyı context'ten
// okuyabilmesi için kullanılır (servisler context.WithValue ile ekler).
var CtxUserIDKey = contextKey("user_id")

// BaseModel tüm tablolara gömülen ortak alanlar.
type BaseModel struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedBy *uint
	UpdatedBy *uint
	DeletedBy *uint
}

// BeforeCreate context'teki kullanıcı ID'sini CreatedBy'a yazar.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID, ok := tx.Statement.Context.Value(CtxUserIDKey).(uint); ok && userID != 0 {
		m.CreatedBy = &userID
	}
	return nil
}

// BeforeUpdate context'teki kullanıcı ID'sini UpdatedBy'a yazar.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID, ok := tx.Statement.Context.Value(CtxUserIDKey).(uint); ok && userID != 0 {
		m.UpdatedBy = &userID
	}
	return nil
}
