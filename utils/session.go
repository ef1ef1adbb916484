package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"uzmanrandevu.link/models"
)

var ErrSessionStoreMissing = errors.New("session store bulunamadı")

// SessionStart request'e bağlı session'ı döndürür.
// Store, router middleware'i tarafından Locals'a konulmuş olmalıdır.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}

// SetUserSession giriş sonrası kimlik bilgilerini session'a yazar.
func SetUserSession(sess *session.Session, user *models.User) error {
	sess.Set("user_id", user.ID)
	sess.Set("user_name", user.Name)
	sess.Set("is_system", user.IsSystem)
	sess.Set("is_specialist", user.IsSpecialist)
	return sess.Save()
}

// GetUserIDFromSession session'daki kullanıcı ID'sini döndürür.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	userID, ok := sess.Get("user_id").(uint)
	if !ok || userID == 0 {
		return 0, errors.New("session'da kullanıcı ID yok")
	}
	return userID, nil
}

// GetIsSystemFromSession yönetici bayrağını döndürür.
func GetIsSystemFromSession(sess *session.Session) (bool, error) {
	isSystem, ok := sess.Get("is_system").(bool)
	if !ok {
		return false, errors.New("session'da is_system yok")
	}
	return isSystem, nil
}

// GetIsSpecialistFromSession uzman bayrağını döndürür.
func GetIsSpecialistFromSession(sess *session.Session) (bool, error) {
	isSpecialist, ok := sess.Get("is_specialist").(bool)
	if !ok {
		return false, errors.New("session'da is_specialist yok")
	}
	return isSpecialist, nil
}

// DestroySession oturumu tamamen temizler (logout).
func DestroySession(sess *session.Session) error {
	return sess.Destroy()
}
