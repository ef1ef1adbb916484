package configssession

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

var store *session.Store

// SetupSession cookie tabanlı session store'u döndürür (ilk çağrıda oluşturur).
func SetupSession() *session.Store {
	if store != nil {
		return store
	}
	store = session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:uzmanrandevu_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	return store
}
