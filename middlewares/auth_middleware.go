package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"uzmanrandevu.link/pkg/flashmessages"
	"uzmanrandevu.link/services"
	"uzmanrandevu.link/utils"
)

// AuthMiddleware giriş yapmamış istekleri login sayfasına yönlendirir.
func AuthMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	return c.Next()
}

// GuestMiddleware giriş yapmış kullanıcıyı rolüne uygun ana sayfaya gönderir
// (login/register sayfaları yalnız misafirler içindir).
func GuestMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Next()
	}
	if isSystem, _ := c.Locals("isSystem").(bool); isSystem {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	if isSpecialist, _ := c.Locals("isSpecialist").(bool); isSpecialist {
		return c.Redirect("/panel/home", fiber.StatusFound)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// StatusMiddleware hesabı pasifleştirilen kullanıcının oturumunu sonlandırır.
func StatusMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}

	userService := services.NewUserService()
	user, err := userService.GetUserByID(c.UserContext(), userID)
	if err != nil || !user.IsActive {
		if sess, sessErr := utils.SessionStart(c); sessErr == nil {
			_ = utils.DestroySession(sess)
		}
		if err == nil {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Hesabınız pasif durumda.")
		}
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	return c.Next()
}

// RequireSystem yalnız sistem yöneticilerini (IsSystem) geçirir.
func RequireSystem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isSystem, _ := c.Locals("isSystem").(bool); !isSystem {
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireSpecialist yalnız uzman hesaplarını geçirir (panel rotaları).
func RequireSpecialist() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isSpecialist, _ := c.Locals("isSpecialist").(bool); !isSpecialist {
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireClient yalnız danışan hesaplarını geçirir (rezervasyon rotaları).
// Rol ihlalinin asıl kontrolü BookingService'tedir; bu middleware uzmanı
// forma hiç sokmamak içindir.
func RequireClient() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isSpecialist, _ := c.Locals("isSpecialist").(bool)
		isSystem, _ := c.Locals("isSystem").(bool)
		if isSpecialist || isSystem {
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}
