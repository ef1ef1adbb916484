package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"

	"uzmanrandevu.link/configs/configssession"
	"uzmanrandevu.link/utils"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App) {
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama
	app.Use(initializeSessionAndLocals())

	registerAuthRoutes(app)      // /auth rotaları
	registerDashboardRoutes(app) // /dashboard rotaları
	registerPanelRoutes(app)     // /panel rotaları
	registerSiteRoutes(app)      // public vitrin ve rezervasyon rotaları

	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

// initializeSessionAndLocals session store'u ve kimlik bilgilerini her
// istekte Locals'a koyar.
func initializeSessionAndLocals() fiber.Handler {
	sessionStore := configssession.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals("session_store", sessionStore)
		sess, err := utils.SessionStart(c)
		if err != nil {
			return c.Next()
		}
		userID, idErr := utils.GetUserIDFromSession(sess)
		isSystem, sysErr := utils.GetIsSystemFromSession(sess)
		isSpecialist, specErr := utils.GetIsSpecialistFromSession(sess)
		userName, nameOk := sess.Get("user_name").(string)
		if idErr == nil {
			c.Locals("userID", userID)
		}
		if sysErr == nil {
			c.Locals("isSystem", isSystem)
		}
		if specErr == nil {
			c.Locals("isSpecialist", isSpecialist)
		}
		if nameOk {
			c.Locals("userName", userName)
		}
		return c.Next()
	}
}

// notFoundHandler eşleşmeyen rotalar için 404 döndürür.
func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/error_layout")
	}
}
