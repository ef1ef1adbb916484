package routes

import (
	panel_handlers "uzmanrandevu.link/handlers/panel"
	"uzmanrandevu.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları ve middleware'leri tanımlar.
// Sadece uzman hesaplarının erişimine izin verilir.
func registerPanelRoutes(app *fiber.App) {
	panelHomeHandler := panel_handlers.NewPanelHomeHandler()
	slotHandler := panel_handlers.NewPanelSlotHandler()
	profileHandler := panel_handlers.NewPanelProfileHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(
		middlewares.AuthMiddleware,      // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware,    // 2. Hesap aktif mi?
		middlewares.RequireSpecialist(), // 3. Uzman mı?
	)

	// --- Panel Ana Sayfa ---
	panelGroup.Get("/home", panelHomeHandler.PanelHomeHandler) // GET /panel/home

	// --- Uzmanın Kendi Slotları ---
	panelGroup.Get("/slots", slotHandler.ListSlots)                  // GET /panel/slots
	panelGroup.Get("/slots/create", slotHandler.ShowCreateSlot)      // GET /panel/slots/create
	panelGroup.Post("/slots/create", slotHandler.CreateSlot)         // POST /panel/slots/create
	panelGroup.Post("/slots/delete/:id", slotHandler.DeleteSlot)     // POST /panel/slots/delete/{id} (Formdan silme)
	panelGroup.Delete("/slots/delete/:id", slotHandler.DeleteSlot)   // DELETE /panel/slots/delete/{id} (JS/API için)
	panelGroup.Post("/slots/release/:id", slotHandler.ReleaseSlot)   // POST /panel/slots/release/{id}
	panelGroup.Delete("/slots/release/:id", slotHandler.ReleaseSlot) // DELETE /panel/slots/release/{id}

	// --- Public Profil ---
	panelGroup.Get("/profile", profileHandler.ShowUpdateProfile) // GET /panel/profile
	panelGroup.Post("/profile", profileHandler.UpdateProfile)    // POST /panel/profile

	// Hesap (şifre) için /auth/profile rotası kullanılır. Panel menüsünden link verilir.
}
