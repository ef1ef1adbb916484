package routes

import (
	site_handlers "uzmanrandevu.link/handlers/site"
	"uzmanrandevu.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerSiteRoutes public vitrin ve danışan rezervasyon rotalarını tanımlar.
// Vitrin giriş gerektirmez; rezervasyon giriş yapmış danışan ister.
func registerSiteRoutes(app *fiber.App) {
	homeHandler := site_handlers.NewHomeHandler()
	bookingHandler := site_handlers.NewBookingHandler()

	// --- Public Vitrin ---
	app.Get("/", homeHandler.Home)                            // GET / (?q=&category=)
	app.Get("/specialists/:id", homeHandler.SpecialistDetail) // GET /specialists/{id}

	// --- Danışan Rezervasyonları ---
	bookingGroup := app.Group("/bookings")
	bookingGroup.Use(
		middlewares.AuthMiddleware,   // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware, // 2. Hesap aktif mi?
		middlewares.RequireClient(),  // 3. Danışan mı?
	)
	bookingGroup.Get("/", bookingHandler.MyBookings)         // GET /bookings
	bookingGroup.Post("/slots/:id", bookingHandler.BookSlot) // POST /bookings/slots/{id}
}
