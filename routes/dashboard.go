package routes

import (
	dashboard_handlers "uzmanrandevu.link/handlers/dashboard"
	"uzmanrandevu.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki rotaları ve middleware'leri
// tanımlar. Sadece sistem yöneticilerinin erişimine izin verilir.
func registerDashboardRoutes(app *fiber.App) {
	dashboardHomeHandler := dashboard_handlers.NewDashboardHomeHandler()
	userHandler := dashboard_handlers.NewDashboardUserHandler()

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware,   // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware, // 2. Hesap aktif mi?
		middlewares.RequireSystem(),  // 3. Sistem yöneticisi mi?
	)

	// --- Dashboard Ana Sayfa ---
	dashboardGroup.Get("/home", dashboardHomeHandler.DashboardHomeHandler) // GET /dashboard/home

	// --- Kullanıcı Yönetimi ---
	dashboardGroup.Get("/users", userHandler.ListUsers)                   // GET /dashboard/users
	dashboardGroup.Post("/users/status/:id", userHandler.SetActiveStatus) // POST /dashboard/users/status/{id}
	dashboardGroup.Post("/users/plan/:id", userHandler.SetPlanStatus)     // POST /dashboard/users/plan/{id}
	dashboardGroup.Post("/users/delete/:id", userHandler.DeleteUser)      // POST /dashboard/users/delete/{id}
	dashboardGroup.Delete("/users/delete/:id", userHandler.DeleteUser)    // DELETE /dashboard/users/delete/{id}
}
