package handlers // handlers/dashboard paketi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/pkg/flashmessages"
	"uzmanrandevu.link/pkg/renderer"
	"uzmanrandevu.link/services"
)

// DashboardHomeHandler yönetim paneli ana sayfası için handler.
type DashboardHomeHandler struct {
	userService services.IUserService
}

// NewDashboardHomeHandler yeni bir DashboardHomeHandler örneği oluşturur.
func NewDashboardHomeHandler() *DashboardHomeHandler {
	return &DashboardHomeHandler{
		userService: services.NewUserService(),
	}
}

// DashboardHomeHandler yönetim ana sayfasını özet sayılarla gösterir.
func (h *DashboardHomeHandler) DashboardHomeHandler(c *fiber.Ctx) error {
	userCount, err := h.userService.CountUsers(c.UserContext())
	if err != nil {
		configslog.Log.Error("Dashboard - Home kullanıcı sayısı alınamadı", zap.Error(err))
	}

	renderData := fiber.Map{
		"Title":     "Yönetim Paneli",
		"UserCount": userCount,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	// View: dashboard/home.html
	return renderer.Render(c, "dashboard/home", "layouts/dashboard_layout", renderData, http.StatusOK)
}
