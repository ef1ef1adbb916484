package handlers // handlers/dashboard paketi

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"
	"uzmanrandevu.link/pkg/flashmessages"
	"uzmanrandevu.link/pkg/queryparams"
	"uzmanrandevu.link/pkg/renderer"
	"uzmanrandevu.link/services"
)

// DashboardUserHandler kullanıcı yönetimi (aktiflik, plan, silme) için handler.
type DashboardUserHandler struct {
	service services.IUserService
}

// NewDashboardUserHandler yeni bir DashboardUserHandler örneği oluşturur.
func NewDashboardUserHandler() *DashboardUserHandler {
	return &DashboardUserHandler{
		service: services.NewUserService(),
	}
}

// ListUsers tüm kullanıcıları sayfalı listeler (?q= ile ad araması).
func (h *DashboardUserHandler) ListUsers(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	paginatedResult, err := h.service.GetUsersPaginated(c.UserContext(), params)

	renderData := fiber.Map{
		"Title":  "Kullanıcılar",
		"Result": paginatedResult,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kullanıcılar listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.User{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Dashboard - ListUsers Error", zap.Error(err))
	}
	// View: dashboard/users/list.html
	return renderer.Render(c, "dashboard/users/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// SetActiveStatus hesabı açar/pasifleştirir. Pasifleşen kullanıcının oturumu
// bir sonraki isteğinde StatusMiddleware tarafından sonlandırılır.
func (h *DashboardUserHandler) SetActiveStatus(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok || adminID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/users")
	}
	userID := uint(id)
	isActive := c.FormValue("is_active") == "true" || c.FormValue("is_active") == "on"

	if err := h.service.SetActiveStatus(c.UserContext(), userID, isActive, adminID); err != nil {
		errMsg := "Durum güncellenemedi: " + err.Error()
		if !errors.Is(err, services.ErrUserNotFound) {
			configslog.Log.Error("Dashboard - SetActiveStatus Error", zap.Uint("id", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kullanıcı durumu güncellendi.")
	}
	return c.Redirect("/dashboard/users", fiber.StatusSeeOther)
}

// SetPlanStatus entitlement bayrağını değiştirir. Ödeme entegrasyonu
// bağlanana kadar plan aktivasyonu buradan yönetilir.
func (h *DashboardUserHandler) SetPlanStatus(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok || adminID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/users")
	}
	userID := uint(id)
	hasActivePlan := c.FormValue("has_active_plan") == "true" || c.FormValue("has_active_plan") == "on"

	if err := h.service.SetPlanStatus(c.UserContext(), userID, hasActivePlan, adminID); err != nil {
		errMsg := "Plan durumu güncellenemedi: " + err.Error()
		if !errors.Is(err, services.ErrUserNotFound) {
			configslog.Log.Error("Dashboard - SetPlanStatus Error", zap.Uint("id", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Plan durumu güncellendi.")
	}
	return c.Redirect("/dashboard/users", fiber.StatusSeeOther)
}

// DeleteUser hesabı siler (soft delete). Sistem kullanıcısı silinemez.
func (h *DashboardUserHandler) DeleteUser(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok || adminID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/users")
	}
	userID := uint(id)

	if err := h.service.DeleteUser(c.UserContext(), userID, adminID); err != nil {
		errMsg := "Silme hatası: " + err.Error()
		if !errors.Is(err, services.ErrUserNotFound) && !errors.Is(err, services.ErrUserForbidden) {
			configslog.Log.Error("Dashboard - DeleteUser Error", zap.Uint("id", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kullanıcı silindi.")
	}
	return c.Redirect("/dashboard/users", fiber.StatusSeeOther)
}
