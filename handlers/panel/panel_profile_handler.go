package handlers // handlers/panel paketi

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"
	"uzmanrandevu.link/pkg/flashmessages"
	"uzmanrandevu.link/pkg/renderer"
	"uzmanrandevu.link/services"
)

// PanelProfileHandler uzmanın public profilini düzenlemesi için handler.
type PanelProfileHandler struct {
	service services.IProfileService
}

// NewPanelProfileHandler yeni bir PanelProfileHandler örneği oluşturur.
func NewPanelProfileHandler() *PanelProfileHandler {
	return &PanelProfileHandler{
		service: services.NewProfileService(),
	}
}

// ShowUpdateProfile profil düzenleme formunu gösterir. Profil henüz yoksa
// burada oluşturulur (idempotent ensure).
func (h *PanelProfileHandler) ShowUpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	profile, err := h.service.EnsureProfile(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Error("Panel - ShowUpdateProfile Error", zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Profil bilgileri alınamadı.")
		return c.Redirect("/panel/home")
	}

	professions, err := h.service.ListProfessions(c.UserContext())
	if err != nil {
		configslog.Log.Error("Panel - Meslek listesi alınamadı", zap.Error(err))
		professions = []models.Profession{}
	}

	renderData := fiber.Map{
		"Title":       "Profilim",
		"Profile":     profile,
		"Professions": professions,
		"FormData":    flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	// View: panel/profile.html
	return renderer.Render(c, "panel/profile", "layouts/panel_layout", renderData, http.StatusOK)
}

// UpdateProfile profil alanlarını günceller.
func (h *PanelProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/panel/profile", fiber.StatusSeeOther)
	}

	if err := h.service.UpdateProfile(c.UserContext(), userID, input); err != nil {
		var svcErr services.ProfileServiceError
		errMsg := "Profil güncellenirken bir hata oluştu."
		if errors.As(err, &svcErr) {
			errMsg = err.Error()
		} else {
			configslog.Log.Error("Panel - UpdateProfile Error", zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect("/panel/profile", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Profiliniz güncellendi.")
	return c.Redirect("/panel/profile", fiber.StatusFound)
}
