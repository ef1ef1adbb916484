package handlers // handlers/panel paketi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/pkg/flashmessages"
	"uzmanrandevu.link/pkg/renderer"
	"uzmanrandevu.link/services"
)

// PanelHomeHandler uzman paneli ana sayfası için handler.
type PanelHomeHandler struct {
	slotService    services.ISlotService
	profileService services.IProfileService
}

// NewPanelHomeHandler yeni bir PanelHomeHandler örneği oluşturur.
func NewPanelHomeHandler() *PanelHomeHandler {
	return &PanelHomeHandler{
		slotService:    services.NewSlotService(),
		profileService: services.NewProfileService(),
	}
}

// PanelHomeHandler panel ana sayfasını slot sayılarıyla gösterir.
func (h *PanelHomeHandler) PanelHomeHandler(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	totalSlots, err := h.slotService.CountSlotsForSpecialist(c.UserContext(), userID, false)
	if err != nil {
		configslog.Log.Error("Panel - Home slot sayısı alınamadı", zap.Uint("userID", userID), zap.Error(err))
	}
	openSlots, err := h.slotService.CountSlotsForSpecialist(c.UserContext(), userID, true)
	if err != nil {
		configslog.Log.Error("Panel - Home açık slot sayısı alınamadı", zap.Uint("userID", userID), zap.Error(err))
	}

	// Profil eksikse panelde uyarı gösterilir (meslek veya ücret boş).
	profileIncomplete := false
	if profile, err := h.profileService.GetProfileByUserID(c.UserContext(), userID); err == nil {
		profileIncomplete = profile.ProfessionID == nil || profile.Price == nil
	} else {
		profileIncomplete = true
	}

	renderData := fiber.Map{
		"Title":             "Panel",
		"TotalSlots":        totalSlots,
		"OpenSlots":         openSlots,
		"BookedSlots":       totalSlots - openSlots,
		"ProfileIncomplete": profileIncomplete,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	// View: panel/home.html
	return renderer.Render(c, "panel/home", "layouts/panel_layout", renderData, http.StatusOK)
}
