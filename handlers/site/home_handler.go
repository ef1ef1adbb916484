package handlers // handlers/site paketi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"
	"uzmanrandevu.link/pkg/flashmessages"
	"uzmanrandevu.link/pkg/queryparams"
	"uzmanrandevu.link/pkg/renderer"
	"uzmanrandevu.link/services"
)

// HomeHandler public ana sayfa ve uzman detay sayfası için handler.
type HomeHandler struct {
	profileService services.IProfileService
	slotService    services.ISlotService
}

// NewHomeHandler yeni bir HomeHandler örneği oluşturur.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{
		profileService: services.NewProfileService(),
		slotService:    services.NewSlotService(),
	}
}

// Home uzman vitrinini listeler. ?q= ile ad/meslek/açıklama araması,
// ?category= ile meslek filtresi, sayfalama queryparams üzerinden.
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	paginatedResult, err := h.profileService.GetSpecialistsPaginated(c.UserContext(), params)
	professions, profErr := h.profileService.ListProfessions(c.UserContext())
	if profErr != nil {
		configslog.Log.Error("Site - Home meslek listesi alınamadı", zap.Error(profErr))
		professions = []models.Profession{}
	}

	renderData := fiber.Map{
		"Title":       "Uzman Bul",
		"Result":      paginatedResult,
		"Params":      params,
		"Professions": professions,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Uzmanlar listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.SpecialistProfile{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Site - Home Error", zap.Error(err))
	}
	// View: site/home.html
	return renderer.Render(c, "site/home", "layouts/site_layout", renderData, http.StatusOK)
}

// SpecialistDetail uzman profilini ve gelecekteki açık slotlarını gösterir.
// Geçmiş ve rezerve edilmiş slotlar public sayfada görünmez.
func (h *HomeHandler) SpecialistDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/")
	}
	profileID := uint(id)

	profile, err := h.profileService.GetSpecialistDetail(c.UserContext(), profileID)
	if err != nil {
		errMsg := "Uzman bulunamadı."
		if !errors.Is(err, services.ErrProfileNotFound) {
			errMsg = "Uzman bilgileri alınırken bir hata oluştu."
			configslog.Log.Error("Site - SpecialistDetail Error", zap.Uint("id", profileID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/")
	}

	today := time.Now()
	openSlots, err := h.slotService.ListSlotsForSpecialist(c.UserContext(), profile.UserID, today, true)
	if err != nil {
		configslog.Log.Error("Site - SpecialistDetail slot listesi alınamadı",
			zap.Uint("specialistUserID", profile.UserID), zap.Error(err))
		openSlots = []models.Slot{}
	}

	renderData := fiber.Map{
		"Title":   profile.User.Name,
		"Profile": profile,
		"Slots":   openSlots,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	// View: site/specialist_detail.html
	return renderer.Render(c, "site/specialist_detail", "layouts/site_layout", renderData, http.StatusOK)
}
