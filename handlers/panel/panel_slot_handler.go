package handlers // handlers/panel paketi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"
	"uzmanrandevu.link/pkg/flashmessages"
	"uzmanrandevu.link/pkg/renderer"
	"uzmanrandevu.link/services"
)

// slotForm slot oluşturma formundan gelen girdi.
type slotForm struct {
	Date string `form:"date"` // YYYY-AA-GG
	Time string `form:"time"` // SS:DD
}

// PanelSlotHandler uzmanın kendi slotları için handler.
type PanelSlotHandler struct {
	service services.ISlotService
}

// NewPanelSlotHandler yeni bir PanelSlotHandler örneği oluşturur.
func NewPanelSlotHandler() *PanelSlotHandler {
	return &PanelSlotHandler{
		service: services.NewSlotService(),
	}
}

// ListSlots uzmanın bugünden itibaren tüm slotlarını listeler.
// Yönetim görünümü olduğundan rezerveli slotlar da dahildir.
func (h *PanelSlotHandler) ListSlots(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	slots, err := h.service.ListSlotsForSpecialist(c.UserContext(), userID, time.Now(), false)

	renderData := fiber.Map{
		"Title": "Slotlarım",
		"Slots": slots,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Slotlar listelenirken bir hata oluştu."
		renderData["Slots"] = []models.Slot{}
		configslog.Log.Error("Panel - ListSlots Error", zap.Uint("userID", userID), zap.Error(err))
	}
	// View: panel/slots/list.html
	return renderer.Render(c, "panel/slots/list", "layouts/panel_layout", renderData, http.StatusOK)
}

// ShowCreateSlot yeni slot yayınlama formunu gösterir.
func (h *PanelSlotHandler) ShowCreateSlot(c *fiber.Ctx) error {
	formData := flashmessages.GetFlashFormData(c)
	// View: panel/slots/create.html
	return renderer.Render(c, "panel/slots/create", "layouts/panel_layout", fiber.Map{
		"Title":    "Yeni Slot Yayınla",
		"FormData": formData,
	})
}

// CreateSlot yeni slot yayınlar. Aynı tarih + saat için ikinci slot
// yayınlanamaz; çakışmayı servis ErrSlotDuplicate ile bildirir.
func (h *PanelSlotHandler) CreateSlot(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	var form slotForm
	if err := c.BodyParser(&form); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/panel/slots/create", fiber.StatusSeeOther)
	}

	slot, err := h.service.CreateSlot(c.UserContext(), userID, form.Date, form.Time)
	if err != nil {
		var svcErr services.SlotServiceError
		errMsg := "Slot oluşturulurken bir hata oluştu."
		if errors.As(err, &svcErr) {
			errMsg = err.Error()
		} else {
			configslog.Log.Error("Panel - CreateSlot Error", zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		_ = flashmessages.SetFlashFormData(c, form)
		return c.Redirect("/panel/slots/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		"Slot yayınlandı: "+slot.DateString()+" "+slot.Time)
	return c.Redirect("/panel/slots", fiber.StatusFound)
}

// DeleteSlot slotu kalıcı olarak siler (sadece sahibi). Rezerveli slot da
// silinebilir; danışana bildirim gönderilmez.
func (h *PanelSlotHandler) DeleteSlot(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/slots")
	}
	slotID := uint(id)

	err = h.service.DeleteSlot(c.UserContext(), slotID, userID)
	if err != nil {
		errMsg := "Silme hatası: " + err.Error()
		if !errors.Is(err, services.ErrSlotNotFound) && !errors.Is(err, services.ErrSlotForbidden) {
			configslog.Log.Error("Panel - DeleteSlot Error", zap.Uint("id", slotID), zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Slot silindi.")
	}
	return c.Redirect("/panel/slots", fiber.StatusSeeOther)
}

// ReleaseSlot rezerveli slotu tekrar açık duruma getirir (sadece sahibi).
func (h *PanelSlotHandler) ReleaseSlot(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/slots")
	}
	slotID := uint(id)

	err = h.service.ReleaseSlot(c.UserContext(), slotID, userID)
	if err != nil {
		errMsg := "Serbest bırakma hatası: " + err.Error()
		if !errors.Is(err, services.ErrSlotNotFound) && !errors.Is(err, services.ErrSlotForbidden) &&
			!errors.Is(err, services.ErrSlotNotBooked) {
			configslog.Log.Error("Panel - ReleaseSlot Error", zap.Uint("id", slotID), zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Slot tekrar açık duruma getirildi.")
	}
	return c.Redirect("/panel/slots", fiber.StatusSeeOther)
}
