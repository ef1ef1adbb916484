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
	"uzmanrandevu.link/pkg/renderer"
	"uzmanrandevu.link/services"
)

// BookingHandler danışanın rezervasyon işlemleri için handler.
type BookingHandler struct {
	bookingService services.IBookingService
	slotService    services.ISlotService
}

// NewBookingHandler yeni bir BookingHandler örneği oluşturur.
func NewBookingHandler() *BookingHandler {
	return &BookingHandler{
		bookingService: services.NewBookingService(),
		slotService:    services.NewSlotService(),
	}
}

// BookSlot açık bir slotu giriş yapmış danışan adına rezerve eder.
// Yarış durumunda kaybeden çağrı "slot dolu" mesajı alır; rol ve plan
// kontrolleri serviste yapılır.
func (h *BookingHandler) BookSlot(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/")
	}
	slotID := uint(id)

	slot, err := h.bookingService.BookSlot(c.UserContext(), slotID, userID)
	if err != nil {
		var errMsg string
		switch {
		case errors.Is(err, services.ErrSlotAlreadyBooked):
			errMsg = "Bu slot az önce başka bir danışan tarafından rezerve edildi."
		case errors.Is(err, services.ErrBookingSlotNotFound):
			errMsg = "Slot bulunamadı."
		case errors.Is(err, services.ErrBookingRoleViolation):
			errMsg = "Uzman hesapları rezervasyon yapamaz."
		case errors.Is(err, services.ErrBookingAccessDenied):
			errMsg = "Rezervasyon için aktif bir planınız olmalı."
		default:
			errMsg = "Rezervasyon sırasında bir hata oluştu."
			configslog.Log.Error("Site - BookSlot Error",
				zap.Uint("slotID", slotID), zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect(c.Get("Referer", "/"), fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		"Randevunuz oluşturuldu: "+slot.DateString()+" "+slot.Time)
	return c.Redirect("/bookings", fiber.StatusFound)
}

// MyBookings danışanın gelecekteki randevularını listeler.
func (h *BookingHandler) MyBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	bookings, err := h.slotService.ListBookingsForClient(c.UserContext(), userID, time.Now())

	renderData := fiber.Map{
		"Title":    "Randevularım",
		"Bookings": bookings,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Randevular listelenirken bir hata oluştu."
		renderData["Bookings"] = []models.Slot{}
		configslog.Log.Error("Site - MyBookings Error", zap.Uint("userID", userID), zap.Error(err))
	}
	// View: site/bookings.html
	return renderer.Render(c, "site/bookings", "layouts/site_layout", renderData, http.StatusOK)
}
