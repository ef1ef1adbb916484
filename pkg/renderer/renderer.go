package renderer

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"uzmanrandevu.link/pkg/flashmessages"
)

// View verisine konulan flash anahtarları.
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// SetFlashMessages flash mesajlarını render verisine ekler (boşsa eklemez).
func SetFlashMessages(data fiber.Map, messages flashmessages.FlashData) {
	if messages.Success != "" {
		data[FlashSuccessKeyView] = messages.Success
	}
	if messages.Error != "" {
		data[FlashErrorKeyView] = messages.Error
	}
}

// Render ortak render sarmalayıcısı: locals'taki kimlik bilgilerini her
// view'a taşır ve verilen layout ile render eder.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status ...int) error {
	if data == nil {
		data = fiber.Map{}
	}
	if userName, ok := c.Locals("userName").(string); ok {
		data["UserName"] = userName
	}
	if isSystem, ok := c.Locals("isSystem").(bool); ok {
		data["IsSystem"] = isSystem
	}
	if isSpecialist, ok := c.Locals("isSpecialist").(bool); ok {
		data["IsSpecialist"] = isSpecialist
	}
	if _, ok := c.Locals("userID").(uint); ok {
		data["IsAuthenticated"] = true
	}

	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	return c.Status(code).Render(view, data, layout)
}
