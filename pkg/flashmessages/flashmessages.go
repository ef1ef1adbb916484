package flashmessages

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"uzmanrandevu.link/utils"
)

// Session'da kullanılan flash anahtarları.
const (
	FlashSuccessKey  = "flash_success"
	FlashErrorKey    = "flash_error"
	FlashFormDataKey = "flash_form_data"
)

// FlashData bir sonraki render'da gösterilecek tek seferlik mesajlar.
type FlashData struct {
	Success string
	Error   string
}

// SetFlashMessage verilen anahtarla tek seferlik mesaj yazar.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages mesajları okur ve session'dan siler.
func GetFlashMessages(c *fiber.Ctx) FlashData {
	data := FlashData{}
	sess, err := utils.SessionStart(c)
	if err != nil {
		return data
	}

	if msg, ok := sess.Get(FlashSuccessKey).(string); ok {
		data.Success = msg
		sess.Delete(FlashSuccessKey)
	}
	if msg, ok := sess.Get(FlashErrorKey).(string); ok {
		data.Error = msg
		sess.Delete(FlashErrorKey)
	}
	_ = sess.Save()
	return data
}

// SetFlashFormData hatalı form verisini redirect sonrası tekrar doldurmak
// için JSON olarak saklar.
func SetFlashFormData(c *fiber.Ctx, formData interface{}) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(formData)
	if err != nil {
		return err
	}
	sess.Set(FlashFormDataKey, string(encoded))
	return sess.Save()
}

// GetFlashFormData saklanan form verisini okur ve siler.
func GetFlashFormData(c *fiber.Ctx) map[string]interface{} {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return nil
	}
	encoded, ok := sess.Get(FlashFormDataKey).(string)
	if !ok || encoded == "" {
		return nil
	}
	sess.Delete(FlashFormDataKey)
	_ = sess.Save()

	var formData map[string]interface{}
	if err := json.Unmarshal([]byte(encoded), &formData); err != nil {
		return nil
	}
	return formData
}
