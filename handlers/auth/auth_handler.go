package handlers // handlers/auth paketi

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/pkg/flashmessages"
	"uzmanrandevu.link/pkg/renderer"
	"uzmanrandevu.link/services"
	"uzmanrandevu.link/utils"
)

// AuthHandler giriş, kayıt ve şifre işlemleri için handler.
type AuthHandler struct {
	service     services.IAuthService
	userService services.IUserService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		service:     services.NewAuthService(),
		userService: services.NewUserService(),
	}
}

// ShowLogin giriş formunu gösterir.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	// View: auth/login.html
	return renderer.Render(c, "auth/login", "layouts/auth_layout", fiber.Map{
		"Title": "Giriş Yap",
	})
}

// Login e-posta + şifre doğrular, session açar ve role göre yönlendirir.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.service.Login(c.UserContext(), email, password)
	if err != nil {
		errMsg := "E-posta veya şifre hatalı."
		if errors.Is(err, services.ErrAuthUserInactive) {
			errMsg = "Hesabınız pasif durumda."
		} else if !errors.Is(err, services.ErrAuthInvalidCredentials) {
			errMsg = "Giriş sırasında bir hata oluştu."
			configslog.Log.Error("Auth - Login Error", zap.String("email", email), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Auth - Session başlatılamadı", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oturum açılamadı.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	if err := utils.SetUserSession(sess, user); err != nil {
		configslog.Log.Error("Auth - Session yazılamadı", zap.Uint("userID", user.ID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oturum açılamadı.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	if user.IsSystem {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	if user.IsSpecialist {
		return c.Redirect("/panel/home", fiber.StatusFound)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// ShowRegister kayıt formunu gösterir (danışan / uzman seçimiyle).
func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	formData := flashmessages.GetFlashFormData(c)
	// View: auth/register.html
	return renderer.Render(c, "auth/register", "layouts/auth_layout", fiber.Map{
		"Title":    "Kayıt Ol",
		"FormData": formData,
	})
}

// Register yeni hesabı oluşturur ve doğrudan oturum açar.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/auth/register", fiber.StatusSeeOther)
	}

	user, err := h.service.Register(c.UserContext(), input)
	if err != nil {
		var svcErr services.AuthServiceError
		errMsg := "Kayıt sırasında bir hata oluştu."
		if errors.As(err, &svcErr) {
			errMsg = err.Error()
		} else {
			configslog.Log.Error("Auth - Register Error", zap.String("email", input.Email), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		input.Password, input.ConfirmPassword = "", ""
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect("/auth/register", fiber.StatusSeeOther)
	}

	sess, err := utils.SessionStart(c)
	if err == nil {
		_ = utils.SetUserSession(sess, user)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Hesabınız oluşturuldu, hoş geldiniz.")
	if user.IsSpecialist {
		return c.Redirect("/panel/profile", fiber.StatusFound)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// Logout oturumu sonlandırır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err == nil {
		if err := utils.DestroySession(sess); err != nil {
			configslog.Log.Error("Auth - Logout Error", zap.Error(err))
		}
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}

// Profile hesap sayfasını gösterir (ad, e-posta, şifre değiştirme formu).
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	user, err := h.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Error("Auth - Profile Error", zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Hesap bilgileri alınamadı.")
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	renderData := fiber.Map{
		"Title": "Hesabım",
		"User":  user,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	// View: auth/profile.html
	return renderer.Render(c, "auth/profile", "layouts/auth_layout", renderData, http.StatusOK)
}

// UpdatePassword mevcut şifre doğrulamasıyla şifreyi değiştirir.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	currentPassword := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")
	confirmPassword := c.FormValue("confirm_password")

	if newPassword != confirmPassword {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yeni şifreler eşleşmiyor.")
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}

	if err := h.service.UpdatePassword(c.UserContext(), userID, currentPassword, newPassword); err != nil {
		var svcErr services.AuthServiceError
		errMsg := "Şifre güncellenirken bir hata oluştu."
		if errors.As(err, &svcErr) {
			errMsg = err.Error()
		} else {
			configslog.Log.Error("Auth - UpdatePassword Error", zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Şifreniz güncellendi.")
	return c.Redirect("/auth/profile", fiber.StatusFound)
}

// DeleteAccount giriş yapmış kullanıcının kendi hesabını siler ve oturumu
// sonlandırır. Sistem kullanıcısı kendini silemez; bunu servis engeller.
func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	if err := h.userService.DeleteUser(c.UserContext(), userID, userID); err != nil {
		var svcErr services.UserServiceError
		errMsg := "Hesap silinirken bir hata oluştu."
		if errors.As(err, &svcErr) {
			errMsg = err.Error()
		} else {
			configslog.Log.Error("Auth - DeleteAccount Error", zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}

	if sess, err := utils.SessionStart(c); err == nil {
		_ = utils.DestroySession(sess)
	}

	configslog.SLog.Infof("Kullanıcı kendi hesabını sildi: ID %d", userID)
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Hesabınız silindi.")
	return c.Redirect("/", fiber.StatusFound)
}

// ShowForgotPassword şifre sıfırlama isteği formunu gösterir.
func (h *AuthHandler) ShowForgotPassword(c *fiber.Ctx) error {
	// View: auth/forgot_password.html
	return renderer.Render(c, "auth/forgot_password", "layouts/auth_layout", fiber.Map{
		"Title": "Şifremi Unuttum",
	})
}

// RequestPasswordReset token üretir. E-posta gönderimi henüz bağlanmadığından
// token log'a yazılır; hesabın varlığı kullanıcıya sızdırılmaz.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	email := c.FormValue("email")

	token, err := h.service.RequestPasswordReset(c.UserContext(), email)
	if err != nil {
		configslog.Log.Error("Auth - RequestPasswordReset Error", zap.String("email", email), zap.Error(err))
	} else if token != "" {
		// TODO: SMTP entegrasyonu bağlandığında token maille gönderilecek.
		configslog.SLog.Infof("Şifre sıfırlama bağlantısı: /auth/password/reset/%s", token)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		"Kayıtlı bir hesap varsa şifre sıfırlama bağlantısı gönderildi.")
	return c.Redirect("/auth/login", fiber.StatusSeeOther)
}

// ShowResetPassword token'lı şifre sıfırlama formunu gösterir.
func (h *AuthHandler) ShowResetPassword(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return c.Redirect("/auth/login")
	}
	// View: auth/reset_password.html
	return renderer.Render(c, "auth/reset_password", "layouts/auth_layout", fiber.Map{
		"Title": "Şifre Sıfırla",
		"Token": token,
	})
}

// ResetPassword token doğrulamasıyla yeni şifreyi yazar.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	token := c.FormValue("token")
	newPassword := c.FormValue("new_password")
	confirmPassword := c.FormValue("confirm_password")

	if newPassword != confirmPassword {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Şifreler eşleşmiyor.")
		return c.Redirect("/auth/password/reset/"+token, fiber.StatusSeeOther)
	}

	if err := h.service.ResetPassword(c.UserContext(), token, newPassword); err != nil {
		var svcErr services.AuthServiceError
		errMsg := "Şifre sıfırlanırken bir hata oluştu."
		if errors.As(err, &svcErr) {
			errMsg = err.Error()
		} else {
			configslog.Log.Error("Auth - ResetPassword Error", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/auth/password/request", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Şifreniz sıfırlandı, giriş yapabilirsiniz.")
	return c.Redirect("/auth/login", fiber.StatusFound)
}
