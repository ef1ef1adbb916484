package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"
	"uzmanrandevu.link/repositories"
)

// AuthServiceError özel servis hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

// Hata sabitleri
const (
	ErrAuthInvalidCredentials AuthServiceError = "e-posta veya şifre hatalı"
	ErrAuthEmailTaken         AuthServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrAuthPasswordTooShort   AuthServiceError = "şifre en az 6 karakter olmalı"
	ErrAuthPasswordMismatch   AuthServiceError = "şifreler eşleşmiyor"
	ErrAuthUserNotFound       AuthServiceError = "kullanıcı bulunamadı"
	ErrAuthUserInactive       AuthServiceError = "hesap pasif durumda"
	ErrAuthInvalidInput       AuthServiceError = "geçersiz kayıt bilgisi"
	ErrAuthResetTokenInvalid  AuthServiceError = "şifre sıfırlama bağlantısı geçersiz veya süresi dolmuş"
	ErrAuthRegistrationFailed AuthServiceError = "hesap oluşturulamadı"
)

const resetTokenTTL = 2 * time.Hour

// RegisterInput kayıt formundan gelen, statik olarak doğrulanan girdi.
type RegisterInput struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	UserType        string `form:"user_type"` // "specialist" | "client"
}

// IAuthService kimlik işlemleri için arayüz.
type IAuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	userRepo       repositories.IUserRepository
	profileService IProfileService
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService() IAuthService {
	return NewAuthServiceWithDeps(repositories.NewUserRepository(), NewProfileService())
}

// NewAuthServiceWithDeps bağımlılıkları dışarıdan alır (test için).
func NewAuthServiceWithDeps(userRepo repositories.IUserRepository, profileService IProfileService) IAuthService {
	return &AuthService{userRepo: userRepo, profileService: profileService}
}

// Register yeni kullanıcı kaydeder; uzman hesabı seçildiyse profil de
// ensure edilir (idempotent).
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if input.Name == "" || input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("%w: ad ve geçerli bir e-posta zorunlu", ErrAuthInvalidInput)
	}
	if len(input.Password) < 6 {
		return nil, ErrAuthPasswordTooShort
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrAuthPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Şifre hashlenemedi", zap.Error(err))
		return nil, ErrAuthRegistrationFailed
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		Password:     string(hashedPassword),
		IsSpecialist: input.UserType == "specialist",
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrAuthEmailTaken
		}
		configslog.Log.Error("Kullanıcı oluşturulamadı", zap.String("email", input.Email), zap.Error(err))
		return nil, ErrAuthRegistrationFailed
	}

	if user.IsSpecialist {
		if _, err := s.profileService.EnsureProfile(ctx, user.ID); err != nil {
			// Profil sonradan ilk panel girişinde tekrar ensure edilir; kayıt başarısız sayılmaz.
			configslog.Log.Warn("Kayıt sonrası profil oluşturulamadı", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}

	configslog.SLog.Infof("Yeni kullanıcı kaydı: ID %d, E-posta: %s (Uzman: %t)", user.ID, user.Email, user.IsSpecialist)
	return user, nil
}

// Login e-posta + şifre doğrular, aktif kullanıcıyı döndürür.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrAuthInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAuthUserInactive
	}
	return user, nil
}

// UpdatePassword mevcut şifre doğrulandıktan sonra yenisini yazar.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrAuthPasswordTooShort
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAuthUserNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrAuthInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Şifre hashlenemedi", zap.Error(err))
		return ErrAuthRegistrationFailed
	}

	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, userID)
	return s.userRepo.UpdateFields(ctxWithUser, userID, map[string]interface{}{"password": string(hashedPassword)})
}

// RequestPasswordReset kullanıcıya tek kullanımlık uuid token üretir.
// E-posta gönderimi dışarıda; token handler tarafından maile yazılır.
// Hesabın var olup olmadığı dışarı sızdırılmaz: bilinmeyen e-posta da
// hatasız döner, token boş olur.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(resetTokenTTL)
	err = s.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"reset_token":            token,
		"reset_token_expires_at": expiresAt,
	})
	if err != nil {
		configslog.Log.Error("Reset token yazılamadı", zap.Uint("user_id", user.ID), zap.Error(err))
		return "", err
	}

	configslog.SLog.Infof("Şifre sıfırlama tokenı üretildi (Kullanıcı: %d)", user.ID)
	return token, nil
}

// ResetPassword geçerli token ile yeni şifreyi yazar ve tokenı temizler.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrAuthPasswordTooShort
	}
	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAuthResetTokenInvalid
		}
		return err
	}
	if user.ResetTokenExpiresAt == nil || time.Now().UTC().After(*user.ResetTokenExpiresAt) {
		return ErrAuthResetTokenInvalid
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Şifre hashlenemedi", zap.Error(err))
		return ErrAuthRegistrationFailed
	}

	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, user.ID)
	return s.userRepo.UpdateFields(ctxWithUser, user.ID, map[string]interface{}{
		"password":               string(hashedPassword),
		"reset_token":            nil,
		"reset_token_expires_at": nil,
	})
}

var _ IAuthService = (*AuthService)(nil)
