package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"uzmanrandevu.link/models"
)

func newAuthServiceForTest() (IAuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	profileRepo := newFakeProfileRepo(userRepo)
	professionRepo := newFakeProfessionRepo(models.ProfessionNameTech)
	profileService := NewProfileServiceWithDeps(profileRepo, professionRepo)
	return NewAuthServiceWithDeps(userRepo, profileService), userRepo
}

func TestRegisterClient(t *testing.T) {
	service, _ := newAuthServiceForTest()

	user, err := service.Register(context.Background(), RegisterInput{
		Name:            "Ayşe Yılmaz",
		Email:           "Ayse@Example.com",
		Password:        "gizli123",
		ConfirmPassword: "gizli123",
		UserType:        "client",
	})
	require.NoError(t, err)
	assert.Equal(t, "ayse@example.com", user.Email) // normalize edilir
	assert.False(t, user.IsSpecialist)
	assert.True(t, user.IsActive)
	// Şifre düz metin saklanmaz.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("gizli123")))
}

func TestRegisterSpecialistEnsuresProfile(t *testing.T) {
	service, userRepo := newAuthServiceForTest()

	user, err := service.Register(context.Background(), RegisterInput{
		Name:            "Dr. Mehmet",
		Email:           "mehmet@example.com",
		Password:        "gizli123",
		ConfirmPassword: "gizli123",
		UserType:        "specialist",
	})
	require.NoError(t, err)
	assert.True(t, user.IsSpecialist)

	stored, err := userRepo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsSpecialist)
}

func TestRegisterValidation(t *testing.T) {
	service, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{Name: "", Email: "a@b.com", Password: "gizli123", ConfirmPassword: "gizli123"})
	assert.ErrorIs(t, err, ErrAuthInvalidInput)

	_, err = service.Register(ctx, RegisterInput{Name: "Ali", Email: "gecersiz", Password: "gizli123", ConfirmPassword: "gizli123"})
	assert.ErrorIs(t, err, ErrAuthInvalidInput)

	_, err = service.Register(ctx, RegisterInput{Name: "Ali", Email: "a@b.com", Password: "kisa", ConfirmPassword: "kisa"})
	assert.ErrorIs(t, err, ErrAuthPasswordTooShort)

	_, err = service.Register(ctx, RegisterInput{Name: "Ali", Email: "a@b.com", Password: "gizli123", ConfirmPassword: "farkli123"})
	assert.ErrorIs(t, err, ErrAuthPasswordMismatch)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newAuthServiceForTest()
	ctx := context.Background()

	input := RegisterInput{Name: "Ali", Email: "ali@example.com", Password: "gizli123", ConfirmPassword: "gizli123"}
	_, err := service.Register(ctx, input)
	require.NoError(t, err)

	_, err = service.Register(ctx, input)
	assert.ErrorIs(t, err, ErrAuthEmailTaken)
}

func TestLogin(t *testing.T) {
	service, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{
		Name: "Ali", Email: "ali@example.com", Password: "gizli123", ConfirmPassword: "gizli123",
	})
	require.NoError(t, err)

	user, err := service.Login(ctx, "ALI@example.com", "gizli123")
	require.NoError(t, err)
	assert.Equal(t, "ali@example.com", user.Email)

	_, err = service.Login(ctx, "ali@example.com", "yanlis")
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	// Bilinmeyen e-posta da aynı hatayı verir (hesap varlığı sızdırılmaz).
	_, err = service.Login(ctx, "yok@example.com", "gizli123")
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	service, userRepo := newAuthServiceForTest()
	ctx := context.Background()

	user, err := service.Register(ctx, RegisterInput{
		Name: "Ali", Email: "ali@example.com", Password: "gizli123", ConfirmPassword: "gizli123",
	})
	require.NoError(t, err)

	require.NoError(t, userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{"is_active": false}))

	_, err = service.Login(ctx, "ali@example.com", "gizli123")
	assert.ErrorIs(t, err, ErrAuthUserInactive)
}

func TestPasswordResetFlow(t *testing.T) {
	service, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{
		Name: "Ali", Email: "ali@example.com", Password: "gizli123", ConfirmPassword: "gizli123",
	})
	require.NoError(t, err)

	token, err := service.RequestPasswordReset(ctx, "ali@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Bilinmeyen e-posta hata vermez ama token üretmez.
	emptyToken, err := service.RequestPasswordReset(ctx, "yok@example.com")
	require.NoError(t, err)
	assert.Empty(t, emptyToken)

	require.NoError(t, service.ResetPassword(ctx, token, "yeni1234"))

	_, err = service.Login(ctx, "ali@example.com", "yeni1234")
	require.NoError(t, err)

	// Token tek kullanımlıktır.
	err = service.ResetPassword(ctx, token, "baska123")
	assert.ErrorIs(t, err, ErrAuthResetTokenInvalid)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	service, userRepo := newAuthServiceForTest()
	ctx := context.Background()

	user, err := service.Register(ctx, RegisterInput{
		Name: "Ali", Email: "ali@example.com", Password: "gizli123", ConfirmPassword: "gizli123",
	})
	require.NoError(t, err)

	token, err := service.RequestPasswordReset(ctx, "ali@example.com")
	require.NoError(t, err)

	// Süresi geçmiş token reddedilir.
	expired := time.Now().UTC().Add(-time.Minute)
	stored, err := userRepo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	stored.ResetTokenExpiresAt = &expired
	require.NoError(t, userRepo.Update(ctx, stored))

	err = service.ResetPassword(ctx, token, "yeni1234")
	assert.ErrorIs(t, err, ErrAuthResetTokenInvalid)
}

func TestUpdatePassword(t *testing.T) {
	service, _ := newAuthServiceForTest()
	ctx := context.Background()

	user, err := service.Register(ctx, RegisterInput{
		Name: "Ali", Email: "ali@example.com", Password: "gizli123", ConfirmPassword: "gizli123",
	})
	require.NoError(t, err)

	err = service.UpdatePassword(ctx, user.ID, "yanlis", "yeni1234")
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	require.NoError(t, service.UpdatePassword(ctx, user.ID, "gizli123", "yeni1234"))

	_, err = service.Login(ctx, "ali@example.com", "yeni1234")
	require.NoError(t, err)
}
