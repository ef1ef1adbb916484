package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"
	"uzmanrandevu.link/pkg/queryparams"
	"uzmanrandevu.link/repositories"
)

// UserServiceError özel servis hataları
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

// Hata sabitleri
const (
	ErrUserNotFound     UserServiceError = "kullanıcı bulunamadı"
	ErrUserForbidden    UserServiceError = "bu işlem için yetkiniz yok"
	ErrUserInvalidInput UserServiceError = "geçersiz kullanıcı girdisi"
	ErrUserUpdateFailed UserServiceError = "kullanıcı güncellenemedi"
	ErrUserDeleteFailed UserServiceError = "kullanıcı silinemedi"
)

// IUserService kullanıcı yönetimi (dashboard) işlemleri için arayüz.
type IUserService interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUsersPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	SetActiveStatus(ctx context.Context, userID uint, isActive bool, updatingUserID uint) error
	SetPlanStatus(ctx context.Context, userID uint, hasActivePlan bool, updatingUserID uint) error
	DeleteUser(ctx context.Context, userID, deletingUserID uint) error
	CountUsers(ctx context.Context) (int64, error)
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	repo repositories.IUserRepository
}

// NewUserService yeni bir UserService örneği oluşturur.
func NewUserService() IUserService {
	return NewUserServiceWithDeps(repositories.NewUserRepository())
}

// NewUserServiceWithDeps bağımlılıkları dışarıdan alır (test için).
func NewUserServiceWithDeps(repo repositories.IUserRepository) IUserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUsersPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()

	users, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		configslog.Log.Error("Kullanıcı listesi alınırken hata", zap.Error(err))
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: users,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// SetActiveStatus hesabı açar/pasifleştirir (yalnız dashboard).
func (s *UserService) SetActiveStatus(ctx context.Context, userID uint, isActive bool, updatingUserID uint) error {
	return s.updateFlag(ctx, userID, updatingUserID, map[string]interface{}{"is_active": isActive})
}

// SetPlanStatus entitlement bayrağını değiştirir. Ödeme sağlayıcı entegrasyonu
// kapsam dışı; plan aktivasyonu şimdilik dashboard üzerinden yönetilir.
func (s *UserService) SetPlanStatus(ctx context.Context, userID uint, hasActivePlan bool, updatingUserID uint) error {
	return s.updateFlag(ctx, userID, updatingUserID, map[string]interface{}{"has_active_plan": hasActivePlan})
}

func (s *UserService) updateFlag(ctx context.Context, userID, updatingUserID uint, fields map[string]interface{}) error {
	if userID == 0 || updatingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrUserInvalidInput)
	}
	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, updatingUserID)
	if err := s.repo.UpdateFields(ctxWithUser, userID, fields); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		configslog.Log.Error("Kullanıcı bayrağı güncellenemedi", zap.Uint("user_id", userID), zap.Error(err))
		return ErrUserUpdateFailed
	}
	return nil
}

// DeleteUser hesabı soft delete eder. Sistem kullanıcısı silinemez.
func (s *UserService) DeleteUser(ctx context.Context, userID, deletingUserID uint) error {
	if userID == 0 || deletingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrUserInvalidInput)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.IsSystem {
		return ErrUserForbidden
	}

	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, deletingUserID)
	if err := s.repo.Delete(ctxWithUser, user, deletingUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		configslog.Log.Error("Kullanıcı silinemedi", zap.Uint("user_id", userID), zap.Error(err))
		return ErrUserDeleteFailed
	}

	configslog.SLog.Infof("Kullanıcı silindi: ID %d (Silen: %d)", userID, deletingUserID)
	return nil
}

func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

var _ IUserService = (*UserService)(nil)
