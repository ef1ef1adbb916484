package repositories

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uzmanrandevu.link/configs/configsdatabase"
	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"
	"uzmanrandevu.link/pkg/queryparams"
	"uzmanrandevu.link/pkg/turkishsearch"
)

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.User, int64, error)
	Delete(ctx context.Context, user *models.User, deletedByUserID uint) error
	Count(ctx context.Context) (int64, error)
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.User]
}

// NewUserRepository yeni bir UserRepository örneği oluşturur.
func NewUserRepository() IUserRepository {
	return NewUserRepositoryWithDB(configsdatabase.GetDB())
}

// NewUserRepositoryWithDB verilen DB örneğiyle repository oluşturur.
func NewUserRepositoryWithDB(db *gorm.DB) IUserRepository {
	base := NewBaseRepository[models.User](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name", "email", "is_active", "is_specialist"})
	return &UserRepository{db: db, base: base}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil || user.Email == "" {
		return errors.New("geçersiz kullanıcı kaydı oluşturulamaz")
	}
	return r.getDB(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	return r.base.FindByID(ctx, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.getDB(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByEmail: DB error", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var user models.User
	err := r.getDB(ctx).Where("reset_token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByResetToken: DB error", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == 0 {
		return errors.New("güncellenecek kullanıcı geçerli değil")
	}
	return r.base.Save(ctx, user)
}

// UpdateFields yalnız verilen alanları günceller (ör. reset token temizleme,
// plan/aktiflik bayrakları).
func (r *UserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if id == 0 || len(fields) == 0 {
		return errors.New("geçersiz alan güncellemesi")
	}
	result := r.getDB(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.User, int64, error) {
	var users []models.User
	var totalCount int64

	query := r.getDB(ctx).Model(&models.User{})

	if params.Name != "" {
		fragment, args := turkishsearch.SQLFilter("users.name", params.Name)
		query = query.Where(fragment, args...)
	}
	if params.Status != "" {
		query = query.Where("users.is_active = ?", params.Status == "true")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("UserRepository.Count (Paginated): DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return users, 0, nil
	}

	sortBy := params.SortBy
	if !r.base.SortColumnAllowed(sortBy) {
		sortBy = "created_at"
	}
	query = query.Order("users." + sortBy + " " + params.OrderBy)
	query = query.Limit(params.PerPage).Offset(params.CalculateOffset())

	if err := query.Find(&users).Error; err != nil {
		configslog.Log.Error("UserRepository.Find (Paginated): DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return users, totalCount, nil
}

// Delete kullanıcıyı soft delete eder, DeletedBy'ı işleyen kullanıcıyla doldurur.
func (r *UserRepository) Delete(ctx context.Context, user *models.User, deletedByUserID uint) error {
	if user == nil || user.ID == 0 {
		return errors.New("silinecek kullanıcı geçerli değil")
	}
	now := time.Now().UTC()
	result := r.getDB(ctx).Model(user).
		Where("id = ? AND deleted_at IS NULL", user.ID).
		Updates(map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID})
	if result.Error != nil {
		configslog.Log.Error("UserRepository.Delete: DB error", zap.Uint("id", user.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.base.Count(ctx)
}

var _ IUserRepository = (*UserRepository)(nil)
