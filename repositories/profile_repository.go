package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uzmanrandevu.link/configs/configsdatabase"
	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"
	"uzmanrandevu.link/pkg/queryparams"
	"uzmanrandevu.link/pkg/turkishsearch"
)

// IProfileRepository uzman profili veritabanı işlemleri için arayüz.
type IProfileRepository interface {
	Create(ctx context.Context, profile *models.SpecialistProfile) error
	FindByID(ctx context.Context, id uint) (*models.SpecialistProfile, error)
	FindByUserID(ctx context.Context, userID uint) (*models.SpecialistProfile, error)
	Update(ctx context.Context, profile *models.SpecialistProfile) error
	FindSpecialistsPaginated(ctx context.Context, params queryparams.ListParams) ([]models.SpecialistProfile, int64, error)
}

// ProfileRepository IProfileRepository arayüzünü uygular.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository yeni bir ProfileRepository örneği oluşturur.
func NewProfileRepository() IProfileRepository {
	return NewProfileRepositoryWithDB(configsdatabase.GetDB())
}

// NewProfileRepositoryWithDB verilen DB örneğiyle repository oluşturur.
func NewProfileRepositoryWithDB(db *gorm.DB) IProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *ProfileRepository) Create(ctx context.Context, profile *models.SpecialistProfile) error {
	if profile == nil || profile.UserID == 0 {
		return errors.New("geçersiz kullanıcı bilgisi olan profil oluşturulamaz")
	}
	return r.getDB(ctx).Create(profile).Error
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uint) (*models.SpecialistProfile, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Profile ID")
	}
	var profile models.SpecialistProfile
	err := r.getDB(ctx).Preload("User").Preload("Profession").First(&profile, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ProfileRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uint) (*models.SpecialistProfile, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var profile models.SpecialistProfile
	err := r.getDB(ctx).Preload("User").Preload("Profession").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ProfileRepository.FindByUserID: DB error", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *models.SpecialistProfile) error {
	if profile == nil || profile.ID == 0 {
		return errors.New("güncellenecek profil geçerli değil")
	}
	return r.getDB(ctx).Save(profile).Error
}

// FindSpecialistsPaginated public listede görünecek uzmanları getirir:
// yalnız aktif, uzman rolünde ve fiyatı tanımlı profiller.
// Metin araması kullanıcı adı, meslek ve açıklama üzerinde çalışır.
func (r *ProfileRepository) FindSpecialistsPaginated(ctx context.Context, params queryparams.ListParams) ([]models.SpecialistProfile, int64, error) {
	var profiles []models.SpecialistProfile
	var totalCount int64

	query := r.getDB(ctx).Model(&models.SpecialistProfile{}).
		Joins("JOIN users ON users.id = specialist_profiles.user_id AND users.deleted_at IS NULL").
		Joins("LEFT JOIN professions ON professions.id = specialist_profiles.profession_id").
		Where("users.is_specialist = ? AND users.is_active = ?", true, true).
		Where("specialist_profiles.price IS NOT NULL")

	if params.Name != "" {
		nameFrag, nameArgs := turkishsearch.SQLFilter("users.name", params.Name)
		profFrag, profArgs := turkishsearch.SQLFilter("professions.name", params.Name)
		descFrag, descArgs := turkishsearch.SQLFilter("specialist_profiles.description", params.Name)
		args := append(append(nameArgs, profArgs...), descArgs...)
		query = query.Where("("+nameFrag+" OR "+profFrag+" OR "+descFrag+")", args...)
	}
	if params.Category != "" && params.Category != "all" {
		query = query.Where("professions.name = ?", params.Category)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("ProfileRepository.Count (Paginated): DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return profiles, 0, nil
	}

	query = query.Order("specialist_profiles.created_at desc").
		Preload("User").Preload("Profession").
		Limit(params.PerPage).Offset(params.CalculateOffset())

	if err := query.Find(&profiles).Error; err != nil {
		configslog.Log.Error("ProfileRepository.Find (Paginated): DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return profiles, totalCount, nil
}

var _ IProfileRepository = (*ProfileRepository)(nil)
