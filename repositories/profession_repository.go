package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uzmanrandevu.link/configs/configsdatabase"
	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"
)

// IProfessionRepository meslek alanları için arayüz.
type IProfessionRepository interface {
	FindAll(ctx context.Context) ([]models.Profession, error)
	FindByID(ctx context.Context, id uint) (*models.Profession, error)
	FindByName(ctx context.Context, name string) (*models.Profession, error)
}

// ProfessionRepository IProfessionRepository arayüzünü uygular.
type ProfessionRepository struct {
	db *gorm.DB
}

// NewProfessionRepository yeni bir ProfessionRepository örneği oluşturur.
func NewProfessionRepository() IProfessionRepository {
	return NewProfessionRepositoryWithDB(configsdatabase.GetDB())
}

// NewProfessionRepositoryWithDB verilen DB örneğiyle repository oluşturur.
func NewProfessionRepositoryWithDB(db *gorm.DB) IProfessionRepository {
	return &ProfessionRepository{db: db}
}

func (r *ProfessionRepository) FindAll(ctx context.Context) ([]models.Profession, error) {
	var professions []models.Profession
	err := r.db.WithContext(ctx).Order("name asc").Find(&professions).Error
	if err != nil {
		configslog.Log.Error("ProfessionRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return professions, nil
}

func (r *ProfessionRepository) FindByID(ctx context.Context, id uint) (*models.Profession, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Profession ID")
	}
	var profession models.Profession
	err := r.db.WithContext(ctx).First(&profession, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profession, nil
}

func (r *ProfessionRepository) FindByName(ctx context.Context, name string) (*models.Profession, error) {
	var profession models.Profession
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&profession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profession, nil
}

var _ IProfessionRepository = (*ProfessionRepository)(nil)
