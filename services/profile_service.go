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

// ProfileServiceError özel servis hataları
type ProfileServiceError string

func (e ProfileServiceError) Error() string { return string(e) }

// Hata sabitleri
const (
	ErrProfileNotFound     ProfileServiceError = "uzman profili bulunamadı"
	ErrProfileInvalidInput ProfileServiceError = "geçersiz profil girdisi"
	ErrProfileUpdateFailed ProfileServiceError = "profil güncellenemedi"
	ErrProfileEnsureFailed ProfileServiceError = "profil oluşturulamadı"
	ErrProfessionNotFound  ProfileServiceError = "meslek alanı bulunamadı"
)

// ProfileInput profil formundan gelen, statik olarak doğrulanan girdi.
type ProfileInput struct {
	ProfessionID *uint    `form:"profession_id"`
	Description  string   `form:"description"`
	Price        *float64 `form:"price"`
	Phone        string   `form:"phone"`
	PhotoURL     string   `form:"photo_url"`
}

// IProfileService uzman profili işlemleri için arayüz.
type IProfileService interface {
	EnsureProfile(ctx context.Context, userID uint) (*models.SpecialistProfile, error)
	GetProfileByUserID(ctx context.Context, userID uint) (*models.SpecialistProfile, error)
	GetSpecialistDetail(ctx context.Context, profileID uint) (*models.SpecialistProfile, error)
	UpdateProfile(ctx context.Context, userID uint, input ProfileInput) error
	GetSpecialistsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	ListProfessions(ctx context.Context) ([]models.Profession, error)
}

// ProfileService IProfileService arayüzünü uygular.
type ProfileService struct {
	repo           repositories.IProfileRepository
	professionRepo repositories.IProfessionRepository
}

// NewProfileService yeni bir ProfileService örneği oluşturur.
func NewProfileService() IProfileService {
	return NewProfileServiceWithDeps(repositories.NewProfileRepository(), repositories.NewProfessionRepository())
}

// NewProfileServiceWithDeps bağımlılıkları dışarıdan alır (test için).
func NewProfileServiceWithDeps(repo repositories.IProfileRepository, professionRepo repositories.IProfessionRepository) IProfileService {
	return &ProfileService{repo: repo, professionRepo: professionRepo}
}

// EnsureProfile kullanıcının profilinin varlığını garanti eder (idempotent
// get-or-create). Profil erişimindeki örtük oluşturma yerine bu açık operasyon
// kullanılır; kayıt sırasında ve profil düzenleme öncesinde çağrılır.
func (s *ProfileService) EnsureProfile(ctx context.Context, userID uint) (*models.SpecialistProfile, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kullanıcı ID", ErrProfileInvalidInput)
	}

	profile, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, userID)
	newProfile := &models.SpecialistProfile{UserID: userID}
	if err := s.repo.Create(ctxWithUser, newProfile); err != nil {
		// Eşzamanlı ensure çağrısı unique index'e takılmış olabilir; tekrar oku.
		if existing, findErr := s.repo.FindByUserID(ctx, userID); findErr == nil {
			return existing, nil
		}
		configslog.Log.Error("Profil oluşturulamadı", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrProfileEnsureFailed
	}

	configslog.SLog.Infof("Profil oluşturuldu: ID %d (Kullanıcı: %d)", newProfile.ID, userID)
	return newProfile, nil
}

// GetProfileByUserID kullanıcının profilini getirir.
func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID uint) (*models.SpecialistProfile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// GetSpecialistDetail public uzman detay sayfası için profili getirir.
// Uzman olmayan veya pasif hesapların profilleri dışarıya görünmez.
func (s *ProfileService) GetSpecialistDetail(ctx context.Context, profileID uint) (*models.SpecialistProfile, error) {
	profile, err := s.repo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if !profile.User.IsSpecialist || !profile.User.IsActive {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// UpdateProfile profil alanlarını günceller (yalnız sahibi çağırır; rota
// middleware'i bunu garanti eder). Profil yoksa önce ensure edilir.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, input ProfileInput) error {
	if userID == 0 {
		return fmt.Errorf("%w: geçersiz kullanıcı ID", ErrProfileInvalidInput)
	}
	if input.Price != nil && *input.Price < 0 {
		return fmt.Errorf("%w: ücret negatif olamaz", ErrProfileInvalidInput)
	}
	if input.ProfessionID != nil {
		if _, err := s.professionRepo.FindByID(ctx, *input.ProfessionID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrProfessionNotFound
			}
			return err
		}
	}

	profile, err := s.EnsureProfile(ctx, userID)
	if err != nil {
		return err
	}

	profile.ProfessionID = input.ProfessionID
	profile.Description = input.Description
	profile.Price = input.Price
	profile.Phone = input.Phone
	if input.PhotoURL != "" {
		profile.PhotoURL = input.PhotoURL
	}

	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, userID)
	if err := s.repo.Update(ctxWithUser, profile); err != nil {
		configslog.Log.Error("Profil güncellenemedi", zap.Uint("user_id", userID), zap.Error(err))
		return ErrProfileUpdateFailed
	}

	configslog.SLog.Infof("Profil güncellendi: ID %d (Kullanıcı: %d)", profile.ID, userID)
	return nil
}

// GetSpecialistsPaginated public ana sayfa için uzman listesini getirir
// (metin araması + kategori filtresi + sayfalama).
func (s *ProfileService) GetSpecialistsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()

	profiles, totalCount, err := s.repo.FindSpecialistsPaginated(ctx, params)
	if err != nil {
		configslog.Log.Error("Uzman listesi alınırken hata", zap.Error(err))
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: profiles,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// ListProfessions seed edilen meslek alanlarını döndürür (form ve filtre için).
func (s *ProfileService) ListProfessions(ctx context.Context) ([]models.Profession, error) {
	return s.professionRepo.FindAll(ctx)
}

var _ IProfileService = (*ProfileService)(nil)
