package services

import (
	"context"
	"errors"
	"sync"

	"uzmanrandevu.link/models"
	"uzmanrandevu.link/pkg/queryparams"
	"uzmanrandevu.link/repositories"
)

// fakeProfileRepo uzman profillerini bellekte tutar; user_id üzerindeki
// unique constraint'i taklit eder.
type fakeProfileRepo struct {
	mu       sync.Mutex
	nextID   uint
	profiles map[uint]*models.SpecialistProfile
	users    *fakeUserRepo // Preload taklidi için
}

func newFakeProfileRepo(users *fakeUserRepo) *fakeProfileRepo {
	return &fakeProfileRepo{nextID: 1, profiles: make(map[uint]*models.SpecialistProfile), users: users}
}

func (r *fakeProfileRepo) attachUser(profile *models.SpecialistProfile) {
	if r.users == nil {
		return
	}
	if user, err := r.users.FindByID(context.Background(), profile.UserID); err == nil {
		profile.User = *user
	}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *models.SpecialistProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.profiles {
		if existing.UserID == profile.UserID {
			return errors.New(`ERROR: duplicate key value violates unique constraint "idx_specialist_profiles_user_id" (SQLSTATE 23505)`)
		}
	}
	profile.ID = r.nextID
	r.nextID++
	dup := *profile
	r.profiles[profile.ID] = &dup
	return nil
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id uint) (*models.SpecialistProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	dup := *profile
	r.attachUser(&dup)
	return &dup, nil
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID uint) (*models.SpecialistProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			dup := *profile
			r.attachUser(&dup)
			return &dup, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *models.SpecialistProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; !ok {
		return repositories.ErrNotFound
	}
	dup := *profile
	r.profiles[profile.ID] = &dup
	return nil
}

func (r *fakeProfileRepo) FindSpecialistsPaginated(_ context.Context, _ queryparams.ListParams) ([]models.SpecialistProfile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.SpecialistProfile
	for _, profile := range r.profiles {
		dup := *profile
		r.attachUser(&dup)
		if !dup.User.IsSpecialist || !dup.User.IsActive || dup.Price == nil {
			continue
		}
		result = append(result, dup)
	}
	return result, int64(len(result)), nil
}

var _ repositories.IProfileRepository = (*fakeProfileRepo)(nil)

// fakeProfessionRepo seed edilmiş meslek listesini taklit eder.
type fakeProfessionRepo struct {
	professions []models.Profession
}

func newFakeProfessionRepo(names ...string) *fakeProfessionRepo {
	repo := &fakeProfessionRepo{}
	for i, name := range names {
		repo.professions = append(repo.professions, models.Profession{
			BaseModel: models.BaseModel{ID: uint(i + 1)},
			Name:      name,
		})
	}
	return repo
}

func (r *fakeProfessionRepo) FindAll(_ context.Context) ([]models.Profession, error) {
	return r.professions, nil
}

func (r *fakeProfessionRepo) FindByID(_ context.Context, id uint) (*models.Profession, error) {
	for i := range r.professions {
		if r.professions[i].ID == id {
			return &r.professions[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProfessionRepo) FindByName(_ context.Context, name string) (*models.Profession, error) {
	for i := range r.professions {
		if r.professions[i].Name == name {
			return &r.professions[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

var _ repositories.IProfessionRepository = (*fakeProfessionRepo)(nil)
