package services

import (
	"context"
	"errors"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"
	"uzmanrandevu.link/pkg/queryparams"
	"uzmanrandevu.link/repositories"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

// fakeSlotRepo gerçek repository ile aynı sözleşmeyi bellek üzerinde uygular:
// Create unique constraint'i taklit eder, Book/Release koşullu ve atomiktir
// (mutex altında test-and-set), Delete kalıcıdır.
type fakeSlotRepo struct {
	mu     sync.Mutex
	nextID uint
	slots  map[uint]*models.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{nextID: 1, slots: make(map[uint]*models.Slot)}
}

func copySlot(s *models.Slot) *models.Slot {
	dup := *s
	if s.ClientID != nil {
		clientID := *s.ClientID
		dup.ClientID = &clientID
	}
	return &dup
}

func (r *fakeSlotRepo) Create(_ context.Context, slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.slots {
		if existing.SpecialistID == slot.SpecialistID &&
			existing.Date.Equal(slot.Date) && existing.Time == slot.Time {
			return errors.New(`ERROR: duplicate key value violates unique constraint "idx_slots_specialist_date_time" (SQLSTATE 23505)`)
		}
	}
	slot.ID = r.nextID
	r.nextID++
	r.slots[slot.ID] = copySlot(slot)
	return nil
}

func (r *fakeSlotRepo) FindByID(_ context.Context, id uint) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copySlot(slot), nil
}

func (r *fakeSlotRepo) FindBySpecialist(_ context.Context, specialistID uint, fromDate time.Time, onlyOpen bool) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	from := fromDate.Format("2006-01-02")
	var result []models.Slot
	for _, slot := range r.slots {
		if slot.SpecialistID != specialistID || slot.DateString() < from {
			continue
		}
		if onlyOpen && slot.IsBooked {
			continue
		}
		result = append(result, *copySlot(slot))
	}
	sortSlots(result)
	return result, nil
}

func (r *fakeSlotRepo) FindByClient(_ context.Context, clientID uint, fromDate time.Time) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	from := fromDate.Format("2006-01-02")
	var result []models.Slot
	for _, slot := range r.slots {
		if slot.ClientID == nil || *slot.ClientID != clientID || slot.DateString() < from {
			continue
		}
		result = append(result, *copySlot(slot))
	}
	sortSlots(result)
	return result, nil
}

func (r *fakeSlotRepo) Book(_ context.Context, slotID, clientID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if !ok || slot.IsBooked {
		return false, nil
	}
	slot.IsBooked = true
	slot.ClientID = &clientID
	return true, nil
}

func (r *fakeSlotRepo) Release(_ context.Context, slotID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if !ok || !slot.IsBooked {
		return false, nil
	}
	slot.IsBooked = false
	slot.ClientID = nil
	return true, nil
}

func (r *fakeSlotRepo) Delete(_ context.Context, slotID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[slotID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.slots, slotID)
	return nil
}

func (r *fakeSlotRepo) CountBySpecialist(_ context.Context, specialistID uint, onlyOpen bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, slot := range r.slots {
		if slot.SpecialistID != specialistID {
			continue
		}
		if onlyOpen && slot.IsBooked {
			continue
		}
		count++
	}
	return count, nil
}

func sortSlots(slots []models.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].Time < slots[j].Time
	})
}

var _ repositories.ISlotRepository = (*fakeSlotRepo)(nil)

// fakeUserRepo servislerin kimlik/rol kontrolleri için kullanıcıları bellekte tutar.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)
		}
	}
	user.ID = uint(len(r.users) + 1)
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	dup := *user
	return &dup, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			dup := *user
			return &dup, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindByResetToken(_ context.Context, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ResetToken != nil && *user.ResetToken == token {
			dup := *user
			return &dup, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if v, ok := fields["is_active"].(bool); ok {
		user.IsActive = v
	}
	if v, ok := fields["has_active_plan"].(bool); ok {
		user.HasActivePlan = v
	}
	if v, ok := fields["password"].(string); ok {
		user.Password = v
	}
	if v, present := fields["reset_token"]; present {
		if token, ok := v.(string); ok {
			user.ResetToken = &token
		} else {
			user.ResetToken = nil
		}
	}
	if v, present := fields["reset_token_expires_at"]; present {
		if expiresAt, ok := v.(time.Time); ok {
			user.ResetTokenExpiresAt = &expiresAt
		} else {
			user.ResetTokenExpiresAt = nil
		}
	}
	return nil
}

func (r *fakeUserRepo) FindAllPaginated(_ context.Context, _ queryparams.ListParams) ([]models.User, int64, error) {
	return nil, 0, errors.New("fake'te desteklenmiyor")
}

func (r *fakeUserRepo) Delete(_ context.Context, user *models.User, _ uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, user.ID)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

var _ repositories.IUserRepository = (*fakeUserRepo)(nil)
