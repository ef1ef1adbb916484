package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"
	"uzmanrandevu.link/repositories"
)

// SlotServiceError özel servis hataları
type SlotServiceError string

func (e SlotServiceError) Error() string { return string(e) }

// Hata sabitleri
const (
	ErrSlotNotFound       SlotServiceError = "slot bulunamadı"
	ErrSlotDuplicate      SlotServiceError = "bu tarih ve saat için zaten bir slot mevcut"
	ErrSlotForbidden      SlotServiceError = "bu işlem için yetkiniz yok"
	ErrSlotInvalidInput   SlotServiceError = "geçersiz slot girdisi"
	ErrSlotCreationFailed SlotServiceError = "slot oluşturulamadı"
	ErrSlotDeletionFailed SlotServiceError = "slot silinemedi"
	ErrSlotNotBooked      SlotServiceError = "slot zaten açık durumda"
	ErrSlotReleaseFailed  SlotServiceError = "slot serbest bırakılamadı"
)

// ISlotService slot yaşam döngüsü (oluşturma, listeleme, silme, serbest
// bırakma) işlemleri için arayüz. Rezervasyon BookingService'tedir.
type ISlotService interface {
	CreateSlot(ctx context.Context, specialistID uint, date, timeOfDay string) (*models.Slot, error)
	GetSlotByID(ctx context.Context, id uint) (*models.Slot, error)
	ListSlotsForSpecialist(ctx context.Context, specialistID uint, fromDate time.Time, onlyOpen bool) ([]models.Slot, error)
	ListBookingsForClient(ctx context.Context, clientID uint, fromDate time.Time) ([]models.Slot, error)
	DeleteSlot(ctx context.Context, slotID, requesterID uint) error
	ReleaseSlot(ctx context.Context, slotID, requesterID uint) error
	CountSlotsForSpecialist(ctx context.Context, specialistID uint, onlyOpen bool) (int64, error)
}

// SlotService ISlotService arayüzünü uygular.
type SlotService struct {
	repo     repositories.ISlotRepository
	userRepo repositories.IUserRepository
}

// NewSlotService yeni bir SlotService örneği oluşturur.
func NewSlotService() ISlotService {
	return NewSlotServiceWithDeps(repositories.NewSlotRepository(), repositories.NewUserRepository())
}

// NewSlotServiceWithDeps bağımlılıkları dışarıdan alır (test için).
func NewSlotServiceWithDeps(repo repositories.ISlotRepository, userRepo repositories.IUserRepository) ISlotService {
	return &SlotService{repo: repo, userRepo: userRepo}
}

// ValidateSlotInput tarih ("2006-01-02") ve saat ("15:04") formatlarını doğrular.
func ValidateSlotInput(date, timeOfDay string) (time.Time, string, error) {
	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: tarih GG-AA-YYYY değil YYYY-AA-GG formatında olmalı", ErrSlotInvalidInput)
	}
	parsedTime, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: saat SS:DD formatında olmalı", ErrSlotInvalidInput)
	}
	return parsedDate, parsedTime.Format("15:04"), nil
}

// CreateSlot uzman adına yeni bir slot yayınlar. Aynı (uzman, tarih, saat)
// üçlüsü zaten varsa ErrSlotDuplicate döner; benzersizlik DB constraint'ine
// dayandığından eşzamanlı çift gönderimde de yalnız biri başarılı olur.
func (s *SlotService) CreateSlot(ctx context.Context, specialistID uint, date, timeOfDay string) (*models.Slot, error) {
	if specialistID == 0 {
		return nil, fmt.Errorf("%w: geçersiz uzman ID", ErrSlotInvalidInput)
	}
	parsedDate, normalizedTime, err := ValidateSlotInput(date, timeOfDay)
	if err != nil {
		return nil, err
	}

	slot := &models.Slot{
		SpecialistID: specialistID,
		Date:         parsedDate,
		Time:         normalizedTime,
		IsBooked:     false,
		ClientID:     nil,
	}

	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, specialistID)
	if err := s.repo.Create(ctxWithUser, slot); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrSlotDuplicate
		}
		configslog.Log.Error("Slot oluşturulurken repository hatası",
			zap.Uint("specialist_id", specialistID), zap.String("date", date), zap.String("time", normalizedTime), zap.Error(err))
		return nil, ErrSlotCreationFailed
	}

	configslog.SLog.Infof("Slot oluşturuldu: ID %d (Uzman: %d, %s %s)", slot.ID, specialistID, slot.DateString(), slot.Time)
	return slot, nil
}

// GetSlotByID slotu ID ile getirir.
func (s *SlotService) GetSlotByID(ctx context.Context, id uint) (*models.Slot, error) {
	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}

// ListSlotsForSpecialist uzmanın fromDate ve sonrasındaki slotlarını
// (tarih, saat) artan sırada döndürür. Public görünüm onlyOpen=true ile çağırır;
// uzmanın kendi yönetim görünümü rezerveli slotları da görür.
func (s *SlotService) ListSlotsForSpecialist(ctx context.Context, specialistID uint, fromDate time.Time, onlyOpen bool) ([]models.Slot, error) {
	if specialistID == 0 {
		return nil, fmt.Errorf("%w: geçersiz uzman ID", ErrSlotInvalidInput)
	}
	slots, err := s.repo.FindBySpecialist(ctx, specialistID, fromDate, onlyOpen)
	if err != nil {
		configslog.Log.Error("Uzman slotları alınırken hata", zap.Uint("specialist_id", specialistID), zap.Error(err))
		return nil, err
	}
	return slots, nil
}

// ListBookingsForClient danışanın rezervasyonlarını döndürür.
func (s *SlotService) ListBookingsForClient(ctx context.Context, clientID uint, fromDate time.Time) ([]models.Slot, error) {
	if clientID == 0 {
		return nil, fmt.Errorf("%w: geçersiz danışan ID", ErrSlotInvalidInput)
	}
	slots, err := s.repo.FindByClient(ctx, clientID, fromDate)
	if err != nil {
		configslog.Log.Error("Danışan rezervasyonları alınırken hata", zap.Uint("client_id", clientID), zap.Error(err))
		return nil, err
	}
	return slots, nil
}

// DeleteSlot slotu siler. Yalnız sahibi (veya sistem yöneticisi) silebilir.
// Rezerveli slot da silinir; danışana bildirim gönderilmez, rezervasyon
// sessizce düşer.
func (s *SlotService) DeleteSlot(ctx context.Context, slotID, requesterID uint) error {
	if slotID == 0 || requesterID == 0 {
		return fmt.Errorf("%w: geçersiz slot veya kullanıcı ID", ErrSlotInvalidInput)
	}

	slot, err := s.repo.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSlotNotFound
		}
		return err
	}

	if err := s.authorizeOwner(ctx, slot, requesterID); err != nil {
		return err
	}

	if slot.IsBooked && slot.ClientID != nil {
		configslog.SLog.Warnf("Rezerveli slot siliniyor: ID %d (Danışan: %d, bildirim yok)", slot.ID, *slot.ClientID)
	}

	if err := s.repo.Delete(ctx, slotID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSlotNotFound
		}
		configslog.Log.Error("Slot silinirken hata", zap.Uint("slot_id", slotID), zap.Error(err))
		return ErrSlotDeletionFailed
	}

	configslog.SLog.Infof("Slot silindi: ID %d (Silen: %d)", slotID, requesterID)
	return nil
}

// ReleaseSlot rezerveli slotu tekrar açığa alır. Yalnız sahibi (veya sistem
// yöneticisi) çağırabilir; danışan tarafı iptal operasyonu yoktur.
func (s *SlotService) ReleaseSlot(ctx context.Context, slotID, requesterID uint) error {
	if slotID == 0 || requesterID == 0 {
		return fmt.Errorf("%w: geçersiz slot veya kullanıcı ID", ErrSlotInvalidInput)
	}

	slot, err := s.repo.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSlotNotFound
		}
		return err
	}

	if err := s.authorizeOwner(ctx, slot, requesterID); err != nil {
		return err
	}
	if !slot.IsBooked {
		return ErrSlotNotBooked
	}

	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, requesterID)
	released, err := s.repo.Release(ctxWithUser, slotID)
	if err != nil {
		configslog.Log.Error("Slot serbest bırakılırken hata", zap.Uint("slot_id", slotID), zap.Error(err))
		return ErrSlotReleaseFailed
	}
	if !released {
		// Okuma ile güncelleme arasında slot çoktan açığa alınmış.
		return ErrSlotNotBooked
	}

	configslog.SLog.Infof("Slot serbest bırakıldı: ID %d (İşleyen: %d)", slotID, requesterID)
	return nil
}

// CountSlotsForSpecialist panel sayaçları için slot sayısını döndürür.
func (s *SlotService) CountSlotsForSpecialist(ctx context.Context, specialistID uint, onlyOpen bool) (int64, error) {
	count, err := s.repo.CountBySpecialist(ctx, specialistID, onlyOpen)
	if err != nil {
		configslog.Log.Error("Uzman slot sayısı alınırken hata", zap.Uint("specialist_id", specialistID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// authorizeOwner slot sahibi veya sistem yöneticisi dışındakileri reddeder.
func (s *SlotService) authorizeOwner(ctx context.Context, slot *models.Slot, requesterID uint) error {
	if slot.SpecialistID == requesterID {
		return nil
	}
	requester, err := s.userRepo.FindByID(ctx, requesterID)
	if err != nil || !requester.IsSystem {
		return ErrSlotForbidden
	}
	return nil
}

var _ ISlotService = (*SlotService)(nil)
