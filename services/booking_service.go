package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"uzmanrandevu.link/configs/configsapp"
	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"
	"uzmanrandevu.link/repositories"
)

// BookingServiceError özel servis hataları
type BookingServiceError string

func (e BookingServiceError) Error() string { return string(e) }

// Hata sabitleri
const (
	ErrBookingSlotNotFound  BookingServiceError = "rezerve edilecek slot bulunamadı"
	ErrSlotAlreadyBooked    BookingServiceError = "slot başka bir danışan tarafından rezerve edildi"
	ErrBookingRoleViolation BookingServiceError = "uzman hesapları rezervasyon yapamaz"
	ErrBookingAccessDenied  BookingServiceError = "rezervasyon için aktif bir plan gerekli"
	ErrBookingUserNotFound  BookingServiceError = "danışan hesabı bulunamadı"
	ErrBookingFailed        BookingServiceError = "rezervasyon tamamlanamadı"
)

// IBookingService bir slotun danışan tarafından atomik rezervasyonu.
type IBookingService interface {
	BookSlot(ctx context.Context, slotID, clientID uint) (*models.Slot, error)
}

// BookingService IBookingService arayüzünü uygular.
//
// Rezervasyonun kalbi repo.Book'taki koşullu UPDATE'tir: is_booked kontrolü ve
// yazma tek SQL ifadesinde olduğundan aynı slota yarışan iki danışandan yalnız
// biri başarılı olur; diğeri ErrSlotAlreadyBooked alır.
type BookingService struct {
	slotRepo          repositories.ISlotRepository
	userRepo          repositories.IUserRepository
	requireActivePlan bool
}

// NewBookingService yeni bir BookingService örneği oluşturur; entitlement
// politikası uygulama config'inden okunur.
func NewBookingService() IBookingService {
	return NewBookingServiceWithDeps(
		repositories.NewSlotRepository(),
		repositories.NewUserRepository(),
		configsapp.GetConfig().RequireActivePlan,
	)
}

// NewBookingServiceWithDeps bağımlılıkları ve politikayı dışarıdan alır (test için).
func NewBookingServiceWithDeps(slotRepo repositories.ISlotRepository, userRepo repositories.IUserRepository, requireActivePlan bool) IBookingService {
	return &BookingService{slotRepo: slotRepo, userRepo: userRepo, requireActivePlan: requireActivePlan}
}

// BookSlot verilen slotu danışan adına rezerve eder.
//
// Sıra: rol kontrolü → entitlement kontrolü → atomik test-and-set.
// Başarısız test-and-set mutasyonsuzdur; slotun var olup olmadığına göre
// ErrBookingSlotNotFound ya da ErrSlotAlreadyBooked döner.
func (s *BookingService) BookSlot(ctx context.Context, slotID, clientID uint) (*models.Slot, error) {
	if slotID == 0 || clientID == 0 {
		return nil, fmt.Errorf("%w: geçersiz slot veya danışan ID", ErrBookingFailed)
	}

	client, err := s.userRepo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingUserNotFound
		}
		configslog.Log.Error("BookSlot: danışan yüklenemedi", zap.Uint("client_id", clientID), zap.Error(err))
		return nil, ErrBookingFailed
	}

	if client.IsSpecialist {
		return nil, ErrBookingRoleViolation
	}
	if s.requireActivePlan && !client.HasActivePlan {
		return nil, ErrBookingAccessDenied
	}

	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, clientID)
	booked, err := s.slotRepo.Book(ctxWithUser, slotID, clientID)
	if err != nil {
		configslog.Log.Error("BookSlot: rezervasyon güncellemesi başarısız",
			zap.Uint("slot_id", slotID), zap.Uint("client_id", clientID), zap.Error(err))
		return nil, ErrBookingFailed
	}
	if !booked {
		// Satır etkilenmedi: slot ya hiç yok ya da yarışı başka danışan kazandı.
		if _, findErr := s.slotRepo.FindByID(ctx, slotID); errors.Is(findErr, repositories.ErrNotFound) {
			return nil, ErrBookingSlotNotFound
		}
		return nil, ErrSlotAlreadyBooked
	}

	slot, err := s.slotRepo.FindByID(ctx, slotID)
	if err != nil {
		// Rezervasyon yazıldı ama okuma başarısız; durumu logla, hatayı taşı.
		configslog.Log.Error("BookSlot: rezerve edilen slot okunamadı", zap.Uint("slot_id", slotID), zap.Error(err))
		return nil, ErrBookingFailed
	}

	configslog.SLog.Infof("Slot rezerve edildi: ID %d (Danışan: %d, Uzman: %d, %s %s)",
		slot.ID, clientID, slot.SpecialistID, slot.DateString(), slot.Time)
	return slot, nil
}

var _ IBookingService = (*BookingService)(nil)
