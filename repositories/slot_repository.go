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
)

// ISlotRepository slot veritabanı işlemleri için arayüz.
//
// Book ve Release koşullu tek satırlık UPDATE'lerdir: kontrol ve yazma aynı
// SQL ifadesinde olduğundan iki eşzamanlı çağrıdan yalnız biri satırı etkiler.
type ISlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	FindByID(ctx context.Context, id uint) (*models.Slot, error)
	FindBySpecialist(ctx context.Context, specialistID uint, fromDate time.Time, onlyOpen bool) ([]models.Slot, error)
	FindByClient(ctx context.Context, clientID uint, fromDate time.Time) ([]models.Slot, error)
	Book(ctx context.Context, slotID, clientID uint) (bool, error)
	Release(ctx context.Context, slotID uint) (bool, error)
	Delete(ctx context.Context, slotID uint) error
	CountBySpecialist(ctx context.Context, specialistID uint, onlyOpen bool) (int64, error)
}

// SlotRepository ISlotRepository arayüzünü uygular.
type SlotRepository struct {
	db *gorm.DB
}

// NewSlotRepository yeni bir SlotRepository örneği oluşturur.
func NewSlotRepository() ISlotRepository {
	return NewSlotRepositoryWithDB(configsdatabase.GetDB())
}

// NewSlotRepositoryWithDB verilen DB örneğiyle repository oluşturur.
func NewSlotRepositoryWithDB(db *gorm.DB) ISlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir slot ekler. (specialist_id, date, time) unique index'i
// ihlal edilirse hata sürücüden döner (gorm.ErrDuplicatedKey), ayrıca
// check-then-insert yapılmaz; eşzamanlı çift gönderimde de tek kayıt oluşur.
func (r *SlotRepository) Create(ctx context.Context, slot *models.Slot) error {
	if slot == nil || slot.SpecialistID == 0 {
		return errors.New("geçersiz uzman bilgisi olan slot oluşturulamaz")
	}
	return r.getDB(ctx).Create(slot).Error
}

func (r *SlotRepository) FindByID(ctx context.Context, id uint) (*models.Slot, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Slot ID")
	}
	var slot models.Slot
	err := r.getDB(ctx).Preload("Specialist").Preload("Client").First(&slot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SlotRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &slot, nil
}

// FindBySpecialist uzmanın fromDate ve sonrasındaki slotlarını
// (date, time) artan sırada getirir. onlyOpen=true ise rezerveli slotlar elenir.
func (r *SlotRepository) FindBySpecialist(ctx context.Context, specialistID uint, fromDate time.Time, onlyOpen bool) ([]models.Slot, error) {
	if specialistID == 0 {
		return nil, errors.New("geçersiz uzman ID")
	}
	query := r.getDB(ctx).
		Where("specialist_id = ? AND date >= ?", specialistID, fromDate.Format("2006-01-02")).
		Order("date asc, time asc")
	if onlyOpen {
		query = query.Where("is_booked = ?", false)
	}

	var slots []models.Slot
	if err := query.Find(&slots).Error; err != nil {
		configslog.Log.Error("SlotRepository.FindBySpecialist: DB error", zap.Uint("specialist_id", specialistID), zap.Error(err))
		return nil, err
	}
	return slots, nil
}

// FindByClient danışanın rezerve ettiği slotları (date, time) artan sırada getirir.
func (r *SlotRepository) FindByClient(ctx context.Context, clientID uint, fromDate time.Time) ([]models.Slot, error) {
	if clientID == 0 {
		return nil, errors.New("geçersiz danışan ID")
	}
	var slots []models.Slot
	err := r.getDB(ctx).
		Where("client_id = ? AND date >= ?", clientID, fromDate.Format("2006-01-02")).
		Order("date asc, time asc").
		Preload("Specialist").
		Find(&slots).Error
	if err != nil {
		configslog.Log.Error("SlotRepository.FindByClient: DB error", zap.Uint("client_id", clientID), zap.Error(err))
		return nil, err
	}
	return slots, nil
}

// Book atomik test-and-set: slot yalnız hâlâ açıksa rezerve edilir.
// false dönüşü satırın etkilenmediğini (slot yok ya da çoktan rezerveli)
// söyler; ayrımı çağıran yapar.
func (r *SlotRepository) Book(ctx context.Context, slotID, clientID uint) (bool, error) {
	if slotID == 0 || clientID == 0 {
		return false, errors.New("geçersiz slot veya danışan ID")
	}
	result := r.getDB(ctx).Model(&models.Slot{}).
		Where("id = ? AND is_booked = ?", slotID, false).
		Updates(map[string]interface{}{"is_booked": true, "client_id": clientID})
	if result.Error != nil {
		configslog.Log.Error("SlotRepository.Book: DB error", zap.Uint("slot_id", slotID), zap.Error(result.Error))
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Release rezerveli slotu tekrar açığa alır (is_booked=false, client_id=NULL).
// Book ile aynı koşullu UPDATE deseni: slot açıksa satır etkilenmez.
func (r *SlotRepository) Release(ctx context.Context, slotID uint) (bool, error) {
	if slotID == 0 {
		return false, errors.New("geçersiz Slot ID")
	}
	result := r.getDB(ctx).Model(&models.Slot{}).
		Where("id = ? AND is_booked = ?", slotID, true).
		Updates(map[string]interface{}{"is_booked": false, "client_id": nil})
	if result.Error != nil {
		configslog.Log.Error("SlotRepository.Release: DB error", zap.Uint("slot_id", slotID), zap.Error(result.Error))
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete slotu kalıcı olarak siler. Soft delete kullanılmaz; silinen üçlünün
// unique index'i işgal edip aynı (date, time) için yeniden slot açılmasını
// engellememesi gerekir.
func (r *SlotRepository) Delete(ctx context.Context, slotID uint) error {
	if slotID == 0 {
		return errors.New("silinecek slot geçerli değil")
	}
	result := r.getDB(ctx).Unscoped().Delete(&models.Slot{}, slotID)
	if result.Error != nil {
		configslog.Log.Error("SlotRepository.Delete: DB error", zap.Uint("slot_id", slotID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SlotRepository) CountBySpecialist(ctx context.Context, specialistID uint, onlyOpen bool) (int64, error) {
	if specialistID == 0 {
		return 0, errors.New("geçersiz uzman ID")
	}
	query := r.getDB(ctx).Model(&models.Slot{}).Where("specialist_id = ?", specialistID)
	if onlyOpen {
		query = query.Where("is_booked = ?", false)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

var _ ISlotRepository = (*SlotRepository)(nil)
