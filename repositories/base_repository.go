package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound repository katmanının ortak "kayıt yok" hatası.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository tekrar eden CRUD işlemleri için generik arayüz.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Save(ctx context.Context, entity *T) error
	Count(ctx context.Context) (int64, error)
	SetAllowedSortColumns(columns []string)
	SortColumnAllowed(column string) bool
}

// BaseRepository IBaseRepository'nin GORM implementasyonu.
type BaseRepository[T any] struct {
	db          *gorm.DB
	sortColumns map[string]struct{}
}

// NewBaseRepository yeni bir generik base repository oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, sortColumns: map[string]struct{}{}}
}

func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.getDB(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.getDB(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.getDB(ctx).Save(entity).Error
}

func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var entity T
	err := r.getDB(ctx).Model(&entity).Count(&count).Error
	return count, err
}

// SetAllowedSortColumns sıralamada kabul edilen sütunları belirler
// (query parametresinden gelen sort_by doğrudan SQL'e girmesin diye).
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.sortColumns = make(map[string]struct{}, len(columns))
	for _, col := range columns {
		r.sortColumns[col] = struct{}{}
	}
}

// SortColumnAllowed sütunun whitelist'te olup olmadığını söyler.
func (r *BaseRepository[T]) SortColumnAllowed(column string) bool {
	_, ok := r.sortColumns[column]
	return ok
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
