// Package truckrepo persists trucks and their availability flag.
package truckrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/sqlkit"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/truck"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TruckDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID     uuid.UUID `gorm:"type:uuid;not null;index:idx_trucks_store"`
	PlateNumber string    `gorm:"uniqueIndex;not null"`
	Available   bool      `gorm:"not null"`
}

func (TruckDTO) TableName() string {
	return "trucks"
}

type GormTruckRepository struct {
	db *gorm.DB
}

func NewGormTruckRepository(db *gorm.DB) *GormTruckRepository {
	return &GormTruckRepository{db: db}
}

func (r *GormTruckRepository) Add(ctx context.Context, t *truck.Truck) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := fromDomain(t)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, ok := sqlkit.UniqueViolation(err); ok {
			return errs.NewValueIsInvalidErrorWithCause("plate_number", err)
		}
		return err
	}
	return nil
}

// Update writes the availability flag. GORM skips zero values in struct updates, so a map is used.
func (r *GormTruckRepository) Update(ctx context.Context, t *truck.Truck) error {
	if err := t.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&TruckDTO{}).
		Where("id = ?", t.ID().Bytes()).
		Updates(map[string]any{"available": t.IsAvailable()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormTruckRepository) Get(ctx context.Context, id kernel.UUID) (*truck.Truck, error) {
	return r.load(r.db.WithContext(ctx), id)
}

func (r *GormTruckRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*truck.Truck, error) {
	return r.load(sqlkit.ForUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormTruckRepository) load(q *gorm.DB, id kernel.UUID) (*truck.Truck, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TruckDTO
	if err := q.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("truck", id.String())
		}
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}
	return truck.RestoreTruck(id, storeID, dto.PlateNumber, dto.Available)
}

func fromDomain(t *truck.Truck) TruckDTO {
	return TruckDTO{
		ID:          t.ID().Bytes(),
		StoreID:     t.StoreID().Bytes(),
		PlateNumber: t.PlateNumber(),
		Available:   t.IsAvailable(),
	}
}
