// Package routerepo persists store routes. The maximum delivery time is stored in
// whole minutes.
package routerepo

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RouteDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID            uuid.UUID `gorm:"type:uuid;not null;index:idx_routes_store"`
	Name               string    `gorm:"not null"`
	Area               string    `gorm:"not null;default:''"`
	MaxDeliveryMinutes int       `gorm:"not null"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

type GormRouteRepository struct {
	db *gorm.DB
}

func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

func (r *GormRouteRepository) Add(ctx context.Context, rt *route.Route) error {
	if err := rt.Validate(); err != nil {
		return err
	}

	dto := RouteDTO{
		ID:                 rt.ID().Bytes(),
		StoreID:            rt.StoreID().Bytes(),
		Name:               rt.Name(),
		Area:               rt.Area(),
		MaxDeliveryMinutes: int(rt.MaxDeliveryTime() / time.Minute),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// ToDomain is shared with the route queries.
func ToDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}
	return route.NewRoute(id, storeID, dto.Name, dto.Area, time.Duration(dto.MaxDeliveryMinutes)*time.Minute)
}
