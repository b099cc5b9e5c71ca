package queries

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

type ListRoutesQueryHandler struct {
	db *gorm.DB
}

func NewListRoutesQueryHandler(db *gorm.DB) ListRoutesQueryHandler {
	return ListRoutesQueryHandler{db: db}
}

func (h ListRoutesQueryHandler) Handle(ctx context.Context, query ListRoutesQuery) ([]RouteView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.Actor().CanActFor(query.StoreID()); err != nil {
		return nil, err
	}

	routes, err := loadRoutes(ctx, h.db, `store_id = ?`, query.StoreID().Bytes())
	if err != nil {
		return nil, err
	}

	views := make([]RouteView, 0, len(routes))
	for _, r := range routes {
		views = append(views, RouteView{
			ID:              r.ID(),
			StoreID:         r.StoreID(),
			Name:            r.Name(),
			Area:            r.Area(),
			MaxDeliveryTime: r.MaxDeliveryTime(),
		})
	}
	return views, nil
}

type routeRow struct {
	ID                 uuid.UUID
	StoreID            uuid.UUID
	Name               string
	Area               string
	MaxDeliveryMinutes int
}

func loadRoutes(ctx context.Context, db *gorm.DB, where string, args ...any) ([]*route.Route, error) {
	var rows []routeRow
	if err := db.WithContext(ctx).
		Table("routes").
		Select("id, store_id, name, area, max_delivery_minutes").
		Where(where, args...).
		Order("name, id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	routes := make([]*route.Route, 0, len(rows))
	for _, r := range rows {
		ids, err := toKernelIDs(r.ID, r.StoreID)
		if err != nil {
			return nil, err
		}
		rt, err := route.NewRoute(ids[0], ids[1], r.Name, r.Area, time.Duration(r.MaxDeliveryMinutes)*time.Minute)
		if err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, nil
}

func loadRoute(ctx context.Context, db *gorm.DB, id kernel.UUID) (*route.Route, error) {
	routes, err := loadRoutes(ctx, db, `id = ?`, id.Bytes())
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, errs.NewObjectNotFoundError("route", id.String())
	}
	return routes[0], nil
}

var errRouteOfOtherStore = errors.New("route belongs to another store")
