package orderrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/sqlkit"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, lines, allocations := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return err
	}
	if err := db.Create(&lines).Error; err != nil {
		return err
	}
	if len(allocations) > 0 {
		if err := db.Create(&allocations).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the derived status, line finalization and every allocation.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, lines, allocations := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Update("status", dto.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	for _, l := range lines {
		if err := db.Model(&LineDTO{}).
			Where("order_id = ? AND product_id = ?", l.OrderID, l.ProductID).
			Update("finalized", l.Finalized).Error; err != nil {
			return err
		}
	}

	if len(allocations) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "finalized", "delivery_id", "arrived_at"}),
		}).Create(&allocations).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order and locks its row.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, sqlkit.ForUpdate(r.db.WithContext(ctx)), id)
}

// ListByTrainForUpdate locks, in id order, every order holding an allocation on the train.
func (r *GormOrderRepository) ListByTrainForUpdate(ctx context.Context, trainID kernel.UUID) ([]*order.Order, error) {
	if err := trainID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	var ids []uuid.UUID
	if err := db.Model(&AllocationDTO{}).
		Distinct("order_id").
		Where("train_id = ?", trainID.Bytes()).
		Pluck("order_id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*order.Order{}, nil
	}

	var dtos []OrderDTO
	if err := sqlkit.ForUpdate(db).Where("id IN ?", ids).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.assemble(ctx, dtos)
}

func (r *GormOrderRepository) load(ctx context.Context, q *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := q.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	orders, err := r.assemble(ctx, []OrderDTO{dto})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// assemble loads lines and allocations for dtos in two queries and keeps dtos' order.
func (r *GormOrderRepository) assemble(ctx context.Context, dtos []OrderDTO) ([]*order.Order, error) {
	ids := make([]uuid.UUID, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}

	db := r.db.WithContext(ctx)

	var lines []LineDTO
	if err := db.Where("order_id IN ?", ids).Order("product_id").Find(&lines).Error; err != nil {
		return nil, err
	}
	var allocations []AllocationDTO
	if err := db.Where("order_id IN ?", ids).Order("allocated_at, id").Find(&allocations).Error; err != nil {
		return nil, err
	}

	linesByOrder := make(map[uuid.UUID][]LineDTO, len(dtos))
	for _, l := range lines {
		linesByOrder[l.OrderID] = append(linesByOrder[l.OrderID], l)
	}
	allocationsByOrder := make(map[uuid.UUID][]AllocationDTO, len(dtos))
	for _, a := range allocations {
		allocationsByOrder[a.OrderID] = append(allocationsByOrder[a.OrderID], a)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto, linesByOrder[dto.ID], allocationsByOrder[dto.ID])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
