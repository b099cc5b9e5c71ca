package trainrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/sqlkit"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/train"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTrainRepository implements ports.TrainRepository using GORM.
type GormTrainRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTrainRepository(db *gorm.DB, tracker aggregateTracker) *GormTrainRepository {
	return &GormTrainRepository{db: db, tracker: tracker}
}

// Add saves a new train. A duplicate code is reported as an invalid value.
func (r *GormTrainRepository) Add(ctx context.Context, aggregate *train.Train) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, ok := sqlkit.UniqueViolation(err); ok {
			return errs.NewValueIsInvalidErrorWithCause("code", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the train status. Utilization needs no write.
func (r *GormTrainRepository) Update(ctx context.Context, aggregate *train.Train) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TrainDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status": dto.Status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTrainRepository) Get(ctx context.Context, id kernel.UUID) (*train.Train, error) {
	return r.load(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate locks the train row before summing its allocations.
func (r *GormTrainRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*train.Train, error) {
	return r.load(ctx, sqlkit.ForUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormTrainRepository) load(ctx context.Context, q *gorm.DB, id kernel.UUID) (*train.Train, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TrainDTO
	if err := q.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("train", id.String())
		}
		return nil, err
	}

	used, err := UsedSpace(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, used)
}

// UsedSpace sums allocated_qty × unit_space over the train's non-cancelled allocations.
func UsedSpace(ctx context.Context, db *gorm.DB, trainID kernel.UUID) (decimal.Decimal, error) {
	var used decimal.Decimal
	err := db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(allocated_qty * unit_space), 0)
		FROM allocations
		WHERE train_id = ? AND status <> ?
	`, trainID.Bytes(), int(order.AllocationCancelled)).Row().Scan(&used)
	if err != nil {
		return decimal.Zero, err
	}
	return used.Round(4), nil
}
