package deliveryrepo

import (
	"context"
	"errors"
	"strings"

	"logistics/internal/adapters/out/postgres/sqlkit"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db, tracker: tracker}
}

// Add inserts the delivery and its crew. A hit on one of the active-assignment
// indexes means another transaction booked the truck or an employee first.
func (r *GormDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto, crew := fromDomain(d)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return translateConflict(err, d)
	}
	if err := db.Create(&crew).Error; err != nil {
		return translateConflict(err, d)
	}

	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

// Update writes status and actual times, then the crew release marks.
func (r *GormDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto, crew := fromDomain(d)
	db := r.db.WithContext(ctx)

	result := db.Model(&DeliveryDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":           dto.Status,
		"actual_departure": dto.ActualDeparture,
		"actual_arrival":   dto.ActualArrival,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "delivery_id"}, {Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"released_at"}),
	}).Create(&crew).Error; err != nil {
		return translateConflict(err, d)
	}

	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.load(ctx, r.db.WithContext(ctx), id)
}

func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.load(ctx, sqlkit.ForUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormDeliveryRepository) load(ctx context.Context, q *gorm.DB, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := q.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	var crew []CrewDTO
	if err := r.db.WithContext(ctx).
		Where("delivery_id = ?", dto.ID).
		Order("role, employee_id").
		Find(&crew).Error; err != nil {
		return nil, err
	}

	return ToDomain(dto, crew)
}

func translateConflict(err error, d *delivery.Delivery) error {
	constraint, ok := sqlkit.UniqueViolation(err)
	if !ok {
		return err
	}

	if strings.Contains(constraint, "employee") {
		return errs.NewAlreadyAssignedErrorWithCause("employee", crewLabel(d), err)
	}
	return errs.NewAlreadyAssignedErrorWithCause("truck", d.TruckID().String(), err)
}

// crewLabel lists the crew, since the index does not tell which member collided.
func crewLabel(d *delivery.Delivery) string {
	ids := make([]string, 0, len(d.Crew()))
	for _, id := range d.CrewIDs() {
		ids = append(ids, id.String())
	}
	return strings.Join(ids, ",")
}
