// Package trainrepo persists the Train aggregate. Utilization is not a column: it is
// summed from the non-cancelled allocations whenever a train is loaded.
package trainrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/train"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TrainDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code               string          `gorm:"uniqueIndex;not null"`
	CapacitySpace      decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	ScheduledDeparture time.Time       `gorm:"not null"`
	ScheduledArrival   time.Time       `gorm:"not null"`
	Status             int             `gorm:"not null"`
}

func (TrainDTO) TableName() string {
	return "trains"
}

func fromDomain(t *train.Train) TrainDTO {
	return TrainDTO{
		ID:                 t.ID().Bytes(),
		Code:               t.Code(),
		CapacitySpace:      t.Capacity().Decimal(),
		ScheduledDeparture: t.DepartureTime().UTC(),
		ScheduledArrival:   t.ArrivalTime().UTC(),
		Status:             int(t.Status()),
	}
}

func toDomain(dto TrainDTO, used decimal.Decimal) (*train.Train, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	capacity, err := kernel.NewSpace(dto.CapacitySpace)
	if err != nil {
		return nil, err
	}
	usedSpace, err := kernel.NewSpace(used)
	if err != nil {
		return nil, err
	}

	return train.RestoreTrain(
		id,
		dto.Code,
		capacity,
		dto.ScheduledDeparture,
		dto.ScheduledArrival,
		train.Status(dto.Status),
		usedSpace,
	)
}
