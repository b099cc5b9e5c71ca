package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/train"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// trainColumns selects a train together with the space of its non-cancelled
// allocations. The first placeholder is the cancelled allocation status.
const trainColumns = `
	SELECT
		t.id,
		t.code,
		t.capacity_space,
		t.scheduled_departure,
		t.scheduled_arrival,
		t.status,
		COALESCE((
			SELECT SUM(a.allocated_qty * a.unit_space)
			FROM allocations a
			WHERE a.train_id = t.id AND a.status <> ?
		), 0) AS used_space
	FROM trains t`

// ListTrainsQueryHandler reads the train schedule.
type ListTrainsQueryHandler struct {
	db *gorm.DB
}

func NewListTrainsQueryHandler(db *gorm.DB) ListTrainsQueryHandler {
	return ListTrainsQueryHandler{db: db}
}

// Handle returns trains ordered by departure time, then code.
func (h ListTrainsQueryHandler) Handle(ctx context.Context, query ListTrainsQuery) ([]TrainView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := trainColumns
	args := []any{int(order.AllocationCancelled)}
	if query.Status() != nil {
		sqlText += ` WHERE t.status = ?`
		args = append(args, int(*query.Status()))
	}
	sqlText += ` ORDER BY t.scheduled_departure, t.code`

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trains := make([]TrainView, 0)
	for rows.Next() {
		view, scanErr := scanTrain(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		trains = append(trains, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trains, nil
}

func scanTrain(s scanner) (TrainView, error) {
	var (
		id                 uuid.UUID
		code               string
		capacity, used     decimal.Decimal
		departure, arrival time.Time
		status             int
	)
	if err := s.Scan(&id, &code, &capacity, &departure, &arrival, &status, &used); err != nil {
		return TrainView{}, err
	}

	trainID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return TrainView{}, err
	}
	capacitySpace, err := kernel.NewSpace(capacity)
	if err != nil {
		return TrainView{}, err
	}
	usedSpace, err := kernel.NewSpace(used.Round(4))
	if err != nil {
		return TrainView{}, err
	}

	t, err := train.RestoreTrain(trainID, code, capacitySpace, departure, arrival, train.Status(status), usedSpace)
	if err != nil {
		return TrainView{}, err
	}
	return newTrainView(t), nil
}
