package queries

import (
	"context"
	"database/sql"
	"errors"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetTrainQueryHandler struct {
	db *gorm.DB
}

func NewGetTrainQueryHandler(db *gorm.DB) GetTrainQueryHandler {
	return GetTrainQueryHandler{db: db}
}

func (h GetTrainQueryHandler) Handle(ctx context.Context, query GetTrainQuery) (TrainDetail, error) {
	if err := query.Validate(); err != nil {
		return TrainDetail{}, err
	}

	db := h.db.WithContext(ctx)
	row := db.Raw(trainColumns+` WHERE t.id = ?`, int(order.AllocationCancelled), query.TrainID().Bytes()).Row()
	view, err := scanTrain(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TrainDetail{}, errs.NewObjectNotFoundError("train", query.TrainID().String())
		}
		return TrainDetail{}, err
	}

	allocations, err := listAllocations(ctx, db, `a.train_id = ?`, query.TrainID().Bytes())
	if err != nil {
		return TrainDetail{}, err
	}

	return TrainDetail{TrainView: view, Allocations: allocations}, nil
}

// listAllocations runs the allocation join filtered by where.
func listAllocations(ctx context.Context, db *gorm.DB, where string, args ...any) ([]AllocationView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT `+allocationColumns+`
		FROM allocations a
		JOIN orders o ON o.id = a.order_id
		JOIN trains t ON t.id = a.train_id
		WHERE `+where+`
		ORDER BY a.allocated_at, a.id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allocations := make([]AllocationView, 0)
	for rows.Next() {
		view, scanErr := scanAllocation(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		allocations = append(allocations, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return allocations, nil
}
