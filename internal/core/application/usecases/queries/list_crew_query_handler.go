package queries

import (
	"context"

	"logistics/internal/core/domain/model/employee"

	"gorm.io/gorm"
)

type ListCrewQueryHandler struct {
	db *gorm.DB
}

func NewListCrewQueryHandler(db *gorm.DB) ListCrewQueryHandler {
	return ListCrewQueryHandler{db: db}
}

func (h ListCrewQueryHandler) Handle(ctx context.Context, query ListCrewQuery) ([]CrewView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.Actor().CanActFor(query.StoreID()); err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).Table("employees").Where("store_id = ?", query.StoreID().Bytes())
	if query.Role() != nil {
		q = q.Where("role = ?", int(*query.Role()))
	}

	employees, err := loadEmployees(q)
	if err != nil {
		return nil, err
	}

	views := make([]CrewView, 0, len(employees))
	for _, e := range employees {
		views = append(views, newCrewView(e))
	}
	return views, nil
}

// loadEmployees reads employees matching q ordered by role, then name.
func loadEmployees(q *gorm.DB) ([]*employee.Employee, error) {
	var rows []employeeRow
	if err := q.Select(`id, name, role, store_id, status, consecutive_deliveries,
		total_hours_week, next_available_time, last_delivery_time`).
		Order("role, name, id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	employees := make([]*employee.Employee, 0, len(rows))
	for _, r := range rows {
		e, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}
