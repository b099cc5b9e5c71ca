package queries

import (
	"context"

	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListEligibleCrewQueryHandler applies the same eligibility predicate the dispatcher
// uses, without locking. The answer can be stale by the time a delivery is assigned.
type ListEligibleCrewQueryHandler struct {
	db          *gorm.DB
	eligibility services.CrewEligibility
}

func NewListEligibleCrewQueryHandler(db *gorm.DB) ListEligibleCrewQueryHandler {
	return ListEligibleCrewQueryHandler{db: db, eligibility: services.NewCrewEligibility()}
}

func (h ListEligibleCrewQueryHandler) Handle(ctx context.Context, query ListEligibleCrewQuery) (EligibleCrew, error) {
	if err := query.Validate(); err != nil {
		return EligibleCrew{}, err
	}
	actor := query.Actor()
	if err := actor.CanActFor(query.StoreID()); err != nil {
		return EligibleCrew{}, err
	}

	r, err := loadRoute(ctx, h.db, query.RouteID())
	if err != nil {
		return EligibleCrew{}, err
	}
	if !r.BelongsTo(query.StoreID()) {
		return EligibleCrew{}, errs.NewValueIsInvalidErrorWithCause("route_id", errRouteOfOtherStore)
	}

	q := h.db.WithContext(ctx).Table("employees").
		Where("status = ? AND next_available_time <= ?", int(employee.Available), query.At().UTC())
	if !actor.IsCrossStore() {
		q = q.Where("store_id = ?", query.StoreID().Bytes())
	}

	candidates, err := loadEmployees(q)
	if err != nil {
		return EligibleCrew{}, err
	}

	roster := h.eligibility.Partition(candidates, services.EligibilityCriteria{
		StoreID:    query.StoreID(),
		CrossStore: actor.IsCrossStore(),
		RouteHours: r.ExpectedHours(),
		Now:        query.At(),
	})

	result := EligibleCrew{
		RouteID:       r.ID(),
		ExpectedHours: r.ExpectedHours(),
		Drivers:       make([]CrewView, 0, len(roster.Drivers)),
		Assistants:    make([]CrewView, 0, len(roster.Assistants)),
	}
	for _, e := range roster.Drivers {
		result.Drivers = append(result.Drivers, newCrewView(e))
	}
	for _, e := range roster.Assistants {
		result.Assistants = append(result.Assistants, newCrewView(e))
	}
	return result, nil
}
