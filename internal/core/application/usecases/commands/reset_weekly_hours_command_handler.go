package commands

import (
	"context"
)

// ResetWeeklyHoursCommandHandler starts a new fatigue week: total_hours_week goes
// back to zero for every employee. Consecutive delivery counters are not touched.
type ResetWeeklyHoursCommandHandler struct {
	uowFactory CrewUoWFactory
}

func NewResetWeeklyHoursCommandHandler(uowFactory CrewUoWFactory) ResetWeeklyHoursCommandHandler {
	return ResetWeeklyHoursCommandHandler{uowFactory: uowFactory}
}

func (h ResetWeeklyHoursCommandHandler) Handle(ctx context.Context) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	affected, err := uow.EmployeeRepository().ResetWeeklyHours(ctx)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return affected, nil
}
