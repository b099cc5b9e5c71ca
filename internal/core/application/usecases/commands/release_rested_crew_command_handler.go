package commands

import (
	"context"
)

type ReleaseRestedCrewCommandHandler struct {
	uowFactory CrewUoWFactory
}

func NewReleaseRestedCrewCommandHandler(uowFactory CrewUoWFactory) ReleaseRestedCrewCommandHandler {
	return ReleaseRestedCrewCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of employees made Available.
func (h ReleaseRestedCrewCommandHandler) Handle(ctx context.Context, command ReleaseRestedCrewCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	employeeRepo := uow.EmployeeRepository()

	rested, err := employeeRepo.ListRestedForUpdate(ctx, command.Now(), command.Limit())
	if err != nil {
		return 0, err
	}
	if len(rested) == 0 {
		return 0, nil
	}

	released := 0
	for _, e := range rested {
		if !e.ReturnFromLeave(command.Now()) {
			continue
		}
		if err = employeeRepo.Update(ctx, e); err != nil {
			return 0, err
		}
		released++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return released, nil
}
