package commands

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

// AssignDeliveryCommandHandler creates a Scheduled delivery. Locks are taken on the
// order, the truck and the crew (in id order). Two requests naming the same driver
// are serialized on the employee row: the second one sees the driver OnDuty and gets
// AlreadyAssigned. The partial unique indexes on active deliveries back this up.
type AssignDeliveryCommandHandler struct {
	uowFactory DispatchUoWFactory
	dispatcher services.DeliveryDispatcher
}

func NewAssignDeliveryCommandHandler(uowFactory DispatchUoWFactory) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDeliveryDispatcher(services.NewCrewEligibility()),
	}
}

func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, command AssignDeliveryCommand) (*delivery.Delivery, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if err := command.Actor().CanActFor(command.StoreID()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	truckRepo := uow.TruckRepository()
	employeeRepo := uow.EmployeeRepository()
	deliveryRepo := uow.DeliveryRepository()

	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	r, err := uow.RouteRepository().Get(ctx, command.RouteID())
	if err != nil {
		return nil, err
	}

	tr, err := truckRepo.GetForUpdate(ctx, command.TruckID())
	if err != nil {
		return nil, err
	}

	crew, err := employeeRepo.GetForUpdate(ctx, command.CrewIDs()...)
	if err != nil {
		return nil, err
	}
	driver, assistant, err := pickCrew(crew, command.DriverID(), command.AssistantID())
	if err != nil {
		return nil, err
	}

	d, err := h.dispatcher.Dispatch(services.DispatchRequest{
		Actor:              command.Actor(),
		StoreID:            command.StoreID(),
		Order:              o,
		Route:              r,
		Truck:              tr,
		Driver:             driver,
		Assistant:          assistant,
		ScheduledDeparture: command.ScheduledDeparture(),
		Now:                command.Now(),
	})
	if err != nil {
		return nil, err
	}

	if err = deliveryRepo.Add(ctx, d); err != nil {
		return nil, err
	}
	if err = truckRepo.Update(ctx, tr); err != nil {
		return nil, err
	}
	for _, e := range crew {
		if err = employeeRepo.Update(ctx, e); err != nil {
			return nil, err
		}
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}

func pickCrew(
	crew []*employee.Employee,
	driverID kernel.UUID,
	assistantID *kernel.UUID,
) (*employee.Employee, *employee.Employee, error) {
	var driver, assistant *employee.Employee
	for _, e := range crew {
		switch {
		case e.ID().IsEqual(driverID):
			driver = e
		case assistantID != nil && e.ID().IsEqual(*assistantID):
			assistant = e
		}
	}
	if driver == nil {
		return nil, nil, errs.NewObjectNotFoundError("employee", driverID.String())
	}
	if assistantID != nil && assistant == nil {
		return nil, nil, errs.NewObjectNotFoundError("employee", assistantID.String())
	}
	return driver, assistant, nil
}
