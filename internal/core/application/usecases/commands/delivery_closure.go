package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
)

// loadClosure locks everything a delivery holds. The delivery is first read without
// a lock to learn its order, truck and crew; those are locked in the fixed order and
// the delivery row is locked last and read again.
func loadClosure(ctx context.Context, uow DispatchUoW, actor kernel.Actor, deliveryID kernel.UUID) (services.Closure, error) {
	deliveryRepo := uow.DeliveryRepository()

	snapshot, err := deliveryRepo.Get(ctx, deliveryID)
	if err != nil {
		return services.Closure{}, err
	}
	if err = actor.CanActFor(snapshot.StoreID()); err != nil {
		return services.Closure{}, err
	}

	o, err := uow.OrderRepository().GetForUpdate(ctx, snapshot.OrderID())
	if err != nil {
		return services.Closure{}, err
	}

	tr, err := uow.TruckRepository().GetForUpdate(ctx, snapshot.TruckID())
	if err != nil {
		return services.Closure{}, err
	}

	crew, err := uow.EmployeeRepository().GetForUpdate(ctx, snapshot.CrewIDs()...)
	if err != nil {
		return services.Closure{}, err
	}

	d, err := deliveryRepo.GetForUpdate(ctx, deliveryID)
	if err != nil {
		return services.Closure{}, err
	}

	return services.Closure{Delivery: d, Order: o, Truck: tr, Crew: crew}, nil
}

// saveClosure writes back every aggregate of a settled delivery.
func saveClosure(ctx context.Context, uow DispatchUoW, c services.Closure) error {
	if err := uow.DeliveryRepository().Update(ctx, c.Delivery); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, c.Order); err != nil {
		return err
	}
	if err := uow.TruckRepository().Update(ctx, c.Truck); err != nil {
		return err
	}
	employeeRepo := uow.EmployeeRepository()
	for _, e := range c.Crew {
		if err := employeeRepo.Update(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
