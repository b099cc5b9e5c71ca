package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
)

// AllocateResult reports the accepted allocation and the state it left behind.
type AllocateResult struct {
	AllocationID       kernel.UUID
	Finalized          bool
	OrderStatus        order.Status
	TrainUsed          kernel.Space
	TrainRemaining     kernel.Space
	UtilizationPercent float64
}

// AllocateCommandHandler runs the capacity ledger inside one transaction. The train
// row is locked before the order row; concurrent allocations on the same train
// therefore see each other's utilization.
type AllocateCommandHandler struct {
	uowFactory AllocationUoWFactory
	ledger     services.CapacityLedger
}

func NewAllocateCommandHandler(uowFactory AllocationUoWFactory) AllocateCommandHandler {
	return AllocateCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewCapacityLedger(),
	}
}

func (h AllocateCommandHandler) Handle(ctx context.Context, command AllocateCommand) (AllocateResult, error) {
	if err := command.Validate(); err != nil {
		return AllocateResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AllocateResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trainRepo := uow.TrainRepository()
	orderRepo := uow.OrderRepository()
	productRepo := uow.ProductRepository()

	t, err := trainRepo.GetForUpdate(ctx, command.TrainID())
	if err != nil {
		return AllocateResult{}, err
	}

	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return AllocateResult{}, err
	}

	p, err := productRepo.Get(ctx, command.ProductID())
	if err != nil {
		return AllocateResult{}, err
	}

	allocation, err := h.ledger.Allocate(services.AllocateRequest{
		Train:     t,
		Order:     o,
		Product:   p,
		StoreID:   command.StoreID(),
		Quantity:  command.Quantity(),
		UnitSpace: command.UnitSpace(),
		At:        command.At(),
	})
	if err != nil {
		return AllocateResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return AllocateResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AllocateResult{}, err
	}

	return AllocateResult{
		AllocationID:       allocation.ID(),
		Finalized:          allocation.IsFinalized(),
		OrderStatus:        o.Status(),
		TrainUsed:          t.Used(),
		TrainRemaining:     t.Remaining(),
		UtilizationPercent: t.UtilizationPercent(),
	}, nil
}
