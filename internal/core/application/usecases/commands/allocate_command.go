package commands

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrAllocateCommandIsNotConstructed = errors.New(
	"AllocateCommand must be created via NewAllocateCommand constructor",
)

// AllocateCommand places qty units of an order line on a train.
//
// Example:
//
//	cmd, err := NewAllocateCommand(trainID, orderID, productID, storeID, 8, nil, time.Now())
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type AllocateCommand struct { //nolint:recvcheck //using for validation
	trainID   kernel.UUID
	orderID   kernel.UUID
	productID kernel.UUID
	storeID   kernel.UUID
	quantity  int
	unitSpace *kernel.Space
	at        time.Time

	guard guard.ConstructorGuard
}

// NewAllocateCommand validates identifiers and quantity. unitSpace is optional and
// overrides the product's unit space when given.
func NewAllocateCommand(
	trainID, orderID, productID, storeID kernel.UUID,
	quantity int,
	unitSpace *kernel.Space,
	at time.Time,
) (AllocateCommand, error) {
	cmd := AllocateCommand{
		trainID:   trainID,
		orderID:   orderID,
		productID: productID,
		storeID:   storeID,
		at:        at,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trainID.Validate(),
		orderID.Validate(),
		productID.Validate(),
		storeID.Validate(),
		cmd.setQuantity(quantity),
		cmd.setUnitSpace(unitSpace),
	); err != nil {
		return AllocateCommand{}, err
	}

	return cmd, nil
}

func (c AllocateCommand) Validate() error {
	return c.guard.Validate(ErrAllocateCommandIsNotConstructed)
}

func (c AllocateCommand) TrainID() kernel.UUID     { return c.trainID }
func (c AllocateCommand) OrderID() kernel.UUID     { return c.orderID }
func (c AllocateCommand) ProductID() kernel.UUID   { return c.productID }
func (c AllocateCommand) StoreID() kernel.UUID     { return c.storeID }
func (c AllocateCommand) Quantity() int            { return c.quantity }
func (c AllocateCommand) UnitSpace() *kernel.Space { return c.unitSpace }
func (c AllocateCommand) At() time.Time            { return c.at }

func (c *AllocateCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	c.quantity = quantity
	return nil
}

func (c *AllocateCommand) setUnitSpace(unitSpace *kernel.Space) error {
	if unitSpace != nil && !unitSpace.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("unit_space", fmt.Errorf("%s is not greater than 0", unitSpace))
	}
	c.unitSpace = unitSpace
	return nil
}
