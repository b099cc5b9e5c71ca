package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrStartDeliveryCommandIsNotConstructed = errors.New(
		"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
	)
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
	ErrCancelDeliveryCommandIsNotConstructed = errors.New(
		"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
	)
)

type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	deliveryID kernel.UUID
	departure  time.Time

	guard guard.ConstructorGuard
}

func NewStartDeliveryCommand(actor kernel.Actor, deliveryID kernel.UUID, departure time.Time) (StartDeliveryCommand, error) {
	var departureErr error
	if departure.IsZero() {
		departureErr = errs.NewValueIsRequiredError("actual_departure")
	}
	if err := errors.Join(actor.Validate(), deliveryID.Validate(), departureErr); err != nil {
		return StartDeliveryCommand{}, err
	}
	return StartDeliveryCommand{
		actor:      actor,
		deliveryID: deliveryID,
		departure:  departure,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

func (c StartDeliveryCommand) Actor() kernel.Actor     { return c.actor }
func (c StartDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c StartDeliveryCommand) Departure() time.Time    { return c.departure }

// CompleteDeliveryCommand reports the arrival of a delivery. Outcome is Delivered
// or Delayed.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	deliveryID kernel.UUID
	arrival    time.Time
	outcome    delivery.Status

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(
	actor kernel.Actor,
	deliveryID kernel.UUID,
	arrival time.Time,
	outcome delivery.Status,
) (CompleteDeliveryCommand, error) {
	var arrivalErr, outcomeErr error
	if arrival.IsZero() {
		arrivalErr = errs.NewValueIsRequiredError("actual_arrival")
	}
	if !outcome.IsOutcome() {
		outcomeErr = errs.NewValueIsInvalidErrorWithCause("outcome",
			errors.New("outcome must be Delivered or Delayed"))
	}
	if err := errors.Join(actor.Validate(), deliveryID.Validate(), arrivalErr, outcomeErr); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	return CompleteDeliveryCommand{
		actor:      actor,
		deliveryID: deliveryID,
		arrival:    arrival,
		outcome:    outcome,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) Actor() kernel.Actor      { return c.actor }
func (c CompleteDeliveryCommand) DeliveryID() kernel.UUID  { return c.deliveryID }
func (c CompleteDeliveryCommand) Arrival() time.Time       { return c.arrival }
func (c CompleteDeliveryCommand) Outcome() delivery.Status { return c.outcome }

type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	deliveryID kernel.UUID
	at         time.Time

	guard guard.ConstructorGuard
}

func NewCancelDeliveryCommand(actor kernel.Actor, deliveryID kernel.UUID, at time.Time) (CancelDeliveryCommand, error) {
	var atErr error
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("cancelled_at")
	}
	if err := errors.Join(actor.Validate(), deliveryID.Validate(), atErr); err != nil {
		return CancelDeliveryCommand{}, err
	}
	return CancelDeliveryCommand{
		actor:      actor,
		deliveryID: deliveryID,
		at:         at,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

func (c CancelDeliveryCommand) Actor() kernel.Actor     { return c.actor }
func (c CancelDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c CancelDeliveryCommand) At() time.Time           { return c.at }
