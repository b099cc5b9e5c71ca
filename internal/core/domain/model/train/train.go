package train

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrTrainIsNotConstructed = errors.New("Train must be created via NewTrain or RestoreTrain constructor")

const EventTypeTrainCancelled = "train.cancelled"

// TrainCancelled is raised when a scheduled train is cancelled. Allocations that had
// not yet arrived are cancelled with it.
type TrainCancelled struct {
	kernel.Event
	Code                 string `json:"code"`
	CancelledAllocations int    `json:"cancelled_allocations"`
}

// Train is a scheduled rail run with a fixed volumetric capacity.
//
// The used space is never stored on the train row. Repositories derive it from the
// non-cancelled allocations when loading the aggregate, and Reserve keeps it current
// for the lifetime of the unit of work.
type Train struct {
	kernel.EventRecorder

	id            kernel.UUID
	code          string
	capacity      kernel.Space
	departureTime time.Time
	arrivalTime   time.Time
	status        Status
	used          kernel.Space
	guard         guard.ConstructorGuard
}

// NewTrain schedules a new train. Capacity must be positive and arrival must follow departure.
func NewTrain(id kernel.UUID, code string, capacity kernel.Space, departure, arrival time.Time) (*Train, error) {
	return RestoreTrain(id, code, capacity, departure, arrival, Scheduled, kernel.ZeroSpace())
}

// RestoreTrain rebuilds a train from storage together with its derived utilization.
func RestoreTrain(
	id kernel.UUID,
	code string,
	capacity kernel.Space,
	departure, arrival time.Time,
	status Status,
	used kernel.Space,
) (*Train, error) {
	t := &Train{
		id:     id,
		status: status,
		used:   used,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		t.setCode(code),
		t.setCapacity(capacity),
		t.setSchedule(departure, arrival),
	); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Train) Validate() error {
	if t == nil {
		return ErrTrainIsNotConstructed
	}
	return t.guard.Validate(ErrTrainIsNotConstructed)
}

func (t *Train) ID() kernel.UUID          { return t.id }
func (t *Train) Code() string             { return t.code }
func (t *Train) Capacity() kernel.Space   { return t.capacity }
func (t *Train) DepartureTime() time.Time { return t.departureTime }
func (t *Train) ArrivalTime() time.Time   { return t.arrivalTime }
func (t *Train) Status() Status           { return t.status }
func (t *Train) Used() kernel.Space       { return t.used }

func (t *Train) Remaining() kernel.Space {
	return t.capacity.Sub(t.used)
}

// UtilizationPercent is used/capacity as a percentage with two decimals.
func (t *Train) UtilizationPercent() float64 {
	return t.used.Ratio(t.capacity)
}

// ValidateReserve checks that the train is Scheduled and that space fits into the
// remaining capacity, within the comparison tolerance.
func (t *Train) ValidateReserve(space kernel.Space) error {
	if err := t.status.ValidateAllocate(); err != nil {
		return err
	}
	if t.used.Add(space).Exceeds(t.capacity) {
		return errs.NewCapacityExceededError("train", t.code, space.String(), t.Remaining().String())
	}
	return nil
}

// Reserve books space on the train.
func (t *Train) Reserve(space kernel.Space) error {
	if err := t.ValidateReserve(space); err != nil {
		return err
	}
	t.used = t.used.Add(space)
	return nil
}

// Release gives back space of cancelled allocations.
func (t *Train) Release(space kernel.Space) {
	t.used = t.used.Sub(space)
}

// Cancel moves the train to Cancelled. cancelledAllocations is the number of
// allocations the caller cancelled together with the train and ends up in the event.
func (t *Train) Cancel(at time.Time, cancelledAllocations int) error {
	next, err := t.status.Cancel()
	if err != nil {
		return err
	}
	t.status = next
	t.used = kernel.ZeroSpace()
	t.Record(TrainCancelled{
		Event:                kernel.NewEvent(EventTypeTrainCancelled, t.id, at),
		Code:                 t.code,
		CancelledAllocations: cancelledAllocations,
	})
	return nil
}

func (t *Train) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	t.code = code
	return nil
}

func (t *Train) setCapacity(capacity kernel.Space) error {
	if !capacity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("capacity_space", fmt.Errorf("%s is not greater than 0", capacity))
	}
	t.capacity = capacity
	return nil
}

func (t *Train) setSchedule(departure, arrival time.Time) error {
	if departure.IsZero() {
		return errs.NewValueIsRequiredError("departure_time")
	}
	if !arrival.After(departure) {
		return errs.NewValueIsInvalidErrorWithCause(
			"arrival_time",
			fmt.Errorf("%s is not after departure %s", arrival.Format(time.RFC3339), departure.Format(time.RFC3339)),
		)
	}
	t.departureTime = departure.UTC()
	t.arrivalTime = arrival.UTC()
	return nil
}
