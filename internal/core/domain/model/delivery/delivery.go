package delivery

import (
	"errors"
	"sort"
	"time"

	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructor")

// Delivery is the road leg of an order: a truck and a crew of one driver and an
// optional assistant running a store route.
type Delivery struct {
	kernel.EventRecorder

	id                 kernel.UUID
	orderID            kernel.UUID
	routeID            kernel.UUID
	truckID            kernel.UUID
	storeID            kernel.UUID
	scheduledDeparture time.Time
	actualDeparture    *time.Time
	actualArrival      *time.Time
	status             Status
	createdAt          time.Time
	crew               []CrewMember
	guard              guard.ConstructorGuard
}

// State carries the persisted fields of a delivery.
type State struct {
	ID                 kernel.UUID
	OrderID            kernel.UUID
	RouteID            kernel.UUID
	TruckID            kernel.UUID
	StoreID            kernel.UUID
	ScheduledDeparture time.Time
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	Status             Status
	CreatedAt          time.Time
	Crew               []CrewMember
}

// NewDelivery schedules a delivery and raises DeliveryAssigned.
func NewDelivery(
	id, orderID, routeID, truckID, storeID kernel.UUID,
	scheduledDeparture time.Time,
	crew []CrewMember,
	now time.Time,
) (*Delivery, error) {
	d, err := RestoreDelivery(State{
		ID:                 id,
		OrderID:            orderID,
		RouteID:            routeID,
		TruckID:            truckID,
		StoreID:            storeID,
		ScheduledDeparture: scheduledDeparture,
		Status:             Scheduled,
		CreatedAt:          now,
		Crew:               crew,
	})
	if err != nil {
		return nil, err
	}

	crewIDs := make([]kernel.UUID, 0, len(crew))
	for _, c := range crew {
		crewIDs = append(crewIDs, c.employeeID)
	}
	d.Record(DeliveryAssigned{
		Event:     kernel.NewEvent(EventTypeDeliveryAssigned, id, now),
		OrderID:   orderID,
		RouteID:   routeID,
		TruckID:   truckID,
		StoreID:   storeID,
		CrewIDs:   crewIDs,
		Departure: d.scheduledDeparture.Format(time.RFC3339),
	})
	return d, nil
}

func RestoreDelivery(s State) (*Delivery, error) {
	var departureErr error
	if s.ScheduledDeparture.IsZero() {
		departureErr = errs.NewValueIsRequiredError("scheduled_departure")
	}

	if err := errors.Join(
		s.ID.Validate(),
		s.OrderID.Validate(),
		s.RouteID.Validate(),
		s.TruckID.Validate(),
		s.StoreID.Validate(),
		s.Status.Validate(),
		departureErr,
		validateCrew(s.Crew),
	); err != nil {
		return nil, err
	}

	crew := make([]CrewMember, len(s.Crew))
	copy(crew, s.Crew)

	return &Delivery{
		id:                 s.ID,
		orderID:            s.OrderID,
		routeID:            s.RouteID,
		truckID:            s.TruckID,
		storeID:            s.StoreID,
		scheduledDeparture: s.ScheduledDeparture.UTC(),
		actualDeparture:    s.ActualDeparture,
		actualArrival:      s.ActualArrival,
		status:             s.Status,
		createdAt:          s.CreatedAt.UTC(),
		crew:               crew,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// validateCrew requires exactly one driver, at most one assistant and distinct employees.
func validateCrew(crew []CrewMember) error {
	drivers, assistants := 0, 0
	seen := make(map[kernel.UUID]struct{}, len(crew))
	for _, c := range crew {
		if _, dup := seen[c.employeeID]; dup {
			return errs.NewAlreadyAssignedError("employee", c.employeeID.String())
		}
		seen[c.employeeID] = struct{}{}
		switch c.role {
		case employee.Driver:
			drivers++
		case employee.Assistant:
			assistants++
		default:
			return c.role.Validate()
		}
	}
	if drivers != 1 {
		return errs.NewValueIsOutOfRangeError("drivers", drivers, 1, 1)
	}
	if assistants > 1 {
		return errs.NewValueIsOutOfRangeError("assistants", assistants, 0, 1)
	}
	return nil
}

func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

func (d *Delivery) ID() kernel.UUID               { return d.id }
func (d *Delivery) OrderID() kernel.UUID          { return d.orderID }
func (d *Delivery) RouteID() kernel.UUID          { return d.routeID }
func (d *Delivery) TruckID() kernel.UUID          { return d.truckID }
func (d *Delivery) StoreID() kernel.UUID          { return d.storeID }
func (d *Delivery) ScheduledDeparture() time.Time { return d.scheduledDeparture }
func (d *Delivery) ActualDeparture() *time.Time   { return d.actualDeparture }
func (d *Delivery) ActualArrival() *time.Time     { return d.actualArrival }
func (d *Delivery) Status() Status                { return d.status }
func (d *Delivery) CreatedAt() time.Time          { return d.createdAt }

func (d *Delivery) Crew() []CrewMember {
	out := make([]CrewMember, len(d.crew))
	copy(out, d.crew)
	return out
}

// CrewIDs returns the crew employee ids in lock order.
func (d *Delivery) CrewIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(d.crew))
	for _, c := range d.crew {
		ids = append(ids, c.employeeID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

// AssignedHours returns the hours employeeID is booked for, or false if the
// employee is not part of the crew.
func (d *Delivery) AssignedHours(employeeID kernel.UUID) (float64, bool) {
	for _, c := range d.crew {
		if c.employeeID.IsEqual(employeeID) {
			return c.assignedHours, true
		}
	}
	return 0, false
}

// Start reports the actual departure.
func (d *Delivery) Start(departure time.Time) error {
	next, err := d.status.Start()
	if err != nil {
		return err
	}
	departure = departure.UTC()
	d.status = next
	d.actualDeparture = &departure
	d.Record(DeliveryStarted{
		Event:           kernel.NewEvent(EventTypeDeliveryStarted, d.id, departure),
		ActualDeparture: departure.Format(time.RFC3339),
	})
	return nil
}

// Complete closes the delivery with outcome Delivered or Delayed and releases the crew.
func (d *Delivery) Complete(arrival time.Time, outcome Status) error {
	next, err := d.status.Complete(outcome)
	if err != nil {
		return err
	}
	departed := d.scheduledDeparture
	if d.actualDeparture != nil {
		departed = *d.actualDeparture
	}
	if arrival.Before(departed) {
		return errs.NewValueIsInvalidError("actual_arrival")
	}
	arrival = arrival.UTC()
	d.status = next
	d.actualArrival = &arrival
	d.releaseCrew(arrival)
	d.Record(DeliveryCompleted{
		Event:         kernel.NewEvent(EventTypeDeliveryCompleted, d.id, arrival),
		OrderID:       d.orderID,
		Outcome:       next.String(),
		ActualArrival: arrival.Format(time.RFC3339),
	})
	return nil
}

func (d *Delivery) Cancel(at time.Time) error {
	next, err := d.status.Cancel()
	if err != nil {
		return err
	}
	d.status = next
	d.releaseCrew(at.UTC())
	d.Record(DeliveryCancelled{
		Event:   kernel.NewEvent(EventTypeDeliveryCancelled, d.id, at),
		OrderID: d.orderID,
	})
	return nil
}

func (d *Delivery) releaseCrew(at time.Time) {
	for i := range d.crew {
		if d.crew[i].releasedAt == nil {
			released := at
			d.crew[i].releasedAt = &released
		}
	}
}
