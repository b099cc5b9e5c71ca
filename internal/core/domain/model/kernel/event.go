package kernel

import "time"

// DomainEvent is raised by an aggregate and stored in the outbox by the unit of work
// in the same transaction as the aggregate change.
type DomainEvent interface {
	EventID() UUID
	EventType() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// Event carries the envelope fields shared by all domain events. Concrete events embed it.
type Event struct {
	ID        UUID      `json:"event_id"`
	Type      string    `json:"event_type"`
	Aggregate UUID      `json:"aggregate_id"`
	At        time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, aggregateID UUID, at time.Time) Event {
	return Event{
		ID:        NewUUID(),
		Type:      eventType,
		Aggregate: aggregateID,
		At:        at.UTC(),
	}
}

func (e Event) EventID() UUID         { return e.ID }
func (e Event) EventType() string     { return e.Type }
func (e Event) AggregateID() UUID     { return e.Aggregate }
func (e Event) OccurredAt() time.Time { return e.At }

// EventRecorder is embedded by aggregates that raise events.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// DomainEvents returns the events raised since the last clear.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
