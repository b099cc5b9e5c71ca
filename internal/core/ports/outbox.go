package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event stored by the unit of work in the same transaction
// as the aggregate change that raised it.
type OutboxMessage struct {
	ID            kernel.UUID
	AggregateType string
	AggregateID   kernel.UUID
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// OutboxRepository is read by the relay job.
type OutboxRepository interface {
	ListPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages []OutboxMessage) error
}
