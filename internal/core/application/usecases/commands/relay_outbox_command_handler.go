package commands

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// RelayOutboxCommandHandler moves committed domain events to the broker. Delivery
// is at least once: a crash between Publish and MarkPublished resends the batch.
type RelayOutboxCommandHandler struct {
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
}

func NewRelayOutboxCommandHandler(outbox ports.OutboxRepository, publisher ports.EventPublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{outbox: outbox, publisher: publisher}
}

// Handle returns the number of messages published.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, command RelayOutboxCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	pending, err := h.outbox.ListPending(ctx, command.BatchSize())
	if err != nil {
		return 0, fmt.Errorf("list pending outbox: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, pending); err != nil {
		return 0, fmt.Errorf("publish outbox: %w", err)
	}

	ids := make([]kernel.UUID, 0, len(pending))
	for _, m := range pending {
		ids = append(ids, m.ID)
	}
	if err = h.outbox.MarkPublished(ctx, ids, command.Now()); err != nil {
		return 0, fmt.Errorf("mark outbox published: %w", err)
	}

	return len(pending), nil
}
