package jobs

import (
	"context"
	"time"

	"logistics/internal/core/application/usecases/commands"
)

// OutboxRelayJob publishes pending outbox rows in batches.
type OutboxRelayJob struct {
	handler   commands.RelayOutboxCommandHandler
	schedule  string
	batchSize int
}

func NewOutboxRelayJob(handler commands.RelayOutboxCommandHandler, schedule string, batchSize int) *OutboxRelayJob {
	return &OutboxRelayJob{handler: handler, schedule: schedule, batchSize: batchSize}
}

func (j *OutboxRelayJob) Name() string     { return "outbox-relay" }
func (j *OutboxRelayJob) Schedule() string { return j.schedule }

func (j *OutboxRelayJob) Run(ctx context.Context, now time.Time) (int, error) {
	cmd, err := commands.NewRelayOutboxCommand(now, j.batchSize)
	if err != nil {
		return 0, err
	}
	return j.handler.Handle(ctx, cmd)
}
