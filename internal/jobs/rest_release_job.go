package jobs

import (
	"context"
	"time"

	"logistics/internal/core/application/usecases/commands"
)

// RestReleaseJob returns OnLeave crew to Available once their rest is over.
type RestReleaseJob struct {
	handler  commands.ReleaseRestedCrewCommandHandler
	schedule string
	limit    int
}

func NewRestReleaseJob(handler commands.ReleaseRestedCrewCommandHandler, schedule string, limit int) *RestReleaseJob {
	return &RestReleaseJob{handler: handler, schedule: schedule, limit: limit}
}

func (j *RestReleaseJob) Name() string     { return "rest-release" }
func (j *RestReleaseJob) Schedule() string { return j.schedule }

func (j *RestReleaseJob) Run(ctx context.Context, now time.Time) (int, error) {
	cmd, err := commands.NewReleaseRestedCrewCommand(now, j.limit)
	if err != nil {
		return 0, err
	}
	return j.handler.Handle(ctx, cmd)
}
