package jobs

import (
	"context"
	"time"

	"logistics/internal/core/application/usecases/commands"
)

// WeeklyResetJob starts a new week of driving hours for every employee.
type WeeklyResetJob struct {
	handler  commands.ResetWeeklyHoursCommandHandler
	schedule string
}

func NewWeeklyResetJob(handler commands.ResetWeeklyHoursCommandHandler, schedule string) *WeeklyResetJob {
	return &WeeklyResetJob{handler: handler, schedule: schedule}
}

func (j *WeeklyResetJob) Name() string     { return "weekly-reset" }
func (j *WeeklyResetJob) Schedule() string { return j.schedule }

func (j *WeeklyResetJob) Run(ctx context.Context, _ time.Time) (int, error) {
	n, err := j.handler.Handle(ctx)
	return int(n), err
}
