package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logistics/internal/pkg/logger"
	"logistics/internal/pkg/metrics"
	"logistics/internal/pkg/tracing"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"
)

const defaultRunTimeout = 30 * time.Second

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	cron    *cron.Cron
	jobs    []Job
	logger  *logger.Logger
	metrics *metrics.JobMetrics
	clock   func() time.Time

	locks   LockFactory
	lockTTL time.Duration
	timeout time.Duration
}

// NewJobManager creates a new job manager with the given jobs.
func NewJobManager(logg *logger.Logger, jobMetrics *metrics.JobMetrics, jobs ...Job) *JobManager {
	if logg == nil {
		logg = logger.Nop()
	}
	cl := cronLogger{logger: logg}
	return &JobManager{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		jobs:    jobs,
		logger:  logg,
		metrics: jobMetrics,
		clock:   time.Now,
		timeout: defaultRunTimeout,
	}
}

// WithLocks makes every run take a named lock held for at most ttl.
func (jm *JobManager) WithLocks(factory LockFactory, ttl time.Duration) *JobManager {
	jm.locks = factory
	jm.lockTTL = ttl
	return jm
}

// WithRunTimeout bounds a single run.
func (jm *JobManager) WithRunTimeout(timeout time.Duration) *JobManager {
	if timeout > 0 {
		jm.timeout = timeout
	}
	return jm
}

// StartAll registers and starts all scheduled jobs.
// Returns an error if any schedule does not parse; nothing is started then.
func (jm *JobManager) StartAll() error {
	for _, job := range jm.jobs {
		if _, err := jm.cron.AddFunc(job.Schedule(), func() {
			jm.runOnce(context.Background(), job)
		}); err != nil {
			return fmt.Errorf("failed to schedule %s job: %w", job.Name(), err)
		}
	}

	jm.cron.Start()
	for _, job := range jm.jobs {
		ctx := jm.logger.WithFields(context.Background(), map[string]any{
			"component": job.Name(),
			"schedule":  job.Schedule(),
		})
		jm.logger.Info(ctx, "job started")
	}
	return nil
}

// StopAll stops the scheduler and waits for running jobs until ctx is done.
func (jm *JobManager) StopAll(ctx context.Context) {
	done := jm.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		jm.logger.Warn(ctx, "jobs still running at shutdown")
	}
	jm.logger.Info(ctx, "jobs stopped")
}

func (jm *JobManager) runOnce(parent context.Context, job Job) {
	name := job.Name()
	ctx, cancel := context.WithTimeout(parent, jm.timeout)
	defer cancel()
	ctx = jm.logger.WithComponent(ctx, name)

	if jm.locks != nil {
		lock, err := jm.locks(name, jm.lockTTL)
		if err != nil {
			jm.fail(ctx, name, "job lock unavailable", err)
			return
		}
		acquired, err := lock.Acquire(ctx)
		if err != nil {
			jm.fail(ctx, name, "job lock unavailable", err)
			return
		}
		if !acquired {
			jm.logger.Debug(ctx, "job skipped, lock held elsewhere")
			return
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				jm.logger.Warn(jm.logger.WithField(ctx, "error", err.Error()), "job lock release failed")
			}
		}()
	}

	ctx, span := tracing.Start(ctx, "job."+name, attribute.String("job", name))
	start := jm.clock()
	processed, err := job.Run(ctx, start)
	tracing.End(span, err)
	jm.metrics.ObserveDuration(name, jm.clock().Sub(start))

	if err != nil {
		jm.fail(ctx, name, "job failed", err)
		return
	}
	jm.metrics.IncSuccess(name)
	jm.metrics.AddProcessed(name, processed)
	if processed > 0 {
		jm.logger.Info(jm.logger.WithField(ctx, "processed", processed), "job finished")
	}
}

func (jm *JobManager) fail(ctx context.Context, name, msg string, err error) {
	jm.metrics.IncFailure(name)
	if errors.Is(err, context.Canceled) {
		jm.logger.Warn(ctx, msg)
		return
	}
	jm.logger.Error(ctx, msg, err)
}

// cronLogger forwards scheduler diagnostics to the service logger.
type cronLogger struct {
	logger *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	ctx := l.logger.WithFields(context.Background(), pairs(keysAndValues))
	l.logger.Debug(l.logger.WithComponent(ctx, "cron"), msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	ctx := l.logger.WithFields(context.Background(), pairs(keysAndValues))
	l.logger.Error(l.logger.WithComponent(ctx, "cron"), msg, err)
}

func pairs(keysAndValues []any) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
