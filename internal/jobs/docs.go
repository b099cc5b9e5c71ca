// Package jobs provides scheduled background tasks for the logistics service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field specs with seconds) and
// each one wraps a single command handler:
//
//  1. RestReleaseJob - returns crew whose mandatory rest is over to Available
//  2. WeeklyResetJob - clears the weekly hour counters of all employees
//  3. OutboxRelayJob - publishes committed domain events to the message broker
//
// # Usage
//
//	manager := jobs.NewJobManager(logg, jobMetrics,
//		jobs.NewRestReleaseJob(releaseHandler, "0 * * * * *", 200),
//		jobs.NewWeeklyResetJob(resetHandler, "0 0 0 * * MON"),
//	)
//	manager.WithLocks(lockFactory, time.Minute)
//
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll(ctx)
//
// # Exclusivity
//
// With a lock factory installed every run first takes a named lock, so several
// replicas can share one schedule. A run that finds the lock taken is skipped.
// Overlapping runs of the same job inside one process are skipped as well.
package jobs
