package cmd

import (
	"time"

	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/outboxrepo"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"
	"logistics/internal/pkg/logger"
	"logistics/internal/pkg/metrics"
	"logistics/internal/pkg/redis"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

// Commands builds every write-side handler served over HTTP.
func (c *CompositionRoot) Commands() httpadapter.Commands {
	trainUoW := UoWFactoryFunc[commands.TrainUoW](func() commands.TrainUoW {
		return c.uowFactory.CreateGorm()
	})
	allocationUoW := UoWFactoryFunc[commands.AllocationUoW](func() commands.AllocationUoW {
		return c.uowFactory.CreateGorm()
	})
	dispatchUoW := UoWFactoryFunc[commands.DispatchUoW](func() commands.DispatchUoW {
		return c.uowFactory.CreateGorm()
	})

	return httpadapter.Commands{
		CreateTrain:      commands.NewCreateTrainCommandHandler(trainUoW),
		CancelTrain:      commands.NewCancelTrainCommandHandler(allocationUoW),
		MarkArrived:      commands.NewMarkArrivedCommandHandler(allocationUoW),
		Allocate:         commands.NewAllocateCommandHandler(allocationUoW),
		AssignDelivery:   commands.NewAssignDeliveryCommandHandler(dispatchUoW),
		StartDelivery:    commands.NewStartDeliveryCommandHandler(dispatchUoW),
		CompleteDelivery: commands.NewCompleteDeliveryCommandHandler(dispatchUoW),
		CancelDelivery:   commands.NewCancelDeliveryCommandHandler(dispatchUoW),
	}
}

func (c *CompositionRoot) Queries() httpadapter.Queries {
	return httpadapter.Queries{
		ListTrains:             queries.NewListTrainsQueryHandler(c.gormDB),
		GetTrain:               queries.NewGetTrainQueryHandler(c.gormDB),
		GetOrderAllocations:    queries.NewGetOrderAllocationsQueryHandler(c.gormDB),
		ListPendingAllocations: queries.NewListPendingAllocationsQueryHandler(c.gormDB),
		ListStagedOrders:       queries.NewListStagedOrdersQueryHandler(c.gormDB),
		ListRoutes:             queries.NewListRoutesQueryHandler(c.gormDB),
		ListEligibleCrew:       queries.NewListEligibleCrewQueryHandler(c.gormDB),
		ListCrew:               queries.NewListCrewQueryHandler(c.gormDB),
		ListDeliveries:         queries.NewListDeliveriesQueryHandler(c.gormDB),
	}
}

// JobManager schedules the crew maintenance jobs and, when a publisher is given, the
// outbox relay. A nil redis client runs the jobs without cross-process locks.
func (c *CompositionRoot) JobManager(
	logg *logger.Logger,
	jobMetrics *metrics.JobMetrics,
	publisher ports.EventPublisher,
	redisClient *redis.Client,
) *jobs.JobManager {
	crewUoW := UoWFactoryFunc[commands.CrewUoW](func() commands.CrewUoW {
		return c.uowFactory.CreateGorm()
	})
	spec := c.cfg.Jobs

	scheduled := []jobs.Job{
		jobs.NewRestReleaseJob(commands.NewReleaseRestedCrewCommandHandler(crewUoW), spec.RestReleaseSchedule, spec.RestReleaseLimit),
		jobs.NewWeeklyResetJob(commands.NewResetWeeklyHoursCommandHandler(crewUoW), spec.WeeklyResetSchedule),
	}
	if publisher != nil {
		relay := commands.NewRelayOutboxCommandHandler(outboxrepo.NewGormOutboxRepository(c.gormDB), publisher)
		scheduled = append(scheduled, jobs.NewOutboxRelayJob(relay, spec.OutboxRelaySchedule, spec.OutboxBatchSize))
	}

	manager := jobs.NewJobManager(logg, jobMetrics, scheduled...).WithRunTimeout(spec.RunTimeout)
	if redisClient != nil {
		manager = manager.WithLocks(func(name string, ttl time.Duration) (jobs.Lock, error) {
			lock, err := redisClient.NewLock(name, ttl)
			if err != nil {
				return nil, err
			}
			return lock, nil
		}, spec.LockTTL)
	}
	return manager
}

// UoWFactoryFunc adapts a constructor to the narrow factory interfaces of the command handlers.
type UoWFactoryFunc[T any] func() T

func (f UoWFactoryFunc[T]) Create() T {
	return f()
}
