package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/migrations"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/pkg/db"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/logger"
	"logistics/internal/pkg/migrate"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresIntegrationTestSuite reruns every flow against PostgreSQL with the goose
// schema, and adds the tests that need real row locks.
type PostgresIntegrationTestSuite struct {
	FlowTestSuite
	container *postgres.PostgresContainer
	shared    *db.Client
}

// SetupSuite starts the PostgreSQL container and applies the migrations once.
func (s *PostgresIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	client, err := db.New(ctx, db.Config{Driver: db.DriverPostgres, DSN: dsn, MaxOpenConns: 10}, logger.Nop())
	s.Require().NoError(err)
	s.shared = client

	sqlDB, err := client.DB().DB()
	s.Require().NoError(err)
	s.Require().NoError(migrate.Run(ctx, sqlDB, migrations.FS, migrations.Dir, "up"))
}

// SetupTest truncates all tables so the flows start from an empty schema.
func (s *PostgresIntegrationTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.shared.DB().Exec(`TRUNCATE TABLE outbox_events, delivery_crew, deliveries,
		employees, trucks, routes, allocations, order_lines, orders, trains, products CASCADE`).Error)

	s.client = s.shared
	s.factory = postgres_adapter.NewGormUnitOfWorkFactory(s.shared.DB())
	s.store = kernel.NewUUID()
}

// TearDownTest keeps the shared connection open between tests.
func (s *PostgresIntegrationTestSuite) TearDownTest() {}

func (s *PostgresIntegrationTestSuite) TearDownSuite() {
	if s.shared != nil {
		s.Require().NoError(s.shared.Close())
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PostgresIntegrationTestSuite) TestAllocate_ConcurrentRequestsNeverOverfillTrain() {
	t := s.seedTrain("100")
	p := s.seedProduct("12")
	o := s.seedOrder(map[*product.Product]int{p: 20})

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.allocate(t, o, p, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrCapacityExceeded):
				rejected++
			}
		}()
	}
	wg.Wait()

	s.Equal(8, succeeded)
	s.Equal(2, rejected)
}

func (s *PostgresIntegrationTestSuite) TestAssignDelivery_ConcurrentSameDriverBooksOnce() {
	first := s.stageRoadLeg()
	second := s.stageRoadLeg()

	// the second leg keeps its own order and truck but asks for the first driver
	second.driver = first.driver

	legs := []roadLeg{first, second}
	results := make([]error, len(legs))

	var wg sync.WaitGroup
	for i, leg := range legs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = s.assign(leg)
		}()
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		s.True(errors.Is(err, errs.ErrAlreadyAssigned) || errors.Is(err, errs.ErrNotEligible), "unexpected error: %v", err)
	}
	s.Equal(1, successes)

	driver, err := s.factory.Create().EmployeeRepository().Get(s.ctx, first.driver.ID())
	s.Require().NoError(err)
	s.Equal(employee.OnDuty, driver.Status())
}

func (s *PostgresIntegrationTestSuite) TestReleaseRestedCrew_RunsUnderRowLocks() {
	rested, err := employee.RestoreEmployee(employee.State{
		ID:                kernel.NewUUID(),
		Name:              "Rested",
		Role:              employee.Driver,
		StoreID:           s.store,
		Status:            employee.OnLeave,
		NextAvailableTime: epoch.Add(-time.Hour),
	})
	s.Require().NoError(err)
	s.seed(func(uow *postgres_adapter.GormUnitOfWork) error {
		return uow.EmployeeRepository().Add(s.ctx, rested)
	})

	cmd, err := commands.NewReleaseRestedCrewCommand(epoch, 5)
	s.Require().NoError(err)
	released, err := commands.NewReleaseRestedCrewCommandHandler(s.crewFactory()).Handle(s.ctx, cmd)
	s.Require().NoError(err)
	s.Equal(1, released)
}

func TestPostgresIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	suite.Run(t, new(PostgresIntegrationTestSuite))
}
