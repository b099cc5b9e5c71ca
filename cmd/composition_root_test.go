package cmd

import (
	"testing"
	"time"

	postgres_adapter "logistics/internal/adapters/out/postgres"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/db"
	"logistics/internal/pkg/logger"
	"logistics/internal/pkg/metrics"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) CompositionRoot {
	t.Helper()
	client, err := db.New(t.Context(), db.Config{Driver: db.DriverSQLite, DSN: "file::memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, postgres_adapter.AutoMigrate(client.DB()))

	cfg := Config{Jobs: JobsConfig{
		RestReleaseSchedule: "0 * * * * *",
		RestReleaseLimit:    10,
		WeeklyResetSchedule: "0 0 0 * * MON",
		OutboxRelaySchedule: "*/5 * * * * *",
		OutboxBatchSize:     10,
	}}
	return NewCompositionRoot(cfg, client.DB())
}

func TestCompositionRoot_CommandsShareTheDatabase(t *testing.T) {
	ctx := t.Context()
	root := newTestRoot(t)

	capacity, err := kernel.NewSpace(decimal.NewFromInt(80))
	require.NoError(t, err)
	departure := time.Date(2025, 5, 5, 6, 0, 0, 0, time.UTC)
	cmd, err := commands.NewCreateTrainCommand(kernel.NewUUID(), "IC-7", capacity, departure, departure.Add(5*time.Hour))
	require.NoError(t, err)
	require.NoError(t, root.Commands().CreateTrain.Handle(ctx, cmd))

	query, err := queries.NewListTrainsQuery(nil)
	require.NoError(t, err)
	trains, err := root.Queries().ListTrains.Handle(ctx, query)
	require.NoError(t, err)
	require.Len(t, trains, 1)
	assert.Equal(t, "IC-7", trains[0].Code)
	assert.InDelta(t, 80, trains[0].Capacity.Float64(), 1e-9)
}

func TestCompositionRoot_JobManagerStartsWithoutOptionalClients(t *testing.T) {
	root := newTestRoot(t)

	manager := root.JobManager(logger.Nop(), metrics.NewJobMetrics(nil), nil, nil)
	require.NoError(t, manager.StartAll())
	manager.StopAll(t.Context())
}

func TestCompositionRoot_JobManagerRejectsBadSchedule(t *testing.T) {
	root := newTestRoot(t)
	root.cfg.Jobs.WeeklyResetSchedule = "every monday"

	manager := root.JobManager(logger.Nop(), nil, nil, nil)
	assert.Error(t, manager.StartAll())
}
