package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logistics/cmd"
	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/kafka"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/migrations"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"
	"logistics/internal/pkg/db"
	"logistics/internal/pkg/logger"
	"logistics/internal/pkg/metrics"
	"logistics/internal/pkg/migrate"
	"logistics/internal/pkg/redis"
	"logistics/internal/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "logistics"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := cmd.Load()
	requireResource(context.Background(), logg, "config", err)
	requireResource(context.Background(), logg, "jwt config", cfg.JWT.Validate())

	logg = logger.New(logger.Options{
		ServiceName: cfg.App.ServiceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": cfg.App.Addr(),
	})

	shutdownTracer, err := tracing.Init(ctx, tracing.Config{
		Endpoint:    cfg.Tracing.OTLPEndpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRate:  cfg.Tracing.SampleRate,
		Timeout:     cfg.Tracing.Timeout,
		ServiceName: cfg.App.ServiceName,
		Environment: cfg.App.Env,
	})
	requireResource(ctx, logg, "tracing", err)

	dbClient, err := db.New(ctx, cfg.DB.Client(), logg)
	requireResource(ctx, logg, "database", err)
	if cfg.DB.AutoMigrate {
		requireResource(ctx, logg, "migrations", applySchema(ctx, dbClient))
	}

	var redisClient *redis.Client
	var idempotency httpadapter.IdempotencyStore
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, redis.Config{
			URL:          cfg.Redis.URL,
			Address:      cfg.Redis.Address,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, logg)
		requireResource(ctx, logg, "redis", err)
		idempotency = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, idempotency keys and job locks are disabled")
	}

	var publisher *kafka.Publisher
	var eventPublisher ports.EventPublisher
	if cfg.Kafka.Enabled() {
		publisher, err = kafka.NewPublisher(kafka.Config{
			Brokers:        cfg.Kafka.Brokers,
			Topic:          cfg.Kafka.Topic,
			ClientID:       cfg.Kafka.ClientID,
			ProduceTimeout: cfg.Kafka.ProduceTimeout,
		})
		requireResource(ctx, logg, "kafka", err)
		eventPublisher = publisher
	} else {
		logg.Warn(ctx, "kafka not configured, outbox events stay pending")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := cmd.NewCompositionRoot(*cfg, dbClient.DB())

	contract, err := httpadapter.LoadContract(ctx)
	requireResource(ctx, logg, "openapi contract", err)

	server, err := httpadapter.NewServer(
		httpadapter.Config{
			JWT: httpadapter.JWTConfig{
				Secret: cfg.JWT.Secret,
				Issuer: cfg.JWT.Issuer,
				TTL:    cfg.JWT.TTL,
			},
			IdempotencyTTL: cfg.Redis.IdempotencyTTL,
			BodyLimit:      cfg.App.BodyLimit,
		},
		app.Commands(),
		app.Queries(),
		httpadapter.Dependencies{
			Logger:      logg,
			Contract:    contract,
			Idempotency: idempotency,
			Gatherer:    registry,
			Metrics:     metrics.NewOperationMetrics(registry),
			Health:      dbClient.Ping,
		},
	)
	requireResource(ctx, logg, "http server", err)

	var jobManager *jobs.JobManager
	if cfg.Jobs.Enabled {
		jobManager = app.JobManager(logg, metrics.NewJobMetrics(registry), eventPublisher, redisClient)
		requireResource(ctx, logg, "jobs", jobManager.StartAll())
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serverErr <- server.Start(cfg.App.Addr())
	}()

	exitCode := 0
	select {
	case <-signalCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	case err = <-serverErr:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if jobManager != nil {
		jobManager.StopAll(shutdownCtx)
	}
	if err = server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "error shutting down api server", err)
	}
	if err = shutdownTracer(shutdownCtx); err != nil {
		logg.Error(ctx, "error flushing tracer", err)
	}
	if publisher != nil {
		publisher.Close()
	}
	if redisClient != nil {
		if err = redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}
	if err = dbClient.Close(); err != nil {
		logg.Error(ctx, "error closing database", err)
	}

	logg.Info(ctx, "shutdown complete")
	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}

// applySchema runs goose against PostgreSQL and GORM auto-migration against SQLite,
// which the goose migrations do not target.
func applySchema(ctx context.Context, client *db.Client) error {
	if !client.IsPostgres() {
		return postgres.AutoMigrate(client.DB())
	}
	sqlDB, err := client.DB().DB()
	if err != nil {
		return err
	}
	migrateCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	return migrate.Run(migrateCtx, sqlDB, migrations.FS, migrations.Dir, "up")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
