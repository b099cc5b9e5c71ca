package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/pkg/logger"
	"logistics/internal/pkg/metrics"
	"logistics/internal/pkg/tracing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	defaultBodyLimit         = "1M"
	defaultReadHeaderTimeout = 10 * time.Second
)

// Commands bundles the write-side use cases exposed over HTTP.
type Commands struct {
	CreateTrain      commands.CreateTrainCommandHandler
	CancelTrain      commands.CancelTrainCommandHandler
	MarkArrived      commands.MarkArrivedCommandHandler
	Allocate         commands.AllocateCommandHandler
	AssignDelivery   commands.AssignDeliveryCommandHandler
	StartDelivery    commands.StartDeliveryCommandHandler
	CompleteDelivery commands.CompleteDeliveryCommandHandler
	CancelDelivery   commands.CancelDeliveryCommandHandler
}

// Queries bundles the read models exposed over HTTP.
type Queries struct {
	ListTrains             queries.ListTrainsQueryHandler
	GetTrain               queries.GetTrainQueryHandler
	GetOrderAllocations    queries.GetOrderAllocationsQueryHandler
	ListPendingAllocations queries.ListPendingAllocationsQueryHandler
	ListStagedOrders       queries.ListStagedOrdersQueryHandler
	ListRoutes             queries.ListRoutesQueryHandler
	ListEligibleCrew       queries.ListEligibleCrewQueryHandler
	ListCrew               queries.ListCrewQueryHandler
	ListDeliveries         queries.ListDeliveriesQueryHandler
}

// Config holds the transport settings.
type Config struct {
	JWT            JWTConfig
	IdempotencyTTL time.Duration
	BodyLimit      string
}

// Dependencies are the collaborators shared with the rest of the process. Only
// Logger and Contract are required.
type Dependencies struct {
	Logger      *logger.Logger
	Contract    *Contract
	Idempotency IdempotencyStore
	Gatherer    prometheus.Gatherer
	Metrics     *metrics.OperationMetrics
	Health      func(ctx context.Context) error
	Clock       func() time.Time
}

// Server routes HTTP requests to the application use cases.
type Server struct {
	echo     *echo.Echo
	http     *http.Server
	commands Commands
	queries  Queries
	logg     *logger.Logger
	metrics  *metrics.OperationMetrics
	health   func(ctx context.Context) error
	now      func() time.Time
}

// NewServer wires middlewares and routes.
func NewServer(cfg Config, cmds Commands, qs Queries, deps Dependencies) (*Server, error) {
	if deps.Contract == nil {
		return nil, errors.New("openapi contract is required")
	}
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := deps.Clock
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	s := &Server{
		echo:     echo.New(),
		commands: cmds,
		queries:  qs,
		logg:     logg,
		metrics:  deps.Metrics,
		health:   deps.Health,
		now:      now,
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.HTTPErrorHandler = ErrorHandler(logg)

	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			RequestIDHandler: func(c echo.Context, id string) {
				c.SetRequest(c.Request().WithContext(logg.WithRequestID(c.Request().Context(), id)))
			},
		}),
		s.requestLogger(),
		middleware.Recover(),
		middleware.BodyLimit(bodyLimit),
	)

	e.GET("/health", s.healthCheck)
	if deps.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	registerSwagger(deps.Contract)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1",
		Authenticate(cfg.JWT, logg),
		deps.Contract.ValidateRequests(),
		Idempotency(deps.Idempotency, cfg.IdempotencyTTL, logg),
	)

	api.POST("/trains", s.observed("create_train", s.createTrain))
	api.GET("/trains", s.listTrains)
	api.GET("/trains/:trainId", s.getTrain)
	api.POST("/trains/:trainId/cancel", s.observed("cancel_train", s.cancelTrain))
	api.POST("/trains/:trainId/arrival", s.observed("mark_arrived", s.markArrived))

	api.POST("/orders/:orderId/allocations", s.observed("allocate", s.allocate))
	api.GET("/orders/:orderId/allocations", s.getOrderAllocations)

	api.GET("/stores/:storeId/allocations/pending", s.listPendingAllocations)
	api.GET("/stores/:storeId/orders/staged", s.listStagedOrders)
	api.GET("/stores/:storeId/routes", s.listRoutes)
	api.GET("/stores/:storeId/routes/:routeId/eligible-crew", s.listEligibleCrew)
	api.GET("/stores/:storeId/crew", s.listCrew)
	api.POST("/stores/:storeId/deliveries", s.observed("assign_delivery", s.assignDelivery))
	api.GET("/stores/:storeId/deliveries", s.listDeliveries)

	api.POST("/deliveries/:deliveryId/start", s.observed("start_delivery", s.startDelivery))
	api.POST("/deliveries/:deliveryId/cancel", s.observed("cancel_delivery", s.cancelDelivery))
	api.POST("/deliveries/:deliveryId/complete", s.observed("complete_delivery", s.completeDelivery))

	return s, nil
}

// Handler is the traced root handler.
func (s *Server) Handler() http.Handler {
	return tracing.WrapHandler(s.echo, "logistics.http")
}

// Start serves on addr until Shutdown. It returns nil after a graceful shutdown.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}
	s.logg.Info(context.Background(), "http server listening on "+addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) healthCheck(c echo.Context) error {
	if s.health != nil {
		if err := s.health(c.Request().Context()); err != nil {
			s.logg.Warn(c.Request().Context(), "health check failed: "+err.Error())
			return c.String(http.StatusServiceUnavailable, "Unhealthy")
		}
	}
	return c.String(http.StatusOK, "Healthy")
}

// observed records the outcome and latency of a write operation.
func (s *Server) observed(operation string, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.metrics.Observe(operation, outcome(err), time.Since(start))
		return err
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := s.logg.WithFields(c.Request().Context(), map[string]any{
				"method":     v.Method,
				"path":       v.URIPath,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"request_id": v.RequestID,
			})
			switch {
			case v.Status >= http.StatusInternalServerError:
				s.logg.Error(ctx, "http request", v.Error)
			case v.Status >= http.StatusBadRequest:
				s.logg.Warn(ctx, "http request")
			default:
				s.logg.Info(ctx, "http request")
			}
			return nil
		},
	})
}
