package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/safevault/safevault/internal/api/handler"
	"github.com/safevault/safevault/internal/api/middleware"
	"github.com/safevault/safevault/internal/core/domain"
	"github.com/safevault/safevault/internal/core/ports"
	"github.com/safevault/safevault/internal/core/service"
	"github.com/safevault/safevault/internal/core/token"
)

// Dependencies carries everything the router needs; tests inject stubs here.
type Dependencies struct {
	Users       ports.UserRepository
	Submissions ports.SubmissionRepository
	Tokens      *token.Manager
	Throttle    service.LoginThrottle
	Log         zerolog.Logger

	// Mongo and Redis back the readiness probe only; when either is nil the
	// probe route is not registered.
	Mongo *mongo.Database
	Redis *redis.Client

	// Registerer and Gatherer default to the Prometheus globals. Tests pass
	// a fresh registry so repeated router construction does not collide.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	// FormFile is the path of the static HTML form served at /form.
	FormFile string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Users, deps.Tokens, deps.Throttle, deps.Log)
	submissionService := service.NewSubmissionService(deps.Submissions, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	submitHandler := handler.NewSubmitHandler(submissionService)
	adminHandler := handler.NewAdminHandler()

	// --- Public form routes ---
	if deps.FormFile != "" {
		e.File("/form", deps.FormFile)
	}
	e.POST("/submit", submitHandler.Submit)
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Protected routes ---
	e.GET("/admin", adminHandler.Dashboard,
		middleware.Auth(deps.Tokens),
		middleware.RBAC(domain.RoleAdmin),
	)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if deps.Mongo != nil && deps.Redis != nil {
		e.GET("/health/ready", handler.NewReadinessHandler(deps.Mongo, deps.Redis).Readiness)
	}

	return e
}
