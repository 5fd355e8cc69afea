package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/organmatch/matching-service/internal/api/handler"
	"github.com/organmatch/matching-service/internal/api/middleware"
	"github.com/organmatch/matching-service/internal/api/view"
	"github.com/organmatch/matching-service/internal/core/ports"

	_ "github.com/organmatch/matching-service/docs"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Matches  ports.MatchService
	Sessions ports.SessionStore
	// Health maps dependency names to readiness checks.
	Health       map[string]handler.Pinger
	SecureCookie bool
	Logger       zerolog.Logger
	// Registerer receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) (*echo.Echo, error) {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "organmatch",
		Registerer: deps.Registerer,
	}))
	e.Use(middleware.LoadSession(deps.Sessions, deps.Logger))

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions, deps.SecureCookie, deps.Logger)
	matchHandler := handler.NewMatchHandler(deps.Matches, deps.SecureCookie)
	healthHandler := handler.NewHealthHandler(deps.Health)

	// --- Pages ---
	e.GET("/", handler.Home)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/matches", matchHandler.Matches, middleware.RequireSession)

	// --- Operations ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
