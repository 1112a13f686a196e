package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Abh1nav7/AgenticSprint/docs"
	"github.com/Abh1nav7/AgenticSprint/internal/api/handler"
	"github.com/Abh1nav7/AgenticSprint/internal/api/middleware"
	"github.com/Abh1nav7/AgenticSprint/internal/core/ports"
)

// RouterConfig holds the HTTP-level settings.
type RouterConfig struct {
	AllowedOrigins []string
	BodyLimit      string

	// StaticDir, when set, is served under StaticPrefix (local avatar store).
	StaticDir    string
	StaticPrefix string

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// Dependencies are the services and stores the routes are built on.
type Dependencies struct {
	Auth     ports.AuthService
	Profile  ports.ProfileService
	Analysis ports.AnalysisService
	Tokens   ports.TokenVerifier
	Users    ports.UserFinder
	Store    ports.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if cfg.Registry != nil {
		registerer, gatherer = cfg.Registry, cfg.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           600,
	}))
	if cfg.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(cfg.BodyLimit))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "agentic",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	profileHandler := handler.NewProfileHandler(deps.Profile)
	analysisHandler := handler.NewAnalysisHandler(deps.Analysis)
	healthHandler := handler.NewHealthHandler(deps.Store)
	authMiddleware := middleware.Auth(deps.Tokens, deps.Users)

	// --- Health, metrics and docs (no auth required) ---
	e.GET("/", healthHandler.Root)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.StaticDir != "" {
		e.Static(cfg.StaticPrefix, cfg.StaticDir)
	}

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// --- Profile routes (bearer token required) ---
	user := e.Group("/user", authMiddleware)
	user.GET("/profile", profileHandler.Get)
	user.PUT("/profile", profileHandler.Update)
	user.POST("/avatar", profileHandler.UploadAvatar)

	// --- Analysis routes ---
	medical := e.Group("/api/v1/medical")
	medical.POST("/analyze", analysisHandler.Analyze)
	medical.GET("/test-api", analysisHandler.TestAPI)

	return e
}
