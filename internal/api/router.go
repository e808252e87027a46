package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ayel/intranet/docs"
	"github.com/ayel/intranet/internal/api/handler"
	"github.com/ayel/intranet/internal/api/middleware"
	"github.com/ayel/intranet/internal/core/ports"
)

// Deps is everything the HTTP layer needs from the composition root.
type Deps struct {
	Logger    zerolog.Logger
	JWTSecret string
	// Revoked may be nil when server-side logout is disabled.
	Revoked middleware.RevocationChecker
	Pingers []handler.Pinger
	// Registry scopes the HTTP metrics; nil uses the default registry.
	Registry *prometheus.Registry

	Auth       ports.AuthService
	Posts      ports.PostService
	Events     ports.EventService
	Trainings  ports.TrainingService
	Companies  ports.CompanyService
	Extensions ports.ExtensionService
	Shortcuts  ports.ShortcutService
	Directory  ports.DirectoryService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(httpMetrics(d.Registry))

	// --- Operational routes (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.Pingers...)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", metricsHandler(d.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMiddleware := middleware.Auth(d.JWTSecret, d.Revoked)
	adminOnly := middleware.AdminOnly()

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	api := e.Group("", authMiddleware)
	api.PUT("/users/:id/company", authHandler.AssignCompany, adminOnly)

	// --- Mural ---
	postHandler := handler.NewPostHandler(d.Posts)
	api.GET("/posts", postHandler.Feed)
	api.GET("/posts/important", postHandler.Important)
	api.GET("/posts/:id", postHandler.Get)
	api.POST("/posts/:id/like", postHandler.ToggleLike)
	api.GET("/posts/:id/comments", postHandler.ListComments)
	api.POST("/posts/:id/comments", postHandler.AddComment)
	api.POST("/posts", postHandler.Create, adminOnly)
	api.PUT("/posts/:id", postHandler.Update, adminOnly)
	api.DELETE("/posts/:id", postHandler.Delete, adminOnly)

	// --- Calendar ---
	eventHandler := handler.NewEventHandler(d.Events)
	api.GET("/events", eventHandler.List)
	api.GET("/events/:id", eventHandler.Get)
	api.POST("/events", eventHandler.Create, adminOnly)
	api.PUT("/events/:id", eventHandler.Update, adminOnly)
	api.DELETE("/events/:id", eventHandler.Delete, adminOnly)

	// --- Trainings ---
	trainingHandler := handler.NewTrainingHandler(d.Trainings)
	api.GET("/trainings", trainingHandler.List)
	api.GET("/trainings/:id", trainingHandler.Get)
	api.POST("/trainings", trainingHandler.Create, adminOnly)
	api.PUT("/trainings/:id", trainingHandler.Update, adminOnly)
	api.DELETE("/trainings/:id", trainingHandler.Delete, adminOnly)

	// --- Companies ---
	companyHandler := handler.NewCompanyHandler(d.Companies)
	api.GET("/companies", companyHandler.List)
	api.GET("/companies/:id", companyHandler.Get)
	api.POST("/companies", companyHandler.Create, adminOnly)
	api.PUT("/companies/:id", companyHandler.Update, adminOnly)
	api.DELETE("/companies/:id", companyHandler.Delete, adminOnly)

	// --- Phone list ---
	extensionHandler := handler.NewExtensionHandler(d.Extensions)
	api.GET("/extensions", extensionHandler.List)
	api.POST("/extensions", extensionHandler.Create, adminOnly)
	api.PUT("/extensions/:id", extensionHandler.Update, adminOnly)
	api.DELETE("/extensions/:id", extensionHandler.Delete, adminOnly)

	// --- Shortcuts ---
	shortcutHandler := handler.NewShortcutHandler(d.Shortcuts)
	api.GET("/shortcuts", shortcutHandler.List)
	api.POST("/shortcuts", shortcutHandler.Create, adminOnly)
	api.PUT("/shortcuts/:id", shortcutHandler.Update, adminOnly)
	api.DELETE("/shortcuts/:id", shortcutHandler.Delete, adminOnly)

	// --- Directory ---
	directoryHandler := handler.NewDirectoryHandler(d.Directory)
	api.GET("/directory", directoryHandler.Search)
	api.GET("/directory/birthdays", directoryHandler.Birthdays)

	return e
}

func httpMetrics(reg *prometheus.Registry) echo.MiddlewareFunc {
	if reg == nil {
		return echoprometheus.NewMiddleware("intranet")
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "intranet",
		Registerer: reg,
	})
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
