package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/api/http/handlers"
	"github.com/spec-kit/staffing-portal/internal/api/http/views"
	"github.com/spec-kit/staffing-portal/internal/apiclient"
	"github.com/spec-kit/staffing-portal/internal/auth"
	"github.com/spec-kit/staffing-portal/internal/events"
	"github.com/spec-kit/staffing-portal/internal/inflight"
	"github.com/spec-kit/staffing-portal/internal/observability"
	"github.com/spec-kit/staffing-portal/internal/service"
	"github.com/spec-kit/staffing-portal/internal/session"
)

// Dependencies is everything the portal's web app is assembled from.
type Dependencies struct {
	AppName        string
	Version        string
	RequestTimeout time.Duration
	API            *apiclient.Client
	Store          session.Store
	StoreName      string
	Cookie         session.Options
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	Metrics        *observability.Metrics
}

// NewApp builds the fiber app with every service, handler and route wired.
func NewApp(deps Dependencies) (*fiber.App, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	gate := inflight.NewGate()
	authService := service.NewAuthService(service.AuthDependencies{
		API:        deps.API,
		Dispatcher: deps.Dispatcher,
		Logger:     logger,
	})
	taskService := service.NewTaskService(service.TaskDependencies{
		API:        deps.API,
		Gate:       gate,
		Dispatcher: deps.Dispatcher,
		Logger:     logger,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		API:        deps.API,
		Tasks:      taskService,
		Gate:       gate,
		Dispatcher: deps.Dispatcher,
		Logger:     logger,
	})
	staffService := service.NewStaffService(service.StaffDependencies{
		API:        deps.API,
		Gate:       gate,
		Dispatcher: deps.Dispatcher,
		Logger:     logger,
	})

	pages := handlers.Pages{Views: renderer, AppName: deps.AppName}
	sessions := session.NewManager(deps.Store, deps.Cookie, logger, deps.Metrics)
	app := fiber.New(fiber.Config{
		AppName:               deps.AppName,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, logger, deps.Metrics, renderer, deps.AppName, deps.RequestTimeout)
	RegisterRoutes(app, RouteConfig{
		Health:   handlers.NewHealthHandler(deps.AppName, deps.Version, sessions.Store(), deps.StoreName),
		Auth:     handlers.NewAuthHandler(pages, authService, logger),
		Manager:  handlers.NewManagerHandler(pages, taskService, assignmentService),
		Staff:    handlers.NewStaffHandler(pages, staffService),
		Sessions: sessions,
		Guard:    auth.NewGuard(logger, deps.Dispatcher),
		Metrics:  deps.Metrics,
	})
	return app, nil
}
