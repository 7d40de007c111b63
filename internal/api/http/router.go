package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/staffing-portal/internal/api/http/handlers"
	"github.com/spec-kit/staffing-portal/internal/auth"
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/observability"
	"github.com/spec-kit/staffing-portal/internal/session"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Manager  *handlers.ManagerHandler
	Staff    *handlers.StaffHandler
	Sessions *session.Manager
	Guard    *auth.Guard
	Metrics  *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	web := app.Group("", cfg.Sessions.Middleware())
	web.Get(domain.EntryPath, cfg.Auth.Entry)
	web.Post("/auth/login", cfg.Auth.Login)
	web.Post("/auth/register", cfg.Auth.Register)
	web.Post("/auth/verify", cfg.Auth.VerifyOTP)
	web.Post("/logout", cfg.Auth.Logout)

	manager := web.Group(domain.ManagerDashboardPath, cfg.Guard.Handle, auth.RequireRole(domain.RoleManager))
	manager.Get("/", cfg.Manager.Dashboard)
	manager.Post("/tasks", cfg.Manager.CreateTask)
	manager.Post("/assign", cfg.Manager.AssignTask)
	manager.Post("/requests/resolve", cfg.Manager.ResolveRequest)

	staff := web.Group(domain.StaffDashboardPath, cfg.Guard.Handle, auth.RequireRole(domain.RoleStaff))
	staff.Get("/", cfg.Staff.Dashboard)
	staff.Post("/availability", cfg.Staff.UpdateAvailability)
	staff.Post("/request", cfg.Staff.RequestTask)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("page", map[string]any{"path": c.Path()})
	})
}
