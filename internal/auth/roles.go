package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-portal/internal/domain"
)

// RequireRole keeps a session on its own dashboard. A principal whose role
// lands elsewhere is redirected there instead of being refused.
func RequireRole(role domain.Role) fiber.Handler {
	want := role.DashboardPath()
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return Redirect(c, domain.EntryPath)
		}
		if home := principal.Role.DashboardPath(); home != want {
			return Redirect(c, home)
		}
		return c.Next()
	}
}
