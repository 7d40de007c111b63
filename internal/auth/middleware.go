package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/events"
	"github.com/spec-kit/staffing-portal/internal/session"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the signed-in browser session.
type Principal struct {
	Role      domain.Role
	ExpiresAt time.Time
	SessionID string
	Token     string
}

// Actor describes the principal for audit events.
func (p *Principal) Actor() events.Actor {
	if p == nil {
		return events.Actor{}
	}
	return events.Actor{Role: p.Role, SessionID: p.SessionID}
}

// Guard admits requests whose session holds a decodable, unexpired token
// and sends everyone else to the entry page.
type Guard struct {
	logger    *zap.Logger
	publisher events.Publisher
	now       func() time.Time
}

// NewGuard constructs the session guard.
func NewGuard(logger *zap.Logger, dispatcher events.Dispatcher) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{
		logger: logger,
		publisher: events.Publisher{Dispatcher: dispatcher, OnError: func(e events.Event, err error) {
			logger.Warn("audit publish failed", zap.String("event", string(e.Type)), zap.Error(err))
		}},
		now: time.Now,
	}
}

// Handle enforces a valid session for protected routes. Decode failures and
// expiry clear the stored token; neither is ever an error page.
func (g *Guard) Handle(c *fiber.Ctx) error {
	s := session.FromContext(c)
	if s == nil || s.Get() == "" {
		return Redirect(c, domain.EntryPath)
	}

	claims, err := s.Claims()
	if err != nil || claims.Expired(g.now()) {
		sessionID := s.ID()
		if clearErr := s.Clear(); clearErr != nil {
			g.logger.Warn("failed to clear session", zap.Error(clearErr))
		}
		reason := "expired"
		if err != nil {
			reason = "undecodable"
		}
		g.logger.Info("session rejected",
			zap.Error(apperrors.NewSessionInvalid("session token "+reason)),
			zap.String("path", c.Path()))
		g.publisher.Emit(c.UserContext(), events.New(events.EventSessionExpired,
			events.Actor{Role: claims.Role, SessionID: sessionID}, fiber.Map{"reason": reason}))
		return Redirect(c, domain.EntryPath)
	}

	c.Locals(principalKey, &Principal{
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt(),
		SessionID: s.ID(),
		Token:     s.Get(),
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated session.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// Redirect sends the browser to path, using 303 for non-GET requests so the
// follow-up is always a GET.
func Redirect(c *fiber.Ctx, path string) error {
	status := fiber.StatusFound
	if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
		status = fiber.StatusSeeOther
	}
	return c.Redirect(path, status)
}
