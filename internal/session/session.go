package session

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/observability"
)

const sessionKey = "portal_session"

// fallbackTTL applies to tokens whose expiry cannot be read.
const fallbackTTL = 12 * time.Hour

// Options configures the session cookie.
type Options struct {
	CookieName string
	Secure     bool
}

// Manager binds a Store to browser cookies.
type Manager struct {
	store   Store
	opts    Options
	logger  *zap.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// NewManager creates a session manager.
func NewManager(store Store, opts Options, logger *zap.Logger, metrics *observability.Metrics) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "portal_session"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, opts: opts, logger: logger, metrics: metrics, now: time.Now}
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// Middleware loads the session named by the cookie and attaches it to the
// request. A store failure is logged and treated as an empty session.
func (m *Manager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := &Session{manager: m, c: c, id: c.Cookies(m.opts.CookieName)}
		if s.id != "" {
			token, err := m.store.Load(c.UserContext(), s.id)
			switch {
			case err == nil:
				s.token = token
			case errors.Is(err, ErrNotFound):
				s.id = ""
			default:
				m.logger.Error("session load failed", zap.Error(err))
			}
			if !errors.Is(err, ErrNotFound) {
				m.metrics.RecordSession("load", err)
			}
		}
		c.Locals(sessionKey, s)
		return c.Next()
	}
}

// FromContext returns the request's session. It is never nil once the
// middleware has run.
func FromContext(c *fiber.Ctx) *Session {
	if s, ok := c.Locals(sessionKey).(*Session); ok {
		return s
	}
	return nil
}

// Session is the per-request view of the browser's stored token.
type Session struct {
	manager *Manager
	c       *fiber.Ctx
	id      string
	token   string
}

// ID returns the session id, empty until a token has been stored.
func (s *Session) ID() string {
	return s.id
}

// Get returns the stored token, or "" when there is none.
func (s *Session) Get() string {
	return s.token
}

// Claims decodes the stored token.
func (s *Session) Claims() (Claims, error) {
	return DecodeSession(s.token)
}

// IsValid reports whether a token is present, decodable and unexpired.
func (s *Session) IsValid() bool {
	if s.token == "" {
		return false
	}
	claims, err := s.Claims()
	if err != nil {
		return false
	}
	return !claims.Expired(s.manager.now())
}

// Set stores token under a freshly minted id, drops the previous id and
// issues the cookie. Every login rotates the id.
func (s *Session) Set(token string) error {
	ttl := fallbackTTL
	if claims, err := DecodeSession(token); err == nil {
		if remaining := claims.ExpiresAt().Sub(s.manager.now()); remaining > 0 {
			ttl = remaining
		}
	}

	id := uuid.NewString()
	err := s.manager.store.Save(s.ctx(), id, token, ttl)
	s.manager.metrics.RecordSession("save", err)
	if err != nil {
		return err
	}
	if previous := s.id; previous != "" {
		delErr := s.manager.store.Delete(s.ctx(), previous)
		s.manager.metrics.RecordSession("delete", delErr)
		if delErr != nil {
			s.manager.logger.Warn("failed to drop rotated session", zap.Error(delErr))
		}
	}
	s.id = id
	s.token = token
	s.c.Cookie(&fiber.Cookie{
		Name:     s.manager.opts.CookieName,
		Value:    s.id,
		Path:     "/",
		Expires:  s.manager.now().Add(ttl),
		HTTPOnly: true,
		Secure:   s.manager.opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Clear deletes the stored token and expires the cookie. It is safe to
// call on an empty session.
func (s *Session) Clear() error {
	s.token = ""
	if s.id == "" {
		return nil
	}
	err := s.manager.store.Delete(s.ctx(), s.id)
	s.manager.metrics.RecordSession("delete", err)
	s.id = ""
	s.c.Cookie(&fiber.Cookie{
		Name:     s.manager.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   s.manager.opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return err
}

func (s *Session) ctx() context.Context {
	if ctx := s.c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
