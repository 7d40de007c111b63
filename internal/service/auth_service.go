package service

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/apiclient"
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/events"
	"github.com/spec-kit/staffing-portal/internal/session"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

// TokenStore is where a successful login puts the session token.
type TokenStore interface {
	Set(token string) error
	Clear() error
	ID() string
}

// AuthService coordinates login, registration and OTP verification.
type AuthService struct {
	api       AuthAPI
	publisher events.Publisher
	logger    *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	API        AuthAPI
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{api: deps.API, publisher: newPublisher(deps.Dispatcher, logger), logger: logger}
}

// LoginResult tells the caller where the new session lands.
type LoginResult struct {
	Role     domain.Role
	Redirect string
}

// Login exchanges credentials for a token and stores it. Nothing is stored
// when the API refuses.
func (s *AuthService) Login(ctx context.Context, store TokenStore, mode domain.AuthMode, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, apperrors.NewValidationError("Email and password are required", nil)
	}

	resp, err := s.api.Login(ctx, mode, apiclient.Credentials{Email: email, Password: password})
	if err != nil {
		return LoginResult{}, err
	}
	if resp.Token == "" {
		message := resp.Message
		if message == "" {
			message = "Login failed"
		}
		return LoginResult{}, apperrors.NewRemoteRejected(apiclient.LoginPath(mode), http.StatusOK, message)
	}

	if err := store.Set(resp.Token); err != nil {
		return LoginResult{}, apperrors.NewInternalError(err)
	}

	role := mode.Role()
	if claims, err := session.DecodeSession(resp.Token); err == nil && claims.Role != "" {
		role = claims.Role
	} else if err != nil {
		s.logger.Warn("issued token could not be decoded", zap.Error(err))
	}

	s.publisher.Emit(ctx, events.New(events.EventLoggedIn,
		events.Actor{Role: role, Email: email, SessionID: store.ID()},
		events.AccountPayload{Email: email}))
	return LoginResult{Role: role, Redirect: role.DashboardPath()}, nil
}

// Logout forgets the session token.
func (s *AuthService) Logout(ctx context.Context, store TokenStore, role domain.Role) error {
	sessionID := store.ID()
	if err := store.Clear(); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.publisher.Emit(ctx, events.New(events.EventLoggedOut, events.Actor{Role: role, SessionID: sessionID}, nil))
	return nil
}

// RegisterInput is the raw registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Skills   string
}

// Register signs up a staff member. Skill text that yields no skills is
// refused without contacting the API.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	skills := domain.ParseSkills(in.Skills)
	if !domain.HasEnoughSkills(skills) {
		return apperrors.NewValidationError(domain.ErrSkillsRequired, map[string]any{"field": "skills"})
	}
	name, email := strings.TrimSpace(in.Name), strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return apperrors.NewValidationError("Name, email and password are required", nil)
	}

	err := s.api.Register(ctx, apiclient.Registration{
		Name:     name,
		Email:    email,
		Password: in.Password,
		Skills:   skills,
	})
	if err != nil {
		return err
	}
	s.publisher.Emit(ctx, events.New(events.EventStaffRegistered,
		events.Actor{Role: domain.RoleStaff, Email: email}, events.AccountPayload{Email: email}))
	return nil
}

// VerifyOTP confirms a registration.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	email, otp = strings.TrimSpace(email), strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return apperrors.NewValidationError("Email and OTP are required", nil)
	}
	if err := s.api.VerifyOTP(ctx, apiclient.OTPVerification{Email: email, OTP: otp}); err != nil {
		return err
	}
	s.publisher.Emit(ctx, events.New(events.EventOtpVerified,
		events.Actor{Role: domain.RoleStaff, Email: email}, events.AccountPayload{Email: email}))
	return nil
}

func newPublisher(dispatcher events.Dispatcher, logger *zap.Logger) events.Publisher {
	return events.Publisher{Dispatcher: dispatcher, OnError: func(e events.Event, err error) {
		logger.Warn("audit publish failed", zap.String("event", string(e.Type)), zap.Error(err))
	}}
}
