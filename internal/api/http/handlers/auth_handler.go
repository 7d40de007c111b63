package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/api/dto"
	"github.com/spec-kit/staffing-portal/internal/api/http/views"
	"github.com/spec-kit/staffing-portal/internal/auth"
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/service"
	"github.com/spec-kit/staffing-portal/internal/session"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

// AuthHandler serves the entry page and its login, registration and OTP forms.
type AuthHandler struct {
	Pages
	auth   *service.AuthService
	logger *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(pages Pages, authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{Pages: pages, auth: authService, logger: logger}
}

// Entry handles GET /. A valid session goes straight to its dashboard; an
// expired one is dropped and the login form shown.
func (h *AuthHandler) Entry(c *fiber.Ctx) error {
	s := session.FromContext(c)
	if s != nil && s.Get() != "" {
		if s.IsValid() {
			claims, _ := s.Claims()
			return auth.Redirect(c, claims.Role.DashboardPath())
		}
		if err := s.Clear(); err != nil {
			h.logger.Warn("failed to clear stale session", zap.Error(err))
		}
	}

	view := service.NewAuthView(domain.ParseAuthMode(c.Query("mode")), service.StepLoginForm)
	if service.ParseAuthStep(c.Query("step")) == service.StepRegisterForm {
		if toggled, err := view.ToggleRegister(); err == nil {
			view = toggled
		}
	}
	return h.render(c, http.StatusOK, view)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}
	mode := domain.ParseAuthMode(form.Mode)

	result, err := h.auth.Login(c.UserContext(), session.FromContext(c), mode, form.Email, form.Password)
	if err != nil {
		if !userFacing(err) {
			return err
		}
		view := service.NewAuthView(mode, service.StepLoginForm)
		view.Email = form.Email
		view.Error = apperrors.UserMessage(err)
		return h.render(c, formStatus(err), view)
	}
	return auth.Redirect(c, result.Redirect)
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form dto.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}
	view := service.AuthView{
		Mode:   domain.AuthModeStaffLogin,
		Step:   service.StepRegisterForm,
		Name:   form.Name,
		Email:  form.Email,
		Skills: form.Skills,
	}

	err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Skills:   form.Skills,
	})
	if err != nil {
		if !userFacing(err) {
			return err
		}
		view.Error = apperrors.UserMessage(err)
		return h.render(c, formStatus(err), view)
	}

	next, err := view.RegistrationSucceeded()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return h.render(c, http.StatusOK, next)
}

// VerifyOTP handles POST /auth/verify.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var form dto.OTPForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}
	view := service.AuthView{
		Mode:  domain.AuthModeStaffLogin,
		Step:  service.StepOtpPending,
		Email: form.Email,
		OTP:   form.OTP,
	}

	if err := h.auth.VerifyOTP(c.UserContext(), form.Email, form.OTP); err != nil {
		if !userFacing(err) {
			return err
		}
		view.Error = apperrors.UserMessage(err)
		return h.render(c, formStatus(err), view)
	}

	next, err := view.OtpVerified()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return h.render(c, http.StatusOK, next)
}

// Logout handles POST /logout. It works for expired sessions too.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	s := session.FromContext(c)
	if s == nil {
		return auth.Redirect(c, domain.EntryPath)
	}
	var role domain.Role
	if claims, err := s.Claims(); err == nil {
		role = claims.Role
	}
	if err := h.auth.Logout(c.UserContext(), s, role); err != nil {
		h.logger.Warn("logout failed", zap.Error(err))
	}
	return auth.Redirect(c, domain.EntryPath)
}

func (h *AuthHandler) render(c *fiber.Ctx, status int, view service.AuthView) error {
	layout := h.layout(view.Title(), false)
	layout.Notice = view.Notice
	return h.Views.Render(c, status, views.PageLogin, views.LoginPage{Layout: layout, View: view})
}
