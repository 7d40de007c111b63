package service

import (
	"errors"
	"fmt"

	"github.com/spec-kit/staffing-portal/internal/domain"
)

// ErrInvalidTransition is returned when an auth step change is not allowed
// from the current step.
var ErrInvalidTransition = errors.New("invalid auth transition")

// AuthStep is the staff sub-state of the entry page.
type AuthStep string

const (
	StepLoginForm    AuthStep = "login"
	StepRegisterForm AuthStep = "register"
	StepOtpPending   AuthStep = "otp"
)

// ParseAuthStep maps a query or form value onto a step, defaulting to login.
func ParseAuthStep(raw string) AuthStep {
	switch AuthStep(raw) {
	case StepRegisterForm:
		return StepRegisterForm
	case StepOtpPending:
		return StepOtpPending
	default:
		return StepLoginForm
	}
}

// OTPVerifiedNotice is shown after a successful verification.
const OTPVerifiedNotice = "OTP verified successfully! You can now log in."

// AuthView is the entry page state. Password is never carried back to the
// browser.
type AuthView struct {
	Mode   domain.AuthMode
	Step   AuthStep
	Name   string
	Email  string
	Skills string
	OTP    string
	Error  string
	Notice string
}

// NewAuthView returns the initial view for mode. Manager mode has no steps.
func NewAuthView(mode domain.AuthMode, step AuthStep) AuthView {
	if mode == domain.AuthModeManagerLogin {
		step = StepLoginForm
	}
	return AuthView{Mode: mode, Step: step}
}

// ToggleRegister switches a staff view between login and registration,
// clearing every field.
func (v AuthView) ToggleRegister() (AuthView, error) {
	if v.Mode != domain.AuthModeStaffLogin {
		return v, fmt.Errorf("%w: manager login has no registration", ErrInvalidTransition)
	}
	switch v.Step {
	case StepLoginForm:
		return AuthView{Mode: v.Mode, Step: StepRegisterForm}, nil
	case StepRegisterForm:
		return AuthView{Mode: v.Mode, Step: StepLoginForm}, nil
	default:
		return v, fmt.Errorf("%w: cannot toggle from %s", ErrInvalidTransition, v.Step)
	}
}

// RegistrationSucceeded moves to OTP entry, keeping only the email.
func (v AuthView) RegistrationSucceeded() (AuthView, error) {
	if v.Mode != domain.AuthModeStaffLogin || v.Step != StepRegisterForm {
		return v, fmt.Errorf("%w: registration from %s", ErrInvalidTransition, v.Step)
	}
	return AuthView{Mode: v.Mode, Step: StepOtpPending, Email: v.Email}, nil
}

// OtpVerified returns to login with a confirmation and no credentials.
func (v AuthView) OtpVerified() (AuthView, error) {
	if v.Mode != domain.AuthModeStaffLogin || v.Step != StepOtpPending {
		return v, fmt.Errorf("%w: verification from %s", ErrInvalidTransition, v.Step)
	}
	return AuthView{Mode: v.Mode, Step: StepLoginForm, Notice: OTPVerifiedNotice}, nil
}

// Title is the page heading for the current state.
func (v AuthView) Title() string {
	if v.Mode == domain.AuthModeManagerLogin {
		return "Manager Login"
	}
	switch v.Step {
	case StepRegisterForm:
		return "Staff Registration"
	case StepOtpPending:
		return "Verify OTP"
	default:
		return "Staff Login"
	}
}

// Subtitle is the line under the heading.
func (v AuthView) Subtitle() string {
	if v.Mode == domain.AuthModeManagerLogin {
		return "Sign in to your management account"
	}
	switch v.Step {
	case StepRegisterForm:
		return "Create your staff account"
	case StepOtpPending:
		return "Enter the OTP sent to " + v.Email
	default:
		return "Access your staff dashboard"
	}
}
