package service

import (
	"context"

	"github.com/spec-kit/staffing-portal/internal/apiclient"
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/events"
)

// AuthAPI is the part of the staffing API the auth workflow uses.
type AuthAPI interface {
	Login(ctx context.Context, mode domain.AuthMode, creds apiclient.Credentials) (apiclient.LoginResponse, error)
	Register(ctx context.Context, reg apiclient.Registration) error
	VerifyOTP(ctx context.Context, req apiclient.OTPVerification) error
}

// ManagerAPI is the part of the staffing API the manager dashboard uses.
type ManagerAPI interface {
	AddTask(ctx context.Context, token string, task domain.NewTask) error
	ManagerTasks(ctx context.Context, token string) ([]domain.Task, error)
	StaffRequests(ctx context.Context, token string) ([]domain.StaffRequest, error)
	Candidates(ctx context.Context, token, taskID string) ([]domain.StaffCandidate, error)
	AssignTask(ctx context.Context, token string, req apiclient.Assignment) error
	ResolveRequest(ctx context.Context, token string, req apiclient.RequestDecision) error
}

// StaffAPI is the part of the staffing API the staff dashboard uses.
type StaffAPI interface {
	StaffTasks(ctx context.Context, token string) ([]domain.StaffTask, error)
	ApprovedTasks(ctx context.Context, token string) ([]domain.ApprovedTask, error)
	UserDetails(ctx context.Context, token string) (domain.UserDetails, error)
	UpdateAvailability(ctx context.Context, token string, availability domain.Availability) error
	RequestTask(ctx context.Context, token, taskID string) error
}

// Caller is the signed-in session an operation runs for.
type Caller struct {
	Token     string
	SessionID string
	Role      domain.Role
}

func (c Caller) actor() events.Actor {
	return events.Actor{Role: c.Role, SessionID: c.SessionID}
}
