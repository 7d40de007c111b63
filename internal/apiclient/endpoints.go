package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/spec-kit/staffing-portal/internal/domain"
)

// Endpoint paths on the staffing API.
const (
	PathManagerLogin  = "/manager-login"
	PathStaffLogin    = "/staff-login"
	PathStaffRegister = "/staff-register"
	PathStaffVerify   = "/staff-verify"
	PathAddTask       = "/add-task"
	PathManagerTasks  = "/getManagerTasks"
	PathStaffRequests = "/staffTaskRequests"
	PathAssignTask    = "/assign-task"
	PathRequestAction = "/request-action"
	PathStaffTasks    = "/staff-tasks"
	PathApprovedTasks = "/approved-tasks"
	PathUserDetails   = "/user-details"
	PathStaffUpdate   = "/staff-update"
	PathStaffRequest  = "/staff-request"
)

// LoginPath returns the login endpoint for mode.
func LoginPath(mode domain.AuthMode) string {
	if mode == domain.AuthModeManagerLogin {
		return PathManagerLogin
	}
	return PathStaffLogin
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, mode domain.AuthMode, creds Credentials) (LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, LoginPath(mode), "", nil, creds, &resp)
	return resp, err
}

// Register signs up a staff member; an OTP is sent to their email.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	var resp MessageResponse
	return c.do(ctx, http.MethodPost, PathStaffRegister, "", nil, reg, &resp)
}

// VerifyOTP confirms a pending registration.
func (c *Client) VerifyOTP(ctx context.Context, req OTPVerification) error {
	var resp MessageResponse
	return c.do(ctx, http.MethodPost, PathStaffVerify, "", nil, req, &resp)
}

// AddTask creates a task.
func (c *Client) AddTask(ctx context.Context, token string, task domain.NewTask) error {
	var resp MessageResponse
	return c.do(ctx, http.MethodPost, PathAddTask, token, nil, task, &resp)
}

// ManagerTasks lists the manager's tasks.
func (c *Client) ManagerTasks(ctx context.Context, token string) ([]domain.Task, error) {
	var resp managerTasksResponse
	err := c.do(ctx, http.MethodGet, PathManagerTasks, token, nil, nil, &resp)
	return resp.Tasks, err
}

// StaffRequests lists staff requests for the manager's tasks.
func (c *Client) StaffRequests(ctx context.Context, token string) ([]domain.StaffRequest, error) {
	var resp staffRequestsResponse
	err := c.do(ctx, http.MethodGet, PathStaffRequests, token, nil, nil, &resp)
	return resp.Requests, err
}

// Candidates lists staff ranked against taskID.
func (c *Client) Candidates(ctx context.Context, token, taskID string) ([]domain.StaffCandidate, error) {
	var resp candidatesResponse
	err := c.do(ctx, http.MethodGet, PathAssignTask, token, url.Values{"taskId": {taskID}}, nil, &resp)
	return resp.Staff, err
}

// AssignTask gives a task to a staff member.
func (c *Client) AssignTask(ctx context.Context, token string, req Assignment) error {
	var resp MessageResponse
	return c.do(ctx, http.MethodPost, PathAssignTask, token, nil, req, &resp)
}

// ResolveRequest approves or rejects a staff request.
func (c *Client) ResolveRequest(ctx context.Context, token string, req RequestDecision) error {
	var resp MessageResponse
	return c.do(ctx, http.MethodPost, PathRequestAction, token, nil, req, &resp)
}

// StaffTasks lists open tasks annotated for the signed-in staff member.
func (c *Client) StaffTasks(ctx context.Context, token string) ([]domain.StaffTask, error) {
	var resp staffTasksResponse
	err := c.do(ctx, http.MethodGet, PathStaffTasks, token, nil, nil, &resp)
	return resp.Tasks, err
}

// ApprovedTasks lists tasks the staff member was approved for.
func (c *Client) ApprovedTasks(ctx context.Context, token string) ([]domain.ApprovedTask, error) {
	var resp approvedTasksResponse
	err := c.do(ctx, http.MethodGet, PathApprovedTasks, token, nil, nil, &resp)
	return resp.Tasks, err
}

// UserDetails returns the signed-in staff member's profile.
func (c *Client) UserDetails(ctx context.Context, token string) (domain.UserDetails, error) {
	var resp userDetailsResponse
	err := c.do(ctx, http.MethodGet, PathUserDetails, token, nil, nil, &resp)
	return resp.User, err
}

// UpdateAvailability replaces the staff member's availability window.
func (c *Client) UpdateAvailability(ctx context.Context, token string, availability domain.Availability) error {
	var resp MessageResponse
	return c.do(ctx, http.MethodPost, PathStaffUpdate, token, nil, AvailabilityUpdate{Availability: availability}, &resp)
}

// RequestTask asks for a task.
func (c *Client) RequestTask(ctx context.Context, token, taskID string) error {
	var resp MessageResponse
	return c.do(ctx, http.MethodPost, PathStaffRequest, token, nil, TaskRequest{TaskID: taskID}, &resp)
}
