package apiclient

import "github.com/spec-kit/staffing-portal/internal/domain"

// Credentials is the login payload for both roles.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// Registration is the staff sign-up payload.
type Registration struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Skills   []string `json:"skills"`
}

// OTPVerification confirms a registration.
type OTPVerification struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// Assignment gives a task to a staff member.
type Assignment struct {
	TaskID string `json:"taskId"`
	Email  string `json:"email"`
}

// RequestDecision approves or rejects a staff request.
type RequestDecision struct {
	TaskID string               `json:"taskId"`
	Email  string               `json:"email"`
	Action domain.RequestAction `json:"action"`
}

// AvailabilityUpdate replaces the staff member's availability window.
type AvailabilityUpdate struct {
	Availability domain.Availability `json:"availability"`
}

// TaskRequest asks for a task on behalf of the signed-in staff member.
type TaskRequest struct {
	TaskID string `json:"taskId"`
}

// MessageResponse is the body of mutation endpoints.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
}

type managerTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

type staffRequestsResponse struct {
	Requests []domain.StaffRequest `json:"requests"`
}

type candidatesResponse struct {
	Staff []domain.StaffCandidate `json:"staff"`
}

type staffTasksResponse struct {
	Tasks []domain.StaffTask `json:"tasks"`
}

type approvedTasksResponse struct {
	Tasks []domain.ApprovedTask `json:"tasks"`
}

type userDetailsResponse struct {
	User domain.UserDetails `json:"user"`
}
