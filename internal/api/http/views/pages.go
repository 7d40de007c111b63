package views

import (
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/service"
)

// Layout is the data every page shares.
type Layout struct {
	AppName  string
	Title    string
	LoggedIn bool
	Notice   string
}

// LoginPage is the entry page.
type LoginPage struct {
	Layout
	View service.AuthView
}

// IsManager reports whether the manager mode tab is active.
func (p LoginPage) IsManager() bool {
	return p.View.Mode == domain.AuthModeManagerLogin
}

// ManagerPage is the manager dashboard.
type ManagerPage struct {
	Layout
	State        service.TabState
	Dialog       *service.AssignDialog
	AddTaskOpen  bool
	TaskForm     service.TaskForm
	TaskFormErr  string
	ActionError  string
	TaskStatuses []domain.TaskStatus
}

// ShowingRequests reports whether the staff requests tab is active.
func (p ManagerPage) ShowingRequests() bool {
	return p.State.Tab == service.TabStaffRequests
}

// StaffPage is the staff dashboard.
type StaffPage struct {
	Layout
	Dashboard        service.StaffDashboard
	EditAvailability bool
	AvailabilityForm domain.Availability
	AvailabilityErr  string
	ShowApproved     bool
	ActionError      string
}

// ErrorPage is shown for unexpected failures.
type ErrorPage struct {
	Layout
	Status  int
	Message string
}
