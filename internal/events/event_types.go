package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/staffing-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoggedIn            EventType = "logged_in"
	EventLoggedOut           EventType = "logged_out"
	EventSessionExpired      EventType = "session_expired"
	EventStaffRegistered     EventType = "staff_registered"
	EventOtpVerified         EventType = "otp_verified"
	EventTaskCreated         EventType = "task_created"
	EventTaskAssigned        EventType = "task_assigned"
	EventRequestResolved     EventType = "request_resolved"
	EventTaskRequested       EventType = "task_requested"
	EventAvailabilityUpdated EventType = "availability_updated"
)

// AllEventTypes lists every event the portal emits.
var AllEventTypes = []EventType{
	EventLoggedIn,
	EventLoggedOut,
	EventSessionExpired,
	EventStaffRegistered,
	EventOtpVerified,
	EventTaskCreated,
	EventTaskAssigned,
	EventRequestResolved,
	EventTaskRequested,
	EventAvailabilityUpdated,
}

// Actor identifies who triggered an event, as far as the portal knows.
type Actor struct {
	Role      domain.Role `json:"role,omitempty"`
	Email     string      `json:"email,omitempty"`
	SessionID string      `json:"session_id,omitempty"`
}

// Event represents something that happened in the portal.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New builds an event with a fresh id and the current time.
func New(eventType EventType, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID    string            `json:"task_id"`
	ProjectID string            `json:"project_id"`
	Status    domain.TaskStatus `json:"status"`
	Skills    int               `json:"skills"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	TaskID     string `json:"task_id"`
	StaffEmail string `json:"staff_email"`
}

// RequestResolvedPayload payload.
type RequestResolvedPayload struct {
	TaskID     string               `json:"task_id"`
	StaffEmail string               `json:"staff_email"`
	Action     domain.RequestAction `json:"action"`
}

// TaskRequestedPayload payload.
type TaskRequestedPayload struct {
	TaskID string `json:"task_id"`
}

// AvailabilityUpdatedPayload payload.
type AvailabilityUpdatedPayload struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// AccountPayload carries the email an auth event concerns.
type AccountPayload struct {
	Email string `json:"email"`
}
