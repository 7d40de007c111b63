package domain

import "time"

// TaskStatus enumerates lifecycle states for tasks.
type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "Open"
	TaskStatusAssigned  TaskStatus = "Assigned"
	TaskStatusCompleted TaskStatus = "Completed"
)

// TaskStatuses lists the statuses a task may be created with, in display order.
var TaskStatuses = []TaskStatus{TaskStatusOpen, TaskStatusAssigned, TaskStatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Task is a unit of work as returned by the staffing API.
type Task struct {
	TaskID         string     `json:"taskId"`
	ProjectID      string     `json:"projectId"`
	TaskName       string     `json:"taskName"`
	StartDate      string     `json:"startDate"`
	EndDate        string     `json:"endDate"`
	RequiredSkills []string   `json:"requiredSkills"`
	Status         TaskStatus `json:"status"`
	CreatedAt      string     `json:"createdAt,omitempty"`
}

// CanAssign reports whether a manager may open the assignment dialog for t.
func (t Task) CanAssign() bool {
	return t.Status == TaskStatusOpen
}

// NewTask is the payload sent when a manager creates a task.
type NewTask struct {
	TaskID         string     `json:"taskId"`
	ProjectID      string     `json:"projectId"`
	TaskName       string     `json:"taskName"`
	StartDate      string     `json:"startDate"`
	EndDate        string     `json:"endDate"`
	RequiredSkills []string   `json:"requiredSkills"`
	Status         TaskStatus `json:"status"`
}

// StaffTask is an open task annotated for the signed-in staff member.
type StaffTask struct {
	Task
	PercentageMatch float64 `json:"percentageMatch"`
	HasRequested    bool    `json:"hasRequested"`
	IsRejected      bool    `json:"isRejected"`
}

// ApprovedTask is a task whose request by the staff member was approved.
type ApprovedTask struct {
	Task
	RequestedAt string `json:"requestedAt,omitempty"`
}

// FormatTimestamp renders an API timestamp for display, falling back to the
// raw value when it is not RFC 3339.
func FormatTimestamp(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006 3:04 PM")
		}
	}
	return raw
}
