package domain

// RequestStatus enumerates the states of a staff request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// RequestAction is the manager's decision on a pending request.
type RequestAction string

const (
	RequestActionApprove RequestAction = "approve"
	RequestActionReject  RequestAction = "reject"
)

// Valid reports whether a is approve or reject.
func (a RequestAction) Valid() bool {
	return a == RequestActionApprove || a == RequestActionReject
}

// PastTense renders the action for notices ("approved", "rejected").
func (a RequestAction) PastTense() string {
	if a == RequestActionReject {
		return "rejected"
	}
	return string(a) + "d"
}

// RequestStaff is the staff detail joined onto a request.
type RequestStaff struct {
	Name   string   `json:"name"`
	Email  string   `json:"email,omitempty"`
	Skills []string `json:"skills"`
}

// StaffRequest joins a task with the staff member who asked for it.
type StaffRequest struct {
	TaskID    string        `json:"taskId"`
	Email     string        `json:"email"`
	Status    RequestStatus `json:"status"`
	CreatedAt string        `json:"createdAt"`
	Task      Task          `json:"task"`
	Staff     RequestStaff  `json:"staff"`
}

// Pending reports whether the manager can still act on r.
func (r StaffRequest) Pending() bool {
	return r.Status == RequestStatusPending
}
