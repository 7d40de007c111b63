package dto

// LoginForm is posted by both login modes.
type LoginForm struct {
	Mode     string `form:"mode"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// RegisterForm is the staff sign-up form.
type RegisterForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Skills   string `form:"skills"`
}

// OTPForm confirms a registration.
type OTPForm struct {
	Email string `form:"email"`
	OTP   string `form:"otp"`
}

// TaskForm is the manager's task intake form.
type TaskForm struct {
	TaskID         string `form:"taskId"`
	ProjectID      string `form:"projectId"`
	TaskName       string `form:"taskName"`
	StartDate      string `form:"startDate"`
	EndDate        string `form:"endDate"`
	RequiredSkills string `form:"requiredSkills"`
	Status         string `form:"status"`
}

// AssignForm confirms an assignment.
type AssignForm struct {
	TaskID string `form:"taskId"`
	Email  string `form:"email"`
}

// ResolveForm approves or rejects a staff request.
type ResolveForm struct {
	TaskID string `form:"taskId"`
	Email  string `form:"email"`
	Action string `form:"action"`
}

// AvailabilityForm sets the staff member's availability window.
type AvailabilityForm struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// TaskRequestForm asks for a task.
type TaskRequestForm struct {
	TaskID string `form:"taskId"`
}
