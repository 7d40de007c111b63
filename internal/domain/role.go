package domain

// Role is the role claim carried by a session token.
type Role string

const (
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Dashboard paths.
const (
	ManagerDashboardPath = "/dashboard"
	StaffDashboardPath   = "/staffdashboard"
	EntryPath            = "/"
)

// DashboardPath returns where a session with role r lands. Anything that is
// not staff is treated as a manager.
func (r Role) DashboardPath() string {
	if r == RoleStaff {
		return StaffDashboardPath
	}
	return ManagerDashboardPath
}

// AuthMode selects which login endpoint the entry page submits to.
type AuthMode string

const (
	AuthModeManagerLogin AuthMode = "manager-login"
	AuthModeStaffLogin   AuthMode = "staff-login"
)

// ParseAuthMode maps a query value onto a mode, defaulting to staff login.
func ParseAuthMode(raw string) AuthMode {
	if AuthMode(raw) == AuthModeManagerLogin {
		return AuthModeManagerLogin
	}
	return AuthModeStaffLogin
}

// Role returns the role the mode logs in as.
func (m AuthMode) Role() Role {
	if m == AuthModeManagerLogin {
		return RoleManager
	}
	return RoleStaff
}
