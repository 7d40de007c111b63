package domain

// StaffCandidate is a staff member ranked against a task in the assignment dialog.
type StaffCandidate struct {
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	Skills          []string `json:"skills"`
	PercentageMatch float64  `json:"percentageMatch"`
}

// Availability is the date window a staff member declares themselves free.
type Availability struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// IsSet reports whether both ends of the window are known.
func (a Availability) IsSet() bool {
	return a.StartDate != "" && a.EndDate != ""
}

// UserDetails is the profile returned for the signed-in staff member.
type UserDetails struct {
	Name         string        `json:"name,omitempty"`
	Email        string        `json:"email,omitempty"`
	Skills       []string      `json:"skills,omitempty"`
	Availability *Availability `json:"availability,omitempty"`
}
