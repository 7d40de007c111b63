package domain

import "strings"

// MinRequiredSkills is the fewest skills a task or a registration may carry.
const MinRequiredSkills = 1

// RequestMatchThreshold is the match percentage a task must exceed before a
// staff member may request it.
const RequestMatchThreshold = 30

// ErrSkillsRequired is the message shown when the skill text yields nothing.
const ErrSkillsRequired = "At least one skill is required"

// ParseSkills splits comma separated text, trims each entry and drops empty
// ones, preserving order.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if skill := strings.TrimSpace(part); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

// HasEnoughSkills reports whether skills satisfies MinRequiredSkills.
func HasEnoughSkills(skills []string) bool {
	return len(skills) >= MinRequiredSkills
}

// RequestState is what the staff dashboard shows next to a task.
type RequestState string

const (
	RequestStateHidden      RequestState = ""
	RequestStateRequestable RequestState = "requestable"
	RequestStateRequested   RequestState = "requested"
	RequestStateRejected    RequestState = "rejected"
)

// RequestState decides the request control for t. Tasks at or below the
// threshold never show one; a rejection outranks a pending request.
func (t StaffTask) RequestState() RequestState {
	if t.PercentageMatch <= RequestMatchThreshold {
		return RequestStateHidden
	}
	switch {
	case t.IsRejected:
		return RequestStateRejected
	case t.HasRequested:
		return RequestStateRequested
	default:
		return RequestStateRequestable
	}
}
