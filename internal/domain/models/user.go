package models

// DefaultRole is assumed for users whose profile carries no explicit role.
const DefaultRole = "agent"

// User is the authenticated agent's profile as returned by the backend.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// EffectiveRole returns the user's role, defaulting to DefaultRole.
func (u *User) EffectiveRole() string {
	if u == nil || u.Role == "" {
		return DefaultRole
	}
	return u.Role
}

// ErrorRecord is the process-wide last-error indicator shared by all
// asynchronous actions. It is overwritten, never merged.
type ErrorRecord struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
