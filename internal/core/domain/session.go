package domain

import "time"

// Session is the authenticated identity handed to handlers and services.
// It is cached as-is by the session repository and trusted on restore.
type Session struct {
	ID       string    `json:"id"`
	User     User      `json:"user"`
	IssuedAt time.Time `json:"issuedAt"`
	Notice   string    `json:"notice,omitempty"`
}

// Authenticated reports whether the session belongs to a signed-in identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.ID != ""
}

// Allows is the route gate: authenticated and the required flag literally true.
// No hierarchy is evaluated.
func (s *Session) Allows(key RoleKey) bool {
	return s.Authenticated() && s.User.Roles.Has(key)
}
