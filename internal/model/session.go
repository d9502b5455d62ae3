package model

import "time"

// Session represents a server-side browsing context identified by an opaque
// client-held token. The zero value is the anonymous session; identity fields
// are only set while Authenticated is true.
type Session struct {
	Token         string    `json:"token"`
	Authenticated bool      `json:"authenticated"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Anonymous returns the session representing an unauthenticated context.
func Anonymous() *Session {
	return &Session{}
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsAdmin reports whether the session is authenticated with the admin role.
func (s *Session) IsAdmin() bool {
	return s.Authenticated && s.Role == RoleAdmin
}
