package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login record referenced by the browser cookie.
// The cookie carries only the opaque ID; the user mapping lives here.
type Session struct {
	ID        string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
