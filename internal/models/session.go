package models

import (
	"time"
)

// SessionRecord is the gateway-side state for one browser session.
// It lives only as long as the session cookie does; nothing about it is
// written to durable storage.
type SessionRecord struct {
	SessionID      string    `json:"sessionId"`      // Unique ID for this session (UUID)
	Identity       Identity  `json:"identity"`       // The authenticated identity from login
	CreatedAt      time.Time `json:"createdAt"`      // When the session was created
	LastActivityAt time.Time `json:"lastActivityAt"` // Last renewing action (login, request, monitor check)
}

// IsValid reports whether the record satisfies the session validity
// invariant: it must carry an identity whose success flag is set.
func (r *SessionRecord) IsValid() bool {
	return r != nil && r.Identity.Success
}

// IdleSince returns how long the session has been without activity at the
// given instant.
func (r *SessionRecord) IdleSince(now time.Time) time.Duration {
	return now.Sub(r.LastActivityAt)
}
