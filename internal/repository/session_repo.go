package repository

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session ID is not present or its
// entry has already expired out of the store.
var ErrSessionNotFound = errors.New("session not found or expired")

// SessionRepository holds one opaque payload per browser session. Payloads
// are the raw encoded session record; decoding and the validity invariant
// live in the session service, so a corrupt payload is representable here
// and can be purged when it is discovered.
//
// The TTL is a backstop only: the service's idle-timeout predicate is
// authoritative, the repository just guarantees abandoned entries do not
// accumulate.
type SessionRepository interface {
	// Put saves or replaces the payload for a session ID.
	Put(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error
	// Get retrieves the payload for a session ID.
	// It returns ErrSessionNotFound if the entry is missing or swept.
	Get(ctx context.Context, sessionID string) ([]byte, error)
	// Delete removes a session entry; deleting an absent ID is not an error.
	Delete(ctx context.Context, sessionID string) error
}
