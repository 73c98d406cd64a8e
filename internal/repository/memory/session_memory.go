package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/trackventory/gateway/internal/repository"
)

type entry struct {
	payload []byte
	expiry  time.Time
}

// MemorySessionRepository implements SessionRepository as a mutex-guarded
// map. Sessions held here die with the process, which is exactly the
// lifetime the gateway wants: nothing survives a restart.
type MemorySessionRepository struct {
	sessions      map[string]entry
	mutex         sync.RWMutex
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
}

// NewMemorySessionRepository creates a new in-memory session repository.
// cleanupInterval defines how often expired entries are swept.
func NewMemorySessionRepository(cleanupInterval time.Duration) *MemorySessionRepository {
	r := &MemorySessionRepository{
		sessions:      make(map[string]entry),
		cleanupTicker: time.NewTicker(cleanupInterval),
		stopCleanup:   make(chan struct{}),
	}
	go r.startCleanup()
	return r
}

// startCleanup runs the periodic sweep in a background goroutine.
func (r *MemorySessionRepository) startCleanup() {
	for {
		select {
		case <-r.cleanupTicker.C:
			r.sweepExpired()
		case <-r.stopCleanup:
			r.cleanupTicker.Stop()
			return
		}
	}
}

func (r *MemorySessionRepository) sweepExpired() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := time.Now()
	for sessionID, e := range r.sessions {
		if !e.expiry.IsZero() && now.After(e.expiry) {
			delete(r.sessions, sessionID)
		}
	}
}

// StopCleanup stops the background sweep.
func (r *MemorySessionRepository) StopCleanup() {
	close(r.stopCleanup)
}

// Put saves or replaces the payload for a session ID.
func (r *MemorySessionRepository) Put(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error {
	if sessionID == "" {
		return errors.New("session ID must be set")
	}

	e := entry{payload: payload}
	if ttl > 0 {
		e.expiry = time.Now().Add(ttl)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.sessions[sessionID] = e
	return nil
}

// Get retrieves the payload for a session ID.
func (r *MemorySessionRepository) Get(ctx context.Context, sessionID string) ([]byte, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	e, exists := r.sessions[sessionID]
	if !exists {
		return nil, repository.ErrSessionNotFound
	}
	if !e.expiry.IsZero() && time.Now().After(e.expiry) {
		return nil, repository.ErrSessionNotFound
	}
	return e.payload, nil
}

// Delete removes a session entry; absent IDs are ignored.
func (r *MemorySessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

var _ repository.SessionRepository = (*MemorySessionRepository)(nil)
