package service

import (
	"context"
	"sync"
	"time"
)

// MonitorRegistry keeps at most one SessionMonitor per live session and
// releases monitors on logout, expiry, and shutdown so repeated
// login/logout cycles do not leak timers.
type MonitorRegistry struct {
	sessions     SessionStore
	pollInterval time.Duration
	onExpire     func(sessionID string)

	mu       sync.Mutex
	monitors map[string]*SessionMonitor
}

// NewMonitorRegistry creates an empty registry. onExpire is invoked once
// per expired session, after the session store has been cleared.
func NewMonitorRegistry(sessions SessionStore, pollInterval time.Duration, onExpire func(sessionID string)) *MonitorRegistry {
	return &MonitorRegistry{
		sessions:     sessions,
		pollInterval: pollInterval,
		onExpire:     onExpire,
		monitors:     make(map[string]*SessionMonitor),
	}
}

// Ensure starts a monitor for the session if one is not already running
// and returns it.
func (r *MonitorRegistry) Ensure(ctx context.Context, sessionID string) *SessionMonitor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.monitors[sessionID]; ok {
		return m
	}

	m := NewSessionMonitor(r.sessions, sessionID, r.pollInterval, func(id string) {
		if r.onExpire != nil {
			r.onExpire(id)
		}
		r.Remove(id)
	})
	r.monitors[sessionID] = m
	m.Start(ctx)
	return m
}

// Activity forwards an activity signal to the session's monitor, if any.
func (r *MonitorRegistry) Activity(sessionID string) {
	r.mu.Lock()
	m, ok := r.monitors[sessionID]
	r.mu.Unlock()
	if ok {
		m.Activity()
	}
}

// Remove stops and forgets the session's monitor, if any.
func (r *MonitorRegistry) Remove(sessionID string) {
	r.mu.Lock()
	m, ok := r.monitors[sessionID]
	if ok {
		delete(r.monitors, sessionID)
	}
	r.mu.Unlock()
	if ok {
		m.Stop()
	}
}

// StopAll stops every monitor; used on shutdown.
func (r *MonitorRegistry) StopAll() {
	r.mu.Lock()
	monitors := make([]*SessionMonitor, 0, len(r.monitors))
	for id, m := range r.monitors {
		monitors = append(monitors, m)
		delete(r.monitors, id)
	}
	r.mu.Unlock()

	for _, m := range monitors {
		m.Stop()
	}
}
