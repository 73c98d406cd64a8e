package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MonitorState is the lifecycle state of a monitored session.
type MonitorState int

const (
	// StateUnauthenticated means no live session is being tracked.
	StateUnauthenticated MonitorState = iota
	// StateActive means the session is live and being renewed.
	StateActive
	// StateExpired means the idle timeout fired; the state is terminal for
	// this session instance, a new login is required.
	StateExpired
)

// SessionMonitor watches one session: a periodic expiry check on a fixed
// interval plus activity notifications. Only activity renews the session;
// the poll just observes, so an idle session runs out its timeout. When the
// session expires the monitor clears it, fires the expiry callback exactly
// once, and shuts down.
type SessionMonitor struct {
	sessions     SessionStore
	sessionID    string
	pollInterval time.Duration
	onExpire     func(sessionID string)

	activity chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	mu    sync.Mutex
	state MonitorState
}

// NewSessionMonitor creates a monitor for the given session. onExpire may
// be nil.
func NewSessionMonitor(sessions SessionStore, sessionID string, pollInterval time.Duration, onExpire func(sessionID string)) *SessionMonitor {
	return &SessionMonitor{
		sessions:     sessions,
		sessionID:    sessionID,
		pollInterval: pollInterval,
		onExpire:     onExpire,
		activity:     make(chan struct{}, 1),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
		state:        StateUnauthenticated,
	}
}

// Start launches the monitor loop. It returns immediately; the loop ends
// when the session expires, Stop is called, or the context is cancelled.
func (m *SessionMonitor) Start(ctx context.Context) {
	m.setState(StateActive)
	go m.run(ctx)
}

// Activity signals a renewing user action. It never blocks; coalescing
// bursts of activity into one pending signal is fine, the renewal is
// idempotent within a poll window.
func (m *SessionMonitor) Activity() {
	select {
	case m.activity <- struct{}{}:
	default:
	}
}

// Stop halts the monitor and releases its timer. Safe to call repeatedly
// and after expiry.
func (m *SessionMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

// Done is closed once the monitor loop has fully wound down.
func (m *SessionMonitor) Done() <-chan struct{} {
	return m.done
}

// State returns the current lifecycle state.
func (m *SessionMonitor) State() MonitorState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *SessionMonitor) setState(s MonitorState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *SessionMonitor) run(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.setState(StateUnauthenticated)
			return
		case <-m.stop:
			m.setState(StateUnauthenticated)
			return
		case <-ticker.C:
			// The poll only observes; it must never count as activity or an
			// idle session would be renewed forever.
			if m.expireIfIdle(ctx) {
				return
			}
		case <-m.activity:
			if m.expireIfIdle(ctx) {
				return
			}
			if err := m.sessions.Touch(ctx, m.sessionID); err != nil {
				log.Debug().Err(err).Str("sessionId", m.sessionID).Msg("Session renewal skipped")
			}
		}
	}
}

// expireIfIdle clears the session and fires the callback once the idle
// timeout has run out; it returns true once the monitor should stop.
func (m *SessionMonitor) expireIfIdle(ctx context.Context) bool {
	if m.sessions.IsExpired(ctx, m.sessionID) {
		m.setState(StateExpired)
		log.Info().Str("sessionId", m.sessionID).Msg("Session expired, clearing")

		if err := m.sessions.Clear(ctx, m.sessionID); err != nil {
			log.Error().Err(err).Str("sessionId", m.sessionID).Msg("Failed to clear expired session")
		}
		if m.onExpire != nil {
			m.onExpire(m.sessionID)
		}
		// Terminal for this session instance: a fresh login starts a new
		// monitor.
		m.setState(StateUnauthenticated)
		return true
	}
	return false
}
