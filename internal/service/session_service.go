package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/trackventory/gateway/internal/models"
	"github.com/trackventory/gateway/internal/repository"
)

// ErrInvalidIdentity is returned when Initialize is called with an identity
// that does not carry a successful login. This is a caller bug, not a
// runtime condition.
var ErrInvalidIdentity = errors.New("identity does not mark a successful login")

// SessionService owns the session record and its validity invariant: a
// session exists iff its payload decodes and identity.success is true.
// Everything else in the gateway goes through here rather than reading the
// repository directly.
type SessionService struct {
	sessionRepo repository.SessionRepository
	idleTimeout time.Duration

	// now is swapped out in tests.
	now func() time.Time
}

var _ SessionStore = (*SessionService)(nil)

// NewSessionService creates a SessionService with the given idle timeout.
func NewSessionService(sessionRepo repository.SessionRepository, idleTimeout time.Duration) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Initialize creates a session record for a successful login and returns
// the new session ID.
func (s *SessionService) Initialize(ctx context.Context, identity models.Identity) (string, error) {
	if !identity.Success {
		return "", ErrInvalidIdentity
	}

	now := s.now().UTC()
	record := models.SessionRecord{
		SessionID:      uuid.NewString(),
		Identity:       identity,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	if err := s.writeRecord(ctx, &record); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	log.Info().Str("sessionId", record.SessionID).Str("username", identity.Username).Msg("Session initialized")
	return record.SessionID, nil
}

// Read returns the stored identity iff the record is valid. Corrupt or
// invalid payloads are purged as a side effect so the next read does not
// trip over them again.
func (s *SessionService) Read(ctx context.Context, sessionID string) (*models.Identity, error) {
	record, err := s.readRecord(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	identity := record.Identity
	return &identity, nil
}

// Touch refreshes the activity timestamp. An expired session is left
// untouched: refreshing it would extend a dead session indefinitely.
func (s *SessionService) Touch(ctx context.Context, sessionID string) error {
	record, err := s.readRecord(ctx, sessionID)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	if record.IdleSince(now) > s.idleTimeout {
		return repository.ErrSessionNotFound
	}

	record.LastActivityAt = now
	return s.writeRecord(ctx, record)
}

// IsExpired reports whether the session is missing, invalid, or idle past
// the timeout. The predicate is monotonic in the current time.
func (s *SessionService) IsExpired(ctx context.Context, sessionID string) bool {
	record, err := s.readRecord(ctx, sessionID)
	if err != nil {
		return true
	}
	return record.IdleSince(s.now().UTC()) > s.idleTimeout
}

// Clear removes the session record; it is idempotent.
func (s *SessionService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}

func (s *SessionService) writeRecord(ctx context.Context, record *models.SessionRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}
	// TTL is a backstop sweep, not the expiry source of truth.
	return s.sessionRepo.Put(ctx, record.SessionID, payload, s.idleTimeout+time.Minute)
}

// readRecord loads and validates the record; anything that fails the
// invariant is purged and reported as not found.
func (s *SessionService) readRecord(ctx context.Context, sessionID string) (*models.SessionRecord, error) {
	if sessionID == "" {
		return nil, repository.ErrSessionNotFound
	}

	payload, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var record models.SessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		log.Warn().Str("sessionId", sessionID).Err(err).Msg("Purging malformed session record")
		_ = s.sessionRepo.Delete(ctx, sessionID)
		return nil, repository.ErrSessionNotFound
	}

	if !record.IsValid() {
		log.Warn().Str("sessionId", sessionID).Msg("Purging session record that fails the validity invariant")
		_ = s.sessionRepo.Delete(ctx, sessionID)
		return nil, repository.ErrSessionNotFound
	}

	return &record, nil
}
