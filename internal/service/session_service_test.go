package service

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackventory/gateway/internal/models"
	"github.com/trackventory/gateway/internal/repository"
	"github.com/trackventory/gateway/internal/repository/memory"
)

const testIdleTimeout = 60 * time.Minute

func newTestSessionService(t *testing.T) (*SessionService, *memory.MemorySessionRepository) {
	t.Helper()
	repo := memory.NewMemorySessionRepository(time.Minute)
	t.Cleanup(repo.StopCleanup)
	return NewSessionService(repo, testIdleTimeout), repo
}

func validIdentity() models.Identity {
	return models.Identity{
		Success:  true,
		Username: "alice",
		Token:    "t1",
		Roles:    []string{"ROLE_USER"},
	}
}

func TestSessionService_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _ := newTestSessionService(t)

		sessionID, err := svc.Initialize(ctx, validIdentity())
		require.NoError(t, err)
		assert.NotEmpty(t, sessionID)

		ident, err := svc.Read(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "alice", ident.Username)
		assert.Equal(t, "t1", ident.Token)
		assert.True(t, ident.Success)
	})

	t.Run("RejectsUnsuccessfulIdentity", func(t *testing.T) {
		svc, _ := newTestSessionService(t)

		_, err := svc.Initialize(ctx, models.Identity{Success: false, Username: "alice"})
		assert.ErrorIs(t, err, ErrInvalidIdentity)
	})
}

func TestSessionService_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTripIdentityLaw", func(t *testing.T) {
		svc, _ := newTestSessionService(t)
		want := validIdentity()

		sessionID, err := svc.Initialize(ctx, want)
		require.NoError(t, err)

		got, err := svc.Read(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, want, *got)
	})

	t.Run("MalformedPayloadsPurged", func(t *testing.T) {
		malformed := [][]byte{
			[]byte(`{"identity":{"success":tru`), // truncated JSON
			[]byte(`{"identity":{"success":false,"username":"alice"}}`),
			[]byte(``),
			[]byte(`"just a string"`),
		}

		for _, payload := range malformed {
			svc, repo := newTestSessionService(t)
			require.NoError(t, repo.Put(ctx, "sid", payload, time.Hour))

			_, err := svc.Read(ctx, "sid")
			assert.ErrorIs(t, err, repository.ErrSessionNotFound, "payload=%q", payload)

			// Side effect: the corrupt entry is gone.
			_, err = repo.Get(ctx, "sid")
			assert.ErrorIs(t, err, repository.ErrSessionNotFound, "payload=%q should be purged", payload)
		}
	})

	t.Run("EmptySessionID", func(t *testing.T) {
		svc, _ := newTestSessionService(t)
		_, err := svc.Read(ctx, "")
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})
}

func TestSessionService_IsExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("FreshSessionNotExpired", func(t *testing.T) {
		svc, _ := newTestSessionService(t)
		sessionID, err := svc.Initialize(ctx, validIdentity())
		require.NoError(t, err)

		assert.False(t, svc.IsExpired(ctx, sessionID))
	})

	t.Run("MissingSessionIsExpired", func(t *testing.T) {
		svc, _ := newTestSessionService(t)
		assert.True(t, svc.IsExpired(ctx, "ghost"))
	})

	t.Run("MonotonicInNow", func(t *testing.T) {
		svc, _ := newTestSessionService(t)
		base := time.Now()
		svc.now = func() time.Time { return base }

		sessionID, err := svc.Initialize(ctx, validIdentity())
		require.NoError(t, err)

		// Just past the timeout, then strictly later instants: once
		// expired, always expired.
		for _, offset := range []time.Duration{61 * time.Minute, 2 * time.Hour, 48 * time.Hour} {
			svc.now = func() time.Time { return base.Add(offset) }
			assert.True(t, svc.IsExpired(ctx, sessionID), "offset=%v", offset)
		}
	})

	t.Run("BoundaryNotExpiredAtExactTimeout", func(t *testing.T) {
		svc, _ := newTestSessionService(t)
		base := time.Now()
		svc.now = func() time.Time { return base }

		sessionID, err := svc.Initialize(ctx, validIdentity())
		require.NoError(t, err)

		svc.now = func() time.Time { return base.Add(testIdleTimeout) }
		assert.False(t, svc.IsExpired(ctx, sessionID))
	})
}

func TestSessionService_Touch(t *testing.T) {
	ctx := context.Background()

	t.Run("RefreshesActivityTimestamp", func(t *testing.T) {
		svc, repo := newTestSessionService(t)
		base := time.Now()
		svc.now = func() time.Time { return base }

		sessionID, err := svc.Initialize(ctx, validIdentity())
		require.NoError(t, err)

		svc.now = func() time.Time { return base.Add(30 * time.Minute) }
		require.NoError(t, svc.Touch(ctx, sessionID))

		// 30 more minutes would have expired the untouched session.
		svc.now = func() time.Time { return base.Add(85 * time.Minute) }
		assert.False(t, svc.IsExpired(ctx, sessionID))

		payload, err := repo.Get(ctx, sessionID)
		require.NoError(t, err)
		var record models.SessionRecord
		require.NoError(t, json.Unmarshal(payload, &record))
		assert.Equal(t, base.Add(30*time.Minute).UTC(), record.LastActivityAt)
	})

	t.Run("DoesNotResurrectExpiredSession", func(t *testing.T) {
		svc, _ := newTestSessionService(t)
		base := time.Now()
		svc.now = func() time.Time { return base }

		sessionID, err := svc.Initialize(ctx, validIdentity())
		require.NoError(t, err)

		svc.now = func() time.Time { return base.Add(61 * time.Minute) }
		err = svc.Touch(ctx, sessionID)
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)

		// Still expired afterwards; the clock was not reset.
		assert.True(t, svc.IsExpired(ctx, sessionID))
	})

	t.Run("MissingSession", func(t *testing.T) {
		svc, _ := newTestSessionService(t)
		err := svc.Touch(ctx, "ghost")
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})
}

func TestSessionService_Clear(t *testing.T) {
	ctx := context.Background()

	t.Run("ClearIsIdempotent", func(t *testing.T) {
		svc, _ := newTestSessionService(t)
		sessionID, err := svc.Initialize(ctx, validIdentity())
		require.NoError(t, err)

		require.NoError(t, svc.Clear(ctx, sessionID))
		require.NoError(t, svc.Clear(ctx, sessionID))
		require.NoError(t, svc.Clear(ctx, ""))

		_, err = svc.Read(ctx, sessionID)
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})
}
