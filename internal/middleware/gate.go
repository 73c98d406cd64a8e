// Package middleware holds the authorization gate wrapping every protected
// route: session validation, idle-timeout enforcement, and role checks.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/trackventory/gateway/internal/models"
	"github.com/trackventory/gateway/internal/repository"
	"github.com/trackventory/gateway/internal/service"
)

const (
	// context keys set for downstream handlers
	identityKey  = "identity"
	sessionIDKey = "sessionID"

	flashCookieName = "trackventory_flash"

	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/login"
	// DashboardPath is the safe default for authenticated-but-unauthorized
	// requests.
	DashboardPath = "/dashboard"

	// SessionExpiredMessage is flashed exactly once after a forced logout.
	SessionExpiredMessage = "Your session has expired. Please log in again."
)

// Gate decides render-vs-redirect for protected routes. A request renders
// only when the session cookie resolves to a valid, unexpired session; any
// parse failure along the way behaves as "no session".
type Gate struct {
	sessions   service.SessionStore
	tokens     service.CookieTokenizer
	monitors   *service.MonitorRegistry
	cookieName string
	adminRole  string

	// appCtx bounds monitor goroutines to the process, not to the request
	// that happened to start them.
	appCtx context.Context
}

// NewGate creates the authorization gate.
func NewGate(appCtx context.Context, sessions service.SessionStore, tokens service.CookieTokenizer, monitors *service.MonitorRegistry, cookieName, adminRole string) *Gate {
	return &Gate{
		sessions:   sessions,
		tokens:     tokens,
		monitors:   monitors,
		cookieName: cookieName,
		adminRole:  adminRole,
		appCtx:     appCtx,
	}
}

// RequireSession wraps a protected route. Children never run without a
// valid session; expired sessions are cleared, flashed once, and redirected
// to login.
func (g *Gate) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionID, ok := g.resolveSessionID(c)
		if !ok {
			return g.redirectToLogin(c)
		}

		ctx := c.Request().Context()

		identity, err := g.sessions.Read(ctx, sessionID)
		if err != nil {
			// Missing, corrupt, or invalid record: fail closed.
			return g.redirectToLogin(c)
		}

		if g.sessions.IsExpired(ctx, sessionID) {
			log.Info().Str("sessionId", sessionID).Msg("Protected request hit an expired session")
			_ = g.sessions.Clear(ctx, sessionID)
			g.monitors.Remove(sessionID)
			SetFlash(c, SessionExpiredMessage)
			return g.redirectToLogin(c)
		}

		// The request itself is user activity: renew and keep the monitor
		// alive for the session lifetime.
		if err := g.sessions.Touch(ctx, sessionID); err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				// Expired or purged between the check above and here; take
				// the same exit as the expired branch so the notice is
				// not lost.
				_ = g.sessions.Clear(ctx, sessionID)
				g.monitors.Remove(sessionID)
				SetFlash(c, SessionExpiredMessage)
			}
			return g.redirectToLogin(c)
		}
		g.monitors.Ensure(g.appCtx, sessionID)

		c.Set(identityKey, identity)
		c.Set(sessionIDKey, sessionID)
		return next(c)
	}
}

// RequireAdmin gates admin-only routes. It must run inside RequireSession;
// an authenticated non-admin is sent to the dashboard, not to login.
func (g *Gate) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return g.redirectToLogin(c)
		}
		if !identity.HasRole(g.adminRole) {
			log.Warn().Str("username", identity.Username).Msg("Non-admin request to admin route")
			return c.Redirect(http.StatusSeeOther, DashboardPath)
		}
		return next(c)
	}
}

// resolveSessionID extracts and verifies the session cookie. False means
// the request carries no usable session reference.
func (g *Gate) resolveSessionID(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(g.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	sessionID, err := g.tokens.Validate(cookie.Value)
	if err != nil {
		log.Debug().Err(err).Msg("Rejecting request with an unverifiable session cookie")
		return "", false
	}
	return sessionID, true
}

func (g *Gate) redirectToLogin(c echo.Context) error {
	ClearSessionCookie(c, g.cookieName)
	return c.Redirect(http.StatusSeeOther, LoginPath)
}

// IdentityFrom returns the identity stashed by RequireSession.
func IdentityFrom(c echo.Context) (*models.Identity, bool) {
	identity, ok := c.Get(identityKey).(*models.Identity)
	return identity, ok
}

// SessionIDFrom returns the session ID stashed by RequireSession.
func SessionIDFrom(c echo.Context) (string, bool) {
	sessionID, ok := c.Get(sessionIDKey).(string)
	return sessionID, ok
}

// SetSessionCookie attaches the signed session cookie. No Max-Age: the
// cookie lives only as long as the browser session, matching the required
// session lifetime.
func SetSessionCookie(c echo.Context, name, token string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetFlash stores a one-shot notification consumed by the next login view.
func SetFlash(c echo.Context, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeFlash returns and clears the pending notification, if any.
func TakeFlash(c echo.Context) string {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}
