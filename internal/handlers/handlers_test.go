package handlers_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/trackventory/gateway/internal/handlers"
	"github.com/trackventory/gateway/internal/middleware"
	"github.com/trackventory/gateway/internal/mocks"
	"github.com/trackventory/gateway/internal/models"
	"github.com/trackventory/gateway/internal/repository/memory"
	"github.com/trackventory/gateway/internal/router"
	"github.com/trackventory/gateway/internal/service"
)

const (
	testCookieName = "trackventory_session"
	testAdminRole  = "ROLE_ADMIN"
)

// testApp is the fully wired gateway with the backend mocked out.
type testApp struct {
	e        *echo.Echo
	backend  *mocks.MockInventoryClient
	repo     *memory.MemorySessionRepository
	sessions *service.SessionService
	tokens   *service.CookieTokenService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	backend := new(mocks.MockInventoryClient)
	repo := memory.NewMemorySessionRepository(time.Minute)
	t.Cleanup(repo.StopCleanup)

	sessions := service.NewSessionService(repo, 60*time.Minute)
	tokens := service.NewCookieTokenService("handler-test-secret")
	monitors := service.NewMonitorRegistry(sessions, time.Hour, nil)
	t.Cleanup(monitors.StopAll)

	appCtx := context.Background()
	gate := middleware.NewGate(appCtx, sessions, tokens, monitors, testCookieName, testAdminRole)

	auth := handlers.NewAuthHandler(appCtx, backend, sessions, tokens, monitors, testCookieName)
	dashboard := handlers.NewDashboardHandler(backend, testAdminRole)
	users := handlers.NewUserHandler(backend)
	stores := handlers.NewStoreHandler(backend)

	e := echo.New()
	router.SetupAuthRoutes(e, auth)
	router.SetupProtectedRoutes(e, gate, auth, dashboard, users, stores)

	return &testApp{e: e, backend: backend, repo: repo, sessions: sessions, tokens: tokens}
}

func (a *testApp) request(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// login creates a session directly, bypassing the login endpoint, and
// returns its cookie.
func (a *testApp) login(t *testing.T, identity models.Identity) *http.Cookie {
	t.Helper()
	sessionID, err := a.sessions.Initialize(context.Background(), identity)
	require.NoError(t, err)
	token, err := a.tokens.Generate(sessionID)
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: token}
}

func userIdentity() models.Identity {
	return models.Identity{
		Success:  true,
		Username: "alice",
		Token:    "bearer-user",
		Roles:    []string{"ROLE_USER"},
	}
}

func adminIdentity() models.Identity {
	return models.Identity{
		Success:  true,
		Username: "root",
		Token:    "bearer-admin",
		Roles:    []string{testAdminRole},
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
