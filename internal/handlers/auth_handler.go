package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/trackventory/gateway/internal/middleware"
	"github.com/trackventory/gateway/internal/models"
	"github.com/trackventory/gateway/internal/service"
)

// AuthHandler owns login, signup, logout, and the password flows. Every
// response body is a normalized result (possibly with identity fields
// alongside); raw backend statuses and bodies never pass through.
type AuthHandler struct {
	backend    service.InventoryClient
	sessions   service.SessionStore
	tokens     service.CookieTokenizer
	monitors   *service.MonitorRegistry
	cookieName string

	// appCtx bounds monitors started at login to the process lifetime.
	appCtx context.Context
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(appCtx context.Context, backend service.InventoryClient, sessions service.SessionStore, tokens service.CookieTokenizer, monitors *service.MonitorRegistry, cookieName string) *AuthHandler {
	return &AuthHandler{
		backend:    backend,
		sessions:   sessions,
		tokens:     tokens,
		monitors:   monitors,
		cookieName: cookieName,
		appCtx:     appCtx,
	}
}

// LoginRequest adds the admin-tab switch to the credential payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}

// ShowLogin serves the login view state: a pending one-shot notification,
// if any (e.g. the session-expired message).
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"flash": middleware.TakeFlash(c),
	})
}

// Login authenticates against the backend and, on success, initializes a
// gateway session and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Failure("Invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Failure("Username and password are required"))
	}

	ctx := c.Request().Context()
	creds := models.LoginRequest{Username: req.Username, Password: req.Password}

	var identity *models.Identity
	if req.Admin {
		identity = h.backend.AdminLogin(ctx, creds)
	} else {
		identity = h.backend.UserLogin(ctx, creds)
	}

	if !identity.Success {
		log.Info().Str("username", req.Username).Bool("admin", req.Admin).Msg("Login rejected")
		return c.JSON(http.StatusUnauthorized, models.Failure(identity.Message))
	}

	sessionID, err := h.sessions.Initialize(ctx, *identity)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize session after login")
		return c.JSON(http.StatusInternalServerError, models.Failure("An error occurred"))
	}

	cookieToken, err := h.tokens.Generate(sessionID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign session cookie")
		_ = h.sessions.Clear(ctx, sessionID)
		return c.JSON(http.StatusInternalServerError, models.Failure("An error occurred"))
	}

	middleware.SetSessionCookie(c, h.cookieName, cookieToken)
	h.monitors.Ensure(h.appCtx, sessionID)

	log.Info().Str("username", identity.Username).Bool("admin", req.Admin).Msg("Login successful")
	// The bearer token stays server-side; the browser only gets the cookie.
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  identity.Message,
		"username": identity.Username,
		"roles":    identity.Roles,
	})
}

// Logout clears the session, stops its monitor, and drops the cookie. It
// is idempotent: logging out without a live session still succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if sessionID, err := h.tokens.Validate(cookie.Value); err == nil {
			_ = h.sessions.Clear(c.Request().Context(), sessionID)
			h.monitors.Remove(sessionID)
		}
	}
	middleware.ClearSessionCookie(c, h.cookieName)
	return c.JSON(http.StatusOK, models.Ok("Logged out successfully"))
}

// Signup registers a new administrator account.
func (h *AuthHandler) Signup(c echo.Context) error {
	req := new(models.RegisterRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Failure("Invalid request body"))
	}
	if res, ok := validateRegistration(req); !ok {
		return c.JSON(http.StatusBadRequest, res)
	}

	res := h.backend.RegisterAdmin(c.Request().Context(), *req)
	return respond(c, res)
}

// UpdatePassword changes the password for the logged-in user. Requires a
// session (the gate has already run).
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Failure("Not logged in"))
	}

	req := new(models.UpdatePasswordRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Failure("Invalid request body"))
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, models.Failure("All password fields are required"))
	}
	if req.NewPassword != req.ConfirmPassword {
		// Surfaced before any network call.
		return c.JSON(http.StatusBadRequest, models.Failure("Passwords do not match"))
	}

	res, err := h.backend.UpdatePassword(c.Request().Context(), *req, identity.Token)
	if err != nil {
		return preconditionFailure(c, err)
	}
	return respond(c, res)
}

// ForgetPassword resets a password by username, without a session.
func (h *AuthHandler) ForgetPassword(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return c.JSON(http.StatusBadRequest, models.Failure("Username is required"))
	}

	req := new(models.ForgetPasswordRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Failure("Invalid request body"))
	}
	if req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, models.Failure("New password is required"))
	}
	if req.NewPassword != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, models.Failure("Passwords do not match"))
	}

	res := h.backend.ForgetPassword(c.Request().Context(), username, *req)
	return respond(c, res)
}

// validateRegistration enforces the client-side checks shared by the
// signup and add-user forms.
func validateRegistration(req *models.RegisterRequest) (models.Result, bool) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.Failure("Username, email and password are required"), false
	}
	if req.Password != req.ConfirmPassword {
		return models.Failure("Passwords do not match"), false
	}
	return models.Result{}, true
}

// respond maps a normalized result onto the wire: the body is always the
// result itself, the status only distinguishes success from failure.
func respond(c echo.Context, res models.Result) error {
	if res.Success {
		return c.JSON(http.StatusOK, res)
	}
	return c.JSON(http.StatusBadRequest, res)
}

// preconditionFailure handles the one error class backend calls may
// return: a missing bearer token, which is a gateway bug rather than a
// user-facing condition.
func preconditionFailure(c echo.Context, err error) error {
	log.Error().Err(err).Msg("Backend call precondition violated")
	return c.JSON(http.StatusInternalServerError, models.Failure("An error occurred"))
}
