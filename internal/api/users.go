package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/trackventory/gateway/internal/models"
	"github.com/trackventory/gateway/internal/normalize"
)

// login posts credentials and always yields an identity: a failed attempt
// is an identity with Success=false and the normalized message.
func (c *Client) login(ctx context.Context, path string, req models.LoginRequest, fallback string) *models.Identity {
	status, raw, err := c.do(ctx, http.MethodPost, path, req, "")
	if err != nil {
		res := transportFailure(err)
		return &models.Identity{Success: false, Message: res.Message}
	}
	if !is2xx(status) {
		res := normalize.Normalize(raw, normalize.ModeError)
		return &models.Identity{Success: false, Message: res.Message}
	}

	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return &models.Identity{Success: false, Message: fallback}
	}
	if identity.Message == "" {
		identity.Message = normalize.Normalize(raw, normalize.ModeSuccess).Message
	}
	return &identity
}

// UserLogin authenticates a regular user.
func (c *Client) UserLogin(ctx context.Context, req models.LoginRequest) *models.Identity {
	return c.login(ctx, "/api/users/login", req, "Login failed")
}

// AdminLogin authenticates an administrator.
func (c *Client) AdminLogin(ctx context.Context, req models.LoginRequest) *models.Identity {
	return c.login(ctx, "/api/users/admin/login", req, "Login failed")
}

// RegisterUser creates a user account. The backend requires an admin bearer
// token for this endpoint.
func (c *Client) RegisterUser(ctx context.Context, req models.RegisterRequest, token string) (models.Result, error) {
	if token == "" {
		return models.Result{}, ErrTokenRequired
	}
	return c.call(ctx, http.MethodPost, "/api/users/register", req, token), nil
}

// RegisterAdmin creates an administrator account; no token is needed.
func (c *Client) RegisterAdmin(ctx context.Context, req models.RegisterRequest) models.Result {
	return c.call(ctx, http.MethodPost, "/api/users/admin/register", req, "")
}

// ListUsers fetches all users.
func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, models.Result, error) {
	if token == "" {
		return nil, models.Result{}, ErrTokenRequired
	}
	var users []models.User
	res := c.callJSON(ctx, "/api/users", token, &users)
	if !res.Success {
		return nil, res, nil
	}
	return users, res, nil
}

// GetUser fetches one user by ID.
func (c *Client) GetUser(ctx context.Context, id int64, token string) (*models.User, models.Result, error) {
	if token == "" {
		return nil, models.Result{}, ErrTokenRequired
	}
	var user models.User
	res := c.callJSON(ctx, fmt.Sprintf("/api/users/%d", id), token, &user)
	if !res.Success {
		return nil, res, nil
	}
	return &user, res, nil
}

// DeleteUser removes a user. The backend may answer with JSON, plain text,
// or an empty body; success is decided by the status code.
func (c *Client) DeleteUser(ctx context.Context, id int64, token string) (models.Result, error) {
	if token == "" {
		return models.Result{}, ErrTokenRequired
	}
	return c.callDelete(ctx, fmt.Sprintf("/api/users/%d", id), token, "User deleted successfully"), nil
}

// UpdatePassword changes the password of the authenticated user.
func (c *Client) UpdatePassword(ctx context.Context, req models.UpdatePasswordRequest, token string) (models.Result, error) {
	if token == "" {
		return models.Result{}, ErrTokenRequired
	}
	return c.call(ctx, http.MethodPut, "/api/users/password", req, token), nil
}

// ForgetPassword resets a password by username without a session.
func (c *Client) ForgetPassword(ctx context.Context, username string, req models.ForgetPasswordRequest) models.Result {
	return c.call(ctx, http.MethodPut, "/api/users/forget-password/"+username, req, "")
}
