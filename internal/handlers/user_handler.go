package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/trackventory/gateway/internal/middleware"
	"github.com/trackventory/gateway/internal/models"
	"github.com/trackventory/gateway/internal/service"
)

// UserHandler serves the admin user-management screens.
type UserHandler struct {
	backend service.InventoryClient
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(backend service.InventoryClient) *UserHandler {
	return &UserHandler{backend: backend}
}

// List returns all users.
func (h *UserHandler) List(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Failure("Not logged in"))
	}

	users, res, err := h.backend.ListUsers(c.Request().Context(), identity.Token)
	if err != nil {
		return preconditionFailure(c, err)
	}
	if !res.Success {
		return c.JSON(http.StatusBadRequest, models.UsersResponse{Result: res})
	}
	return c.JSON(http.StatusOK, models.UsersResponse{Result: res, Users: users})
}

// Get returns one user by ID.
func (h *UserHandler) Get(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Failure("Not logged in"))
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Failure("Invalid user ID"))
	}

	user, res, err := h.backend.GetUser(c.Request().Context(), id, identity.Token)
	if err != nil {
		return preconditionFailure(c, err)
	}
	if !res.Success {
		return c.JSON(http.StatusBadRequest, res)
	}
	return c.JSON(http.StatusOK, user)
}

// Create registers a new user with the admin's credentials.
func (h *UserHandler) Create(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Failure("Not logged in"))
	}

	req := new(models.RegisterRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Failure("Invalid request body"))
	}
	if res, ok := validateRegistration(req); !ok {
		return c.JSON(http.StatusBadRequest, res)
	}

	res, err := h.backend.RegisterUser(c.Request().Context(), *req, identity.Token)
	if err != nil {
		return preconditionFailure(c, err)
	}
	return respond(c, res)
}

// Delete removes a user and chains a list refresh so the screen can
// reconcile without a second round trip.
func (h *UserHandler) Delete(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Failure("Not logged in"))
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Failure("Invalid user ID"))
	}

	ctx := c.Request().Context()
	res, err := h.backend.DeleteUser(ctx, id, identity.Token)
	if err != nil {
		return preconditionFailure(c, err)
	}
	if !res.Success {
		return c.JSON(http.StatusBadRequest, models.UsersResponse{Result: res})
	}

	users, listRes, err := h.backend.ListUsers(ctx, identity.Token)
	if err != nil {
		return preconditionFailure(c, err)
	}
	if !listRes.Success {
		// The delete went through; report it even if the refresh failed.
		log.Warn().Str("refreshError", listRes.Message).Msg("User list refresh after delete failed")
	}
	return c.JSON(http.StatusOK, models.UsersResponse{Result: res, Users: users})
}
