package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trackventory/gateway/internal/middleware"
	"github.com/trackventory/gateway/internal/models"
	"github.com/trackventory/gateway/internal/service"
)

// DashboardHandler serves the landing screen summary.
type DashboardHandler struct {
	backend   service.InventoryClient
	adminRole string
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(backend service.InventoryClient, adminRole string) *DashboardHandler {
	return &DashboardHandler{backend: backend, adminRole: adminRole}
}

// Show returns the identity summary plus store and (for admins) user
// counts. Count fetch failures degrade to zero rather than failing the
// whole screen.
func (h *DashboardHandler) Show(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Failure("Not logged in"))
	}

	ctx := c.Request().Context()
	resp := models.DashboardResponse{
		Username: identity.Username,
		Admin:    identity.HasRole(h.adminRole),
	}

	if stores, res := h.backend.ListStores(ctx, identity.Token); res.Success {
		resp.StoreCount = len(stores)
	}
	if resp.Admin {
		if users, res, err := h.backend.ListUsers(ctx, identity.Token); err == nil && res.Success {
			resp.UserCount = len(users)
		}
	}

	return c.JSON(http.StatusOK, resp)
}
