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

// StoreHandler serves the store CRUD screens. Reads are open to any
// session; mutations run behind the admin gate and chain a list refresh.
type StoreHandler struct {
	backend service.InventoryClient
}

// NewStoreHandler creates a StoreHandler.
func NewStoreHandler(backend service.InventoryClient) *StoreHandler {
	return &StoreHandler{backend: backend}
}

func (h *StoreHandler) token(c echo.Context) string {
	if identity, ok := middleware.IdentityFrom(c); ok {
		return identity.Token
	}
	return ""
}

// List returns all stores.
func (h *StoreHandler) List(c echo.Context) error {
	stores, res := h.backend.ListStores(c.Request().Context(), h.token(c))
	if !res.Success {
		return c.JSON(http.StatusBadRequest, models.StoresResponse{Result: res})
	}
	return c.JSON(http.StatusOK, models.StoresResponse{Result: res, Stores: stores})
}

// Get returns one store by ID.
func (h *StoreHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Failure("Invalid store ID"))
	}

	store, res := h.backend.GetStore(c.Request().Context(), id, h.token(c))
	if !res.Success {
		return c.JSON(http.StatusBadRequest, res)
	}
	return c.JSON(http.StatusOK, store)
}

// Create adds a store and returns the refreshed list.
func (h *StoreHandler) Create(c echo.Context) error {
	req := new(models.StoreRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Failure("Invalid request body"))
	}
	if req.Name == "" || req.Location == "" {
		return c.JSON(http.StatusBadRequest, models.Failure("Store name and location are required"))
	}

	ctx := c.Request().Context()
	res, err := h.backend.CreateStore(ctx, *req, h.token(c))
	if err != nil {
		return preconditionFailure(c, err)
	}
	if !res.Success {
		return c.JSON(http.StatusBadRequest, models.StoresResponse{Result: res})
	}
	return c.JSON(http.StatusOK, h.withRefresh(c, res))
}

// Update edits a store and returns the refreshed list.
func (h *StoreHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Failure("Invalid store ID"))
	}

	req := new(models.StoreRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Failure("Invalid request body"))
	}

	ctx := c.Request().Context()
	res, err := h.backend.UpdateStore(ctx, id, *req, h.token(c))
	if err != nil {
		return preconditionFailure(c, err)
	}
	if !res.Success {
		return c.JSON(http.StatusBadRequest, models.StoresResponse{Result: res})
	}
	return c.JSON(http.StatusOK, h.withRefresh(c, res))
}

// Delete removes a store and returns the refreshed list. The backend may
// answer the delete with plain text; the result message carries it as-is.
func (h *StoreHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Failure("Invalid store ID"))
	}

	ctx := c.Request().Context()
	res, err := h.backend.DeleteStore(ctx, id, h.token(c))
	if err != nil {
		return preconditionFailure(c, err)
	}
	if !res.Success {
		return c.JSON(http.StatusBadRequest, models.StoresResponse{Result: res})
	}
	return c.JSON(http.StatusOK, h.withRefresh(c, res))
}

// withRefresh chains a list re-fetch after a successful mutation.
func (h *StoreHandler) withRefresh(c echo.Context, res models.Result) models.StoresResponse {
	stores, listRes := h.backend.ListStores(c.Request().Context(), h.token(c))
	if !listRes.Success {
		log.Warn().Str("refreshError", listRes.Message).Msg("Store list refresh after mutation failed")
	}
	return models.StoresResponse{Result: res, Stores: stores}
}
