package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trackventory/gateway/internal/models"
)

// ListStores fetches all stores. The token is optional on store reads.
func (c *Client) ListStores(ctx context.Context, token string) ([]models.Store, models.Result) {
	var stores []models.Store
	res := c.callJSON(ctx, "/api/stores", token, &stores)
	if !res.Success {
		return nil, res
	}
	return stores, res
}

// GetStore fetches one store by ID. The token is optional.
func (c *Client) GetStore(ctx context.Context, id int64, token string) (*models.Store, models.Result) {
	var store models.Store
	res := c.callJSON(ctx, fmt.Sprintf("/api/stores/%d", id), token, &store)
	if !res.Success {
		return nil, res
	}
	return &store, res
}

// CreateStore creates a store.
func (c *Client) CreateStore(ctx context.Context, req models.StoreRequest, token string) (models.Result, error) {
	if token == "" {
		return models.Result{}, ErrTokenRequired
	}
	return c.call(ctx, http.MethodPost, "/api/stores", req, token), nil
}

// UpdateStore updates a store by ID.
func (c *Client) UpdateStore(ctx context.Context, id int64, req models.StoreRequest, token string) (models.Result, error) {
	if token == "" {
		return models.Result{}, ErrTokenRequired
	}
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/api/stores/%d", id), req, token), nil
}

// DeleteStore removes a store. Some backend versions answer the delete with
// the plain text "Store deleted successfully" rather than JSON.
func (c *Client) DeleteStore(ctx context.Context, id int64, token string) (models.Result, error) {
	if token == "" {
		return models.Result{}, ErrTokenRequired
	}
	return c.callDelete(ctx, fmt.Sprintf("/api/stores/%d", id), token, "Store deleted successfully"), nil
}
