// Package api is the HTTP client for the inventory REST backend. Every
// operation resolves to a normalized {success, message} result: HTTP error
// statuses, unreachable hosts, and timeouts all come back as values, never
// as errors. The only error these methods return is ErrTokenRequired, which
// marks a caller bug (invoking a token-required operation with no token).
package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/trackventory/gateway/internal/models"
	"github.com/trackventory/gateway/internal/normalize"
	"github.com/trackventory/gateway/internal/service"
)

// ErrTokenRequired marks a precondition violation: a bearer-token-required
// operation was invoked without a token.
var ErrTokenRequired = errors.New("bearer token is required for this operation")

const (
	msgUnreachable = "Unable to reach the inventory service"
	msgTimedOut    = "Request timed out. Please try again."
)

// Client talks to the inventory backend. One call is one best-effort round
// trip; there are no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ service.InventoryClient = (*Client)(nil)

// NewClient creates a Client for the given backend base URL. The timeout
// bounds each round trip so a hung backend cannot wedge a request forever.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// do performs one round trip and drains the body. A non-nil error means the
// request never completed (transport failure or timeout).
func (c *Client) do(ctx context.Context, method, path string, body any, token string) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, raw, nil
}

// transportFailure maps a failed round trip to a normalized result.
func transportFailure(err error) models.Result {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return models.Failure(msgTimedOut)
	}
	log.Warn().Err(err).Msg("Backend request failed")
	return models.Failure(msgUnreachable)
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// call runs an operation whose observable outcome is only a normalized
// result; 2xx bodies are normalized in success mode, everything else in
// error mode.
func (c *Client) call(ctx context.Context, method, path string, body any, token string) models.Result {
	status, raw, err := c.do(ctx, method, path, body, token)
	if err != nil {
		return transportFailure(err)
	}
	if !is2xx(status) {
		return normalize.Normalize(raw, normalize.ModeError)
	}
	return normalize.Normalize(raw, normalize.ModeSuccess)
}

// callDelete runs a delete-style operation: success comes from the status
// code alone, and the body may be structured, plain text, or empty.
func (c *Client) callDelete(ctx context.Context, path, token, fallback string) models.Result {
	status, raw, err := c.do(ctx, http.MethodDelete, path, nil, token)
	if err != nil {
		return transportFailure(err)
	}
	if !is2xx(status) {
		return normalize.Normalize(raw, normalize.ModeError)
	}
	return normalize.DecodeDeleteBody(raw).Result(fallback)
}

// callJSON fetches a resource into dst. Decode failures of a 2xx body are
// surfaced as a failed result, not an error.
func (c *Client) callJSON(ctx context.Context, path, token string, dst any) models.Result {
	status, raw, err := c.do(ctx, http.MethodGet, path, nil, token)
	if err != nil {
		return transportFailure(err)
	}
	if !is2xx(status) {
		return normalize.Normalize(raw, normalize.ModeError)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Unexpected response shape from backend")
		return models.Failure("Received an unexpected response from the inventory service")
	}
	return models.Ok(normalize.FallbackSuccessMessage)
}
