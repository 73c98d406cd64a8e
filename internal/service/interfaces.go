package service

import (
	"context"

	"github.com/trackventory/gateway/internal/models"
)

// SessionStore is the session lifecycle surface the gate and handlers
// consume. Implementations must fail closed: any malformed stored record
// behaves as an absent session.
type SessionStore interface {
	// Initialize creates a session for a confirmed successful login and
	// returns its session ID. Callers must have checked identity.Success.
	Initialize(ctx context.Context, identity models.Identity) (string, error)
	// Read returns the stored identity iff the record passes the validity
	// invariant; corrupt or invalid records are purged and reported as
	// ErrSessionNotFound.
	Read(ctx context.Context, sessionID string) (*models.Identity, error)
	// Touch refreshes the activity timestamp. It must not extend a session
	// that is already expired.
	Touch(ctx context.Context, sessionID string) error
	// IsExpired reports whether the session is missing, invalid, or idle
	// beyond the timeout. Once true for a stored timestamp it stays true.
	IsExpired(ctx context.Context, sessionID string) bool
	// Clear removes the session; clearing an absent session is a no-op.
	Clear(ctx context.Context, sessionID string) error
}

// CookieTokenizer signs and verifies the session cookie value the browser
// carries between requests.
type CookieTokenizer interface {
	Generate(sessionID string) (string, error)
	Validate(token string) (string, error)
}

// InventoryClient is the backend-facing surface the handlers consume.
// Every method resolves to normalized results for expected failures; the
// error return is reserved for the missing-token precondition.
type InventoryClient interface {
	UserLogin(ctx context.Context, req models.LoginRequest) *models.Identity
	AdminLogin(ctx context.Context, req models.LoginRequest) *models.Identity
	RegisterUser(ctx context.Context, req models.RegisterRequest, token string) (models.Result, error)
	RegisterAdmin(ctx context.Context, req models.RegisterRequest) models.Result
	ListUsers(ctx context.Context, token string) ([]models.User, models.Result, error)
	GetUser(ctx context.Context, id int64, token string) (*models.User, models.Result, error)
	DeleteUser(ctx context.Context, id int64, token string) (models.Result, error)
	UpdatePassword(ctx context.Context, req models.UpdatePasswordRequest, token string) (models.Result, error)
	ForgetPassword(ctx context.Context, username string, req models.ForgetPasswordRequest) models.Result
	ListStores(ctx context.Context, token string) ([]models.Store, models.Result)
	GetStore(ctx context.Context, id int64, token string) (*models.Store, models.Result)
	CreateStore(ctx context.Context, req models.StoreRequest, token string) (models.Result, error)
	UpdateStore(ctx context.Context, id int64, req models.StoreRequest, token string) (models.Result, error)
	DeleteStore(ctx context.Context, id int64, token string) (models.Result, error)
}
