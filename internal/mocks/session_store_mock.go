package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/trackventory/gateway/internal/models"
	"github.com/trackventory/gateway/internal/service"
)

// MockSessionStore is a testify mock of service.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

var _ service.SessionStore = (*MockSessionStore)(nil)

func (m *MockSessionStore) Initialize(ctx context.Context, identity models.Identity) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Read(ctx context.Context, sessionID string) (*models.Identity, error) {
	args := m.Called(ctx, sessionID)
	if identity, ok := args.Get(0).(*models.Identity); ok {
		return identity, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionStore) Touch(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionStore) IsExpired(ctx context.Context, sessionID string) bool {
	args := m.Called(ctx, sessionID)
	return args.Bool(0)
}

func (m *MockSessionStore) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
