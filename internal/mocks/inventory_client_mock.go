package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/trackventory/gateway/internal/models"
	"github.com/trackventory/gateway/internal/service"
)

// MockInventoryClient is a testify mock of service.InventoryClient.
type MockInventoryClient struct {
	mock.Mock
}

var _ service.InventoryClient = (*MockInventoryClient)(nil)

func (m *MockInventoryClient) UserLogin(ctx context.Context, req models.LoginRequest) *models.Identity {
	args := m.Called(ctx, req)
	return args.Get(0).(*models.Identity)
}

func (m *MockInventoryClient) AdminLogin(ctx context.Context, req models.LoginRequest) *models.Identity {
	args := m.Called(ctx, req)
	return args.Get(0).(*models.Identity)
}

func (m *MockInventoryClient) RegisterUser(ctx context.Context, req models.RegisterRequest, token string) (models.Result, error) {
	args := m.Called(ctx, req, token)
	return args.Get(0).(models.Result), args.Error(1)
}

func (m *MockInventoryClient) RegisterAdmin(ctx context.Context, req models.RegisterRequest) models.Result {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Result)
}

func (m *MockInventoryClient) ListUsers(ctx context.Context, token string) ([]models.User, models.Result, error) {
	args := m.Called(ctx, token)
	users, _ := args.Get(0).([]models.User)
	return users, args.Get(1).(models.Result), args.Error(2)
}

func (m *MockInventoryClient) GetUser(ctx context.Context, id int64, token string) (*models.User, models.Result, error) {
	args := m.Called(ctx, id, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Get(1).(models.Result), args.Error(2)
}

func (m *MockInventoryClient) DeleteUser(ctx context.Context, id int64, token string) (models.Result, error) {
	args := m.Called(ctx, id, token)
	return args.Get(0).(models.Result), args.Error(1)
}

func (m *MockInventoryClient) UpdatePassword(ctx context.Context, req models.UpdatePasswordRequest, token string) (models.Result, error) {
	args := m.Called(ctx, req, token)
	return args.Get(0).(models.Result), args.Error(1)
}

func (m *MockInventoryClient) ForgetPassword(ctx context.Context, username string, req models.ForgetPasswordRequest) models.Result {
	args := m.Called(ctx, username, req)
	return args.Get(0).(models.Result)
}

func (m *MockInventoryClient) ListStores(ctx context.Context, token string) ([]models.Store, models.Result) {
	args := m.Called(ctx, token)
	stores, _ := args.Get(0).([]models.Store)
	return stores, args.Get(1).(models.Result)
}

func (m *MockInventoryClient) GetStore(ctx context.Context, id int64, token string) (*models.Store, models.Result) {
	args := m.Called(ctx, id, token)
	store, _ := args.Get(0).(*models.Store)
	return store, args.Get(1).(models.Result)
}

func (m *MockInventoryClient) CreateStore(ctx context.Context, req models.StoreRequest, token string) (models.Result, error) {
	args := m.Called(ctx, req, token)
	return args.Get(0).(models.Result), args.Error(1)
}

func (m *MockInventoryClient) UpdateStore(ctx context.Context, id int64, req models.StoreRequest, token string) (models.Result, error) {
	args := m.Called(ctx, id, req, token)
	return args.Get(0).(models.Result), args.Error(1)
}

func (m *MockInventoryClient) DeleteStore(ctx context.Context, id int64, token string) (models.Result, error) {
	args := m.Called(ctx, id, token)
	return args.Get(0).(models.Result), args.Error(1)
}
