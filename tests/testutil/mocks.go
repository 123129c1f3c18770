package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nayotama/itumy-api/internal/models"
)

// MockAPIKeyService mocks the APIKeyService
type MockAPIKeyService struct {
	mock.Mock
}

func (m *MockAPIKeyService) Create(ctx context.Context, firstName, lastName, email string) (*models.APIKey, *models.User, error) {
	args := m.Called(ctx, firstName, lastName, email)
	var key *models.APIKey
	var user *models.User
	if args.Get(0) != nil {
		key = args.Get(0).(*models.APIKey)
	}
	if args.Get(1) != nil {
		user = args.Get(1).(*models.User)
	}
	return key, user, args.Error(2)
}

func (m *MockAPIKeyService) Validate(ctx context.Context, presentedKey string) (*models.APIKey, error) {
	args := m.Called(ctx, presentedKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.APIKey), args.Error(1)
}

// MockAdminService mocks the AdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Register(ctx context.Context, email, password string) (*models.Admin, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminService) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

// MockSessionService mocks the SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, adminID uuid.UUID) (string, *models.Session, error) {
	args := m.Called(ctx, adminID)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.Session), args.Error(2)
}

func (m *MockSessionService) Validate(ctx context.Context, token string) (uuid.UUID, string, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockSessionService) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionService) TTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockDashboardService mocks the DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) ListUsersWithKeys(ctx context.Context) ([]models.UserWithKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserWithKey), args.Error(1)
}

func (m *MockDashboardService) DeleteKey(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
