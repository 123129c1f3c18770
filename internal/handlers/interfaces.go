package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nayotama/itumy-api/internal/models"
)

// APIKeyServiceInterface defines the methods used by handlers from APIKeyService
type APIKeyServiceInterface interface {
	Create(ctx context.Context, firstName, lastName, email string) (*models.APIKey, *models.User, error)
	Validate(ctx context.Context, presentedKey string) (*models.APIKey, error)
}

// AdminServiceInterface defines the methods used by handlers from AdminService
type AdminServiceInterface interface {
	Register(ctx context.Context, email, password string) (*models.Admin, error)
	Authenticate(ctx context.Context, email, password string) (*models.Admin, error)
}

// SessionServiceInterface defines the methods used by handlers from SessionService
type SessionServiceInterface interface {
	Create(ctx context.Context, adminID uuid.UUID) (string, *models.Session, error)
	Validate(ctx context.Context, token string) (uuid.UUID, string, error)
	Revoke(ctx context.Context, token string) error
	TTL() time.Duration
}

// DashboardServiceInterface defines the methods used by handlers from DashboardService
type DashboardServiceInterface interface {
	ListUsersWithKeys(ctx context.Context) ([]models.UserWithKey, error)
	DeleteKey(ctx context.Context, id uuid.UUID) error
}
