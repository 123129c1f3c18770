package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nayotama/itumy-api/internal/database"
	"github.com/nayotama/itumy-api/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateAPIKeyWithUser inserts an api key and its owning user in one go and
// returns both rows.
func (f *Fixtures) CreateAPIKeyWithUser(t *testing.T, opts ...APIKeyOption) (*models.APIKey, *models.User) {
	t.Helper()
	f.counter++

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("failed to generate key material: %v", err)
	}

	key := &models.APIKey{
		Key:      models.KeyPrefix + hex.EncodeToString(raw),
		Prefix:   models.KeyPrefix,
		IsActive: true,
	}
	user := &models.User{
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", f.counter),
		Email:     fmt.Sprintf("user%d@example.com", f.counter),
	}

	for _, opt := range opts {
		opt(key, user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO api_keys (api_key, prefix, is_active, out_of_date, usage_count, last_used_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, key.Key, key.Prefix, key.IsActive, key.OutOfDate, key.UsageCount, key.LastUsedAt).Scan(
		&key.ID, &key.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create api key: %v", err)
	}

	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, api_key_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, user.FirstName, user.LastName, user.Email, key.ID).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	user.APIKeyID = key.ID

	return key, user
}

// APIKeyOption configures a key and its owner before insertion
type APIKeyOption func(*models.APIKey, *models.User)

// WithUserEmail sets the owning user's email
func WithUserEmail(email string) APIKeyOption {
	return func(_ *models.APIKey, u *models.User) {
		u.Email = email
	}
}

// WithInactive marks the key as administratively deactivated
func WithInactive() APIKeyOption {
	return func(k *models.APIKey, _ *models.User) {
		k.IsActive = false
	}
}

// WithOutOfDate marks the key as expired by the sweeper
func WithOutOfDate() APIKeyOption {
	return func(k *models.APIKey, _ *models.User) {
		k.OutOfDate = true
	}
}

// WithLastUsedAt sets the key's last use timestamp and usage count
func WithLastUsedAt(at time.Time, count int) APIKeyOption {
	return func(k *models.APIKey, _ *models.User) {
		k.LastUsedAt = &at
		k.UsageCount = count
	}
}

// CreateAdmin inserts an admin with the given password hashed with bcrypt
func (f *Fixtures) CreateAdmin(t *testing.T, email, password string) *models.Admin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	admin := &models.Admin{Email: email, PasswordHash: string(hash)}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO admins (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, admin.Email, admin.PasswordHash).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	return admin
}

// CreateSessionRow inserts a raw session row. The token hash is stored as
// given, so only useful for expiry bookkeeping tests, not cookie auth.
func (f *Fixtures) CreateSessionRow(t *testing.T, adminID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO sessions (token_hash, admin_id, expires_at)
		VALUES ($1, $2, $3)
	`, tokenHash, adminID, expiresAt)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
}
