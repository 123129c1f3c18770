package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nayotama/itumy-api/internal/database"
	"github.com/nayotama/itumy-api/internal/models"
)

var (
	ErrMissingFields   = errors.New("first name, last name and email are required")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrDuplicateEntry  = errors.New("email or api key already registered")
	ErrAPIKeyMalformed = errors.New("malformed api key")
	ErrAPIKeyNotFound  = errors.New("api key not found")
	ErrAPIKeyInactive  = errors.New("api key is no longer active")
)

const apiKeyRandomLen = 32

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type APIKeyService struct {
	db          *database.DB
	maxIdleDays int
}

func NewAPIKeyService(db *database.DB, maxIdleDays int) *APIKeyService {
	return &APIKeyService{db: db, maxIdleDays: maxIdleDays}
}

// GenerateKey builds a full key: the fixed prefix followed by 64 hex chars
// from a cryptographically secure source.
func (s *APIKeyService) GenerateKey() (string, error) {
	randomBytes := make([]byte, apiKeyRandomLen)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random key: %w", err)
	}
	return models.KeyPrefix + hex.EncodeToString(randomBytes), nil
}

// Create issues a new key and registers its owning user. The key insert and
// the user insert share one transaction so a failed registration never leaves
// an orphaned key behind.
func (s *APIKeyService) Create(ctx context.Context, firstName, lastName, email string) (*models.APIKey, *models.User, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" || strings.TrimSpace(email) == "" {
		return nil, nil, ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return nil, nil, ErrInvalidEmail
	}

	plainKey, err := s.GenerateKey()
	if err != nil {
		return nil, nil, err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var apiKey models.APIKey
	err = tx.QueryRow(ctx, `
		INSERT INTO api_keys (api_key, prefix)
		VALUES ($1, $2)
		RETURNING id, api_key, prefix, is_active, out_of_date, usage_count, created_at, last_used_at
	`, plainKey, models.KeyPrefix).Scan(
		&apiKey.ID, &apiKey.Key, &apiKey.Prefix, &apiKey.IsActive,
		&apiKey.OutOfDate, &apiKey.UsageCount, &apiKey.CreatedAt, &apiKey.LastUsedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, ErrDuplicateEntry
		}
		return nil, nil, fmt.Errorf("failed to create api key: %w", err)
	}

	var user models.User
	err = tx.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, api_key_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, first_name, last_name, email, api_key_id, created_at
	`, firstName, lastName, email, apiKey.ID).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.APIKeyID, &user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, ErrDuplicateEntry
		}
		return nil, nil, fmt.Errorf("failed to register user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &apiKey, &user, nil
}

// Validate checks a presented key and, when it is usable, records the use.
// The returned row carries the post-increment usage count and the new
// last_used_at, read back from the same UPDATE statement.
func (s *APIKeyService) Validate(ctx context.Context, presentedKey string) (*models.APIKey, error) {
	if presentedKey == "" || !strings.HasPrefix(presentedKey, models.KeyPrefix) {
		return nil, ErrAPIKeyMalformed
	}

	var apiKey models.APIKey
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, api_key, prefix, is_active, out_of_date, usage_count, created_at, last_used_at
		FROM api_keys
		WHERE api_key = $1
	`, presentedKey).Scan(
		&apiKey.ID, &apiKey.Key, &apiKey.Prefix, &apiKey.IsActive,
		&apiKey.OutOfDate, &apiKey.UsageCount, &apiKey.CreatedAt, &apiKey.LastUsedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAPIKeyNotFound
		}
		return nil, err
	}

	if !apiKey.Usable() {
		return nil, ErrAPIKeyInactive
	}

	err = s.db.Pool.QueryRow(ctx, `
		UPDATE api_keys
		SET usage_count = usage_count + 1, last_used_at = NOW()
		WHERE id = $1
		RETURNING usage_count, last_used_at
	`, apiKey.ID).Scan(&apiKey.UsageCount, &apiKey.LastUsedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record api key use: %w", err)
	}

	return &apiKey, nil
}

// MarkStale flips out_of_date on every key whose last use is at least the
// configured number of days before asOf. Keys never used are left alone.
// Idempotent: a second run with no newly qualifying rows affects nothing.
func (s *APIKeyService) MarkStale(ctx context.Context, asOf time.Time) (int64, error) {
	cutoff := asOf.AddDate(0, 0, -s.maxIdleDays)
	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE api_keys
		SET out_of_date = TRUE
		WHERE last_used_at IS NOT NULL
		AND out_of_date = FALSE
		AND last_used_at <= $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
