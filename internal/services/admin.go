package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nayotama/itumy-api/internal/database"
	"github.com/nayotama/itumy-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrAdminEmailTaken     = errors.New("email already registered")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so login responses cannot be used to enumerate admins.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const bcryptCost = 10

type AdminService struct {
	db *database.DB
}

func NewAdminService(db *database.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) Register(ctx context.Context, email, password string) (*models.Admin, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var admin models.Admin
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO admins (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at
	`, email, string(hashed)).Scan(
		&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAdminEmailTaken
		}
		return nil, fmt.Errorf("failed to register admin: %w", err)
	}

	return &admin, nil
}

func (s *AdminService) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	var admin models.Admin
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admins
		WHERE email = $1
	`, email).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &admin, nil
}
