package services

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nayotama/itumy-api/internal/database"
	"github.com/nayotama/itumy-api/internal/models"
)

var ErrSessionInvalid = errors.New("invalid or expired session")

const sessionTokenLen = 32

// SessionService maintains server-side admin sessions keyed by an opaque
// cookie token. Only a keyed hash of the token is stored; the plaintext
// exists in the cookie alone.
type SessionService struct {
	db     *database.DB
	secret []byte
	ttl    time.Duration
}

func NewSessionService(db *database.DB, secret string, ttl time.Duration) *SessionService {
	return &SessionService{db: db, secret: []byte(secret), ttl: ttl}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create issues a new session for the admin and returns the plaintext token
// to be set as the cookie value. The expiry is fixed at issuance.
func (s *SessionService) Create(ctx context.Context, adminID uuid.UUID) (string, *models.Session, error) {
	tokenBytes := make([]byte, sessionTokenLen)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(tokenBytes)

	var session models.Session
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO sessions (token_hash, admin_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, token_hash, admin_id, expires_at, created_at
	`, s.hashToken(token), adminID, time.Now().Add(s.ttl)).Scan(
		&session.ID, &session.TokenHash, &session.AdminID, &session.ExpiresAt, &session.CreatedAt,
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	return token, &session, nil
}

// Validate resolves a cookie token to the authenticated admin. An expired or
// unknown token is indistinguishable from no session at all.
func (s *SessionService) Validate(ctx context.Context, token string) (uuid.UUID, string, error) {
	if token == "" {
		return uuid.Nil, "", ErrSessionInvalid
	}

	var adminID uuid.UUID
	var adminEmail string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT s.admin_id, a.email
		FROM sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.token_hash = $1 AND s.expires_at > NOW()
	`, s.hashToken(token)).Scan(&adminID, &adminEmail)
	if err != nil {
		return uuid.Nil, "", ErrSessionInvalid
	}

	return adminID, adminEmail, nil
}

func (s *SessionService) Revoke(ctx context.Context, token string) error {
	_, err := s.db.Pool.Exec(ctx, `
		DELETE FROM sessions WHERE token_hash = $1
	`, s.hashToken(token))
	return err
}

func (s *SessionService) CleanupExpired(ctx context.Context) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	return err
}

func (s *SessionService) hashToken(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
