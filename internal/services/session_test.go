package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayotama/itumy-api/internal/database"
)

func setupSessionService(t *testing.T) (*SessionService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewSessionService(db, "test-session-secret", 24*time.Hour), mock
}

func TestSessionService_Create(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()
	adminID := uuid.New()
	now := time.Now()
	expiresAt := now.Add(24 * time.Hour)

	rows := pgxmock.NewRows([]string{"id", "token_hash", "admin_id", "expires_at", "created_at"}).
		AddRow(uuid.New(), "stored-hash", adminID, expiresAt, now)

	mock.ExpectQuery(`INSERT INTO sessions`).
		WithArgs(pgxmock.AnyArg(), adminID, pgxmock.AnyArg()).
		WillReturnRows(rows)

	token, session, err := svc.Create(ctx, adminID)

	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Equal(t, adminID, session.AdminID)
	// The plaintext token must never equal what went into the store.
	assert.NotEqual(t, token, session.TokenHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_Validate_Success(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()
	adminID := uuid.New()
	token := "deadbeef"

	rows := pgxmock.NewRows([]string{"admin_id", "email"}).AddRow(adminID, "admin@x.com")
	mock.ExpectQuery(`SELECT s.admin_id, a.email`).
		WithArgs(svc.hashToken(token)).
		WillReturnRows(rows)

	gotID, gotEmail, err := svc.Validate(ctx, token)

	require.NoError(t, err)
	assert.Equal(t, adminID, gotID)
	assert.Equal(t, "admin@x.com", gotEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_Validate_EmptyToken(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()

	_, _, err := svc.Validate(ctx, "")

	assert.ErrorIs(t, err, ErrSessionInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_Validate_UnknownOrExpired(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT s.admin_id, a.email`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, _, err := svc.Validate(ctx, "expired-or-unknown")

	assert.ErrorIs(t, err, ErrSessionInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_Revoke(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()
	token := "deadbeef"

	mock.ExpectExec(`DELETE FROM sessions WHERE token_hash`).
		WithArgs(svc.hashToken(token)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := svc.Revoke(ctx, token)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_CleanupExpired(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM sessions WHERE expires_at < NOW`).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	err := svc.CleanupExpired(ctx)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_HashTokenDeterministicPerSecret(t *testing.T) {
	db := &database.DB{}
	a := NewSessionService(db, "secret-one", time.Hour)
	b := NewSessionService(db, "secret-two", time.Hour)

	assert.Equal(t, a.hashToken("tok"), a.hashToken("tok"))
	assert.NotEqual(t, a.hashToken("tok"), b.hashToken("tok"))
}
