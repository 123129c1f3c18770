package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nayotama/itumy-api/internal/database"
	"github.com/nayotama/itumy-api/internal/models"
)

type DashboardService struct {
	db          *database.DB
	maxIdleDays int
}

func NewDashboardService(db *database.DB, maxIdleDays int) *DashboardService {
	return &DashboardService{db: db, maxIdleDays: maxIdleDays}
}

// ListUsersWithKeys returns every registered user joined to their key,
// newest user first. The status label is derived at query time from
// last_used_at and is not reconciled with the out_of_date flag, which the
// sweeper only refreshes on its own schedule.
func (s *DashboardService) ListUsersWithKeys(ctx context.Context) ([]models.UserWithKey, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT
			u.id AS user_id,
			u.first_name,
			u.last_name,
			u.email,
			ak.id AS api_key_id,
			ak.api_key,
			ak.is_active,
			ak.out_of_date,
			ak.usage_count,
			ak.created_at,
			ak.last_used_at,
			CASE
				WHEN ak.last_used_at IS NULL THEN 'Never Used'
				WHEN ak.last_used_at <= NOW() - make_interval(days => $1) THEN 'Inactive'
				ELSE 'Active'
			END AS status
		FROM users u
		LEFT JOIN api_keys ak ON u.api_key_id = ak.id
		ORDER BY u.created_at DESC
	`, s.maxIdleDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.UserWithKey
	for rows.Next() {
		var row models.UserWithKey
		if err := rows.Scan(
			&row.UserID, &row.FirstName, &row.LastName, &row.Email,
			&row.APIKeyID, &row.APIKey, &row.IsActive, &row.OutOfDate,
			&row.UsageCount, &row.CreatedAt, &row.LastUsedAt, &row.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// DeleteKey removes a key and its owning user in one transaction. The user
// row goes first to satisfy the foreign key; if the key itself matches
// nothing the whole transaction rolls back and ErrAPIKeyNotFound is returned.
func (s *DashboardService) DeleteKey(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE api_key_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM api_keys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAPIKeyNotFound
	}

	return tx.Commit(ctx)
}
