package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	APIKeyID  uuid.UUID `json:"api_key_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UserWithKey is a dashboard row: a user joined to their key, plus a
// presentation-only status label computed at query time. The label may
// disagree with the persisted out_of_date flag between sweeper runs.
type UserWithKey struct {
	UserID     uuid.UUID  `json:"user_id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	APIKeyID   *uuid.UUID `json:"api_key_id"`
	APIKey     *string    `json:"api_key"`
	IsActive   *bool      `json:"is_active"`
	OutOfDate  *bool      `json:"out_of_date"`
	UsageCount *int       `json:"usage_count"`
	CreatedAt  *time.Time `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
	Status     string     `json:"status"`
}

const (
	StatusNeverUsed = "Never Used"
	StatusInactive  = "Inactive"
	StatusActive    = "Active"
)
