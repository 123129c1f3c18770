package models

import (
	"time"

	"github.com/google/uuid"
)

// KeyPrefix is the fixed literal every issued key starts with. It identifies
// the key format version and lets validation reject garbage before any lookup.
const KeyPrefix = "sk-itumy-v1-api_"

type APIKey struct {
	ID         uuid.UUID  `json:"id"`
	Key        string     `json:"-"`
	Prefix     string     `json:"prefix"`
	IsActive   bool       `json:"is_active"`
	OutOfDate  bool       `json:"out_of_date"`
	UsageCount int        `json:"usage_count"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

// Usable reports whether the key may still be presented for validation.
func (k *APIKey) Usable() bool {
	return k.IsActive && !k.OutOfDate
}
