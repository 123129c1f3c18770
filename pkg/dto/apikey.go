package dto

import "time"

type CreateKeyRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type CreatedUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// CreateKeyResponse carries the plaintext key. This is the only place it is
// ever returned.
type CreateKeyResponse struct {
	Success bool        `json:"success"`
	APIKey  string      `json:"apiKey"`
	Message string      `json:"message"`
	User    CreatedUser `json:"user"`
}

type CheckKeyRequest struct {
	APIKey string `json:"apikey"`
}

type CheckKeyResponse struct {
	Success    bool       `json:"success"`
	Valid      bool       `json:"valid"`
	Message    string     `json:"message"`
	APIKey     string     `json:"apikey"`
	Prefix     string     `json:"prefix"`
	CreatedAt  time.Time  `json:"createdAt"`
	UsageCount int        `json:"usageCount"`
	LastUsedAt *time.Time `json:"lastUsedAt"`
	IsActive   bool       `json:"isActive"`
}
