package dto

import "github.com/nayotama/itumy-api/internal/models"

type AdminAuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RedirectResponse is returned by the admin auth endpoints; the frontend
// follows redirectTo after a successful call.
type RedirectResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo"`
}

type UsersWithKeysResponse struct {
	Success bool                 `json:"success"`
	Total   int                  `json:"total"`
	Data    []models.UserWithKey `json:"data"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
