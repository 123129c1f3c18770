package handlers

import (
	"errors"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/nayotama/itumy-api/internal/services"
	"github.com/nayotama/itumy-api/pkg/dto"
)

type APIKeyHandler struct {
	apiKeyService APIKeyServiceInterface
}

func NewAPIKeyHandler(apiKeyService APIKeyServiceInterface) *APIKeyHandler {
	return &APIKeyHandler{apiKeyService: apiKeyService}
}

// Create handles POST /create: registers a user and issues their key. The
// plaintext key appears in this response and nowhere else.
func (h *APIKeyHandler) Create(c *drift.Context) {
	var req dto.CreateKeyRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.ErrorResponse{Success: false, Message: "invalid request body"})
		return
	}

	apiKey, user, err := h.apiKeyService.Create(c.Request.Context(), req.FirstName, req.LastName, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrInvalidEmail):
			_ = c.JSON(400, dto.ErrorResponse{Success: false, Message: err.Error()})
		case errors.Is(err, services.ErrDuplicateEntry):
			_ = c.JSON(409, dto.ErrorResponse{Success: false, Message: err.Error()})
		default:
			_ = c.JSON(500, dto.ErrorResponse{Success: false, Message: "failed to create api key", Error: err.Error()})
		}
		return
	}

	_ = c.JSON(200, dto.CreateKeyResponse{
		Success: true,
		APIKey:  apiKey.Key,
		Message: "api key created and user registered",
		User: dto.CreatedUser{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
	})
}

// Check handles POST /checkapi: validates a presented key and records the use.
func (h *APIKeyHandler) Check(c *drift.Context) {
	var req dto.CheckKeyRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.ErrorResponse{Success: false, Valid: boolPtr(false), Message: "invalid request body"})
		return
	}

	apiKey, err := h.apiKeyService.Validate(c.Request.Context(), req.APIKey)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAPIKeyMalformed):
			_ = c.JSON(400, dto.ErrorResponse{Success: false, Valid: boolPtr(false), Message: err.Error()})
		case errors.Is(err, services.ErrAPIKeyNotFound), errors.Is(err, services.ErrAPIKeyInactive):
			_ = c.JSON(401, dto.ErrorResponse{Success: false, Valid: boolPtr(false), Message: err.Error()})
		default:
			_ = c.JSON(500, dto.ErrorResponse{Success: false, Valid: boolPtr(false), Message: "failed to check api key", Error: err.Error()})
		}
		return
	}

	_ = c.JSON(200, dto.CheckKeyResponse{
		Success:    true,
		Valid:      true,
		Message:    "api key valid",
		APIKey:     apiKey.Key,
		Prefix:     apiKey.Prefix,
		CreatedAt:  apiKey.CreatedAt,
		UsageCount: apiKey.UsageCount,
		LastUsedAt: apiKey.LastUsedAt,
		IsActive:   apiKey.IsActive,
	})
}

func boolPtr(b bool) *bool {
	return &b
}
