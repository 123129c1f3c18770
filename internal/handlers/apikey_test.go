package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nayotama/itumy-api/internal/models"
	"github.com/nayotama/itumy-api/internal/services"
	"github.com/nayotama/itumy-api/pkg/dto"
	"github.com/nayotama/itumy-api/tests/testutil"
)

func newAPIKeyTestApp(handler *APIKeyHandler) http.Handler {
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/create", handler.Create)
	app.Post("/checkapi", handler.Check)
	return app
}

func postJSON(t *testing.T, app http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestAPIKeyHandler_Create_Success(t *testing.T) {
	mockService := new(testutil.MockAPIKeyService)
	handler := NewAPIKeyHandler(mockService)
	app := newAPIKeyTestApp(handler)

	key := &models.APIKey{
		ID:       uuid.New(),
		Key:      models.KeyPrefix + "abcdef0123456789",
		Prefix:   models.KeyPrefix,
		IsActive: true,
	}
	user := &models.User{
		ID:        uuid.New(),
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		APIKeyID:  key.ID,
	}

	mockService.On("Create", mock.Anything, "Jane", "Doe", "jane@example.com").Return(key, user, nil)

	rec := postJSON(t, app, "/create", dto.CreateKeyRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.CreateKeyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, key.Key, response.APIKey)
	assert.Equal(t, "Jane", response.User.FirstName)
	assert.Equal(t, "jane@example.com", response.User.Email)

	mockService.AssertExpectations(t)
}

func TestAPIKeyHandler_Create_MissingFields(t *testing.T) {
	mockService := new(testutil.MockAPIKeyService)
	handler := NewAPIKeyHandler(mockService)
	app := newAPIKeyTestApp(handler)

	mockService.On("Create", mock.Anything, "", "", "").Return(nil, nil, services.ErrMissingFields)

	rec := postJSON(t, app, "/create", dto.CreateKeyRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "required")
	mockService.AssertExpectations(t)
}

func TestAPIKeyHandler_Create_InvalidEmail(t *testing.T) {
	mockService := new(testutil.MockAPIKeyService)
	handler := NewAPIKeyHandler(mockService)
	app := newAPIKeyTestApp(handler)

	mockService.On("Create", mock.Anything, "Jane", "Doe", "not-an-email").
		Return(nil, nil, services.ErrInvalidEmail)

	rec := postJSON(t, app, "/create", dto.CreateKeyRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email format")
}

func TestAPIKeyHandler_Create_DuplicateEmail(t *testing.T) {
	mockService := new(testutil.MockAPIKeyService)
	handler := NewAPIKeyHandler(mockService)
	app := newAPIKeyTestApp(handler)

	mockService.On("Create", mock.Anything, "Jane", "Doe", "jane@example.com").
		Return(nil, nil, services.ErrDuplicateEntry)

	rec := postJSON(t, app, "/create", dto.CreateKeyRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already registered")
}

func TestAPIKeyHandler_Create_InvalidBody(t *testing.T) {
	mockService := new(testutil.MockAPIKeyService)
	handler := NewAPIKeyHandler(mockService)
	app := newAPIKeyTestApp(handler)

	req := httptest.NewRequest(http.MethodPost, "/create", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
	mockService.AssertNotCalled(t, "Create")
}

func TestAPIKeyHandler_Create_ServiceError(t *testing.T) {
	mockService := new(testutil.MockAPIKeyService)
	handler := NewAPIKeyHandler(mockService)
	app := newAPIKeyTestApp(handler)

	mockService.On("Create", mock.Anything, "Jane", "Doe", "jane@example.com").
		Return(nil, nil, errors.New("database error"))

	rec := postJSON(t, app, "/create", dto.CreateKeyRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to create api key")
}

func TestAPIKeyHandler_Check_Success(t *testing.T) {
	mockService := new(testutil.MockAPIKeyService)
	handler := NewAPIKeyHandler(mockService)
	app := newAPIKeyTestApp(handler)

	lastUsed := time.Now()
	key := &models.APIKey{
		ID:         uuid.New(),
		Key:        models.KeyPrefix + "abcdef0123456789",
		Prefix:     models.KeyPrefix,
		IsActive:   true,
		UsageCount: 7,
		CreatedAt:  time.Now().Add(-24 * time.Hour),
		LastUsedAt: &lastUsed,
	}

	mockService.On("Validate", mock.Anything, key.Key).Return(key, nil)

	rec := postJSON(t, app, "/checkapi", dto.CheckKeyRequest{APIKey: key.Key})

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.CheckKeyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.True(t, response.Valid)
	assert.Equal(t, key.Key, response.APIKey)
	assert.Equal(t, models.KeyPrefix, response.Prefix)
	assert.Equal(t, 7, response.UsageCount)
	assert.True(t, response.IsActive)

	mockService.AssertExpectations(t)
}

func TestAPIKeyHandler_Check_Malformed(t *testing.T) {
	mockService := new(testutil.MockAPIKeyService)
	handler := NewAPIKeyHandler(mockService)
	app := newAPIKeyTestApp(handler)

	mockService.On("Validate", mock.Anything, "garbage").Return(nil, services.ErrAPIKeyMalformed)

	rec := postJSON(t, app, "/checkapi", dto.CheckKeyRequest{APIKey: "garbage"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Success)
	require.NotNil(t, response.Valid)
	assert.False(t, *response.Valid)
	assert.Equal(t, "malformed api key", response.Message)
}

func TestAPIKeyHandler_Check_NotFound(t *testing.T) {
	mockService := new(testutil.MockAPIKeyService)
	handler := NewAPIKeyHandler(mockService)
	app := newAPIKeyTestApp(handler)

	presented := models.KeyPrefix + "0000000000000000"
	mockService.On("Validate", mock.Anything, presented).Return(nil, services.ErrAPIKeyNotFound)

	rec := postJSON(t, app, "/checkapi", dto.CheckKeyRequest{APIKey: presented})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "api key not found")
}

func TestAPIKeyHandler_Check_Inactive(t *testing.T) {
	mockService := new(testutil.MockAPIKeyService)
	handler := NewAPIKeyHandler(mockService)
	app := newAPIKeyTestApp(handler)

	presented := models.KeyPrefix + "0000000000000000"
	mockService.On("Validate", mock.Anything, presented).Return(nil, services.ErrAPIKeyInactive)

	rec := postJSON(t, app, "/checkapi", dto.CheckKeyRequest{APIKey: presented})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no longer active")
}

func TestAPIKeyHandler_Check_ServiceError(t *testing.T) {
	mockService := new(testutil.MockAPIKeyService)
	handler := NewAPIKeyHandler(mockService)
	app := newAPIKeyTestApp(handler)

	presented := models.KeyPrefix + "0000000000000000"
	mockService.On("Validate", mock.Anything, presented).Return(nil, errors.New("database error"))

	rec := postJSON(t, app, "/checkapi", dto.CheckKeyRequest{APIKey: presented})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to check api key")
}
