package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/nayotama/itumy-api/internal/middleware"
	"github.com/nayotama/itumy-api/internal/models"
	"github.com/nayotama/itumy-api/internal/services"
	"github.com/nayotama/itumy-api/pkg/dto"
)

type AdminHandler struct {
	adminService     AdminServiceInterface
	sessionService   SessionServiceInterface
	dashboardService DashboardServiceInterface
}

func NewAdminHandler(
	adminService AdminServiceInterface,
	sessionService SessionServiceInterface,
	dashboardService DashboardServiceInterface,
) *AdminHandler {
	return &AdminHandler{
		adminService:     adminService,
		sessionService:   sessionService,
		dashboardService: dashboardService,
	}
}

// Register handles POST /admin/register. Registration is open; there is no
// invitation step.
func (h *AdminHandler) Register(c *drift.Context) {
	var req dto.AdminAuthRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.ErrorResponse{Success: false, Message: "invalid request body"})
		return
	}

	_, err := h.adminService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCredentialsRequired):
			_ = c.JSON(400, dto.ErrorResponse{Success: false, Message: err.Error()})
		case errors.Is(err, services.ErrAdminEmailTaken):
			_ = c.JSON(409, dto.ErrorResponse{Success: false, Message: err.Error()})
		default:
			_ = c.JSON(500, dto.ErrorResponse{Success: false, Message: "failed to register", Error: err.Error()})
		}
		return
	}

	_ = c.JSON(200, dto.RedirectResponse{
		Success:    true,
		Message:    "admin registered, please log in",
		RedirectTo: "/admin/login",
	})
}

// Login handles POST /admin/login and sets the session cookie on success.
func (h *AdminHandler) Login(c *drift.Context) {
	var req dto.AdminAuthRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.ErrorResponse{Success: false, Message: "invalid request body"})
		return
	}

	admin, err := h.adminService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCredentialsRequired):
			_ = c.JSON(400, dto.ErrorResponse{Success: false, Message: err.Error()})
		case errors.Is(err, services.ErrInvalidCredentials):
			_ = c.JSON(401, dto.ErrorResponse{Success: false, Message: err.Error()})
		default:
			_ = c.JSON(500, dto.ErrorResponse{Success: false, Message: "failed to log in", Error: err.Error()})
		}
		return
	}

	token, session, err := h.sessionService.Create(c.Request.Context(), admin.ID)
	if err != nil {
		_ = c.JSON(500, dto.ErrorResponse{Success: false, Message: "failed to log in", Error: err.Error()})
		return
	}

	http.SetCookie(c.Response, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(h.sessionService.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	_ = c.JSON(200, dto.RedirectResponse{
		Success:    true,
		Message:    "login successful",
		RedirectTo: "/admin/dashboard",
	})
}

// Logout handles POST /admin/logout. The route is session-gated, so a cookie
// is present; failing to revoke the stored session is a server error.
func (h *AdminHandler) Logout(c *drift.Context) {
	cookie, err := c.Request.Cookie(middleware.SessionCookieName)
	if err == nil {
		if err := h.sessionService.Revoke(c.Request.Context(), cookie.Value); err != nil {
			_ = c.JSON(500, dto.ErrorResponse{Success: false, Message: "failed to log out", Error: err.Error()})
			return
		}
	}

	http.SetCookie(c.Response, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	_ = c.JSON(200, dto.RedirectResponse{
		Success:    true,
		Message:    "logout successful",
		RedirectTo: "/admin/login",
	})
}

// ListUsersWithKeys handles GET /admin/users-apikeys.
func (h *AdminHandler) ListUsersWithKeys(c *drift.Context) {
	rows, err := h.dashboardService.ListUsersWithKeys(c.Request.Context())
	if err != nil {
		_ = c.JSON(500, dto.ErrorResponse{Success: false, Message: "failed to fetch users", Error: err.Error()})
		return
	}

	if rows == nil {
		rows = []models.UserWithKey{}
	}

	_ = c.JSON(200, dto.UsersWithKeysResponse{
		Success: true,
		Total:   len(rows),
		Data:    rows,
	})
}

// DeleteKey handles DELETE /admin/apikeys/:id. The owning user goes with the
// key.
func (h *AdminHandler) DeleteKey(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(404, dto.ErrorResponse{Success: false, Message: "api key not found"})
		return
	}

	if err := h.dashboardService.DeleteKey(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrAPIKeyNotFound) {
			_ = c.JSON(404, dto.ErrorResponse{Success: false, Message: "api key not found"})
			return
		}
		_ = c.JSON(500, dto.ErrorResponse{Success: false, Message: "failed to delete api key", Error: err.Error()})
		return
	}

	_ = c.JSON(200, dto.MessageResponse{
		Success: true,
		Message: "api key and associated user deleted",
	})
}
