package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/nayotama/itumy-api/pkg/dto"
)

const (
	SessionCookieName = "itumy_session"

	AdminIDKey    = "admin_id"
	AdminEmailKey = "admin_email"
)

// SessionValidator resolves a cookie token to an authenticated admin.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (uuid.UUID, string, error)
}

// RequireAuth gates admin routes on a valid session cookie.
func RequireAuth(sessions SessionValidator) drift.HandlerFunc {
	return func(c *drift.Context) {
		cookie, err := c.Request.Cookie(SessionCookieName)
		if err != nil {
			_ = c.JSON(401, dto.ErrorResponse{Success: false, Message: "authentication required"})
			return
		}

		adminID, adminEmail, err := sessions.Validate(c.Request.Context(), cookie.Value)
		if err != nil {
			_ = c.JSON(401, dto.ErrorResponse{Success: false, Message: "authentication required"})
			return
		}

		c.Set(AdminIDKey, adminID)
		c.Set(AdminEmailKey, adminEmail)

		c.Next()
	}
}

func GetAdminID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(AdminIDKey); ok {
		if aid, ok := id.(uuid.UUID); ok {
			return aid
		}
	}
	return uuid.Nil
}

func GetAdminEmail(c *drift.Context) string {
	if email, ok := c.Get(AdminEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}
