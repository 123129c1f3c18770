package handlers

import (
	"net/http"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/nayotama/itumy-api/internal/middleware"
	"github.com/nayotama/itumy-api/internal/ui"
)

type PagesHandler struct {
	sessionService SessionServiceInterface
}

func NewPagesHandler(sessionService SessionServiceInterface) *PagesHandler {
	return &PagesHandler{sessionService: sessionService}
}

// Home serves the public key-generation page.
func (h *PagesHandler) Home(c *drift.Context) {
	_ = c.HTML(200, ui.IndexPage)
}

// RegisterPage serves the admin registration form, or sends an already
// authenticated admin straight to the dashboard.
func (h *PagesHandler) RegisterPage(c *drift.Context) {
	if h.hasSession(c) {
		redirect(c, "/admin/dashboard")
		return
	}
	_ = c.HTML(200, ui.RegisterPage)
}

// LoginPage serves the admin login form, with the same redirect rule.
func (h *PagesHandler) LoginPage(c *drift.Context) {
	if h.hasSession(c) {
		redirect(c, "/admin/dashboard")
		return
	}
	_ = c.HTML(200, ui.LoginPage)
}

// DashboardPage serves the dashboard shell. The route is session-gated.
func (h *PagesHandler) DashboardPage(c *drift.Context) {
	_ = c.HTML(200, ui.DashboardPage)
}

func (h *PagesHandler) hasSession(c *drift.Context) bool {
	cookie, err := c.Request.Cookie(middleware.SessionCookieName)
	if err != nil {
		return false
	}
	_, _, err = h.sessionService.Validate(c.Request.Context(), cookie.Value)
	return err == nil
}

func redirect(c *drift.Context, location string) {
	c.Response.Header().Set("Location", location)
	c.Response.WriteHeader(http.StatusFound)
}
