package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/requests"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

// CookieOptions shapes the session cookie.
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

func (o CookieOptions) issue(token string) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(o.TTL.Seconds()),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (o CookieOptions) clear() *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

type SessionController struct {
	sessions *services.SessionService
	cookie   CookieOptions
	limits   Limits
}

func NewSessionController(sessions *services.SessionService, cookie CookieOptions, limits Limits) *SessionController {
	return &SessionController{sessions: sessions, cookie: cookie, limits: limits}
}

type sessionBody struct {
	Success bool        `json:"success"`
	User    models.User `json:"user"`
}

// Login handles POST /user/login.
func (h *SessionController) Login(c *ctx.Context) {
	raw, ok := c.BindFields(h.limits.MaxBodyBytes)
	if !ok {
		return
	}
	in, err := requests.NewLogin(raw)
	if rejectInvalid(c, err) {
		return
	}

	u, token, err := h.sessions.Login(c.Context(), in)
	switch {
	case errors.Is(err, services.ErrBadCredentials):
		c.Unauthorized("Invalid email or password")
		return
	case err != nil:
		internal(c, "Login failed", err)
		return
	}

	c.SetCookie(h.cookie.issue(token))
	c.OK(sessionBody{Success: true, User: u})
}

// Logout handles POST /user/logout.
func (h *SessionController) Logout(c *ctx.Context) {
	c.SetCookie(h.cookie.clear())
	c.OK(map[string]bool{"success": true})
}
