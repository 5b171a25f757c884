package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/requests"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/logger"
)

// ProfileController serves /user/profile for the session's own user. Every
// route sits behind middleware.Session.
type ProfileController struct {
	profiles *services.ProfileService
	sessions *services.SessionService
	cookie   CookieOptions
	limits   Limits
}

func NewProfileController(profiles *services.ProfileService, sessions *services.SessionService, cookie CookieOptions, limits Limits) *ProfileController {
	return &ProfileController{profiles: profiles, sessions: sessions, cookie: cookie, limits: limits}
}

type imageBody struct {
	Success      bool    `json:"success"`
	ProfileImage *string `json:"profileImage"`
}

// Show handles GET /user/profile.
func (h *ProfileController) Show(c *ctx.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	c.OK(sessionBody{Success: true, User: u})
}

// Update handles PATCH /user/profile. A changed email gets a fresh cookie
// since the token subject is the email.
func (h *ProfileController) Update(c *ctx.Context) {
	current, ok := currentUser(c)
	if !ok {
		return
	}
	raw, ok := c.BindFields(h.limits.MaxBodyBytes)
	if !ok {
		return
	}
	in, err := requests.NewProfilePatch(raw)
	if rejectInvalid(c, err) {
		return
	}

	u, emailChanged, err := h.profiles.Update(c.Context(), current, in)
	switch {
	case models.IsDuplicate(err):
		c.Error(http.StatusBadRequest, duplicateMessage(err, "Update profile failed"))
		return
	case errors.Is(err, models.ErrNotFound):
		c.Unauthorized("Unauthorized (user not found)")
		return
	case err != nil:
		internal(c, "Update profile failed", err)
		return
	}

	if emailChanged {
		token, err := h.sessions.Token(u.Email)
		if err != nil {
			internal(c, "Update profile failed", err)
			return
		}
		c.SetCookie(h.cookie.issue(token))
	}
	c.OK(sessionBody{Success: true, User: u})
}

// Image handles GET /user/profile/image.
func (h *ProfileController) Image(c *ctx.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	c.OK(imageBody{Success: true, ProfileImage: u.ProfileImage})
}

// Upload handles POST /user/profile/image with a multipart "file" part.
func (h *ProfileController) Upload(c *ctx.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	file, header, err := c.FormFile("file", h.limits.upload())
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		c.Error(http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	url, err := h.profiles.Upload(c.Context(), u, file, header.Header.Get("Content-Type"))
	switch {
	case errors.Is(err, services.ErrUnsupportedImage):
		c.Error(http.StatusBadRequest, "Only image file types are allowed")
		return
	case errors.Is(err, services.ErrEmptyFile):
		c.Error(http.StatusBadRequest, "Empty file is not allowed")
		return
	case err != nil:
		internal(c, "Upload failed", err)
		return
	}

	logger.WithCtx(c.Context()).Info("profile image uploaded", "user", u.ID.Hex(), "url", url)
	c.OK(imageBody{Success: true, ProfileImage: &url})
}

// RemoveImage handles DELETE /user/profile/image.
func (h *ProfileController) RemoveImage(c *ctx.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.profiles.RemoveImage(c.Context(), u); err != nil {
		internal(c, "Delete failed", err)
		return
	}
	c.OK(map[string]any{"success": true, "message": "Profile image removed"})
}
