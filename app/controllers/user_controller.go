package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/requests"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/paginate"
)

// UserController serves the /user admin endpoints.
type UserController struct {
	users     *services.UserService
	limits    Limits
	loginPath string
}

// NewUserController builds the controller. loginPath is quoted in the hint
// sent to clients that post credentials to the sign-up route.
func NewUserController(users *services.UserService, limits Limits, loginPath string) *UserController {
	return &UserController{users: users, limits: limits, loginPath: loginPath}
}

// Index handles GET /user.
func (h *UserController) Index(c *ctx.Context) {
	page, err := h.users.List(c.Context(), paginate.FromQuery(c.R.URL.Query()))
	if err != nil {
		logger.WithCtx(c.Context()).Error("list users", "error", err)
		c.Error(http.StatusInternalServerError, err.Error())
		return
	}
	c.OK(page)
}

// Store handles POST /user.
func (h *UserController) Store(c *ctx.Context) {
	raw, ok := c.BindFields(h.limits.MaxBodyBytes)
	if !ok {
		return
	}
	in, err := requests.NewUserCreate(raw)
	var ve *requests.ValidationError
	if errors.As(err, &ve) && ve.LoginAttempt {
		ve.Hint = "If you're trying to login, use POST " + h.loginPath + " with email and password."
	}
	if rejectInvalid(c, err) {
		return
	}

	id, err := h.users.Create(c.Context(), in)
	switch {
	case models.IsDuplicate(err):
		c.Error(http.StatusBadRequest, duplicateMessage(err, "Create user failed"))
		return
	case err != nil:
		internal(c, "Create user failed", err)
		return
	}
	c.Created(map[string]any{"id": id})
}

// Show handles GET /user/{id}.
func (h *UserController) Show(c *ctx.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	u, err := h.users.Get(c.Context(), id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.NotFound("User not found")
		return
	case err != nil:
		internal(c, "Get user failed", err)
		return
	}
	c.OK(u)
}

// Update handles PATCH /user/{id}.
func (h *UserController) Update(c *ctx.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	raw, ok := c.BindFields(h.limits.MaxBodyBytes)
	if !ok {
		return
	}
	in, err := requests.NewUserPatch(raw)
	if rejectInvalid(c, err) {
		return
	}

	res, err := h.users.Patch(c.Context(), id, in)
	if err != nil {
		h.updateFailed(c, err)
		return
	}
	c.OK(res)
}

// Replace handles PUT /user/{id}.
func (h *UserController) Replace(c *ctx.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	raw, ok := c.BindFields(h.limits.MaxBodyBytes)
	if !ok {
		return
	}
	in, err := requests.NewUserReplace(raw)
	if rejectInvalid(c, err) {
		return
	}

	res, err := h.users.Replace(c.Context(), id, in)
	if err != nil {
		h.updateFailed(c, err)
		return
	}
	c.OK(res)
}

// Destroy handles DELETE /user/{id}.
func (h *UserController) Destroy(c *ctx.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	res, err := h.users.Delete(c.Context(), id)
	if err != nil {
		logger.WithCtx(c.Context()).Error("delete user", "error", err)
		c.Error(http.StatusBadRequest, "Delete user failed")
		return
	}
	c.OK(res)
}

func (h *UserController) updateFailed(c *ctx.Context, err error) {
	if !models.IsDuplicate(err) {
		logger.WithCtx(c.Context()).Error("update user", "error", err)
	}
	c.Error(http.StatusBadRequest, duplicateMessage(err, "Update user failed"))
}
