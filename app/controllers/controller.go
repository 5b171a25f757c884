// Package controllers adapts HTTP requests to the services. Handlers use the
// ctx.Context helpers and never touch the database directly.
package controllers

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/requests"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/logger"
)

// Limits caps request bodies. Zero means the package defaults.
type Limits struct {
	MaxBodyBytes   int64
	MaxUploadBytes int64
}

func (l Limits) upload() int64 {
	if l.MaxUploadBytes > 0 {
		return l.MaxUploadBytes
	}
	return 5 << 20
}

// rejectInvalid answers a *requests.ValidationError with 400. It reports
// whether err was one.
func rejectInvalid(c *ctx.Context, err error) bool {
	var ve *requests.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	c.JSON(http.StatusBadRequest, ve)
	return true
}

// idParam parses the {id} path parameter, answering 400 when malformed.
func idParam(c *ctx.Context) (primitive.ObjectID, bool) {
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.Error(http.StatusBadRequest, "Invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// duplicateMessage names the unique field a write collided on.
func duplicateMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, models.ErrDuplicateUsername):
		return "Duplicate Username!!"
	case errors.Is(err, models.ErrDuplicateEmail):
		return "Duplicate Email!!"
	default:
		return fallback
	}
}

// currentUser returns the user the session middleware resolved.
func currentUser(c *ctx.Context) (models.User, bool) {
	p, _ := auth.Principal(c.Context())
	u, ok := p.(models.User)
	if !ok {
		c.Unauthorized("Unauthorized (no token)")
	}
	return u, ok
}

func internal(c *ctx.Context, msg string, err error) {
	logger.WithCtx(c.Context()).Error(msg, "error", err)
	c.Error(http.StatusInternalServerError, msg)
}
