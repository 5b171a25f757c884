// Package ctx provides a small request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helper methods:
//
//	func (c *UserController) Show(x *ctx.Context) {
//	    id := x.Param("id")
//	    x.OK(user)
//	}
//
//	// Register with ctx.Wrap:
//	r.Get("/user/{id}", "user.show", ctx.Wrap(c.Show))
package ctx

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/catalog/pkg/bind"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/user/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// ─── Binding ──────────────────────────────────────────────────────────────────

// BindFields decodes the body into a field map. On failure it sends a 400
// and returns false.
//
//	raw, ok := c.BindFields(maxBody)
//	if !ok {
//	    return // response already sent
//	}
func (c *Context) BindFields(maxBytes int64) (map[string]any, bool) {
	fields, err := bind.Fields(c.R, maxBytes)
	if err != nil {
		c.bindError(err)
		return nil, false
	}
	return fields, true
}

func (c *Context) bindError(err error) {
	if errors.Is(err, bind.ErrTooLarge) {
		c.Error(http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	c.Error(http.StatusBadRequest, "Invalid JSON body")
}

// FormFile parses a multipart body capped at maxBytes and returns the named
// file part.
func (c *Context) FormFile(field string, maxBytes int64) (multipart.File, *multipart.FileHeader, error) {
	if maxBytes > 0 {
		c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxBytes)
	}
	if err := c.R.ParseMultipartForm(maxBytes); err != nil {
		return nil, nil, err
	}
	return c.R.FormFile(field)
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// SetCookie sets a cookie on the response.
func (c *Context) SetCookie(cookie *http.Cookie) {
	http.SetCookie(c.W, cookie)
}

// JSON writes a JSON response with the given status code.
func (c *Context) JSON(code int, v any) {
	response.JSON(c.W, code, v)
}

// OK sends a 200 with v.
func (c *Context) OK(v any) { c.JSON(http.StatusOK, v) }

// Created sends a 201 with v.
func (c *Context) Created(v any) { c.JSON(http.StatusCreated, v) }

// Error sends {"message": message} with the given status.
func (c *Context) Error(code int, message string) {
	c.JSON(code, response.Message{Message: message})
}

// Unauthorized sends a 401.
func (c *Context) Unauthorized(message string) {
	c.Error(http.StatusUnauthorized, message)
}

// NotFound sends a 404.
func (c *Context) NotFound(message string) {
	c.Error(http.StatusNotFound, message)
}
