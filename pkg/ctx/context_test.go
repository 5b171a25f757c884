package ctx_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/shashiranjanraj/catalog/pkg/ctx"
)

func TestWrapAndJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Created(map[string]any{"id": "abc"})
	})(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"abc"}`, rec.Body.String())
}

func TestParam(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/user/{id}", appctx.Wrap(func(c *appctx.Context) {
		c.OK(map[string]string{"id": c.Param("id")})
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/42?page=3", nil))

	assert.JSONEq(t, `{"id":"42"}`, rec.Body.String())
}

func TestBindFields_InvalidJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	appctx.Wrap(func(c *appctx.Context) {
		_, ok := c.BindFields(0)
		assert.False(t, ok)
	})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid JSON body"}`, rec.Body.String())
}

func TestFormFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "a.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	appctx.Wrap(func(c *appctx.Context) {
		f, hdr, err := c.FormFile("file", 1<<20)
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "png", string(data))
		assert.Equal(t, "a.png", hdr.Filename)
		c.OK(nil)
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
