package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(name)) }
}

func TestGroupRoutesAndNames(t *testing.T) {
	r := New()
	api := r.Group("/api/")
	api.Get("/user", "user.index", ok("index"))
	api.Post("user", "user.store", ok("store"))
	api.Put("/user/{id}", "user.replace", ok("replace"))
	api.Patch("/user/{id}", "user.update", ok("update"))
	api.Delete("/user/{id}", "user.destroy", ok("destroy"))

	for method, want := range map[string]string{
		http.MethodPut:    "replace",
		http.MethodPatch:  "update",
		http.MethodDelete: "destroy",
	} {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(method, "/api/user/1", nil))
		assert.Equal(t, want, rec.Body.String(), method)
	}

	path, found := r.Path("user.update")
	require.True(t, found)
	assert.Equal(t, "/api/user/{id}", path)

	_, found = r.Path("nope")
	assert.False(t, found)
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := New()
	g := r.Group("/p", mw("group")).Group("/q", mw("nested"))
	g.Get("/", "", ok("x"), mw("route"))

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/p/q", nil))
	assert.Equal(t, []string{"group", "nested", "route"}, order)
}

func TestRoutesTable(t *testing.T) {
	r := New()
	r.Get("/healthz", "health", ok("h"))
	g := r.Group("/")
	g.Post("/user", "user.store", ok("s"))
	g.Get("/user", "user.index", ok("i"))
	r.Mount("/uploads", "uploads", http.NotFoundHandler())

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodGet, Path: "/healthz", Name: "health"},
		{Method: http.MethodGet, Path: "/uploads/*", Name: "uploads"},
		{Method: http.MethodGet, Path: "/user", Name: "user.index"},
		{Method: http.MethodPost, Path: "/user", Name: "user.store"},
	}, r.Routes())
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/", joinPath())
	assert.Equal(t, "/", joinPath("", "/"))
	assert.Equal(t, "/api/user", joinPath("/api/", "/user/"))
}
