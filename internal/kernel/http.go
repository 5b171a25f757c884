// Package kernel builds the service's HTTP handler: the global middleware
// stack, infrastructure endpoints and the API routes.
package kernel

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shashiranjanraj/catalog/app/routes"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/middleware"
	"github.com/shashiranjanraj/catalog/pkg/response"
	"github.com/shashiranjanraj/catalog/pkg/router"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures NewHTTPKernel.
type Options struct {
	APIPrefix   string
	CORSOrigins []string

	// Health is pinged by /healthz. Nil means always healthy.
	Health Pinger

	// Uploads serves uploaded files under UploadsURL when set.
	Uploads    http.Handler
	UploadsURL string

	API routes.Deps
}

// HTTPKernel owns the router.
type HTTPKernel struct {
	router *router.Router
}

func NewHTTPKernel(opts Options) *HTTPKernel {
	r := router.New()

	// Global middleware, outermost first. RequestID must precede Logger.
	cors := middleware.DefaultCORSOptions()
	if len(opts.CORSOrigins) > 0 {
		cors.AllowedOrigins = opts.CORSOrigins
	}
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(cors))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", "healthz", healthz(opts.Health))
	r.Get("/metrics", "metrics", metrics.Handler())

	if opts.Uploads != nil && strings.HasPrefix(opts.UploadsURL, "/") {
		prefix := strings.TrimRight(opts.UploadsURL, "/")
		r.Mount(prefix, "uploads", http.StripPrefix(prefix, opts.Uploads))
	}

	routes.RegisterAPI(r, opts.APIPrefix, opts.API)

	return &HTTPKernel{router: r}
}

// Handler returns the root http.Handler.
func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Router exposes the named-route table (route:list, URL building).
func (k *HTTPKernel) Router() *router.Router {
	return k.router
}

func healthz(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				response.JSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
					"error":  err.Error(),
				})
				return
			}
		}
		response.OK(w, map[string]string{"status": "ok"})
	}
}
