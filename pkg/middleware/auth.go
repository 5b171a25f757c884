package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

// TokenVerifier validates a raw session token.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// PrincipalResolver loads the principal a verified email names. It returns
// auth.ErrUnknownSubject when no such principal exists.
type PrincipalResolver func(ctx context.Context, email string) (any, error)

// Session authenticates the "token" cookie, resolves the principal by the
// token's email and stores it with auth.WithPrincipal.
//
//	profile := api.Group("/user/profile", middleware.Session(creds, users.ByEmail))
func Session(verifier TokenVerifier, resolve PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var raw string
			if c, err := r.Cookie(auth.CookieName); err == nil {
				raw = c.Value
			}

			claims, err := verifier.VerifyToken(raw)
			switch {
			case errors.Is(err, auth.ErrNoToken):
				metrics.AuthFailure("no_token")
				response.Unauthorized(w, "Unauthorized (no token)")
				return
			case err != nil:
				metrics.AuthFailure("invalid_token")
				response.Unauthorized(w, "Unauthorized (invalid token)")
				return
			}

			email := claims.Email
			if email == "" {
				email = claims.Subject
			}

			principal, err := resolve(r.Context(), email)
			switch {
			case errors.Is(err, auth.ErrUnknownSubject):
				metrics.AuthFailure("unknown_user")
				response.Unauthorized(w, "Unauthorized (user not found)")
				return
			case err != nil:
				logger.WithCtx(r.Context()).Error("resolve session principal", "error", err)
				response.InternalError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}
