// Package auth hashes passwords and issues/validates the HS256 session
// tokens carried in the "token" cookie.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CookieName is the cookie that carries the session token.
const CookieName = "token"

var (
	// ErrNoToken means the request carried no session cookie.
	ErrNoToken = errors.New("auth: no token")
	// ErrInvalidToken covers expired, malformed and mis-signed tokens.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrUnknownSubject means the token was valid but names no known user.
	ErrUnknownSubject = errors.New("auth: user not found")
)

// Claims is the session token payload. Subject carries the user's email;
// Email duplicates it for clients that read the claim by name.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Credentials hashes passwords and signs session tokens with a shared secret.
type Credentials struct {
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

// NewCredentials returns a Credentials using secret for HS256 signing.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewCredentials(secret string, ttl time.Duration, cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{
		secret: []byte(secret),
		ttl:    ttl,
		cost:   cost,
		now:    time.Now,
	}
}

// TTL is the lifetime of issued tokens.
func (c *Credentials) TTL() time.Duration { return c.ttl }

// maxPasswordBytes is bcrypt's input limit. Longer passwords are truncated
// to it on both hash and verify.
const maxPasswordBytes = 72

func passwordBytes(plain string) []byte {
	b := []byte(plain)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// Hash returns a salted bcrypt hash of plain.
func (c *Credentials) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(passwordBytes(plain), c.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hashed. Malformed hashes never match.
func (c *Credentials) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), passwordBytes(plain)) == nil
}

// IssueToken signs a token whose subject is email.
func (c *Credentials) IssueToken(email string) (string, error) {
	now := c.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses t and returns its claims. Every failure is reported as
// ErrInvalidToken wrapping the parser's reason.
func (c *Credentials) VerifyToken(t string) (*Claims, error) {
	if t == "" {
		return nil, ErrNoToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(t, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		claims.Subject = claims.Email
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

type principalKey struct{}

// WithPrincipal stores the authenticated principal in ctx.
func WithPrincipal(ctx context.Context, p any) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// Principal returns the principal stored by WithPrincipal.
func Principal(ctx context.Context) (any, bool) {
	p := ctx.Value(principalKey{})
	return p, p != nil
}
