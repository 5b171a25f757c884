package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()
	c := NewCredentials("secret", time.Hour, 4)

	h1, err := c.Hash("hunter2")
	require.NoError(t, err)
	h2, err := c.Hash("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "salted hashes must differ")
	assert.NotEqual(t, "hunter2", h1)
	assert.True(t, c.Verify("hunter2", h1))
	assert.True(t, c.Verify("hunter2", h2))
	assert.False(t, c.Verify("hunter3", h1))
	assert.False(t, c.Verify("hunter2", "not-a-bcrypt-hash"))
	assert.False(t, c.Verify("hunter2", ""))
}

func TestHash_LongPassword(t *testing.T) {
	t.Parallel()
	c := NewCredentials("secret", time.Hour, 4)
	long := strings.Repeat("p", 80)

	h, err := c.Hash(long)
	require.NoError(t, err)
	assert.True(t, c.Verify(long, h))
	assert.True(t, c.Verify(long[:72], h), "bytes past 72 are ignored")
	assert.False(t, c.Verify(long[:71], h))
}

func TestNewCredentials_CostFallback(t *testing.T) {
	t.Parallel()
	c := NewCredentials("secret", time.Hour, 99)

	h, err := c.Hash("pw")
	require.NoError(t, err)
	assert.Contains(t, h, "$10$")
}

func TestIssueAndVerifyToken(t *testing.T) {
	t.Parallel()
	c := NewCredentials("super-secret", time.Hour, 4)

	tok, err := c.IssueToken("ann@example.com")
	require.NoError(t, err)

	claims, err := c.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Subject)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyToken_Failures(t *testing.T) {
	t.Parallel()
	c := NewCredentials("super-secret", time.Hour, 4)

	expired := NewCredentials("super-secret", -time.Second, 4)
	expiredTok, err := expired.IssueToken("ann@example.com")
	require.NoError(t, err)

	other := NewCredentials("other-secret", time.Hour, 4)
	foreignTok, err := other.IssueToken("ann@example.com")
	require.NoError(t, err)

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Email: "ann@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ann@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpTok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: "ann@example.com",
	}).SignedString([]byte("super-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrNoToken},
		{"garbage", "not.a.jwt", ErrInvalidToken},
		{"expired", expiredTok, ErrInvalidToken},
		{"wrong secret", foreignTok, ErrInvalidToken},
		{"alg none", noneTok, ErrInvalidToken},
		{"no expiry", noExpTok, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := c.VerifyToken(tt.token)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestPrincipal(t *testing.T) {
	t.Parallel()

	_, ok := Principal(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), "ann")
	p, ok := Principal(ctx)
	assert.True(t, ok)
	assert.Equal(t, "ann", p)
}
