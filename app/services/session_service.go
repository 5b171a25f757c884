package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/requests"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// SessionService logs users in and resolves session tokens back to users.
type SessionService struct {
	users UserStore
	creds Credentials
}

func NewSessionService(users UserStore, creds Credentials) *SessionService {
	return &SessionService{users: users, creds: creds}
}

// Login checks the credentials and returns the user (without password) and a
// fresh session token.
func (s *SessionService) Login(ctx context.Context, in requests.Login) (models.User, string, error) {
	u, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, models.ErrNotFound) {
		metrics.AuthFailure("bad_credentials")
		return models.User{}, "", ErrBadCredentials
	}
	if err != nil {
		return models.User{}, "", err
	}
	if !s.creds.Verify(in.Password, u.Password) {
		metrics.AuthFailure("bad_credentials")
		return models.User{}, "", ErrBadCredentials
	}

	token, err := s.creds.IssueToken(u.Email)
	if err != nil {
		return models.User{}, "", err
	}
	u.Password = ""
	return u, token, nil
}

// Token issues a session token for email.
func (s *SessionService) Token(email string) (string, error) {
	return s.creds.IssueToken(email)
}

// Resolve loads the user a token names. It satisfies
// middleware.PrincipalResolver; an unknown email maps to
// auth.ErrUnknownSubject.
func (s *SessionService) Resolve(ctx context.Context, email string) (any, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, auth.ErrUnknownSubject
	}
	if err != nil {
		return nil, err
	}
	u.Password = ""
	return u, nil
}
