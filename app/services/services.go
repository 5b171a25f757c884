// Package services holds the business rules behind the HTTP handlers. Each
// service depends on small store interfaces so the Mongo and memory
// repositories are interchangeable.
package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
)

var (
	// ErrBadCredentials is returned by Login for an unknown email or a wrong
	// password; callers cannot tell which.
	ErrBadCredentials = errors.New("invalid email or password")
	// ErrUnsupportedImage rejects uploads whose type is not an allowed image.
	ErrUnsupportedImage = errors.New("unsupported image type")
	// ErrEmptyFile rejects zero-byte uploads.
	ErrEmptyFile = errors.New("empty file")
	// ErrStorage wraps failures of the disk behind profile images.
	ErrStorage = errors.New("storage failure")
)

// UserStore is what the user-facing services need from a repository.
type UserStore interface {
	List(ctx context.Context, skip, limit int64) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, c models.UserChanges, at time.Time) (database.UpdateResult, error)
	SetProfileImage(ctx context.Context, id primitive.ObjectID, url *string, at time.Time) (database.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (database.DeleteResult, error)
}

// ItemStore is what ItemService needs from a repository.
type ItemStore interface {
	List(ctx context.Context, skip, limit int64) ([]models.Item, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, it *models.Item) (primitive.ObjectID, error)
}

// Hasher hashes and checks passwords.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}

// Credentials adds token issuing to Hasher.
type Credentials interface {
	Hasher
	IssueToken(email string) (string, error)
}
