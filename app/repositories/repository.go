// Package repositories persists users and items. The Mongo stores sit on
// top of the database gateway; the memory stores implement the same rules
// under a mutex for local runs and tests.
package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
)

// Gateway is the subset of *database.Gateway the stores use.
type Gateway interface {
	Find(ctx context.Context, collection string, filter any, fo database.FindOptions, out any) error
	FindOne(ctx context.Context, collection string, filter, projection any, out any) error
	Count(ctx context.Context, collection string, filter any) (int64, error)
	InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error)
	UpdateOne(ctx context.Context, collection string, filter, update any) (database.UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, filter any) (database.DeleteResult, error)
}

// translate maps gateway errors onto the domain taxonomy.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, database.ErrNotFound) {
		return models.ErrNotFound
	}
	if field, ok := database.DuplicateKeyField(err); ok {
		switch field {
		case "username":
			return errors.Join(models.ErrDuplicateUsername, err)
		case "email":
			return errors.Join(models.ErrDuplicateEmail, err)
		default:
			return errors.Join(models.ErrDuplicate, err)
		}
	}
	return err
}
