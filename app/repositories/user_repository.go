package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
)

var withoutPassword = bson.D{{Key: "password", Value: 0}}

// UserRepository handles database operations for User.
type UserRepository struct {
	db Gateway
}

func NewUserRepository(db Gateway) *UserRepository {
	return &UserRepository{db: db}
}

// List returns one page of users, newest first, without password hashes.
func (r *UserRepository) List(ctx context.Context, skip, limit int64) ([]models.User, error) {
	var users []models.User
	err := r.db.Find(ctx, models.UserCollection, bson.D{}, database.FindOptions{
		Projection: withoutPassword,
		Sort:       bson.D{{Key: "_id", Value: -1}},
		Skip:       skip,
		Limit:      limit,
	}, &users)
	return users, translate(err)
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.db.Count(ctx, models.UserCollection, bson.D{})
	return n, translate(err)
}

// Create persists a new user and returns its id.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	u.ID = primitive.NilObjectID
	id, err := r.db.InsertOne(ctx, models.UserCollection, u)
	if err != nil {
		return primitive.NilObjectID, translate(err)
	}
	u.ID = id
	return id, nil
}

// FindByID looks up a user by id, without the password hash.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := r.db.FindOne(ctx, models.UserCollection, bson.D{{Key: "_id", Value: id}}, withoutPassword, &u)
	return u, translate(err)
}

// FindByEmail looks up a user by email, including the password hash.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.db.FindOne(ctx, models.UserCollection, bson.D{{Key: "email", Value: email}}, nil, &u)
	return u, translate(err)
}

// Update applies the non-nil fields of c and stamps updatedAt.
func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, c models.UserChanges, at time.Time) (database.UpdateResult, error) {
	set := bson.D{}
	add := func(key string, v *string) {
		if v != nil {
			set = append(set, bson.E{Key: key, Value: *v})
		}
	}
	add("username", c.Username)
	add("email", c.Email)
	add("firstname", c.Firstname)
	add("lastname", c.Lastname)
	add("status", c.Status)
	add("password", c.Password)
	set = append(set, bson.E{Key: "updatedAt", Value: at})

	res, err := r.db.UpdateOne(ctx, models.UserCollection,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
	)
	return res, translate(err)
}

// SetProfileImage records url (nil clears it) and stamps updatedAt.
func (r *UserRepository) SetProfileImage(ctx context.Context, id primitive.ObjectID, url *string, at time.Time) (database.UpdateResult, error) {
	res, err := r.db.UpdateOne(ctx, models.UserCollection,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "profileImage", Value: url},
			{Key: "updatedAt", Value: at},
		}}},
	)
	return res, translate(err)
}

// Delete removes a user. Deleting an absent id reports DeletedCount 0.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (database.DeleteResult, error) {
	res, err := r.db.DeleteOne(ctx, models.UserCollection, bson.D{{Key: "_id", Value: id}})
	return res, translate(err)
}
