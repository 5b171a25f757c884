package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/requests"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/paginate"
)

// UserService manages user accounts on behalf of the admin endpoints.
type UserService struct {
	users  UserStore
	hasher Hasher
	now    func() time.Time
}

func NewUserService(users UserStore, hasher Hasher) *UserService {
	return &UserService{users: users, hasher: hasher, now: time.Now}
}

// List returns one page of users, newest first, without password hashes.
func (s *UserService) List(ctx context.Context, p paginate.Params) (paginate.Page[models.User], error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return paginate.Page[models.User]{}, fmt.Errorf("count users: %w", err)
	}
	users, err := s.users.List(ctx, p.Skip(), p.Limit)
	if err != nil {
		return paginate.Page[models.User]{}, fmt.Errorf("list users: %w", err)
	}
	return paginate.NewPage(users, p, total), nil
}

// Create hashes the password and stores an active user.
func (s *UserService) Create(ctx context.Context, in requests.UserCreate) (primitive.ObjectID, error) {
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return primitive.NilObjectID, err
	}

	now := s.now().UTC()
	return s.users.Create(ctx, &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hashed,
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Status:    models.UserActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Patch applies the supplied fields, re-hashing the password if present.
func (s *UserService) Patch(ctx context.Context, id primitive.ObjectID, in requests.UserPatch) (database.UpdateResult, error) {
	changes, err := changesFromPatch(in, s.hasher)
	if err != nil {
		return database.UpdateResult{}, err
	}
	return s.users.Update(ctx, id, changes, s.now().UTC())
}

// Replace overwrites every profile field. The password is only replaced
// when one is supplied.
func (s *UserService) Replace(ctx context.Context, id primitive.ObjectID, in requests.UserReplace) (database.UpdateResult, error) {
	changes := models.UserChanges{
		Username:  &in.Username,
		Email:     &in.Email,
		Firstname: &in.Firstname,
		Lastname:  &in.Lastname,
		Status:    &in.Status,
	}
	if in.Password != nil {
		hashed, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return database.UpdateResult{}, err
		}
		changes.Password = &hashed
	}
	return s.users.Update(ctx, id, changes, s.now().UTC())
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) (database.DeleteResult, error) {
	return s.users.Delete(ctx, id)
}

func changesFromPatch(in requests.UserPatch, hasher Hasher) (models.UserChanges, error) {
	c := models.UserChanges{
		Username:  in.Username,
		Email:     in.Email,
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Status:    in.Status,
	}
	if in.Password != nil {
		hashed, err := hasher.Hash(*in.Password)
		if err != nil {
			return models.UserChanges{}, err
		}
		c.Password = &hashed
	}
	return c, nil
}
