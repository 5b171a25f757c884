package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
)

// ItemRepository handles database operations for Item.
type ItemRepository struct {
	db Gateway
}

func NewItemRepository(db Gateway) *ItemRepository {
	return &ItemRepository{db: db}
}

// List returns one page of items, newest first.
func (r *ItemRepository) List(ctx context.Context, skip, limit int64) ([]models.Item, error) {
	var items []models.Item
	err := r.db.Find(ctx, models.ItemCollection, bson.D{}, database.FindOptions{
		Sort:  bson.D{{Key: "_id", Value: -1}},
		Skip:  skip,
		Limit: limit,
	}, &items)
	return items, translate(err)
}

// Count returns the total number of items.
func (r *ItemRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.db.Count(ctx, models.ItemCollection, bson.D{})
	return n, translate(err)
}

// Create persists a new item and returns its id.
func (r *ItemRepository) Create(ctx context.Context, it *models.Item) (primitive.ObjectID, error) {
	it.ID = primitive.NilObjectID
	id, err := r.db.InsertOne(ctx, models.ItemCollection, it)
	if err != nil {
		return primitive.NilObjectID, translate(err)
	}
	it.ID = id
	return id, nil
}
