package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/requests"
	"github.com/shashiranjanraj/catalog/pkg/paginate"
)

type ItemService struct {
	items ItemStore
	now   func() time.Time
}

func NewItemService(items ItemStore) *ItemService {
	return &ItemService{items: items, now: time.Now}
}

// List returns one page of items, newest first.
func (s *ItemService) List(ctx context.Context, p paginate.Params) (paginate.Page[models.Item], error) {
	total, err := s.items.Count(ctx)
	if err != nil {
		return paginate.Page[models.Item]{}, fmt.Errorf("count items: %w", err)
	}
	items, err := s.items.List(ctx, p.Skip(), p.Limit)
	if err != nil {
		return paginate.Page[models.Item]{}, fmt.Errorf("list items: %w", err)
	}
	return paginate.NewPage(items, p, total), nil
}

func (s *ItemService) Create(ctx context.Context, in requests.ItemCreate) (primitive.ObjectID, error) {
	now := s.now().UTC()
	return s.items.Create(ctx, &models.Item{
		Name:      in.Name,
		Category:  in.Category,
		Price:     in.Amount,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
