package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemCollection is the collection items are stored in.
const ItemCollection = "item"

// Item status values.
const (
	ItemActive   = "ACTIVE"
	ItemInactive = "INACTIVE"
)

// Item is a catalog entry.
type Item struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name"          json:"name"`
	Category  string             `bson:"category"      json:"category"`
	Price     float64            `bson:"price"         json:"price"`
	Status    string             `bson:"status"        json:"status"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
