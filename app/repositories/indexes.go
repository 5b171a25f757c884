package repositories

import (
	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
)

// Indexes are the unique indexes the user store relies on for duplicate
// detection. They are created at startup and by `catalog db:indexes`.
var Indexes = []database.Index{
	{Collection: models.UserCollection, Field: "username", Unique: true},
	{Collection: models.UserCollection, Field: "email", Unique: true},
}
