package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCollection is the collection users are stored in.
const UserCollection = "user"

// User status values. Users use lower case; items use upper case.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User is an account. Password holds the bcrypt hash and is never
// serialised to clients.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"      json:"_id"`
	Username     string             `bson:"username"           json:"username"`
	Email        string             `bson:"email"              json:"email"`
	Password     string             `bson:"password,omitempty" json:"-"`
	Firstname    string             `bson:"firstname"          json:"firstname"`
	Lastname     string             `bson:"lastname"           json:"lastname"`
	Status       string             `bson:"status"             json:"status"`
	ProfileImage *string            `bson:"profileImage"       json:"profileImage"`
	CreatedAt    time.Time          `bson:"createdAt"          json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"          json:"updatedAt"`
}

// UserChanges is a partial update. Nil fields are left untouched.
type UserChanges struct {
	Username  *string
	Email     *string
	Password  *string // already hashed
	Firstname *string
	Lastname  *string
	Status    *string
}

// NormalizeUserStatus lower-cases s and falls back to active for anything
// outside the enum.
func NormalizeUserStatus(s string) string {
	switch s = lower(s); s {
	case UserActive, UserInactive:
		return s
	}
	return UserActive
}
