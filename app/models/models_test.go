package models

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := ParseID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", id.Hex() + "0"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}

func TestUserJSON_OmitsPassword(t *testing.T) {
	b, err := json.Marshal(User{Username: "ann", Password: "$2a$10$hash"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.NotContains(t, m, "password")
	assert.Contains(t, m, "profileImage")
	assert.Nil(t, m["profileImage"])
}

func TestStatusNormalization(t *testing.T) {
	assert.Equal(t, "inactive", NormalizeUserStatus(" INACTIVE "))
	assert.Equal(t, "active", NormalizeUserStatus("banned"))
	assert.Equal(t, "active", NormalizeUserStatus(""))
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, IsDuplicate(fmt.Errorf("insert: %w", ErrDuplicateEmail)))
	assert.True(t, IsDuplicate(ErrDuplicate))
	assert.False(t, IsDuplicate(ErrNotFound))
}
