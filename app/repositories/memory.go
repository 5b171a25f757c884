package repositories

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/paginate"
)

// ─── Users ────────────────────────────────────────────────────────────────────

// MemoryUserRepository keeps users in process memory. Username and email
// are unique, matched case-sensitively like the Mongo indexes.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[primitive.ObjectID]models.User)}
}

func (r *MemoryUserRepository) List(_ context.Context, skip, limit int64) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		u.Password = ""
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return newer(all[i].ID, all[j].ID) })
	return paginate.Window(all, skip, limit), nil
}

func (r *MemoryUserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *MemoryUserRepository) Create(_ context.Context, u *models.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.conflict(primitive.NilObjectID, u.Username, u.Email); err != nil {
		return primitive.NilObjectID, err
	}
	u.ID = primitive.NewObjectID()
	r.users[u.ID] = *u
	return u.ID, nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	u.Password = ""
	return u, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (r *MemoryUserRepository) Update(_ context.Context, id primitive.ObjectID, c models.UserChanges, at time.Time) (database.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return database.UpdateResult{Acknowledged: true}, nil
	}

	username, email := u.Username, u.Email
	if c.Username != nil {
		username = *c.Username
	}
	if c.Email != nil {
		email = *c.Email
	}
	if err := r.conflict(id, username, email); err != nil {
		return database.UpdateResult{}, err
	}

	u.Username, u.Email = username, email
	set(&u.Firstname, c.Firstname)
	set(&u.Lastname, c.Lastname)
	set(&u.Status, c.Status)
	set(&u.Password, c.Password)

	// updatedAt always moves, so a matched user always counts as modified.
	u.UpdatedAt = at
	r.users[id] = u
	return database.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *MemoryUserRepository) SetProfileImage(_ context.Context, id primitive.ObjectID, url *string, at time.Time) (database.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return database.UpdateResult{Acknowledged: true}, nil
	}
	if url != nil {
		v := *url
		url = &v
	}
	u.ProfileImage = url
	u.UpdatedAt = at
	r.users[id] = u
	return database.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id primitive.ObjectID) (database.DeleteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return database.DeleteResult{Acknowledged: true}, nil
	}
	delete(r.users, id)
	return database.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// conflict checks the unique fields against every user but self, username
// first like the index order.
func (r *MemoryUserRepository) conflict(self primitive.ObjectID, username, email string) error {
	for id, other := range r.users {
		if id != self && other.Username == username {
			return models.ErrDuplicateUsername
		}
	}
	for id, other := range r.users {
		if id != self && other.Email == email {
			return models.ErrDuplicateEmail
		}
	}
	return nil
}

// ─── Items ────────────────────────────────────────────────────────────────────

// MemoryItemRepository keeps items in process memory.
type MemoryItemRepository struct {
	mu    sync.RWMutex
	items []models.Item
}

func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{}
}

func (r *MemoryItemRepository) List(_ context.Context, skip, limit int64) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Item, len(r.items))
	copy(all, r.items)
	sort.Slice(all, func(i, j int) bool { return newer(all[i].ID, all[j].ID) })
	return paginate.Window(all, skip, limit), nil
}

func (r *MemoryItemRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *MemoryItemRepository) Create(_ context.Context, it *models.Item) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it.ID = primitive.NewObjectID()
	r.items = append(r.items, *it)
	return it.ID, nil
}

// ─── helpers ──────────────────────────────────────────────────────────────────

// newer orders ObjectIDs descending; generated ids grow with insertion.
func newer(a, b primitive.ObjectID) bool {
	return bytes.Compare(a[:], b[:]) > 0
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
