package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/requests"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/paginate"
	"github.com/shashiranjanraj/catalog/pkg/storage"
)

func newCreds() *auth.Credentials {
	return auth.NewCredentials("test-secret", time.Hour, bcrypt.MinCost)
}

func seedUser(t *testing.T, svc *UserService, username, email, password string) primitive.ObjectID {
	t.Helper()
	id, err := svc.Create(context.Background(), requests.UserCreate{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return id
}

// ─── items ────────────────────────────────────────────────────────────────────

func TestItemService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(repositories.NewMemoryItemRepository())

	id, err := svc.Create(ctx, requests.ItemCreate{Name: "Pen", Category: "office", Amount: 1.5, Status: models.ItemActive})
	require.NoError(t, err)
	assert.False(t, id.IsZero())

	page, err := svc.List(ctx, paginate.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 1.5, page.Data[0].Price)
	assert.Equal(t, models.ItemActive, page.Data[0].Status)
	assert.False(t, page.Data[0].CreatedAt.IsZero())
	assert.Equal(t, int64(1), page.TotalPages)
}

type failingItems struct {
	*repositories.MemoryItemRepository
}

func (failingItems) Count(context.Context) (int64, error) {
	return 0, errors.New("db down")
}

func TestItemService_ListError(t *testing.T) {
	svc := NewItemService(&failingItems{MemoryItemRepository: repositories.NewMemoryItemRepository()})
	_, err := svc.List(context.Background(), paginate.Params{Page: 1, Limit: 10})
	assert.EqualError(t, err, "count items: db down")
}

// ─── users ────────────────────────────────────────────────────────────────────

func TestUserService_CreateHashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryUserRepository()
	creds := newCreds()
	svc := NewUserService(repo, creds)

	seedUser(t, svc, "ann", "ann@example.com", "s3cret")

	stored, err := repo.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.True(t, creds.Verify("s3cret", stored.Password))
	assert.Equal(t, models.UserActive, stored.Status)
}

func TestUserService_ListSecondPage(t *testing.T) {
	svc := NewUserService(repositories.NewMemoryUserRepository(), newCreds())
	for i := 0; i < 25; i++ {
		n := string(rune('a' + i))
		seedUser(t, svc, "user-"+n, n+"@example.com", "pw")
	}

	page, err := svc.List(context.Background(), paginate.Params{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 10)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, int64(3), page.TotalPages)
	for _, u := range page.Data {
		assert.Empty(t, u.Password)
	}
	// user-o is the 15th created, so the first of page two.
	assert.Equal(t, "user-o", page.Data[0].Username)
}

func TestUserService_Patch(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryUserRepository()
	creds := newCreds()
	svc := NewUserService(repo, creds)
	id := seedUser(t, svc, "ann", "ann@example.com", "old")

	res, err := svc.Patch(ctx, id, requests.UserPatch{Password: ptr("new"), Firstname: ptr("Ann")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)

	stored, err := repo.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.True(t, creds.Verify("new", stored.Password))
	assert.Equal(t, "Ann", stored.Firstname)
}

func TestUserService_PatchDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repositories.NewMemoryUserRepository(), newCreds())
	seedUser(t, svc, "ann", "ann@example.com", "pw")
	bob := seedUser(t, svc, "bob", "bob@example.com", "pw")

	_, err := svc.Patch(ctx, bob, requests.UserPatch{Username: ptr("ann")})
	assert.ErrorIs(t, err, models.ErrDuplicateUsername)
}

func TestUserService_ReplaceKeepsPasswordWhenAbsent(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryUserRepository()
	creds := newCreds()
	svc := NewUserService(repo, creds)
	id := seedUser(t, svc, "ann", "ann@example.com", "pw")
	_, err := svc.Patch(ctx, id, requests.UserPatch{Firstname: ptr("Ann"), Lastname: ptr("Lee")})
	require.NoError(t, err)

	_, err = svc.Replace(ctx, id, requests.UserReplace{
		Username: "ann2",
		Email:    "ann2@example.com",
		Status:   models.UserInactive,
	})
	require.NoError(t, err)

	stored, err := repo.FindByEmail(ctx, "ann2@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ann2", stored.Username)
	assert.Empty(t, stored.Firstname)
	assert.Empty(t, stored.Lastname)
	assert.Equal(t, models.UserInactive, stored.Status)
	assert.True(t, creds.Verify("pw", stored.Password))
}

func TestUserService_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repositories.NewMemoryUserRepository(), newCreds())
	id := seedUser(t, svc, "ann", "ann@example.com", "pw")

	res, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)

	res, err = svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.DeletedCount)

	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// ─── sessions ─────────────────────────────────────────────────────────────────

func TestSessionService_Login(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryUserRepository()
	creds := newCreds()
	seedUser(t, NewUserService(repo, creds), "ann", "ann@example.com", "pw")
	svc := NewSessionService(repo, creds)

	u, token, err := svc.Login(ctx, requests.Login{Email: "ann@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Empty(t, u.Password)

	claims, err := creds.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Subject)

	_, _, err = svc.Login(ctx, requests.Login{Email: "ann@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.Login(ctx, requests.Login{Email: "nobody@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestSessionService_Resolve(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryUserRepository()
	creds := newCreds()
	seedUser(t, NewUserService(repo, creds), "ann", "ann@example.com", "pw")
	svc := NewSessionService(repo, creds)

	p, err := svc.Resolve(ctx, "ann@example.com")
	require.NoError(t, err)
	u, ok := p.(models.User)
	require.True(t, ok)
	assert.Equal(t, "ann", u.Username)
	assert.Empty(t, u.Password)

	_, err = svc.Resolve(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, auth.ErrUnknownSubject)
}

// ─── profile ──────────────────────────────────────────────────────────────────

type profileFixture struct {
	repo *repositories.MemoryUserRepository
	disk *storage.LocalDisk
	svc  *ProfileService
	user models.User
}

func newProfileFixture(t *testing.T) profileFixture {
	t.Helper()
	repo := repositories.NewMemoryUserRepository()
	creds := newCreds()
	id := seedUser(t, NewUserService(repo, creds), "ann", "ann@example.com", "pw")
	disk := storage.NewLocal(t.TempDir(), "/uploads")

	u, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return profileFixture{repo: repo, disk: disk, svc: NewProfileService(repo, creds, disk), user: u}
}

func (f profileFixture) files(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(f.disk.Root(), ProfileImageDir))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestProfileService_UploadReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	f := newProfileFixture(t)

	first, err := f.svc.Upload(ctx, f.user, strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "/uploads/profile-images/"))
	assert.True(t, strings.HasSuffix(first, ".png"))
	name := strings.TrimSuffix(filepath.Base(first), ".png")
	assert.Len(t, name, 64)

	u, err := f.repo.FindByID(ctx, f.user.ID)
	require.NoError(t, err)
	require.NotNil(t, u.ProfileImage)
	assert.Equal(t, first, *u.ProfileImage)

	second, err := f.svc.Upload(ctx, u, strings.NewReader("jpeg-bytes"), "image/jpeg; charset=binary")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(second, ".jpg"))

	assert.Equal(t, []string{filepath.Base(second)}, f.files(t))
}

func TestProfileService_UploadRejects(t *testing.T) {
	ctx := context.Background()
	f := newProfileFixture(t)

	_, err := f.svc.Upload(ctx, f.user, strings.NewReader("%PDF-1.7"), "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = f.svc.Upload(ctx, f.user, strings.NewReader(""), "image/png")
	assert.ErrorIs(t, err, ErrEmptyFile)

	assert.Empty(t, f.files(t))
}

func TestProfileService_RemoveImage(t *testing.T) {
	ctx := context.Background()
	f := newProfileFixture(t)

	url, err := f.svc.Upload(ctx, f.user, strings.NewReader("gif"), "image/gif")
	require.NoError(t, err)
	f.user.ProfileImage = &url

	require.NoError(t, f.svc.RemoveImage(ctx, f.user))
	assert.Empty(t, f.files(t))

	u, err := f.repo.FindByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Nil(t, u.ProfileImage)

	// A second removal finds nothing on disk and still succeeds.
	require.NoError(t, f.svc.RemoveImage(ctx, f.user))
}

func TestProfileService_UpdateReportsEmailChange(t *testing.T) {
	ctx := context.Background()
	f := newProfileFixture(t)

	u, changed, err := f.svc.Update(ctx, f.user, requests.UserPatch{Lastname: ptr("Lee")})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "Lee", u.Lastname)

	u, changed, err = f.svc.Update(ctx, u, requests.UserPatch{Email: ptr("ann@new.example.com")})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "ann@new.example.com", u.Email)
}

func TestProfileService_UpdateMissingUser(t *testing.T) {
	f := newProfileFixture(t)
	ghost := models.User{ID: primitive.NewObjectID()}

	_, _, err := f.svc.Update(context.Background(), ghost, requests.UserPatch{Lastname: ptr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func ptr(s string) *string { return &s }

var (
	_ UserStore = (*repositories.UserRepository)(nil)
	_ UserStore = (*repositories.MemoryUserRepository)(nil)
	_ ItemStore = (*repositories.ItemRepository)(nil)
	_ ItemStore = (*repositories.MemoryItemRepository)(nil)
)
