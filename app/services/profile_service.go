package services

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"time"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/requests"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/storage"
)

// ProfileImageDir is the key prefix profile images are stored under.
const ProfileImageDir = "profile-images"

// imageTypes maps accepted image subtypes to the extension files get.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ProfileService lets an authenticated user manage their own account.
type ProfileService struct {
	users  UserStore
	hasher Hasher
	disk   storage.Disk
	now    func() time.Time
}

func NewProfileService(users UserStore, hasher Hasher, disk storage.Disk) *ProfileService {
	return &ProfileService{users: users, hasher: hasher, disk: disk, now: time.Now}
}

// Update applies in to the current user and returns the reloaded user. The
// bool reports whether the email, and therefore the session subject, changed.
func (s *ProfileService) Update(ctx context.Context, current models.User, in requests.UserPatch) (models.User, bool, error) {
	changes, err := changesFromPatch(in, s.hasher)
	if err != nil {
		return models.User{}, false, err
	}

	res, err := s.users.Update(ctx, current.ID, changes, s.now().UTC())
	if err != nil {
		return models.User{}, false, err
	}
	if res.MatchedCount == 0 {
		return models.User{}, false, models.ErrNotFound
	}

	u, err := s.users.FindByID(ctx, current.ID)
	if err != nil {
		return models.User{}, false, err
	}
	return u, u.Email != current.Email, nil
}

// Upload stores an image as the user's profile picture and returns its
// public URL. contentType is the part's declared type. The previous image
// is removed once the new one is recorded.
func (s *ProfileService) Upload(ctx context.Context, current models.User, file io.Reader, contentType string) (string, error) {
	ext, ok := imageExtension(contentType)
	if !ok {
		return "", ErrUnsupportedImage
	}

	br := bufio.NewReader(file)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrEmptyFile
		}
		return "", fmt.Errorf("%w: read upload: %w", ErrStorage, err)
	}

	name, err := randomName()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}
	key := ProfileImageDir + "/" + name + ext

	err = s.disk.Put(ctx, key, br, mediaType(contentType))
	metrics.StorageOp("put", err)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	url := s.disk.URL(key)
	if _, err := s.users.SetProfileImage(ctx, current.ID, &url, s.now().UTC()); err != nil {
		s.discard(ctx, key)
		return "", err
	}

	if current.ProfileImage != nil {
		if old, ok := s.disk.Key(*current.ProfileImage); ok && old != key {
			s.discard(ctx, old)
		}
	}
	return url, nil
}

// RemoveImage deletes the user's profile image and clears the reference.
// A file that is already gone is not an error.
func (s *ProfileService) RemoveImage(ctx context.Context, current models.User) error {
	if current.ProfileImage != nil {
		if key, ok := s.disk.Key(*current.ProfileImage); ok {
			err := s.disk.Delete(ctx, key)
			metrics.StorageOp("delete", err)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrStorage, err)
			}
		}
	}

	_, err := s.users.SetProfileImage(ctx, current.ID, nil, s.now().UTC())
	return err
}

// discard deletes key best-effort.
func (s *ProfileService) discard(ctx context.Context, key string) {
	err := s.disk.Delete(ctx, key)
	metrics.StorageOp("delete", err)
	if err != nil {
		logger.WithCtx(ctx).Warn("profile image cleanup failed", "key", key, "error", err)
	}
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}

func imageExtension(contentType string) (string, bool) {
	ext, ok := imageTypes[mediaType(contentType)]
	return ext, ok
}

// randomName is 32 random bytes, hex encoded.
func randomName() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("random name: %w", err)
	}
	return hex.EncodeToString(b), nil
}
