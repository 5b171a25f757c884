package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalDisk is the local-filesystem driver.
type LocalDisk struct {
	root    string // absolute root directory
	baseURL string // public URL prefix for URL()
}

// NewLocal roots a disk at root (relative paths resolve against the working
// directory) whose files are public under baseURL.
func NewLocal(root, baseURL string) *LocalDisk {
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &LocalDisk{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Root returns the absolute directory backing the disk.
func (d *LocalDisk) Root() string { return d.root }

// BaseURL returns the public prefix files are served under.
func (d *LocalDisk) BaseURL() string { return d.baseURL }

func (d *LocalDisk) abs(key string) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.root, filepath.FromSlash(clean)), nil
}

// ── Write ─────────────────────────────────────────────────────────────────────

func (d *LocalDisk) Put(_ context.Context, key string, r io.Reader, _ string) error {
	full, err := d.abs(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(full)
		return fmt.Errorf("storage/local: write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage/local: close %s: %w", key, err)
	}
	return nil
}

// ── Serve ─────────────────────────────────────────────────────────────────────

// Handler serves the disk's files over HTTP. Directories answer 404 rather
// than a listing.
func (d *LocalDisk) Handler() http.Handler {
	return http.FileServer(filesOnly{http.Dir(d.root)})
}

type filesOnly struct{ root http.FileSystem }

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

func (d *LocalDisk) URL(key string) string {
	return d.baseURL + "/" + strings.TrimLeft(key, "/")
}

func (d *LocalDisk) Key(publicURL string) (string, bool) {
	return keyFromURL(d.baseURL, publicURL)
}

// ── Delete ────────────────────────────────────────────────────────────────────

func (d *LocalDisk) Delete(_ context.Context, key string) error {
	full, err := d.abs(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage/local: delete %s: %w", key, err)
	}
	return nil
}

// cleanKey rejects keys that would escape the disk root.
func cleanKey(key string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." || clean != strings.TrimLeft(key, "/") {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return clean, nil
}

func keyFromURL(baseURL, publicURL string) (string, bool) {
	prefix := baseURL + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	key, err := cleanKey(strings.TrimPrefix(publicURL, prefix))
	if err != nil {
		return "", false
	}
	return key, true
}
