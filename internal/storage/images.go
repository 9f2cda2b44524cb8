package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore is the object-storage boundary. The core only keeps the opaque
// URL it returns; deletion is requested best-effort on entity delete.
type ImageStore interface {
	Put(ctx context.Context, ext string, r io.Reader) (url string, err error)
	Remove(ctx context.Context, url string) error
}

// DiskStore keeps images on the local filesystem and serves them under
// baseURL. Production swaps in an S3-backed implementation behind the same
// interface.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Put(ctx context.Context, ext string, r io.Reader) (string, error) {
	if ext == "" {
		ext = ".bin"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	key := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return s.baseURL + "/" + key, nil
}

func (s *DiskStore) Remove(ctx context.Context, url string) error {
	key := path.Base(url)
	if key == "" || key == "." || key == "/" {
		return fmt.Errorf("invalid image url %q", url)
	}
	return os.Remove(filepath.Join(s.dir, key))
}
