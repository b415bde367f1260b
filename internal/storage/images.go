package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ErrInvalidImage is returned when an upload does not decode as an image.
var ErrInvalidImage = errors.New("payload is not a valid image")

// recipeImageDir is the directory below the media root where recipe
// images are stored.
const recipeImageDir = "uploads/recipe"

// ImageStore persists uploaded recipe images below a media root
// directory. Stored filenames are random, so a path is never guessable
// or derived from the recipe it belongs to.
type ImageStore struct {
	root string
}

// NewImageStore creates an image store rooted at the given directory.
func NewImageStore(root string) (*ImageStore, error) {
	if err := os.MkdirAll(filepath.Join(root, recipeImageDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &ImageStore{root: root}, nil
}

// Save validates that r decodes as a real image and writes the original
// bytes under a freshly generated unique path. It returns the path
// relative to the media root. Byte streams that are not images fail with
// ErrInvalidImage.
func (s *ImageStore) Save(r io.Reader, originalName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return "", ErrInvalidImage
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	relpath := filepath.Join(recipeImageDir, uuid.NewString()+ext)

	if err := os.WriteFile(filepath.Join(s.root, relpath), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return relpath, nil
}

// Remove deletes a stored image. A missing file is not an error; the
// point is only that no orphaned files stay behind.
func (s *ImageStore) Remove(relpath string) {
	if relpath == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.root, relpath)); err != nil && !os.IsNotExist(err) {
		log.Error("failed to remove image", "path", relpath, "error", err)
	}
}

// Exists reports whether a stored image is present on disk.
func (s *ImageStore) Exists(relpath string) bool {
	_, err := os.Stat(filepath.Join(s.root, relpath))
	return err == nil
}

// URL builds the absolute URL under which a stored image is served.
func (s *ImageStore) URL(serverURL, relpath string) string {
	return strings.TrimSuffix(serverURL, "/") + "/media/" + filepath.ToSlash(relpath)
}

// Root returns the media root directory.
func (s *ImageStore) Root() string {
	return s.root
}
