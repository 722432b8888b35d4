// Package storage implements the local filesystem store for uploaded images.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the public path prefix under which stored files are served
const URLPrefix = "/uploads/"

// Service saves, resolves and deletes image files under a root directory.
// One instance is constructed at startup and injected into handlers.
type Service struct {
	root string
}

// New creates a storage service rooted at dir, creating it if needed
func New(dir string) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Service{root: dir}, nil
}

// SaveImage writes data under root/subfolder with a randomized filename that
// keeps the declared extension (.jpg when none). It returns the public
// relative URL and the byte size.
func (s *Service) SaveImage(data []byte, declaredName, subfolder string) (string, int64, error) {
	if !safeName(subfolder) {
		return "", 0, fmt.Errorf("invalid subfolder %q", subfolder)
	}

	ext := strings.ToLower(filepath.Ext(declaredName))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.New().String() + ext

	dir := filepath.Join(s.root, subfolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create subfolder: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return URLPrefix + subfolder + "/" + name, int64(len(data)), nil
}

// DeleteImage removes the file behind a relative URL like
// "/uploads/toolboxes/xxx.jpg". It reports whether a file was actually
// removed; I/O errors are swallowed and reported as not found.
func (s *Service) DeleteImage(relativeURL string) bool {
	path, ok := s.ResolvePath(relativeURL)
	if !ok {
		return false
	}
	return os.Remove(path) == nil
}

// ResolvePath returns the absolute path behind a relative URL if the file
// exists. The boolean is false for unknown prefixes, traversal attempts and
// missing files alike.
func (s *Service) ResolvePath(relativeURL string) (string, bool) {
	rel := strings.TrimPrefix(relativeURL, URLPrefix)

	parts := strings.Split(rel, "/")
	for _, p := range parts {
		if !safeName(p) {
			return "", false
		}
	}

	path := filepath.Join(s.root, filepath.FromSlash(rel))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// safeName rejects empty segments and anything that could escape the root
func safeName(s string) bool {
	return s != "" && s != "." && s != ".." &&
		!strings.ContainsAny(s, `/\`)
}
