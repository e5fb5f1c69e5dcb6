package filesystemStore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FilesystemStore persists images under a local media root and serves them
// as /media/<subdir>/<name> relative URLs.
type FilesystemStore struct {
	baseDir string
}

// New creates a new filesystem-based store
func New(baseDir string) (*FilesystemStore, error) {
	//nolint:gosec,mnd // Directory permissions 0755 are intentional
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FilesystemStore{baseDir: baseDir}, nil
}

func (s *FilesystemStore) Store(content []byte, ext, subdir string) (string, error) {
	filename := uuid.New().String() + ext
	targetDir := filepath.Join(s.baseDir, subdir)

	//nolint:gosec,mnd // Directory permissions 0755 are intentional
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	//nolint:mnd // filemode constant
	if err := os.WriteFile(filepath.Join(targetDir, filename), content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/media/" + subdir + "/" + filename, nil
}

// BaseDir returns the root directory static file serving should expose.
func (s *FilesystemStore) BaseDir() string {
	return s.baseDir
}
