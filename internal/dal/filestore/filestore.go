package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps upload binaries on the local filesystem. Incoming files
// are staged under tempDir and moved to permDir once validated.
type LocalStore struct {
	tempDir string
	permDir string
}

// MustNewLocalStore creates both directories if they do not exist yet.
func MustNewLocalStore(tempDir, permDir string) *LocalStore {
	for _, dir := range []string{tempDir, permDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(fmt.Sprintf("Failed to create upload directory %s: %v", dir, err))
		}
	}

	return &LocalStore{
		tempDir: tempDir,
		permDir: permDir,
	}
}

// SaveTemp streams r into a unique file in the staging directory. The
// original extension is kept so image decoding can sniff by suffix too.
func (s *LocalStore) SaveTemp(name string, r io.Reader) (string, error) {
	f, err := os.CreateTemp(s.tempDir, "upload-*"+filepath.Ext(name))
	if err != nil {
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())

		return "", fmt.Errorf("failed to write staging file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())

		return "", fmt.Errorf("failed to close staging file: %w", err)
	}

	return f.Name(), nil
}

// Promote moves tempPath into permanent storage under finalName.
func (s *LocalStore) Promote(tempPath, finalName string) (string, error) {
	finalPath := filepath.Join(s.permDir, finalName)

	if err := os.Rename(tempPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to promote %s: %w", tempPath, err)
	}

	return finalPath, nil
}

// Remove deletes a file. A path that is already gone is not an error.
func (s *LocalStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}
