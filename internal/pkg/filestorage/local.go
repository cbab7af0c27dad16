package filestorage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/planora/planora/internal/pkg/apperrors"
	"github.com/planora/planora/internal/pkg/logger"
)

// LocalStorage stores objects on the local filesystem under a base directory.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// resolve maps an object path to a filesystem path, rejecting traversal.
func (ls *LocalStorage) resolve(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid object path: %s", path)
	}
	return filepath.Join(ls.basePath, cleaned), nil
}

// Upload stores the file bytes under the given path.
func (ls *LocalStorage) Upload(ctx context.Context, path string, data []byte) error {
	dst, err := ls.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dst).Msg("Failed to create object directory")
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	if err := os.WriteFile(dst, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dst).Msg("Failed to write object")
		// Attempt to remove a partially written file
		_ = os.Remove(dst)
		return fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("path", path).Int("size", len(data)).Msg("Object stored")
	return nil
}

// Download returns the stored bytes for a path.
func (ls *LocalStorage) Download(ctx context.Context, path string) ([]byte, error) {
	src, err := ls.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrFileNotFound
		}
		logger.Error().Err(err).Str("path", src).Msg("Failed to read object")
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

// Delete removes a stored object. Missing objects are treated as already
// deleted so the operation stays idempotent.
func (ls *LocalStorage) Delete(ctx context.Context, path string) error {
	dst, err := ls.resolve(path)
	if err != nil {
		return err
	}

	if _, err := os.Stat(dst); os.IsNotExist(err) {
		logger.Warn().Str("path", dst).Msg("Object to delete does not exist")
		return nil
	}

	if err := os.Remove(dst); err != nil {
		logger.Error().Err(err).Str("path", dst).Msg("Failed to delete object")
		return fmt.Errorf("failed to delete object: %w", err)
	}

	logger.Info().Str("path", path).Msg("Object deleted")
	return nil
}
