package filestorage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// ObjectStorage is the storage capability the application depends on. Paths
// follow the convention {userID}/{timestamp}.{ext}; the store itself treats
// them as opaque keys.
type ObjectStorage interface {
	// Upload stores the file bytes under the given path.
	Upload(ctx context.Context, path string, data []byte) error

	// Download returns the stored bytes for a path.
	Download(ctx context.Context, path string) ([]byte, error)

	// Delete removes a stored object. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
}

// BuildObjectPath builds the canonical storage path for an upload.
func BuildObjectPath(userID int64, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%d/%d%s", userID, time.Now().UnixNano(), ext)
}
