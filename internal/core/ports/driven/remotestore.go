package driven

import (
	"context"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
)

// RemoteStore issues authenticated calls against the remote drive tree.
// Every call requires a bearer credential supplied by the caller through the
// context-bound TokenProvider; the store never manages credential lifecycle
// and never retries. Retry policy belongs to the caller.
type RemoteStore interface {
	// List returns the children of the folder at path.
	// A missing or empty folder yields an empty slice, not an error, so
	// first-run behavior is well-defined.
	List(ctx context.Context, folderPath string) ([]domain.DriveItem, error)

	// Download fetches the full content of the item with the given ID.
	// Failures carry the remote status code (see StatusError).
	Download(ctx context.Context, itemID string) ([]byte, error)

	// DownloadPath fetches the content of the item at a fixed path.
	// A missing item yields domain.ErrNotFound.
	DownloadPath(ctx context.Context, path string) ([]byte, error)

	// Relocate moves an item into the destination folder, optionally
	// renaming it. An empty newName keeps the current name.
	Relocate(ctx context.Context, itemID, destFolderPath, newName string) error

	// CreateOrReplace writes data to path in a single request, replacing
	// any existing item. Suitable for small blobs; large binaries go
	// through the Uploader.
	CreateOrReplace(ctx context.Context, path string, data []byte) (*domain.DriveItem, error)
}

// Uploader moves large binaries into the remote store through a
// session-based chunked protocol.
type Uploader interface {
	// Upload writes data to path, replacing any existing item.
	// The whole upload aborts on the first failed chunk.
	Upload(ctx context.Context, path string, data []byte) (*domain.DriveItem, error)
}
