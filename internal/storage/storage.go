package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
)

// Storage stores document bytes under opaque keys. The database keeps the
// bookkeeping rows; this interface only moves bytes.
type Storage interface {
	// Save writes the reader's content under key and returns the byte count.
	Save(ctx context.Context, key string, r io.Reader, contentType string) (int64, error)
	// Open returns a reader for the stored object. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes a single object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every object under the given key prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// ClientPrefix returns the key prefix holding a client's document folder.
func ClientPrefix(clientID int64) string {
	return fmt.Sprintf("clients/%d/", clientID)
}

// DocumentKey builds a fresh storage key for an upload into a client's
// folder. A uuid prefix keeps same-named uploads from colliding.
func DocumentKey(clientID int64, fileName string) string {
	return ClientPrefix(clientID) + uuid.NewString() + "_" + path.Base(fileName)
}
