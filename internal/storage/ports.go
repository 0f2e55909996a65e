package storage

import (
	"context"
	"errors"
	"io"
	"os"
)

// ErrNotFound maps to a 404 at the delivery edge.
var ErrNotFound = errors.New("file not found")

type Store interface {
	// SaveUpload writes the uploaded audio under a collision-free name and
	// returns its path on disk.
	SaveUpload(filename string, r io.Reader) (string, error)

	// SaveDocument places a generated document under the given name.
	SaveDocument(name string, data []byte) error

	// Open returns the named output file for download.
	Open(name string) (*os.File, error)
}

// Archiver mirrors generated documents to remote storage, best effort.
type Archiver interface {
	Archive(ctx context.Context, name string, data []byte, contentType string) (string, error)
}
