// File: /storage/storage.go
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a stored object does not exist.
var ErrNotFound = errors.New("object not found")

// Storage is the durable blob store holding certificate artifacts. Objects are
// addressed by the opaque key recorded on the registration row.
type Storage interface {
	// Put durably writes data under key. The write must be complete before
	// Put returns so callers can safely commit a reference to it.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get returns the object bytes, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether the object is present.
	Exists(ctx context.Context, key string) (bool, error)
}
