// Package catalog provides local persistence for exported workflow specs.
//
// After a workflow is compiled and exported to its registerable form, the
// spec can be saved to a catalog keyed by its identifier string. The catalog
// is the local record of what has been (or is about to be) handed to the
// remote registration client.
package catalog

import (
	"errors"
	"time"
)

// Store persists exported workflow specs keyed by identifier.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores the serialized spec for an identifier.
	// Overwrites if the identifier already exists.
	Save(id string, data []byte) error

	// Load retrieves a serialized spec.
	// Returns ErrNotFound if the identifier doesn't exist.
	Load(id string) ([]byte, error)

	// List returns metadata for all stored specs, ordered by save time.
	List() ([]Info, error)

	// Delete removes a spec. Returns nil if it doesn't exist.
	Delete(id string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides spec metadata without loading the full payload.
type Info struct {
	ID        string
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates a spec doesn't exist.
	ErrNotFound = errors.New("workflow spec not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("catalog store closed")
)
