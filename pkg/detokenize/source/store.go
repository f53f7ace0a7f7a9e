package source

import (
	"errors"
	"time"
)

// Store persists named value sets.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores entries under name, replacing any existing set.
	// Returns ErrInvalidSet if name is empty or entries is empty.
	Save(name string, entries []Entry) error

	// Load retrieves a value set in its saved order.
	// Returns ErrNotFound if the set doesn't exist.
	Load(name string) ([]Entry, error)

	// List returns metadata for all value sets, ordered by name.
	// Returns empty slice (not error) if there are no sets.
	List() ([]Info, error)

	// Delete removes a value set.
	// Returns nil if the set doesn't exist.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata without loading the entries.
type Info struct {
	Name    string
	Entries int
	Updated time.Time
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a value set doesn't exist.
	ErrNotFound = errors.New("value set not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("value store closed")

	// ErrInvalidSet indicates a value set without a name or without entries.
	ErrInvalidSet = errors.New("value set needs a name and at least one entry")
)

// IsNotFound reports whether err means a value set does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func checkSet(name string, entries []Entry) error {
	if name == "" || len(entries) == 0 {
		return ErrInvalidSet
	}
	return nil
}
