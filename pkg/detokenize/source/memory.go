package source

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory value-set store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	sets   map[string]storedSet
	closed bool
}

type storedSet struct {
	entries []Entry
	updated time.Time
}

// NewMemoryStore creates a new in-memory value-set store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sets: make(map[string]storedSet),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(name string, entries []Entry) error {
	if err := checkSet(name, entries); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy to avoid retaining caller's slice
	stored := make([]Entry, len(entries))
	copy(stored, entries)

	m.sets[name] = storedSet{entries: stored, updated: time.Now().UTC()}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(name string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	set, ok := m.sets[name]
	if !ok {
		return nil, ErrNotFound
	}

	entries := make([]Entry, len(set.entries))
	copy(entries, set.entries)
	return entries, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.sets))
	for name, set := range m.sets {
		infos = append(infos, Info{
			Name:    name,
			Entries: len(set.entries),
			Updated: set.updated,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.sets, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.sets = nil
	return nil
}
