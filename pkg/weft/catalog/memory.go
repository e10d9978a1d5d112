package catalog

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and short-lived processes.
type MemoryStore struct {
	mu      sync.RWMutex
	specs   map[string]memoryEntry
	closed  bool
	counter int
}

type memoryEntry struct {
	data     []byte
	saved    time.Time
	sequence int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{specs: make(map[string]memoryEntry)}
}

// Save implements Store.
func (s *MemoryStore) Save(id string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	s.counter++
	s.specs[id] = memoryEntry{data: cp, saved: time.Now().UTC(), sequence: s.counter}
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	entry, ok := s.specs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(entry.data))
	copy(cp, entry.data)
	return cp, nil
}

// List implements Store.
func (s *MemoryStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	type keyed struct {
		info Info
		seq  int
	}
	entries := make([]keyed, 0, len(s.specs))
	for id, entry := range s.specs {
		entries = append(entries, keyed{
			info: Info{ID: id, Timestamp: entry.saved, Size: int64(len(entry.data))},
			seq:  entry.sequence,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	infos := make([]Info, len(entries))
	for i, e := range entries {
		infos[i] = e.info
	}
	return infos, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	delete(s.specs, id)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.specs = nil
	return nil
}
