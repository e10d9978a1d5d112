package registry

import "sync"

// Registry is a thread-safe, append-only ordered list of values.
// It uses sync.RWMutex for read-heavy workloads.
type Registry[V any] struct {
	mu      sync.RWMutex
	entries []V
}

// New creates a new empty registry.
func New[V any]() *Registry[V] {
	return &Registry[V]{}
}

// Append adds a value to the end of the registry and returns its index.
func (r *Registry[V]) Append(v V) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, v)
	return len(r.entries) - 1
}

// Len returns the number of entries in the registry.
func (r *Registry[V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// At returns the value at index i and whether the index is in range.
func (r *Registry[V]) At(i int) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.entries) {
		var zero V
		return zero, false
	}
	return r.entries[i], true
}

// Snapshot returns a copy of all entries in append order.
func (r *Registry[V]) Snapshot() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]V, len(r.entries))
	copy(out, r.entries)
	return out
}

// Range iterates over a snapshot of the registry in append order.
// Iteration stops early if fn returns false. Appends made during
// iteration are not visited.
func (r *Registry[V]) Range(fn func(i int, v V) bool) {
	for i, v := range r.Snapshot() {
		if !fn(i, v) {
			return
		}
	}
}

// Find returns the first entry matching the predicate, in append order.
func (r *Registry[V]) Find(pred func(V) bool) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.entries {
		if pred(v) {
			return v, true
		}
	}
	var zero V
	return zero, false
}
