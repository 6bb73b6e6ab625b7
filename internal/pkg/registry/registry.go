// Package registry tracks the client ids of the sessions that are currently connected.
package registry

import "sync"

// Registry enforces that a client id is held by at most one session at a time.
type Registry interface {
	// TryRegister claims id, returning false if another session holds it.
	TryRegister(id string) bool
	// Unregister releases id. Releasing an id that is not held is a no-op.
	Unregister(id string)
}

// MemoryRegistry is an in-process Registry.
type MemoryRegistry struct {
	ids map[string]struct{}
	mu  sync.Mutex
}

// NewMemoryRegistry creates an empty MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		ids: make(map[string]struct{}),
	}
}

func (r *MemoryRegistry) TryRegister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[id]; ok {
		return false
	}
	r.ids[id] = struct{}{}
	return true
}

func (r *MemoryRegistry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ids, id)
}

// Contains reports whether id is currently registered.
func (r *MemoryRegistry) Contains(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[id]
	return ok
}

// Len returns the number of registered ids.
func (r *MemoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}
