package dispatcher

import (
	"sync"

	"github.com/GiuseppeFn/televerse/core/update"
)

// Registry holds handler scopes in insertion order. Scopes are only ever
// appended or removed, never reordered; evaluation order is the reverse of
// insertion order. Safe for concurrent use, including mutation while a
// dispatch is in flight.
type Registry struct {
	mu     sync.RWMutex
	scopes []Scope
}

// NewRegistry creates an empty scope registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a scope. The newest scope gets the highest match priority.
func (r *Registry) Add(s Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scopes = append(r.scopes, s)
}

// Remove deletes every scope with the given name. Returns the number of
// scopes removed.
func (r *Registry) Remove(name string) int {
	if name == "" {
		return 0
	}
	return r.RemoveWhere(func(s Scope) bool { return s.Name == name })
}

// RemoveWhere deletes every scope the predicate reports true for. Returns
// the number of scopes removed. Relative order of the survivors is
// preserved.
func (r *Registry) RemoveWhere(pred func(Scope) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.scopes[:0]
	removed := 0
	for _, s := range r.scopes {
		if pred(s) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	r.scopes = kept
	return removed
}

// Len returns the number of registered scopes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scopes)
}

// Contains reports whether a scope with the given name is registered.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.scopes {
		if s.Name == name {
			return true
		}
	}
	return false
}

// eligible snapshots the scopes accepting the given update kind, in reverse
// insertion order. The snapshot isolates dispatch from concurrent
// registration and removal: a scope added or removed mid-dispatch is neither
// skipped nor double-visited.
func (r *Registry) eligible(t update.Type) []Scope {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Scope, 0, len(r.scopes))
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if r.scopes[i].eligible(t) {
			out = append(out, r.scopes[i])
		}
	}
	return out
}
