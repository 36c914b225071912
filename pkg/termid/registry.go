package termid

import "sort"

// Registry is the set of identifiers claimed during one run. It is not safe
// for concurrent use.
type Registry struct {
	ids map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]struct{})}
}

// Register marks id as claimed. Registering an id twice is a no-op.
func (r *Registry) Register(id string) {
	r.ids[id] = struct{}{}
}

// Contains reports whether id has been claimed.
func (r *Registry) Contains(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// Claim registers id if it is free and reports whether it did.
func (r *Registry) Claim(id string) bool {
	if r.Contains(id) {
		return false
	}
	r.Register(id)
	return true
}

// Len returns the number of claimed identifiers.
func (r *Registry) Len() int {
	return len(r.ids)
}

// IDs returns the claimed identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.ids))
	for id := range r.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
