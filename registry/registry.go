// Package registry implements the bidirectional mapping between external
// identifiers and the dense index space the solver operates on.
//
// A Registry is owned by exactly one run. It is append-only while the graph
// is being assembled and read-only afterwards; because ownership is never
// shared, no locking is needed.
package registry

import (
	"github.com/hupe1980/pcstgo/model"
)

// Registry maps external keys to dense indices and back.
//
// Indices are assigned in strict first-seen order starting at 0, with no
// gaps and no duplicates. Re-running the same input rows in the same order
// reproduces identical indices.
type Registry struct {
	forward map[string]model.NodeIndex
	reverse []model.Key
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		forward: make(map[string]model.NodeIndex),
	}
}

// Intern returns the dense index for k, assigning the next sequential index
// on first sight. It never fails. The first-seen Key is retained for reverse
// lookup, so Resolve round-trips the original value even when a later
// occurrence used a different source type with the same canonical content.
func (r *Registry) Intern(k model.Key) model.NodeIndex {
	c := k.Canonical()
	if i, ok := r.forward[c]; ok {
		return i
	}
	i := model.NodeIndex(len(r.reverse))
	r.forward[c] = i
	r.reverse = append(r.reverse, k)
	return i
}

// Lookup returns the dense index for k without mutating the registry.
func (r *Registry) Lookup(k model.Key) (model.NodeIndex, bool) {
	i, ok := r.forward[k.Canonical()]
	return i, ok
}

// Resolve returns the external key for a dense index. The index must already
// be validated as in-range by the caller.
func (r *Registry) Resolve(i model.NodeIndex) model.Key {
	return r.reverse[i]
}

// Len returns the number of distinct keys interned so far.
func (r *Registry) Len() int {
	return len(r.reverse)
}

// Keys returns the reverse map: the interned keys in index order.
// The returned slice is the registry's own backing store; callers must
// treat it as read-only.
func (r *Registry) Keys() []model.Key {
	return r.reverse
}
