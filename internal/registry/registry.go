// Package registry resolves a unit catalog into a complete mapping from
// unit name to canonical dimensional identity. Derived units may be
// declared in any order and may depend on other derived units; the
// resolver processes them as a fixpoint over a dependency graph and
// rejects declarations whose identity collides with an already
// registered unit.
package registry

import (
	"sort"

	"github.com/forgelabs/unitforge/internal/identity"
)

// Registry is the resolved name → identity mapping together with its
// inverse. It is built once by Resolve and read-only thereafter.
type Registry struct {
	byName map[string]identity.Identity
	byKey  map[string]string // identity key → unit name
}

func newRegistry(capacity int) *Registry {
	return &Registry{
		byName: make(map[string]identity.Identity, capacity),
		byKey:  make(map[string]string, capacity),
	}
}

// add registers a name under an identity. The caller must have checked
// for collisions first; the check-then-insert sequence stays atomic
// because the registry is only ever mutated by the single Resolve pass.
func (r *Registry) add(name string, id identity.Identity) {
	r.byName[name] = id
	r.byKey[id.Key()] = name
}

// Identity returns the canonical identity registered for name.
func (r *Registry) Identity(name string) (identity.Identity, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// NameFor returns the unit name registered under the given identity.
func (r *Registry) NameFor(id identity.Identity) (string, bool) {
	name, ok := r.byKey[id.Key()]
	return name, ok
}

// Names returns all registered unit names, sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered units.
func (r *Registry) Len() int {
	return len(r.byName)
}
