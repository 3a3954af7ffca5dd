// Package typeid assigns small stable integers to Go types on first use.
package typeid

import (
	"reflect"

	"github.com/mixecs/mix/internal/core/assert"
)

// ID is a registry-scoped type identifier. IDs start at 0 and follow first-use order.
type ID uint32

// Registry maps type tokens to IDs. Separate registries never share numbering.
// A zero limit means unbounded.
type Registry struct {
	name  string
	limit int
	ids   map[reflect.Type]ID
	types []reflect.Type
}

func NewRegistry(name string, limit int) *Registry {
	return &Registry{
		name:  name,
		limit: limit,
		ids:   make(map[reflect.Type]ID, 16),
		types: make([]reflect.Type, 0, 16),
	}
}

// Of returns the ID of T in r, registering it if this is its first use.
func Of[T any](r *Registry) ID {
	return r.ID(reflect.TypeOf((*T)(nil)).Elem())
}

// Lookup returns the ID of T without registering it.
func Lookup[T any](r *Registry) (ID, bool) {
	id, ok := r.ids[reflect.TypeOf((*T)(nil)).Elem()]
	return id, ok
}

// ID returns the ID for t, assigning the next one on first use.
// Panics when the registry limit would be exceeded.
func (r *Registry) ID(t reflect.Type) ID {
	if id, ok := r.ids[t]; ok {
		return id
	}
	assert.That(r.limit == 0 || len(r.types) < r.limit,
		"%s registry: cannot register %s, limit of %d types reached", r.name, t, r.limit)
	id := ID(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	return id
}

// Type returns the type registered under id.
func (r *Registry) Type(id ID) reflect.Type {
	assert.That(int(id) < len(r.types), "%s registry: unknown type id %d", r.name, id)
	return r.types[id]
}

func (r *Registry) Len() int   { return len(r.types) }
func (r *Registry) Limit() int { return r.limit }
