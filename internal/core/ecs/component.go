package ecs

import (
	"reflect"

	"github.com/mixecs/mix/internal/core/assert"
	"github.com/mixecs/mix/internal/core/pool"
	"github.com/mixecs/mix/internal/core/typeid"
)

// ComponentID returns the type id of component T, registering it on first use.
// Registration panics once the configured maximum component count is reached.
func ComponentID[T any](w *World) uint32 {
	return uint32(typeid.Of[T](w.entities.components))
}

// accommodate returns the pool for T, creating it on first use.
func accommodate[T any](m *EntityManager) (*pool.Pool[T], uint32) {
	id := typeid.Of[T](m.components)
	for int(id) >= len(m.pools) {
		m.pools = append(m.pools, nil)
	}
	if m.pools[id] == nil {
		m.pools[id] = pool.New[T](m.cfg.DefaultPoolSize)
	}
	return m.pools[id].(*pool.Pool[T]), uint32(id)
}

func addComponent[T any](m *EntityManager, e Entity, v T) {
	assert.That(m.IsAlive(e), "add component: %s is not alive", e)
	p, id := accommodate[T](m)
	index := int(e.Index())
	if index >= p.Len() {
		p.Resize(len(m.versions))
	}
	p.Set(index, v)
	m.masks[index].Set(id)
}

// removeComponent reports whether e was alive. A stale handle leaves the
// slot's current owner untouched.
func removeComponent[T any](m *EntityManager, e Entity) bool {
	if !m.IsAlive(e) {
		return false
	}
	id := typeid.Of[T](m.components)
	m.masks[e.Index()].Unset(uint32(id))
	return true
}

func hasComponent[T any](m *EntityManager, e Entity) bool {
	if !m.IsAlive(e) {
		return false
	}
	id, ok := typeid.Lookup[T](m.components)
	if !ok {
		return false
	}
	return m.masks[e.Index()].Has(uint32(id))
}

func getComponent[T any](m *EntityManager, e Entity) *T {
	if !hasComponent[T](m, e) {
		assert.That(false, "get component: %s has no %s", e, typeName[T]())
	}
	id, _ := typeid.Lookup[T](m.components)
	return m.pools[id].(*pool.Pool[T]).Get(int(e.Index()))
}

// AddComponent stores v for e and sets its mask bit. If e was already applied
// to the systems, it is re-evaluated against them on the next Update.
func AddComponent[T any](w *World, e Entity, v T) {
	addComponent(w.entities, e, v)
	w.markDirty(e)
}

// RemoveComponent clears the mask bit for T. The stored value is left in place.
// It is a no-op for a handle that is no longer alive.
func RemoveComponent[T any](w *World, e Entity) {
	if removeComponent[T](w.entities, e) {
		w.markDirty(e)
	}
}

func HasComponent[T any](w *World, e Entity) bool {
	return hasComponent[T](w.entities, e)
}

// GetComponent returns a pointer into the pool for T. It panics if e does not
// have T. The pointer stays valid while the pool grows, but the slot belongs to
// whichever entity holds e's index, so do not keep it past e's destruction.
func GetComponent[T any](w *World, e Entity) *T {
	return getComponent[T](w.entities, e)
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
