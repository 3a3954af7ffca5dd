package ecs

import (
	"time"

	"github.com/mixecs/mix/internal/core/assert"
	"github.com/mixecs/mix/internal/core/typeid"
	"go.uber.org/zap"
)

// System is implemented by pointer types that embed SystemBase.
type System interface {
	Update(dt time.Duration)
	base() *SystemBase
}

// SystemBase carries a system's required component mask and its interest
// list: the entities whose mask contained the required mask when they were
// last applied.
type SystemBase struct {
	world    *World
	mask     ComponentMask
	entities []Entity
	members  map[uint32]struct{}
}

func (s *SystemBase) base() *SystemBase { return s }

// World returns the world the system was registered with.
func (s *SystemBase) World() *World {
	assert.That(s.world != nil, "system is not registered with a world")
	return s.world
}

func (s *SystemBase) ComponentMask() ComponentMask { return s.mask }

// Entities returns a copy of the interest list in insertion order.
func (s *SystemBase) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

func (s *SystemBase) Len() int { return len(s.entities) }

// Contains reports whether an entity with e's index is in the interest list.
func (s *SystemBase) Contains(e Entity) bool {
	_, ok := s.members[e.Index()]
	return ok
}

func (s *SystemBase) matches(mask ComponentMask) bool { return mask.Contains(s.mask) }

func (s *SystemBase) add(e Entity) {
	if s.members == nil {
		s.members = make(map[uint32]struct{})
	}
	if _, ok := s.members[e.Index()]; ok {
		return
	}
	s.members[e.Index()] = struct{}{}
	s.entities = append(s.entities, e)
}

func (s *SystemBase) remove(e Entity) bool {
	removed := false
	kept := s.entities[:0]
	for _, other := range s.entities {
		if other.Equal(e) {
			removed = true
			continue
		}
		kept = append(kept, other)
	}
	s.entities = kept
	delete(s.members, e.Index())
	return removed
}

// RequireComponent adds T to the components an entity needs for s to be
// interested in it. Systems call it from their constructor.
func RequireComponent[T any](w *World, s *SystemBase) {
	s.mask.Set(ComponentID[T](w))
}

// SystemManager owns one instance per registered system type.
type SystemManager struct {
	world    *World
	registry *typeid.Registry
	systems  []System // system type id -> instance, nil when absent
	order    []typeid.ID
}

func newSystemManager(w *World) *SystemManager {
	return &SystemManager{
		world:    w,
		registry: typeid.NewRegistry("system", 0),
		systems:  make([]System, 0, 16),
		order:    make([]typeid.ID, 0, 16),
	}
}

// AddSystem builds S with ctor and registers it. If S is already registered
// the existing instance is returned and ctor is not called.
func AddSystem[S System](w *World, ctor func(*World) S) S {
	m := w.systems
	id := typeid.Of[S](m.registry)
	for int(id) >= len(m.systems) {
		m.systems = append(m.systems, nil)
	}
	if existing := m.systems[id]; existing != nil {
		return existing.(S)
	}
	s := ctor(w)
	s.base().world = w
	m.systems[id] = s
	m.order = append(m.order, id)
	w.log.Info("system registered",
		zap.String("system", m.registry.Type(id).String()),
		zap.Uint64("mask", uint64(s.base().mask)),
	)
	return s
}

func HasSystem[S System](w *World) bool {
	id, ok := typeid.Lookup[S](w.systems.registry)
	return ok && int(id) < len(w.systems.systems) && w.systems.systems[id] != nil
}

// GetSystem panics if S is not registered; check HasSystem first.
func GetSystem[S System](w *World) S {
	assert.That(HasSystem[S](w), "system %s is not registered", typeName[S]())
	id, _ := typeid.Lookup[S](w.systems.registry)
	return w.systems.systems[id].(S)
}

// RemoveSystem unregisters S. It is a no-op if S is not registered.
func RemoveSystem[S System](w *World) {
	if !HasSystem[S](w) {
		return
	}
	m := w.systems
	id, _ := typeid.Lookup[S](m.registry)
	m.systems[id] = nil
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	w.log.Info("system removed", zap.String("system", m.registry.Type(id).String()))
}

// Systems returns the registered systems in registration order.
func (m *SystemManager) Systems() []System {
	out := make([]System, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.systems[id])
	}
	return out
}

func (m *SystemManager) Len() int { return len(m.order) }

// AddToSystems appends each entity to every system whose mask it satisfies.
func (m *SystemManager) AddToSystems(entities []Entity) {
	for _, e := range entities {
		mask := m.world.entities.ComponentMask(e)
		for _, id := range m.order {
			s := m.systems[id].base()
			if s.matches(mask) {
				s.add(e)
			}
		}
	}
}

// RemoveFromSystems removes each entity from every system, whether or not
// the system was interested in it. It returns how many entities were removed
// from at least one system.
func (m *SystemManager) RemoveFromSystems(entities []Entity) int {
	n := 0
	for _, e := range entities {
		removed := false
		for _, id := range m.order {
			if m.systems[id].base().remove(e) {
				removed = true
			}
		}
		if removed {
			n++
		}
	}
	return n
}

// Refresh re-evaluates entities whose component set changed after creation:
// they join systems they now satisfy and leave systems they no longer do.
func (m *SystemManager) Refresh(entities []Entity) {
	for _, e := range entities {
		mask := m.world.entities.ComponentMask(e)
		for _, id := range m.order {
			s := m.systems[id].base()
			switch {
			case s.matches(mask):
				s.add(e)
			case s.Contains(e):
				s.remove(e)
			}
		}
	}
}
