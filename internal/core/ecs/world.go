package ecs

import (
	"github.com/google/uuid"
	"github.com/mixecs/mix/internal/config"
	"github.com/mixecs/mix/internal/core/event"
	"go.uber.org/zap"
)

// World is the top-level ECS container. It owns the entity manager, the
// system manager and the event channel, and buffers structural changes so
// systems only see them after Update.
type World struct {
	id       uuid.UUID
	log      *zap.Logger
	entities *EntityManager
	systems  *SystemManager
	events   *event.Channel

	created   []Entity
	destroyed []Entity
	doomed    map[uint32]struct{} // indices already queued in destroyed
	dirty     []Entity
	dirtySet  map[uint32]struct{}
}

func NewWorld(cfg config.ECSConfig, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		id:        uuid.New(),
		entities:  NewEntityManager(cfg),
		events:    event.NewChannel(),
		created:   make([]Entity, 0, 64),
		destroyed: make([]Entity, 0, 64),
		doomed:    make(map[uint32]struct{}),
		dirty:     make([]Entity, 0, 64),
		dirtySet:  make(map[uint32]struct{}),
	}
	w.log = log.With(zap.String("world", w.id.String()))
	w.systems = newSystemManager(w)
	w.log.Debug("world created",
		zap.Int("max_components", cfg.MaxComponents),
		zap.Int("minimum_free_ids", cfg.MinimumFreeIDs),
		zap.Int("default_pool_size", cfg.DefaultPoolSize),
	)
	return w
}

func (w *World) ID() uuid.UUID                 { return w.id }
func (w *World) Log() *zap.Logger              { return w.log }
func (w *World) EntityManager() *EntityManager { return w.entities }
func (w *World) SystemManager() *SystemManager { return w.systems }
func (w *World) Events() *event.Channel        { return w.events }

// CreateEntity returns a live handle right away. Systems see the entity only
// after the next Update.
func (w *World) CreateEntity() Entity {
	e := w.entities.CreateEntity()
	w.created = append(w.created, e)
	return e
}

// DestroyEntity queues e for destruction on the next Update. Until then e
// stays alive. Repeated requests for the same handle are coalesced.
func (w *World) DestroyEntity(e Entity) {
	if !w.entities.IsAlive(e) {
		return
	}
	if _, ok := w.doomed[e.Index()]; ok {
		return
	}
	w.doomed[e.Index()] = struct{}{}
	w.destroyed = append(w.destroyed, e)
}

func (w *World) IsAlive(e Entity) bool { return w.entities.IsAlive(e) }

// PendingDestroy reports whether e is queued for destruction.
func (w *World) PendingDestroy(e Entity) bool {
	_, ok := w.doomed[e.Index()]
	return ok && w.entities.IsAlive(e)
}

func (w *World) markDirty(e Entity) {
	if _, ok := w.dirtySet[e.Index()]; ok {
		return
	}
	w.dirtySet[e.Index()] = struct{}{}
	w.dirty = append(w.dirty, e)
}

// Update applies the changes buffered since the last call: created entities
// are offered to the systems, entities whose components changed are
// re-evaluated, destroyed entities are removed from the systems and
// reclaimed, and the event channel is cleared.
func (w *World) Update() {
	nCreated, nDirty, nDestroyed := len(w.created), len(w.dirty), len(w.destroyed)

	w.systems.AddToSystems(w.created)
	clear(w.created)
	w.created = w.created[:0]

	live := w.dirty[:0]
	for _, e := range w.dirty {
		if w.entities.IsAlive(e) {
			live = append(live, e)
		}
	}
	w.systems.Refresh(live)
	clear(w.dirty)
	w.dirty = w.dirty[:0]
	clear(w.dirtySet)

	removed := w.systems.RemoveFromSystems(w.destroyed)
	for _, e := range w.destroyed {
		w.entities.DestroyEntity(e)
	}
	clear(w.destroyed)
	w.destroyed = w.destroyed[:0]
	clear(w.doomed)

	w.events.Clear()

	if nCreated+nDirty+nDestroyed > 0 {
		w.log.Debug("world applied",
			zap.Int("created", nCreated),
			zap.Int("refreshed", len(live)),
			zap.Int("destroyed", nDestroyed),
			zap.Int("removed_from_systems", removed),
		)
	}
}

// GetEntity returns the entity bound to tag. It panics if the tag is unknown.
func (w *World) GetEntity(tag string) Entity { return w.entities.EntityByTag(tag) }

// GetGroup returns the members of group. It panics if the group is unknown.
func (w *World) GetGroup(group string) []Entity { return w.entities.GroupMembers(group) }

// Emit queues event on the world's channel until the next Update.
func Emit[T any](w *World, ev T) { event.Emit(w.events, ev) }

// Events returns the events of type T emitted since the last Update.
func Events[T any](w *World) []T { return event.Events[T](w.events) }
