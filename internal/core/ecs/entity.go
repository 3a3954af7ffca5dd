package ecs

import (
	"fmt"
	"sort"

	"github.com/mixecs/mix/internal/config"
	"github.com/mixecs/mix/internal/core/assert"
	"github.com/mixecs/mix/internal/core/pool"
	"github.com/mixecs/mix/internal/core/typeid"
)

const (
	IndexBits   = 24
	VersionBits = 8
	IndexMask   = 1<<IndexBits - 1
	VersionMask = 1<<VersionBits - 1
	MaxEntities = 1 << IndexBits
)

// Entity packs a 24-bit slot index in the low bits and an 8-bit version in the
// high bits. The version only matters for liveness; two handles with the same
// index are the same entity as far as Equal is concerned.
type Entity uint32

func NewEntity(index uint32, version uint8) Entity {
	return Entity(uint32(version)<<IndexBits | index&IndexMask)
}

func (e Entity) Index() uint32  { return uint32(e) & IndexMask }
func (e Entity) Version() uint8 { return uint8(uint32(e) >> IndexBits & VersionMask) }

// Equal compares slot indices and ignores the version.
func (e Entity) Equal(o Entity) bool { return e.Index() == o.Index() }

func (e Entity) String() string {
	return fmt.Sprintf("entity id: %d, version: %d", e.Index(), e.Version())
}

// EntityManager allocates entity slots, stores component masks and pools, and
// keeps the tag and group indices. It does not defer anything; World does.
type EntityManager struct {
	cfg        config.ECSConfig
	components *typeid.Registry

	versions []uint8
	freeIDs  []uint32 // FIFO, oldest first
	masks    []ComponentMask
	pools    []pool.Base // component type id -> *pool.Pool[T]

	taggedEntities  map[string]Entity
	entityTags      map[uint32]string
	groupedEntities map[string]map[uint32]Entity
	entityGroups    map[uint32]string
}

// NewEntityManager panics if cfg is out of range; an unchecked MaxComponents
// would let component bits fall off the end of the mask.
func NewEntityManager(cfg config.ECSConfig) *EntityManager {
	if err := cfg.Validate(); err != nil {
		assert.That(false, "entity manager: %v", err)
	}
	return &EntityManager{
		cfg:             cfg,
		components:      typeid.NewRegistry("component", cfg.MaxComponents),
		versions:        make([]uint8, 0, 1024),
		freeIDs:         make([]uint32, 0, 256),
		masks:           make([]ComponentMask, 0, 1024),
		pools:           make([]pool.Base, 0, cfg.MaxComponents),
		taggedEntities:  make(map[string]Entity),
		entityTags:      make(map[uint32]string),
		groupedEntities: make(map[string]map[uint32]Entity),
		entityGroups:    make(map[uint32]string),
	}
}

// CreateEntity reuses the oldest freed index once more than MinimumFreeIDs
// indices are waiting, otherwise it appends a new slot at version 0.
func (m *EntityManager) CreateEntity() Entity {
	var index uint32
	if len(m.freeIDs) > m.cfg.MinimumFreeIDs {
		index = m.freeIDs[0]
		m.freeIDs = m.freeIDs[1:]
	} else {
		index = uint32(len(m.versions))
		assert.That(index < MaxEntities, "entity index %d exceeds %d index bits", index, IndexBits)
		m.versions = append(m.versions, 0)
		if int(index) >= len(m.masks) {
			m.masks = append(m.masks, 0)
		}
	}
	return NewEntity(index, m.versions[index])
}

// DestroyEntity bumps the slot version, clears the mask, frees the index and
// drops any tag or group binding. Stale handles are ignored.
func (m *EntityManager) DestroyEntity(e Entity) {
	index := e.Index()
	assert.That(int(index) < len(m.versions), "destroy: %s out of range", e)
	if m.versions[index] != e.Version() {
		return
	}
	m.versions[index]++
	m.masks[index].Reset()
	m.freeIDs = append(m.freeIDs, index)

	if tag, ok := m.entityTags[index]; ok {
		delete(m.taggedEntities, tag)
		delete(m.entityTags, index)
	}
	m.ungroup(index)
}

func (m *EntityManager) IsAlive(e Entity) bool {
	index := e.Index()
	if int(index) >= len(m.versions) {
		return false
	}
	return m.versions[index] == e.Version()
}

// Entity returns the handle currently occupying index.
func (m *EntityManager) Entity(index uint32) Entity {
	assert.That(int(index) < len(m.versions), "entity index %d out of range", index)
	return NewEntity(index, m.versions[index])
}

// Len returns the number of slots ever allocated.
func (m *EntityManager) Len() int { return len(m.versions) }

// FreeLen returns the number of indices waiting for reuse.
func (m *EntityManager) FreeLen() int { return len(m.freeIDs) }

func (m *EntityManager) ComponentMask(e Entity) ComponentMask {
	index := e.Index()
	assert.That(int(index) < len(m.masks), "mask: %s out of range", e)
	return m.masks[index]
}

// Tags are one-to-one. Binding a tag moves it away from its previous owner,
// and an entity keeps only its most recent tag.
func (m *EntityManager) Tag(e Entity, tag string) {
	assert.That(m.IsAlive(e), "tag %q: %s is not alive", tag, e)
	index := e.Index()
	if prev, ok := m.taggedEntities[tag]; ok && !prev.Equal(e) {
		delete(m.entityTags, prev.Index())
	}
	if old, ok := m.entityTags[index]; ok && old != tag {
		delete(m.taggedEntities, old)
	}
	m.taggedEntities[tag] = e
	m.entityTags[index] = tag
}

func (m *EntityManager) HasTag(tag string) bool {
	_, ok := m.taggedEntities[tag]
	return ok
}

// HasTaggedEntity reports whether tag is bound to e.
func (m *EntityManager) HasTaggedEntity(tag string, e Entity) bool {
	owner, ok := m.taggedEntities[tag]
	return ok && owner.Equal(e) && m.IsAlive(e)
}

// EntityByTag panics if tag is not bound; check HasTag first.
func (m *EntityManager) EntityByTag(tag string) Entity {
	e, ok := m.taggedEntities[tag]
	assert.That(ok, "no entity tagged %q", tag)
	return e
}

// TagOf returns the tag bound to e, if any.
func (m *EntityManager) TagOf(e Entity) (string, bool) {
	tag, ok := m.entityTags[e.Index()]
	if !ok || !m.HasTaggedEntity(tag, e) || !m.IsAlive(e) {
		return "", false
	}
	return tag, true
}

func (m *EntityManager) TagCount() int { return len(m.taggedEntities) }

// Group adds e to group. An entity is a member of at most one group, so
// grouping it again moves it.
func (m *EntityManager) Group(e Entity, group string) {
	assert.That(m.IsAlive(e), "group %q: %s is not alive", group, e)
	index := e.Index()
	if old, ok := m.entityGroups[index]; ok && old != group {
		m.ungroup(index)
	}
	members, ok := m.groupedEntities[group]
	if !ok {
		members = make(map[uint32]Entity)
		m.groupedEntities[group] = members
	}
	members[index] = e
	m.entityGroups[index] = group
}

func (m *EntityManager) ungroup(index uint32) {
	group, ok := m.entityGroups[index]
	if !ok {
		return
	}
	if members, ok := m.groupedEntities[group]; ok {
		delete(members, index)
	}
	delete(m.entityGroups, index)
}

func (m *EntityManager) HasGroup(group string) bool {
	_, ok := m.groupedEntities[group]
	return ok
}

func (m *EntityManager) HasEntityInGroup(group string, e Entity) bool {
	members, ok := m.groupedEntities[group]
	if !ok {
		return false
	}
	_, ok = members[e.Index()]
	return ok
}

// GroupMembers returns the members of group ordered by index. It panics if
// the group was never created; check HasGroup first.
func (m *EntityManager) GroupMembers(group string) []Entity {
	members, ok := m.groupedEntities[group]
	assert.That(ok, "no group %q", group)
	out := make([]Entity, 0, len(members))
	for _, e := range members {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}

func (m *EntityManager) GroupCount() int { return len(m.groupedEntities) }

// EntityGroupCount returns the member count of group, or 0 if it does not exist.
func (m *EntityManager) EntityGroupCount(group string) int {
	return len(m.groupedEntities[group])
}
