package system

import (
	"time"

	"github.com/mixecs/mix/internal/component"
	"github.com/mixecs/mix/internal/core/ecs"
	coresys "github.com/mixecs/mix/internal/core/system"
)

// LifetimeSystem counts Lifetime down and destroys entities that reach zero.
// Phase 3 (PostUpdate).
type LifetimeSystem struct {
	ecs.SystemBase
}

func NewLifetimeSystem(w *ecs.World) *LifetimeSystem {
	s := &LifetimeSystem{}
	ecs.RequireComponent[component.Lifetime](w, &s.SystemBase)
	return s
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *LifetimeSystem) Update(_ time.Duration) {
	w := s.World()
	ecs.Each(&s.SystemBase, func(e ecs.Entity) {
		if !ecs.HasComponent[component.Lifetime](w, e) || w.PendingDestroy(e) {
			return
		}
		l := ecs.GetComponent[component.Lifetime](w, e)
		l.Ticks--
		if l.Ticks > 0 {
			return
		}
		ecs.Emit(w, component.ExpiredEvent{Entity: e})
		w.DestroyEntity(e)
	})
}
