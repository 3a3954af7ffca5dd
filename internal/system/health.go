package system

import (
	"time"

	"github.com/mixecs/mix/internal/component"
	"github.com/mixecs/mix/internal/core/ecs"
	coresys "github.com/mixecs/mix/internal/core/system"
)

// HealthSystem applies this tick's DamageEvents. An entity that drops to zero
// emits a DeathEvent and is queued for destruction.
// Phase 3 (PostUpdate).
type HealthSystem struct {
	ecs.SystemBase
}

func NewHealthSystem(w *ecs.World) *HealthSystem {
	s := &HealthSystem{}
	ecs.RequireComponent[component.Health](w, &s.SystemBase)
	return s
}

func (s *HealthSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *HealthSystem) Update(_ time.Duration) {
	w := s.World()
	for _, ev := range ecs.Events[component.DamageEvent](w) {
		t := ev.Target
		if !w.IsAlive(t) || w.PendingDestroy(t) || !ecs.HasComponent[component.Health](w, t) {
			continue
		}
		h := ecs.GetComponent[component.Health](w, t)
		h.Current -= ev.Amount
		if h.Current > 0 {
			continue
		}
		h.Current = 0
		tag, _ := w.EntityManager().TagOf(t)
		ecs.Emit(w, component.DeathEvent{Entity: t, Tag: tag})
		w.DestroyEntity(t)
	}
}
