package system

import (
	"time"

	"github.com/mixecs/mix/internal/component"
	"github.com/mixecs/mix/internal/core/ecs"
	coresys "github.com/mixecs/mix/internal/core/system"
	"github.com/mixecs/mix/internal/spatial"
)

// hazardCellSize is the side of a grid cell in world units.
const hazardCellSize = 4

// HazardSystem emits a DamageEvent for every entity tracked by the
// HealthSystem that stands within a hazard's radius.
// Phase 2 (Update). Does nothing while no HealthSystem is registered.
type HazardSystem struct {
	ecs.SystemBase
	grid *spatial.Grid
}

func NewHazardSystem(w *ecs.World) *HazardSystem {
	s := &HazardSystem{grid: spatial.NewGrid(hazardCellSize)}
	ecs.RequireComponent[component.Position](w, &s.SystemBase)
	ecs.RequireComponent[component.Hazard](w, &s.SystemBase)
	return s
}

func (s *HazardSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *HazardSystem) Update(_ time.Duration) {
	w := s.World()
	if !ecs.HasSystem[*HealthSystem](w) {
		return
	}

	s.grid.Clear()
	for _, t := range ecs.GetSystem[*HealthSystem](w).Entities() {
		if !ecs.HasComponent[component.Position](w, t) {
			continue
		}
		p := ecs.GetComponent[component.Position](w, t)
		s.grid.Insert(t, p.X, p.Y)
	}
	if s.grid.Len() == 0 {
		return
	}

	ecs.Each2(&s.SystemBase, func(src ecs.Entity, pos *component.Position, hz *component.Hazard) {
		r2 := hz.Radius * hz.Radius
		for _, t := range s.grid.Nearby(pos.X, pos.Y, hz.Radius) {
			if t.Equal(src) {
				continue
			}
			tp := ecs.GetComponent[component.Position](w, t)
			dx, dy := tp.X-pos.X, tp.Y-pos.Y
			if dx*dx+dy*dy <= r2 {
				ecs.Emit(w, component.DamageEvent{Source: src, Target: t, Amount: hz.Damage})
			}
		}
	})
}
