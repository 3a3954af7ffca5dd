package system

import (
	"time"

	"github.com/mixecs/mix/internal/component"
	"github.com/mixecs/mix/internal/core/ecs"
	coresys "github.com/mixecs/mix/internal/core/system"
)

// MoveSystem adds Velocity to Position once per tick.
// Phase 2 (Update).
type MoveSystem struct {
	ecs.SystemBase
}

func NewMoveSystem(w *ecs.World) *MoveSystem {
	s := &MoveSystem{}
	ecs.RequireComponent[component.Position](w, &s.SystemBase)
	ecs.RequireComponent[component.Velocity](w, &s.SystemBase)
	return s
}

func (s *MoveSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MoveSystem) Update(_ time.Duration) {
	ecs.Each2(&s.SystemBase, func(_ ecs.Entity, p *component.Position, v *component.Velocity) {
		p.X += v.DX
		p.Y += v.DY
	})
}
