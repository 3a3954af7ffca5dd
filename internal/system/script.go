package system

import (
	"time"

	"github.com/mixecs/mix/internal/component"
	"github.com/mixecs/mix/internal/core/ecs"
	coresys "github.com/mixecs/mix/internal/core/system"
	"github.com/mixecs/mix/internal/scripting"
	"go.uber.org/zap"
)

// ScriptSystem hands each scripted entity's position (and velocity, when it
// has one) to its Lua step function and stores the result.
// Phase 2 (Update). An entity whose script fails loses its Script component.
type ScriptSystem struct {
	ecs.SystemBase
	lua  *scripting.Engine
	log  *zap.Logger
	tick uint64
}

func NewScriptSystem(w *ecs.World, lua *scripting.Engine, log *zap.Logger) *ScriptSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ScriptSystem{lua: lua, log: log}
	ecs.RequireComponent[component.Position](w, &s.SystemBase)
	ecs.RequireComponent[component.Script](w, &s.SystemBase)
	return s
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ScriptSystem) Update(dt time.Duration) {
	s.tick++
	w := s.World()
	ecs.Each2(&s.SystemBase, func(e ecs.Entity, p *component.Position, sc *component.Script) {
		ctx := scripting.StepContext{
			Entity: e.Index(),
			Tick:   s.tick,
			DT:     dt.Seconds(),
			X:      p.X,
			Y:      p.Y,
		}
		var v *component.Velocity
		if ecs.HasComponent[component.Velocity](w, e) {
			v = ecs.GetComponent[component.Velocity](w, e)
			ctx.DX, ctx.DY = v.DX, v.DY
		}

		res, err := s.lua.Step(sc.Func, ctx)
		if err != nil {
			s.log.Warn("script step failed, detaching script",
				zap.Stringer("entity", e),
				zap.String("func", sc.Func),
				zap.Error(err),
			)
			ecs.RemoveComponent[component.Script](w, e)
			return
		}
		p.X, p.Y = res.X, res.Y
		if v != nil {
			v.DX, v.DY = res.DX, res.DY
		}
	})
}
