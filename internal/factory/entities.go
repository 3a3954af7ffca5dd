package factory

import (
	"github.com/mixecs/mix/internal/component"
	"github.com/mixecs/mix/internal/core/ecs"
	"github.com/mixecs/mix/internal/data"
)

// Spawn creates every entity described by sc. The entities are live at once
// but join the systems on the next World.Update.
func Spawn(w *ecs.World, sc *data.Scenario) []ecs.Entity {
	out := make([]ecs.Entity, 0, sc.Count())
	for _, spec := range sc.Entities {
		for i := 0; i < spec.Copies(); i++ {
			out = append(out, NewFromSpec(w, spec, i))
		}
	}
	return out
}

// NewFromSpec creates copy i of spec.
func NewFromSpec(w *ecs.World, spec data.EntitySpec, i int) ecs.Entity {
	id := w.CreateEntity()
	if spec.Position != nil {
		ecs.AddComponent(w, id, component.Position{
			X: spec.Position.X + float64(i)*spec.StepX,
			Y: spec.Position.Y + float64(i)*spec.StepY,
		})
	}
	if spec.Velocity != nil {
		ecs.AddComponent(w, id, component.Velocity{DX: spec.Velocity.DX, DY: spec.Velocity.DY})
	}
	if spec.Health != nil {
		ecs.AddComponent(w, id, component.Health{Current: spec.Health.Current, Max: spec.Health.Max})
	}
	if spec.Hazard != nil {
		ecs.AddComponent(w, id, component.Hazard{Radius: spec.Hazard.Radius, Damage: spec.Hazard.Damage})
	}
	if spec.Glyph != nil {
		ecs.AddComponent(w, id, component.Glyph{Text: spec.Glyph.Text, Color: spec.Glyph.Color, Order: spec.Glyph.Order})
	}
	if spec.Script != "" {
		ecs.AddComponent(w, id, component.Script{Func: spec.Script})
	}
	if spec.Lifetime > 0 {
		ecs.AddComponent(w, id, component.Lifetime{Ticks: spec.Lifetime})
	}
	if spec.Tag != "" {
		w.EntityManager().Tag(id, spec.Tag)
	}
	if spec.Group != "" {
		w.EntityManager().Group(id, spec.Group)
	}
	return id
}
