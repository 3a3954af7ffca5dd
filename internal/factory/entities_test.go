package factory

import (
	"testing"

	"github.com/mixecs/mix/internal/component"
	"github.com/mixecs/mix/internal/config"
	"github.com/mixecs/mix/internal/core/ecs"
	"github.com/mixecs/mix/internal/data"
	"github.com/mixecs/mix/internal/system"
)

const arena = `
entities:
  - tag: player
    position: {x: 10, y: 5}
    velocity: {dx: 1, dy: -1}
    health: {max: 20}
    glyph: {text: "@"}
  - group: rocks
    count: 3
    step_x: 2
    position: {x: 1, y: 1}
  - script: drift
    lifetime: 4
`

func TestSpawn(t *testing.T) {
	sc, err := data.ParseScenario([]byte(arena))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	w := ecs.NewWorld(config.DefaultECS(), nil)
	move := ecs.AddSystem(w, system.NewMoveSystem)

	spawned := Spawn(w, sc)
	if len(spawned) != 5 {
		t.Fatalf("spawned %d entities", len(spawned))
	}

	player := w.GetEntity("player")
	if !player.Equal(spawned[0]) {
		t.Fatalf("player tag points at %s", player)
	}
	if hp := ecs.GetComponent[component.Health](w, player); hp.Current != 20 || hp.Max != 20 {
		t.Fatalf("player health %+v", *hp)
	}
	if g := ecs.GetComponent[component.Glyph](w, player); g.Text != "@" {
		t.Fatalf("player glyph %+v", *g)
	}

	rocks := w.GetGroup("rocks")
	if len(rocks) != 3 {
		t.Fatalf("expected 3 rocks, got %d", len(rocks))
	}
	if x := ecs.GetComponent[component.Position](w, rocks[2]).X; x != 5 {
		t.Fatalf("third rock at x=%v, want 5", x)
	}
	if ecs.HasComponent[component.Velocity](w, rocks[0]) {
		t.Fatal("rock should not move")
	}

	last := spawned[4]
	if s := ecs.GetComponent[component.Script](w, last); s.Func != "drift" {
		t.Fatalf("script %+v", *s)
	}
	if l := ecs.GetComponent[component.Lifetime](w, last); l.Ticks != 4 {
		t.Fatalf("lifetime %+v", *l)
	}

	if move.Len() != 0 {
		t.Fatal("spawned entities visible before Update")
	}
	w.Update()
	if move.Len() != 1 || !move.Contains(player) {
		t.Fatalf("move system tracks %v", move.Entities())
	}
}
