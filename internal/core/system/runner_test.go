package system

import (
	"testing"
	"time"

	"github.com/mixecs/mix/internal/config"
	"github.com/mixecs/mix/internal/core/ecs"
	"github.com/mixecs/mix/internal/core/event"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r *recorder) Phase() Phase         { return r.phase }
func (r *recorder) Update(time.Duration) { *r.log = append(*r.log, r.name) }

type ping struct{ N int }

func TestTickRunsPhasesInOrder(t *testing.T) {
	w := ecs.NewWorld(config.DefaultECS(), nil)
	r := NewRunner(w, nil)
	var log []string
	r.Register(&recorder{"render", PhaseOutput, &log})
	r.Register(&recorder{"move", PhaseUpdate, &log})
	r.Register(&recorder{"input", PhaseInput, &log})
	r.Register(&recorder{"ai", PhaseUpdate, &log})

	r.Tick(time.Millisecond)
	want := []string{"input", "move", "ai", "render"}
	if len(log) != len(want) {
		t.Fatalf("got %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("got %v, want %v", log, want)
		}
	}
	if r.Ticks() != 1 {
		t.Fatalf("ticks = %d", r.Ticks())
	}
}

func TestTickPhase(t *testing.T) {
	w := ecs.NewWorld(config.DefaultECS(), nil)
	r := NewRunner(w, nil)
	var log []string
	r.Register(&recorder{"input", PhaseInput, &log})
	r.Register(&recorder{"move", PhaseUpdate, &log})
	r.TickPhase(PhaseInput, 0)
	if len(log) != 1 || log[0] != "input" {
		t.Fatalf("got %v", log)
	}
}

type emitter struct{ w *ecs.World }

func (e *emitter) Phase() Phase         { return PhaseUpdate }
func (e *emitter) Update(time.Duration) { ecs.Emit(e.w, ping{N: 1}) }

func TestTickDispatchesThenNextTickClears(t *testing.T) {
	w := ecs.NewWorld(config.DefaultECS(), nil)
	r := NewRunner(w, nil)
	r.Register(&emitter{w})
	delivered := 0
	event.Subscribe(w.Events(), func(p ping) { delivered += p.N })

	r.Tick(0)
	if delivered != 1 {
		t.Fatalf("delivered = %d", delivered)
	}
	if n := len(ecs.Events[ping](w)); n != 1 {
		t.Fatalf("expected event readable until next tick, got %d", n)
	}
	r.Tick(0)
	if delivered != 2 {
		t.Fatalf("old event redelivered or lost: %d", delivered)
	}
}
