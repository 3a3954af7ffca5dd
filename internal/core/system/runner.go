package system

import (
	"sort"
	"time"

	"github.com/mixecs/mix/internal/core/ecs"
	"go.uber.org/zap"
)

// Runner drives one World: each tick applies the world's buffered changes,
// runs the systems in phase order, then hands the tick's events to subscribers.
type Runner struct {
	world   *ecs.World
	log     *zap.Logger
	systems []System
	sorted  bool
	ticks   uint64
}

func NewRunner(world *ecs.World, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		world:   world,
		log:     log,
		systems: make([]System, 0, 16),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
	r.log.Debug("runner system added", zap.Stringer("phase", s.Phase()), zap.Int("count", len(r.systems)))
}

// Tick runs one full frame.
func (r *Runner) Tick(dt time.Duration) {
	r.world.Update()
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(dt)
	}
	r.world.Events().Dispatch()
	r.ticks++
}

// TickPhase runs only the systems of one phase, without applying the world.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

func (r *Runner) Ticks() uint64 { return r.ticks }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
