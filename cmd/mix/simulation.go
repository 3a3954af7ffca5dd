package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/mixecs/mix/internal/component"
	"github.com/mixecs/mix/internal/config"
	"github.com/mixecs/mix/internal/core/ecs"
	"github.com/mixecs/mix/internal/core/event"
	coresys "github.com/mixecs/mix/internal/core/system"
	"github.com/mixecs/mix/internal/data"
	"github.com/mixecs/mix/internal/factory"
	"github.com/mixecs/mix/internal/render"
	"github.com/mixecs/mix/internal/scripting"
	"github.com/mixecs/mix/internal/system"
)

// simulation is everything the tick loop drives.
type simulation struct {
	world   *ecs.World
	runner  *coresys.Runner
	lua     *scripting.Engine
	log     *zap.Logger
	spawned []ecs.Entity

	deaths  int
	expired int
}

// newSimulation builds a world from cfg. screen may be nil, in which case no
// render system is registered.
func newSimulation(cfg *config.Config, log *zap.Logger, screen tcell.Screen) (*simulation, error) {
	lua, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("scripting: %w", err)
	}
	sc, err := data.LoadScenario(cfg.Scenario.Path)
	if err != nil {
		lua.Close()
		return nil, fmt.Errorf("scenario: %w", err)
	}

	world := ecs.NewWorld(cfg.ECS, log)
	sim := &simulation{
		world:  world,
		runner: coresys.NewRunner(world, log),
		lua:    lua,
		log:    log,
	}

	// Systems are registered with the world (interest lists) and with the
	// runner (phase order).
	sim.runner.Register(ecs.AddSystem(world, system.NewMoveSystem))
	sim.runner.Register(ecs.AddSystem(world, func(w *ecs.World) *system.ScriptSystem {
		return system.NewScriptSystem(w, lua, log)
	}))
	sim.runner.Register(ecs.AddSystem(world, system.NewHealthSystem))
	sim.runner.Register(ecs.AddSystem(world, system.NewHazardSystem))
	sim.runner.Register(ecs.AddSystem(world, system.NewLifetimeSystem))
	if screen != nil {
		sim.runner.Register(ecs.AddSystem(world, render.NewRenderSystem(screen, cfg.Render)))
	}

	event.Subscribe(world.Events(), func(ev component.DeathEvent) {
		sim.deaths++
		log.Info("entity died", zap.Stringer("entity", ev.Entity), zap.String("tag", ev.Tag))
	})
	event.Subscribe(world.Events(), func(ev component.ExpiredEvent) {
		sim.expired++
		log.Debug("entity expired", zap.Stringer("entity", ev.Entity))
	})

	for _, e := range sc.Entities {
		if e.Script != "" && !lua.HasFunc(e.Script) {
			log.Warn("scenario references unknown script", zap.String("func", e.Script))
		}
	}
	sim.spawned = factory.Spawn(world, sc)
	log.Info("scenario spawned",
		zap.String("scenario", sc.Name),
		zap.Int("entities", len(sim.spawned)),
	)
	return sim, nil
}

func (s *simulation) logSummary() {
	em := s.world.EntityManager()
	s.log.Info("simulation summary",
		zap.Uint64("ticks", s.runner.Ticks()),
		zap.Int("alive", em.Len()-em.FreeLen()),
		zap.Int("deaths", s.deaths),
		zap.Int("expired", s.expired),
	)
}

func (s *simulation) Close() {
	s.lua.Close()
}
