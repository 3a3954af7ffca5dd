package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/mixecs/mix/internal/component"
	"github.com/mixecs/mix/internal/config"
	"github.com/mixecs/mix/internal/core/ecs"
	"github.com/mixecs/mix/internal/render"
)

const testScenario = `
name: hazard test
entities:
  - tag: player
    position: {x: 0, y: 0}
    health: {max: 3}
    glyph: {text: "@"}
  - tag: lava
    position: {x: 1, y: 0}
    hazard: {radius: 1.5, damage: 1}
  - tag: spark
    position: {x: 5, y: 5}
    script: drift
    lifetime: 2
`

const testScript = `
function drift(ctx)
  return { x = ctx.x + 1 }
end
`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	scripts := filepath.Join(dir, "scripts")
	scenario := filepath.Join(dir, "data", "scenario.yaml")
	writeFile(t, filepath.Join(scripts, "drift.lua"), testScript)
	writeFile(t, scenario, testScenario)

	cfgPath := filepath.Join(dir, "mix.toml")
	writeFile(t, cfgPath, fmt.Sprintf(`
[ecs]
minimum_free_ids = 0

[loop]
tick_rate = "10ms"
max_ticks = 4

[scripting]
dir = %q

[scenario]
path = %q
`, scripts, scenario))

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestSimulationRunsScenario(t *testing.T) {
	cfg := loadTestConfig(t)
	sim, err := newSimulation(cfg, zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("newSimulation: %v", err)
	}
	defer sim.Close()

	if len(sim.spawned) != 3 {
		t.Fatalf("spawned %d entities", len(sim.spawned))
	}
	if sim.lua.Len() != 1 {
		t.Fatalf("loaded %d scripts", sim.lua.Len())
	}
	w := sim.world
	player := w.GetEntity("player")
	spark := w.GetEntity("spark")

	sim.runner.Tick(cfg.Loop.TickRate)
	sim.runner.Tick(cfg.Loop.TickRate)
	if x := ecs.GetComponent[component.Position](w, spark).X; x != 7 {
		t.Fatalf("spark x = %v after two ticks, want 7", x)
	}
	if hp := ecs.GetComponent[component.Health](w, player).Current; hp != 1 {
		t.Fatalf("player hp = %d after two ticks, want 1", hp)
	}
	if sim.expired != 1 || !w.PendingDestroy(spark) {
		t.Fatalf("spark should have expired: expired=%d", sim.expired)
	}

	sim.runner.Tick(cfg.Loop.TickRate)
	if w.IsAlive(spark) {
		t.Fatal("spark still alive after Apply")
	}
	if sim.deaths != 1 {
		t.Fatalf("deaths = %d, want 1", sim.deaths)
	}

	sim.runner.Tick(cfg.Loop.TickRate)
	if w.IsAlive(player) || w.EntityManager().HasTag("player") {
		t.Fatal("player should be gone")
	}
	if !w.EntityManager().HasTag("lava") {
		t.Fatal("lava lost its tag")
	}
	if sim.runner.Ticks() != uint64(cfg.Loop.MaxTicks) {
		t.Fatalf("ticks = %d", sim.runner.Ticks())
	}
	sim.logSummary()
}

func TestSimulationWithScreen(t *testing.T) {
	cfg := loadTestConfig(t)
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	defer ss.Fini()
	ss.SetSize(40, 12)

	sim, err := newSimulation(cfg, zap.NewNop(), ss)
	if err != nil {
		t.Fatalf("newSimulation: %v", err)
	}
	defer sim.Close()
	if !ecs.HasSystem[*render.RenderSystem](sim.world) {
		t.Fatal("render system not registered")
	}

	sim.runner.Tick(cfg.Loop.TickRate)
	if r, _, _, _ := ss.GetContent(0, 0); r != '@' {
		t.Fatalf("cell (0,0) = %q, want '@'", r)
	}
}

func TestSimulationMissingScenario(t *testing.T) {
	cfg := config.Default()
	cfg.Scripting.Dir = ""
	cfg.Scenario.Path = filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := newSimulation(cfg, zap.NewNop(), nil); err == nil {
		t.Fatal("expected scenario error")
	}
}

func TestStartProfileDisabled(t *testing.T) {
	if p := startProfile(config.ProfileConfig{}); p != nil {
		t.Fatal("profiling should be off by default")
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		log, err := newLogger(config.LoggingConfig{Level: "bogus", Format: format})
		if err != nil {
			t.Fatalf("newLogger(%s): %v", format, err)
		}
		if !log.Core().Enabled(zap.InfoLevel) || log.Core().Enabled(zap.DebugLevel) {
			t.Fatalf("%s logger should fall back to info level", format)
		}
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mix.log")
	log, err := newLogger(config.LoggingConfig{Level: "debug", Format: "console", File: path})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	log.Debug("tick applied", zap.Int("created", 3))
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, "tick applied") || !strings.Contains(out, "DEBUG") {
		t.Fatalf("unexpected log file contents %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("color codes written to the log file")
	}
}
