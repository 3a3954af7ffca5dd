package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `
name: arena
entities:
  - tag: player
    group: heroes
    position: {x: 10, y: 5}
    velocity: {dx: 1}
    health: {max: 20}
    glyph: {text: "@", color: yellow, order: 10}
  - group: rocks
    count: 3
    step_x: 2
    position: {x: 0, y: 0}
  - script: drift
    lifetime: 30
    hazard: {radius: 1.5, damage: 2}
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sc.Name != "arena" || len(sc.Entities) != 3 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	p := sc.Entities[0]
	if p.Position.X != 10 || p.Velocity.DX != 1 || p.Velocity.DY != 0 {
		t.Fatalf("player spec %+v", p)
	}
	if p.Health.Current != 20 {
		t.Fatalf("current health should default to max, got %d", p.Health.Current)
	}
	if p.Glyph.Text != "@" || p.Glyph.Order != 10 {
		t.Fatalf("glyph %+v", p.Glyph)
	}
	if sc.Entities[2].Velocity != nil {
		t.Fatal("absent section should stay nil")
	}
	if sc.Count() != 5 {
		t.Fatalf("expected 5 entities, got %d", sc.Count())
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"duplicate tag", "entities:\n  - tag: a\n  - tag: a\n", "already used"},
		{"tag with copies", "entities:\n  - tag: a\n    count: 2\n", "cannot be shared"},
		{"negative count", "entities:\n  - count: -1\n", "negative count"},
		{"bad health", "entities:\n  - health: {max: 0}\n", "health max"},
		{"bad radius", "entities:\n  - hazard: {radius: -1}\n", "hazard radius"},
		{"nan radius", "entities:\n  - hazard: {radius: .nan}\n", "hazard radius"},
		{"huge radius", "entities:\n  - hazard: {radius: 1e9}\n", "hazard radius"},
		{"infinite position", "entities:\n  - position: {x: .inf}\n", "finite"},
		{"nan velocity", "entities:\n  - velocity: {dy: .nan}\n", "finite"},
		{"bad lifetime", "entities:\n  - lifetime: -3\n", "negative lifetime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q error, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Count() != 5 {
		t.Fatalf("expected 5 entities, got %d", sc.Count())
	}
	if _, err := LoadScenario(path + ".missing"); err == nil {
		t.Fatal("expected read error")
	}
}
