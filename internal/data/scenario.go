package data

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the initial population of a world, loaded from YAML.
type Scenario struct {
	Name     string       `yaml:"name"`
	Entities []EntitySpec `yaml:"entities"`
}

// EntitySpec describes one entity, or Count copies of it laid out StepX/StepY
// apart. Nil sections mean the component is not attached.
type EntitySpec struct {
	Tag      string        `yaml:"tag"` // only valid with count <= 1
	Group    string        `yaml:"group"`
	Count    int           `yaml:"count"` // 0 is treated as 1
	StepX    float64       `yaml:"step_x"`
	StepY    float64       `yaml:"step_y"`
	Position *PositionSpec `yaml:"position"`
	Velocity *VelocitySpec `yaml:"velocity"`
	Health   *HealthSpec   `yaml:"health"`
	Hazard   *HazardSpec   `yaml:"hazard"`
	Glyph    *GlyphSpec    `yaml:"glyph"`
	Script   string        `yaml:"script"`   // Lua step function name
	Lifetime int           `yaml:"lifetime"` // ticks, 0 = forever
}

type PositionSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type VelocitySpec struct {
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`
}

type HealthSpec struct {
	Current int `yaml:"current"`
	Max     int `yaml:"max"`
}

type HazardSpec struct {
	Radius float64 `yaml:"radius"`
	Damage int     `yaml:"damage"`
}

type GlyphSpec struct {
	Text  string `yaml:"text"`
	Color string `yaml:"color"`
	Order int    `yaml:"order"`
}

// LoadScenario loads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(raw)
}

func ParseScenario(raw []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// MaxHazardRadius bounds hazard radii in world units.
const MaxHazardRadius = 64

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Validate checks tag uniqueness and value ranges.
func (sc *Scenario) Validate() error {
	tags := make(map[string]int, len(sc.Entities))
	for i, e := range sc.Entities {
		if e.Count < 0 {
			return fmt.Errorf("entity %d: negative count %d", i, e.Count)
		}
		if e.Tag != "" {
			if e.Count > 1 {
				return fmt.Errorf("entity %d: tag %q cannot be shared by %d copies", i, e.Tag, e.Count)
			}
			if prev, ok := tags[e.Tag]; ok {
				return fmt.Errorf("entity %d: tag %q already used by entity %d", i, e.Tag, prev)
			}
			tags[e.Tag] = i
		}
		if e.Health != nil {
			if e.Health.Max <= 0 {
				return fmt.Errorf("entity %d: health max must be positive", i)
			}
			if e.Health.Current == 0 {
				sc.Entities[i].Health.Current = e.Health.Max
			}
		}
		if e.Hazard != nil {
			r := e.Hazard.Radius
			if math.IsNaN(r) || r < 0 || r > MaxHazardRadius {
				return fmt.Errorf("entity %d: hazard radius %v outside [0,%v]", i, r, float64(MaxHazardRadius))
			}
		}
		if e.Position != nil && !finite(e.Position.X, e.Position.Y, e.StepX, e.StepY) {
			return fmt.Errorf("entity %d: position and step must be finite", i)
		}
		if e.Velocity != nil && !finite(e.Velocity.DX, e.Velocity.DY) {
			return fmt.Errorf("entity %d: velocity must be finite", i)
		}
		if e.Lifetime < 0 {
			return fmt.Errorf("entity %d: negative lifetime", i)
		}
	}
	return nil
}

// Copies returns how many entities e spawns.
func (e EntitySpec) Copies() int {
	if e.Count == 0 {
		return 1
	}
	return e.Count
}

// Count returns the total number of entities the scenario spawns.
func (sc *Scenario) Count() int {
	n := 0
	for _, e := range sc.Entities {
		n += e.Copies()
	}
	return n
}
