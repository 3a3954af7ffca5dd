package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ECS       ECSConfig       `toml:"ecs"`
	Loop      LoopConfig      `toml:"loop"`
	Logging   LoggingConfig   `toml:"logging"`
	Scripting ScriptingConfig `toml:"scripting"`
	Scenario  ScenarioConfig  `toml:"scenario"`
	Render    RenderConfig    `toml:"render"`
	Profile   ProfileConfig   `toml:"profile"`
}

// ECSConfig holds the runtime capacity parameters. They are read once when a
// World is built and never change afterwards.
type ECSConfig struct {
	MaxComponents   int `toml:"max_components"`    // 1-64, width of the component mask in use
	MinimumFreeIDs  int `toml:"minimum_free_ids"`  // free indices kept back before reuse
	DefaultPoolSize int `toml:"default_pool_size"` // initial slots of a new component pool
}

type LoopConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	MaxTicks int           `toml:"max_ticks"` // 0 = run until interrupted
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr; forced to mix.log while rendering
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
}

type ScenarioConfig struct {
	Path string `toml:"path"`
}

type RenderConfig struct {
	Enabled bool `toml:"enabled"`
	Width   int  `toml:"width"`
	Height  int  `toml:"height"`
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu" or "mem"
	Dir  string `toml:"dir"`
}

// MaxComponentsLimit is the width of the component mask.
const MaxComponentsLimit = 64

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects capacity and loop parameters the runtime cannot honor.
func (c *Config) Validate() error {
	if err := c.ECS.Validate(); err != nil {
		return err
	}
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("loop.tick_rate must be positive, got %s", c.Loop.TickRate)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("profile.mode must be one of \"\", cpu, mem; got %q", c.Profile.Mode)
	}
	return nil
}

// Validate checks the capacity parameters. The entity manager calls it too,
// so a hand-built ECSConfig gets the same checks as a loaded file.
func (c ECSConfig) Validate() error {
	if c.MaxComponents < 1 || c.MaxComponents > MaxComponentsLimit {
		return fmt.Errorf("ecs.max_components must be in [1,%d], got %d", MaxComponentsLimit, c.MaxComponents)
	}
	if c.MinimumFreeIDs < 0 {
		return fmt.Errorf("ecs.minimum_free_ids must not be negative, got %d", c.MinimumFreeIDs)
	}
	if c.DefaultPoolSize < 0 {
		return fmt.Errorf("ecs.default_pool_size must not be negative, got %d", c.DefaultPoolSize)
	}
	return nil
}

// Default returns the configuration used when a key is absent from the file.
func Default() *Config {
	return &Config{
		ECS: DefaultECS(),
		Loop: LoopConfig{
			TickRate: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Scenario: ScenarioConfig{
			Path: "data/scenario.yaml",
		},
		Render: RenderConfig{
			Width:  80,
			Height: 24,
		},
		Profile: ProfileConfig{
			Dir: ".",
		},
	}
}

func DefaultECS() ECSConfig {
	return ECSConfig{
		MaxComponents:   MaxComponentsLimit,
		MinimumFreeIDs:  1024,
		DefaultPoolSize: 100,
	}
}
