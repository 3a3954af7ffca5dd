package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mixecs/mix/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(cfgPath string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m                mix  v0.1.0                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       entity-component-system runtime     \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mconfig:\033[0m %s\n\n", cfgPath)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/mix.toml"
	if p := os.Getenv("MIX_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	if cfg.Render.Enabled && cfg.Logging.File == "" {
		cfg.Logging.File = "mix.log"
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if p := startProfile(cfg.Profile); p != nil {
		defer p.Stop()
	}

	printBanner(cfgPath)

	// 3. Open the screen before the systems are built so the render
	// system can be registered with the others.
	var screen tcell.Screen
	if cfg.Render.Enabled {
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		defer screen.Fini()
	}

	// 4. Build the world, load scripts and spawn the scenario
	sim, err := newSimulation(cfg, log, screen)
	if err != nil {
		return err
	}
	defer sim.Close()
	if screen == nil {
		printSection("world")
		printStat("scripts", sim.lua.Len())
		printStat("systems", sim.world.SystemManager().Len())
		printStat("entities", len(sim.spawned))
		printOK(fmt.Sprintf("world %s ready", sim.world.ID()))
		fmt.Println()
	}

	// 5. Start the tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	var quitCh <-chan struct{}
	if screen != nil {
		quitCh = watchKeys(screen)
	}

	ticker := time.NewTicker(cfg.Loop.TickRate)
	defer ticker.Stop()

	if screen == nil {
		printReady(fmt.Sprintf("tick loop started (tick: %s)", cfg.Loop.TickRate))
		fmt.Println()
	}

	for {
		select {
		case <-ticker.C:
			sim.runner.Tick(cfg.Loop.TickRate)
			if cfg.Loop.MaxTicks > 0 && sim.runner.Ticks() >= uint64(cfg.Loop.MaxTicks) {
				log.Info("tick limit reached", zap.Uint64("ticks", sim.runner.Ticks()))
				sim.logSummary()
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("received shutdown signal", zap.String("signal", sig.String()))
			sim.logSummary()
			return nil
		case <-quitCh:
			log.Info("quit requested")
			sim.logSummary()
			return nil
		}
	}
}

// watchKeys closes the returned channel when the user presses q, Escape or
// Ctrl-C, or when the screen stops delivering events.
func watchKeys(screen tcell.Screen) <-chan struct{} {
	quit := make(chan struct{})
	go func() {
		defer close(quit)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
			}
		}
	}()
	return quit
}

// startProfile starts a pkg/profile session for the configured mode. The
// caller stops it on exit.
func startProfile(cfg config.ProfileConfig) interface{ Stop() } {
	switch cfg.Mode {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Dir), profile.NoShutdownHook)
	case "mem":
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath(cfg.Dir), profile.NoShutdownHook)
	}
	return nil
}

// newLogger builds the process logger. While the terminal renderer owns the
// screen, logs must go to cfg.File instead of stderr.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.Encoding = "json"
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
		if cfg.File != "" {
			// No color codes in a file.
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	}
	zapCfg.Level = level
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
