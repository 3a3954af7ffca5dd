package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only (tick loop).
type Engine struct {
	vm     *lua.LState
	log    *zap.Logger
	loaded int
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir.
// A missing directory yields an engine with no scripts.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.loaded++
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs src in the engine, typically to define step functions.
func (e *Engine) LoadString(name, src string) error {
	if err := e.vm.DoString(src); err != nil {
		return eris.Wrapf(err, "load script %s", name)
	}
	e.loaded++
	e.log.Debug("loaded lua chunk", zap.String("name", name))
	return nil
}

// Len returns the number of scripts loaded so far.
func (e *Engine) Len() int { return e.loaded }

// HasFunc reports whether a global Lua function called name exists.
func (e *Engine) HasFunc(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// StepContext is the state handed to a step function for one entity.
type StepContext struct {
	Entity uint32
	Tick   uint64
	DT     float64 // seconds
	X, Y   float64
	DX, DY float64
}

// StepResult is what a step function returns. Fields the script leaves out
// keep their input value.
type StepResult struct {
	X, Y   float64
	DX, DY float64
}

// Step calls the Lua function fn(ctx) and reads back {x, y, dx, dy}.
func (e *Engine) Step(fn string, ctx StepContext) (StepResult, error) {
	res := StepResult{X: ctx.X, Y: ctx.Y, DX: ctx.DX, DY: ctx.DY}
	f, ok := e.vm.GetGlobal(fn).(*lua.LFunction)
	if !ok {
		return res, eris.Errorf("lua function %s not found", fn)
	}

	t := e.vm.NewTable()
	t.RawSetString("entity", lua.LNumber(ctx.Entity))
	t.RawSetString("tick", lua.LNumber(ctx.Tick))
	t.RawSetString("dt", lua.LNumber(ctx.DT))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("dx", lua.LNumber(ctx.DX))
	t.RawSetString("dy", lua.LNumber(ctx.DY))

	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return res, eris.Wrapf(err, "lua %s", fn)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return res, eris.Errorf("lua %s returned %s, want table", fn, result.Type())
	}
	res.X = lFloat(rt, "x", res.X)
	res.Y = lFloat(rt, "y", res.Y)
	res.DX = lFloat(rt, "dx", res.DX)
	res.DY = lFloat(rt, "dy", res.DY)
	return res, nil
}

// lFloat reads a number field from a Lua table, falling back to def.
func lFloat(t *lua.LTable, key string, def float64) float64 {
	n, ok := t.RawGetString(key).(lua.LNumber)
	if !ok {
		return def
	}
	return float64(n)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
