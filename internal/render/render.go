package render

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/mixecs/mix/internal/component"
	"github.com/mixecs/mix/internal/config"
	"github.com/mixecs/mix/internal/core/ecs"
	coresys "github.com/mixecs/mix/internal/core/system"
)

// hudRows is the number of rows kept free at the bottom of the screen.
const hudRows = 2

// RenderSystem draws every entity with a Position and a Glyph onto a tcell
// screen, followed by a one-line status bar.
// Phase 4 (Output).
type RenderSystem struct {
	ecs.SystemBase
	screen tcell.Screen
	cfg    config.RenderConfig
	frames uint64
}

// NewRenderSystem returns a constructor suitable for ecs.AddSystem. A positive
// cfg.Width or cfg.Height caps the area drawn on screens larger than that.
func NewRenderSystem(screen tcell.Screen, cfg config.RenderConfig) func(*ecs.World) *RenderSystem {
	return func(w *ecs.World) *RenderSystem {
		s := &RenderSystem{screen: screen, cfg: cfg}
		ecs.RequireComponent[component.Position](w, &s.SystemBase)
		ecs.RequireComponent[component.Glyph](w, &s.SystemBase)
		return s
	}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

// Frames returns the number of frames drawn so far.
func (s *RenderSystem) Frames() uint64 { return s.frames }

type drawable struct {
	x, y  int
	glyph component.Glyph
}

func (s *RenderSystem) Update(dt time.Duration) {
	s.frames++
	s.screen.Clear()

	width, height := s.viewport()
	viewH := height - hudRows

	items := make([]drawable, 0, s.Len())
	ecs.Each2(&s.SystemBase, func(_ ecs.Entity, p *component.Position, g *component.Glyph) {
		// Each world cell is two columns wide so emoji line up with ASCII.
		sx, sy := int(math.Floor(p.X))*2, int(math.Floor(p.Y))
		if sx < 0 || sx >= width || sy < 0 || sy >= viewH {
			return
		}
		items = append(items, drawable{x: sx, y: sy, glyph: *g})
	})
	// Lower order is drawn first so higher order ends up on top.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].glyph.Order < items[j].glyph.Order
	})
	for _, it := range items {
		style := tcell.StyleDefault.Foreground(colorOf(it.glyph.Color)).Background(tcell.ColorBlack)
		s.putGlyph(it.x, it.y, it.glyph.Text, style)
	}

	s.drawHUD(width, height, len(items), dt)
	s.screen.Show()
}

func (s *RenderSystem) viewport() (int, int) {
	width, height := s.screen.Size()
	if s.cfg.Width > 0 && s.cfg.Width < width {
		width = s.cfg.Width
	}
	if s.cfg.Height > 0 && s.cfg.Height < height {
		height = s.cfg.Height
	}
	return width, height
}

func (s *RenderSystem) drawHUD(width, height, drawn int, dt time.Duration) {
	hudY := height - hudRows
	if hudY < 0 {
		return
	}
	line := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for x := 0; x < width; x++ {
		s.screen.SetContent(x, hudY, '─', nil, line)
	}
	em := s.World().EntityManager()
	status := fmt.Sprintf("frame %d  dt %s  entities %d  drawn %d  systems %d",
		s.frames, dt, em.Len()-em.FreeLen(), drawn, s.World().SystemManager().Len())
	s.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at (x, y).
func (s *RenderSystem) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	s.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		s.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

func (s *RenderSystem) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		s.screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}

func colorOf(name string) tcell.Color {
	if name == "" {
		return tcell.ColorWhite
	}
	if c := tcell.GetColor(name); c != tcell.ColorDefault {
		return c
	}
	return tcell.ColorWhite
}
