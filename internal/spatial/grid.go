package spatial

import (
	"math"

	"github.com/mixecs/mix/internal/core/ecs"
)

// Grid buckets entities into square cells so range queries only look at the
// cells a circle overlaps. Accessed only from the tick loop goroutine, no locks.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]ecs.Entity
	count    int
}

// maxRadius is the widest query, in cells, Nearby will scan.
const maxRadius = 1024

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type cellKey struct {
	cx, cy int32
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]ecs.Entity),
	}
}

func (g *Grid) coord(v float64) int32 { return int32(math.Floor(v / g.cellSize)) }

func (g *Grid) key(x, y float64) cellKey {
	return cellKey{cx: g.coord(x), cy: g.coord(y)}
}

// Insert places e into the cell containing (x, y).
func (g *Grid) Insert(e ecs.Entity, x, y float64) {
	k := g.key(x, y)
	g.cells[k] = append(g.cells[k], e)
	g.count++
}

// Nearby returns the entities in every cell overlapping the square around
// (x, y) with half-width radius. Caller does fine-grained distance filtering.
func (g *Grid) Nearby(x, y, radius float64) []ecs.Entity {
	if !finite(x, y, radius) || radius < 0 || radius > maxRadius*g.cellSize {
		return nil
	}
	minX, maxX := g.coord(x-radius), g.coord(x+radius)
	minY, maxY := g.coord(y-radius), g.coord(y+radius)
	var result []ecs.Entity
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			result = append(result, g.cells[cellKey{cx: cx, cy: cy}]...)
		}
	}
	return result
}

// Len returns the number of inserted entities.
func (g *Grid) Len() int { return g.count }

// Clear empties the grid and keeps the cell map for reuse.
func (g *Grid) Clear() {
	clear(g.cells)
	g.count = 0
}
