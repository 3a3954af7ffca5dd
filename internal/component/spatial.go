package component

// Position is a point in world units.
// Pure data, zero methods: all mutations happen in systems.
type Position struct {
	X float64
	Y float64
}

// Velocity is added to Position once per tick.
type Velocity struct {
	DX float64
	DY float64
}
