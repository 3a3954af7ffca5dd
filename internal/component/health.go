package component

type Health struct {
	Current int
	Max     int
}

// Hazard damages every entity with Health within Radius of its Position, each tick.
type Hazard struct {
	Radius float64
	Damage int
}

// Lifetime counts down once per tick; the entity is destroyed at zero.
type Lifetime struct {
	Ticks int
}
