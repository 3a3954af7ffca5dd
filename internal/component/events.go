package component

import "github.com/mixecs/mix/internal/core/ecs"

type DamageEvent struct {
	Source ecs.Entity
	Target ecs.Entity
	Amount int
}

type DeathEvent struct {
	Entity ecs.Entity
	Tag    string
}

// ExpiredEvent is emitted when a Lifetime runs out.
type ExpiredEvent struct {
	Entity ecs.Entity
}
