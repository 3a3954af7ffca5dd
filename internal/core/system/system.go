package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: feed external input into components
	PhasePreUpdate               // 1: react to events emitted last tick
	PhaseUpdate                  // 2: simulation logic
	PhasePostUpdate              // 3: damage, lifetimes, queued destruction
	PhaseOutput                  // 4: rendering
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseOutput:
		return "output"
	}
	return "unknown"
}

// System is the host-side view of a system: when it runs and what it does.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
