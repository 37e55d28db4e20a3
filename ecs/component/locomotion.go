package component

import "github.com/milk9111/beetleball/ecs"

// Locomotion stores per-tick input for a beetle. DirX/DirY is a normalized
// ground-plane direction (or zero), Throttle is -1..1. Setting it has no
// physics side effect by itself; the locomotion system consumes it once
// per tick.
type Locomotion struct {
	DirX     float64
	DirY     float64
	Throttle float64

	AttachPressed bool
	DetachPressed bool
}

var LocomotionComponent = ecs.NewComponent[Locomotion]()
