package component

import "github.com/milk9111/beetleball/ecs"

// BeetleStats are the upgradeable locomotion stats.
type BeetleStats struct {
	TopSpeed     float64
	Acceleration float64
	Deceleration float64
	ReverseSpeed float64
	Strength     float64
	Control      float64
}

// Beetle holds locomotion state. AttachedBall is a weak handle: the beetle
// never owns the ball's lifecycle, and the attachment system re-validates
// the handle every tick before dereferencing it.
type Beetle struct {
	Stats        BeetleStats
	CurrentSpeed float64
	AttachedBall ecs.Entity
}

var BeetleComponent = ecs.NewComponent[Beetle]()
