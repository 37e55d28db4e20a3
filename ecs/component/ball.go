package component

import "github.com/milk9111/beetleball/ecs"

// Ball holds the dung ball's growth state. Radius is mutated only through
// the grow/damage operations in the system package; that exclusivity keeps
// mass and the collision shape consistent with it.
type Ball struct {
	Radius     float64
	BaseRadius float64
	MaxRadius  float64

	// MassScale is the mass at BaseRadius; current mass follows the
	// volumetric law MassScale * (Radius/BaseRadius)^3.
	MassScale float64

	// Integrity counts cumulative damage taken, for progression UI.
	Integrity float64
}

// CurrentMass applies the volumetric scaling law.
func (b Ball) CurrentMass() float64 {
	ratio := b.Radius / b.BaseRadius
	return b.MassScale * ratio * ratio * ratio
}

var BallComponent = ecs.NewComponent[Ball]()
