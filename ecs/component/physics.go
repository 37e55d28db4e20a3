package component

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/beetleball/ecs"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Radius > 0 means a circle collider, otherwise Width/Height describe a
// box. The physics system owns Body/Shape; nobody else creates or removes
// them.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Radius     float64
	Width      float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool

	// FixedRotation pins the body's angle (infinite moment); used by the
	// beetle, which steers by heading rather than by torque.
	FixedRotation bool

	// Vertical axis state, integrated outside the 2D space.
	VerticalVel float64
}

var PhysicsBodyComponent = ecs.NewComponent[PhysicsBody]()
