package component

import "github.com/milk9111/beetleball/ecs"

// Transform is the post-step pose read by dependents. X/Y are the ground
// plane, Altitude is height above the terrain surface datum, Heading is
// the yaw angle in radians on the ground plane.
type Transform struct {
	X        float64
	Y        float64
	Altitude float64
	Heading  float64
}

var TransformComponent = ecs.NewComponent[Transform]()
