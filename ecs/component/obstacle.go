package component

import "github.com/milk9111/beetleball/ecs"

// Obstacle marks a static collider that chips the ball on hard impacts.
type Obstacle struct {
	// DamagePerImpulse converts collision impulse into radius loss.
	DamagePerImpulse float64
}

var ObstacleComponent = ecs.NewComponent[Obstacle]()
