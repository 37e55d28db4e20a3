package entity

import (
	"fmt"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
	"github.com/milk9111/beetleball/prefabs"
)

// NewObstacleAt builds a static obstacle from obstacle.yaml at a position.
func NewObstacleAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadObstacleSpec()
	if err != nil {
		return ecs.None, fmt.Errorf("obstacle: %w", err)
	}
	spec.Transform.X = x
	spec.Transform.Y = y
	return NewObstacleFromSpec(w, spec)
}

func NewObstacleFromSpec(w *ecs.World, spec *prefabs.ObstacleSpec) (ecs.Entity, error) {
	e := w.CreateEntity()

	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{
		X: spec.Transform.X,
		Y: spec.Transform.Y,
	}); err != nil {
		return ecs.None, fmt.Errorf("obstacle: add transform: %w", err)
	}

	if err := ecs.Add(w, e, component.ObstacleComponent, component.Obstacle{
		DamagePerImpulse: spec.DamagePerImpulse,
	}); err != nil {
		return ecs.None, fmt.Errorf("obstacle: add obstacle: %w", err)
	}

	if err := ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Radius:     spec.Body.Radius,
		Width:      spec.Body.Width,
		Height:     spec.Body.Height,
		Friction:   spec.Body.Friction,
		Elasticity: spec.Body.Elasticity,
		Static:     true,
	}); err != nil {
		return ecs.None, fmt.Errorf("obstacle: add physics body: %w", err)
	}

	return e, nil
}
