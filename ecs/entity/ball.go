package entity

import (
	"fmt"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
	"github.com/milk9111/beetleball/prefabs"
)

// NewBall builds a dung ball from ball.yaml.
func NewBall(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadBallSpec()
	if err != nil {
		return ecs.None, fmt.Errorf("ball: %w", err)
	}
	return NewBallFromSpec(w, spec)
}

func NewBallAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadBallSpec()
	if err != nil {
		return ecs.None, fmt.Errorf("ball: %w", err)
	}
	spec.Transform.X = x
	spec.Transform.Y = y
	return NewBallFromSpec(w, spec)
}

func NewBallFromSpec(w *ecs.World, spec *prefabs.BallSpec) (ecs.Entity, error) {
	if spec.BaseRadius <= 0 {
		spec.BaseRadius = 1
	}
	if spec.Radius <= 0 {
		spec.Radius = spec.BaseRadius
	}
	if spec.MassScale <= 0 {
		spec.MassScale = 1
	}

	e := w.CreateEntity()

	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{
		X: spec.Transform.X,
		Y: spec.Transform.Y,
	}); err != nil {
		return ecs.None, fmt.Errorf("ball: add transform: %w", err)
	}

	ball := component.Ball{
		Radius:     spec.Radius,
		BaseRadius: spec.BaseRadius,
		MaxRadius:  spec.MaxRadius,
		MassScale:  spec.MassScale,
	}
	if err := ecs.Add(w, e, component.BallComponent, ball); err != nil {
		return ecs.None, fmt.Errorf("ball: add ball: %w", err)
	}

	if err := ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Radius:     ball.Radius,
		Mass:       ball.CurrentMass(),
		Friction:   spec.Body.Friction,
		Elasticity: spec.Body.Elasticity,
	}); err != nil {
		return ecs.None, fmt.Errorf("ball: add physics body: %w", err)
	}

	return e, nil
}
