package entity

import (
	"fmt"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
	"github.com/milk9111/beetleball/prefabs"
)

// NewBeetle builds the player beetle from beetle.yaml.
func NewBeetle(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadBeetleSpec()
	if err != nil {
		return ecs.None, fmt.Errorf("beetle: %w", err)
	}
	return NewBeetleFromSpec(w, spec)
}

func NewBeetleAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadBeetleSpec()
	if err != nil {
		return ecs.None, fmt.Errorf("beetle: %w", err)
	}
	spec.Transform.X = x
	spec.Transform.Y = y
	return NewBeetleFromSpec(w, spec)
}

func NewBeetleFromSpec(w *ecs.World, spec *prefabs.BeetleSpec) (ecs.Entity, error) {
	e := w.CreateEntity()

	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{
		X:       spec.Transform.X,
		Y:       spec.Transform.Y,
		Heading: spec.Transform.Heading,
	}); err != nil {
		return ecs.None, fmt.Errorf("beetle: add transform: %w", err)
	}

	if err := ecs.Add(w, e, component.BeetleComponent, component.Beetle{
		Stats: component.BeetleStats{
			TopSpeed:     spec.TopSpeed,
			Acceleration: spec.Acceleration,
			Deceleration: spec.Deceleration,
			ReverseSpeed: spec.ReverseSpeed,
			Strength:     spec.Strength,
			Control:      spec.Control,
		},
	}); err != nil {
		return ecs.None, fmt.Errorf("beetle: add beetle: %w", err)
	}

	if err := ecs.Add(w, e, component.LocomotionComponent, component.Locomotion{}); err != nil {
		return ecs.None, fmt.Errorf("beetle: add locomotion: %w", err)
	}

	mass := spec.Body.Mass
	if mass <= 0 {
		mass = 1
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Width:         spec.Body.Width,
		Height:        spec.Body.Height,
		Mass:          mass,
		Friction:      spec.Body.Friction,
		Elasticity:    spec.Body.Elasticity,
		FixedRotation: spec.Body.FixedRotation,
	}); err != nil {
		return ecs.None, fmt.Errorf("beetle: add physics body: %w", err)
	}

	return e, nil
}
