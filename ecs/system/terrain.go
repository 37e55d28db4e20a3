package system

import (
	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
	"github.com/milk9111/beetleball/terrain"
)

const (
	shallowWaterDamping = 0.8
	shallowWaterDamage  = 0.01
)

// FrictionTable holds the ground friction coefficient per surface. One field
// per surface so a new SurfaceType can't ship without a value here.
type FrictionTable struct {
	Default      float64
	Mud          float64
	Sand         float64
	Snow         float64
	ShallowWater float64
	DeepWater    float64
}

// DefaultFrictionTable matches the shipped surfaces.yaml.
func DefaultFrictionTable() FrictionTable {
	return FrictionTable{
		Default:      0.6,
		Mud:          1.4,
		Sand:         1.0,
		Snow:         0.2,
		ShallowWater: 0.6,
		DeepWater:    0.6,
	}
}

// For returns the coefficient for a surface.
func (t FrictionTable) For(s terrain.SurfaceType) float64 {
	switch s {
	case terrain.SurfaceMud:
		return t.Mud
	case terrain.SurfaceSand:
		return t.Sand
	case terrain.SurfaceSnow:
		return t.Snow
	case terrain.SurfaceShallowWater:
		return t.ShallowWater
	case terrain.SurfaceDeepWater:
		return t.DeepWater
	}
	return t.Default
}

// TerrainSystem resamples the ground under each ball every tick and applies
// the surface's consequences: contact friction for the solver, a flat
// velocity damp plus slow erosion in shallow water, and collapse to the
// minimum radius in deep water.
type TerrainSystem struct {
	physics  *PhysicsSystem
	terrain  terrain.Provider
	friction FrictionTable
}

func NewTerrainSystem(ps *PhysicsSystem, tp terrain.Provider, friction FrictionTable) *TerrainSystem {
	return &TerrainSystem{
		physics:  ps,
		terrain:  tp,
		friction: friction,
	}
}

// SetFriction swaps the friction table, used by live prefab reload.
func (s *TerrainSystem) SetFriction(friction FrictionTable) {
	s.friction = friction
}

func (s *TerrainSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.BallComponent, func(e ecs.Entity, ball *component.Ball) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		sample := s.terrain.Sample(t.X, t.Y)

		if shape, ok := s.physics.Shape(e); ok {
			shape.SetFriction(s.friction.For(sample.Surface))
		}

		switch sample.Surface {
		case terrain.SurfaceShallowWater:
			if body, ok := s.physics.Body(e); ok {
				body.SetVelocityVector(body.Velocity().Mult(shallowWaterDamping))
			}
			DamageBall(w, s.physics, e, shallowWaterDamage, nil)
		case terrain.SurfaceDeepWater:
			if ball.Radius > MinBallRadius {
				DamageBall(w, s.physics, e, ball.Radius-MinBallRadius, nil)
			}
		}
	})
}
