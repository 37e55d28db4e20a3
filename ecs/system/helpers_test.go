package system

import (
	"testing"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
	"github.com/milk9111/beetleball/terrain"
)

const testDT = 1.0 / 60.0

func newTestWorld() (*ecs.World, *PhysicsSystem) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(terrain.Flat{}, testDT)
	return w, ps
}

func spawnTestBeetle(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y}))
	mustAdd(t, ecs.Add(w, e, component.BeetleComponent, component.Beetle{
		Stats: component.BeetleStats{
			TopSpeed:     6.0,
			Acceleration: 12.0,
			Deceleration: 18.0,
			ReverseSpeed: 2.5,
			Strength:     14.0,
			Control:      7.0,
		},
	}))
	mustAdd(t, ecs.Add(w, e, component.LocomotionComponent, component.Locomotion{}))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Width:         0.9,
		Height:        0.6,
		Mass:          2.0,
		Friction:      0.7,
		FixedRotation: true,
	}))
	return e
}

func spawnTestBall(t *testing.T, w *ecs.World, x, y, radius float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	ball := component.Ball{
		Radius:     radius,
		BaseRadius: radius,
		MaxRadius:  4.0,
		MassScale:  3.0,
	}
	mustAdd(t, ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y}))
	mustAdd(t, ecs.Add(w, e, component.BallComponent, ball))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Radius:   radius,
		Mass:     ball.CurrentMass(),
		Friction: 0.6,
	}))
	return e
}

func spawnTestObstacle(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y}))
	mustAdd(t, ecs.Add(w, e, component.ObstacleComponent, component.Obstacle{DamagePerImpulse: 0.02}))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Width:  2.0,
		Height: 2.0,
		Static: true,
	}))
	return e
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func almostEqual(a, b, eps float64) bool {
	d := a - b
	return d < eps && d > -eps
}
