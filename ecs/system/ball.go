package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
)

const (
	// MinBallRadius is the radius floor in meters; damage saturates here.
	MinBallRadius = 0.5

	fragmentBaseCount    = 2
	fragmentPerDamage    = 4.0
	fragmentMaxCount     = 12
	fragmentImpulseScale = 25.0
)

// GrowBall increases the ball radius by amount (saturating at MaxRadius),
// recomputes mass under the volumetric law, and rebuilds the live body
// without resetting its momentum. Returns the new radius.
func GrowBall(w *ecs.World, ps *PhysicsSystem, e ecs.Entity, amount float64) float64 {
	ball, ok := ecs.Get(w, e, component.BallComponent)
	if !ok {
		return 0
	}
	if amount <= 0 {
		return ball.Radius
	}

	radius := ball.Radius + amount
	if ball.MaxRadius > 0 && radius > ball.MaxRadius {
		radius = ball.MaxRadius
	}
	resizeBall(w, ps, e, ball, radius)
	return ball.Radius
}

// DamageBall shrinks the ball radius by amount, clamped to MinBallRadius.
// With an impact point it also emits a FragmentSpawn event describing the
// debris an external decomposition system should scatter, with the impulse
// pointing from the impact through the ball center. Returns the new radius.
func DamageBall(w *ecs.World, ps *PhysicsSystem, e ecs.Entity, amount float64, impact *cp.Vector) float64 {
	ball, ok := ecs.Get(w, e, component.BallComponent)
	if !ok {
		return 0
	}
	if amount <= 0 {
		return ball.Radius
	}

	ball.Integrity += amount
	radius := math.Max(MinBallRadius, ball.Radius-amount)
	resizeBall(w, ps, e, ball, radius)

	if impact != nil {
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			center := cp.Vector{X: t.X, Y: t.Y}
			dir := center.Sub(*impact)
			if dir.Length() < 1e-9 {
				dir = cp.Vector{X: 0, Y: -1}
			} else {
				dir = dir.Normalize()
			}
			count := fragmentBaseCount + int(fragmentPerDamage*amount)
			if count > fragmentMaxCount {
				count = fragmentMaxCount
			}
			w.Events().Push(ecs.Event{
				Type: ecs.EventFragmentSpawn,
				Data: ecs.FragmentSpawn{
					Position:         *impact,
					Count:            count,
					ImpulseDirection: dir,
					ImpulseMagnitude: amount * fragmentImpulseScale,
				},
			})
		}
	}

	return ball.Radius
}

// resizeBall is the single code path that keeps radius, mass, and the
// collision shape consistent. No-op when the radius is already at the
// requested value.
func resizeBall(w *ecs.World, ps *PhysicsSystem, e ecs.Entity, ball *component.Ball, radius float64) {
	if radius == ball.Radius {
		return
	}
	old := ball.Radius
	ball.Radius = radius

	if err := ps.RebuildBall(w, e, ball.Radius, ball.CurrentMass()); err != nil {
		// Leave state consistent for callers even when the body rebuild is
		// impossible (e.g. entity not simulated yet).
		log.Printf("ball: rebuild for entity %s: %v", e, err)
	}

	w.Events().Push(ecs.Event{
		Type: ecs.EventBallResized,
		Data: ecs.BallResized{Ball: e, OldRadius: old, NewRadius: ball.Radius},
	})
}

// BallOverspeed reports whether the ball's planar speed exceeds
// multiplier x reference.
func BallOverspeed(w *ecs.World, ps *PhysicsSystem, e ecs.Entity, reference, multiplier float64) bool {
	body, ok := ps.Body(e)
	if !ok {
		return false
	}
	return body.Velocity().Length() > multiplier*reference
}

// BallImpactSystem converts queued obstacle collisions into damage with an
// impact point. Runs before the attachment system so a shattered ball is
// re-pinned (or released) in the same tick.
type BallImpactSystem struct {
	physics *PhysicsSystem
}

func NewBallImpactSystem(ps *PhysicsSystem) *BallImpactSystem {
	return &BallImpactSystem{physics: ps}
}

func (s *BallImpactSystem) Update(w *ecs.World) {
	for _, impact := range s.physics.DrainImpacts() {
		if !w.IsAlive(impact.Ball) {
			continue
		}
		scale := 0.02
		if obs, ok := ecs.Get(w, impact.Obstacle, component.ObstacleComponent); ok && obs.DamagePerImpulse > 0 {
			scale = obs.DamagePerImpulse
		}
		point := impact.Point
		DamageBall(w, s.physics, impact.Ball, impact.Impulse*scale, &point)
	}
}
