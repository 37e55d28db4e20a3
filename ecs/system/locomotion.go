package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/beetleball/common"
	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
)

// LocomotionSystem turns intent (Locomotion) into motion. A free beetle is
// velocity-driven along its heading; an attached beetle instead leans its
// rolling force into the ball and lets the pivot joint tow it along.
type LocomotionSystem struct {
	physics     *PhysicsSystem
	attachments *AttachmentSystem
	dt          float64
}

func NewLocomotionSystem(ps *PhysicsSystem, as *AttachmentSystem, dt float64) *LocomotionSystem {
	return &LocomotionSystem{physics: ps, attachments: as, dt: dt}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.BeetleComponent, func(e ecs.Entity, beetle *component.Beetle) {
		loc, ok := ecs.Get(w, e, component.LocomotionComponent)
		if !ok {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}

		stats := beetle.Stats

		// Steer toward the input direction; without input, hold heading.
		if loc.DirX != 0 || loc.DirY != 0 {
			target := math.Atan2(loc.DirY, loc.DirX)
			t.Heading = common.RotateToward(t.Heading, target, stats.Control*s.dt)
		}

		// Throttle ramps speed with Acceleration, releasing it bleeds speed
		// with Deceleration. Reverse throttle is capped separately.
		target := loc.Throttle * stats.TopSpeed
		if target < -stats.ReverseSpeed {
			target = -stats.ReverseSpeed
		}
		rate := stats.Deceleration
		if math.Abs(target) > math.Abs(beetle.CurrentSpeed) {
			rate = stats.Acceleration
		}
		beetle.CurrentSpeed = common.MoveToward(beetle.CurrentSpeed, target, rate*s.dt)

		heading := cp.Vector{X: math.Cos(t.Heading), Y: math.Sin(t.Heading)}

		if s.attachments.Attached(e) {
			if beetle.CurrentSpeed > 0 {
				s.attachments.PushBall(w, e, heading, beetle.CurrentSpeed)
			}
			return
		}

		// An airborne beetle (thrown clear on an overspeed tear) is
		// ballistic until it lands; its legs get no grip to steer with.
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && pb.VerticalVel != 0 {
			return
		}
		if body, ok := s.physics.Body(e); ok {
			body.SetVelocityVector(heading.Mult(beetle.CurrentSpeed))
		}
	})
}
