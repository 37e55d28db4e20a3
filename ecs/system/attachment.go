package system

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
)

const (
	// overspeedMultiplier is the planar-speed fraction of the beetle's top
	// speed past which an attached ball tears free.
	overspeedMultiplier = 1.5

	defaultAttachRange   = 1.5
	defaultForwardOffset = 0.7
	defaultThrowImpulse  = 6.0
	defaultVerticalKick  = 3.5
)

type attachLink struct {
	ball  ecs.Entity
	joint JointID
}

// AttachmentSystem owns the beetle/ball pairing. A beetle holds at most one
// ball and a ball at most one beetle; the physical link is a pivot joint at
// the contact point, so the pair stays in contact but rotates freely.
//
// Every tick it validates existing links against entity liveness, services
// attach/detach input, and tears links whose ball has been forced past the
// overspeed limit, throwing the beetle clear on a random upward arc.
type AttachmentSystem struct {
	physics *PhysicsSystem
	rng     *rand.Rand

	// AttachRange is the max gap between beetle center and ball surface for
	// a new attachment.
	AttachRange float64
	// ForwardOffset is the pivot's distance ahead of the beetle's center
	// along its heading, fixed at attach time.
	ForwardOffset float64
	// ThrowImpulse scales the planar impulse (per kg) thrown at the beetle
	// on an overspeed tear.
	ThrowImpulse float64
	// VerticalKick is the upward velocity the beetle gains on an overspeed
	// tear.
	VerticalKick float64

	links  map[ecs.Entity]*attachLink // beetle -> link
	owners map[ecs.Entity]ecs.Entity  // ball -> beetle
}

func NewAttachmentSystem(ps *PhysicsSystem, seed int64) *AttachmentSystem {
	return &AttachmentSystem{
		physics:       ps,
		rng:           rand.New(rand.NewSource(seed)),
		AttachRange:   defaultAttachRange,
		ForwardOffset: defaultForwardOffset,
		ThrowImpulse:  defaultThrowImpulse,
		VerticalKick:  defaultVerticalKick,
		links:         make(map[ecs.Entity]*attachLink),
		owners:        make(map[ecs.Entity]ecs.Entity),
	}
}

// Attached reports whether the beetle currently holds a ball.
func (s *AttachmentSystem) Attached(beetle ecs.Entity) bool {
	return s.links[beetle] != nil
}

// Ball returns the ball a beetle holds, if any.
func (s *AttachmentSystem) Ball(beetle ecs.Entity) (ecs.Entity, bool) {
	link := s.links[beetle]
	if link == nil {
		return ecs.None, false
	}
	return link.ball, true
}

// Attach pins a beetle to a ball at the contact point. It refuses when
// either side is already in a pairing, when either entity is dead, or when
// either has no simulated body yet. Reports whether the link was made.
func (s *AttachmentSystem) Attach(w *ecs.World, beetle, ball ecs.Entity) bool {
	if !w.IsAlive(beetle) || !w.IsAlive(ball) {
		return false
	}
	if s.links[beetle] != nil || s.owners[ball].Valid() {
		return false
	}
	beetleComp, ok := ecs.Get(w, beetle, component.BeetleComponent)
	if !ok {
		return false
	}
	if _, ok := ecs.Get(w, ball, component.BallComponent); !ok {
		return false
	}
	beetleBody, ok := s.physics.Body(beetle)
	if !ok {
		return false
	}
	ballBody, ok := s.physics.Body(ball)
	if !ok {
		return false
	}

	// Pivot at a fixed forward offset from the beetle's center along its
	// heading; the ball-local anchor is that same world point captured in
	// the ball's frame at attach time.
	heading := 0.0
	if t, ok := ecs.Get(w, beetle, component.TransformComponent); ok {
		heading = t.Heading
	}
	forward := cp.Vector{X: math.Cos(heading), Y: math.Sin(heading)}
	point := beetleBody.Position().Add(forward.Mult(s.ForwardOffset))

	joint, err := s.physics.AttachPivot(beetle, ball,
		beetleBody.WorldToLocal(point), ballBody.WorldToLocal(point))
	if err != nil {
		return false
	}

	s.links[beetle] = &attachLink{ball: ball, joint: joint}
	s.owners[ball] = beetle
	beetleComp.AttachedBall = ball

	w.Events().Push(ecs.Event{
		Type: ecs.EventAttachmentChanged,
		Data: ecs.AttachmentChanged{Beetle: beetle, Ball: ball, Attached: true},
	})
	return true
}

// Detach releases the beetle's ball without any parting impulse. Reports
// whether a link existed.
func (s *AttachmentSystem) Detach(w *ecs.World, beetle ecs.Entity) bool {
	return s.release(w, beetle, false)
}

func (s *AttachmentSystem) release(w *ecs.World, beetle ecs.Entity, thrown bool) bool {
	link := s.links[beetle]
	if link == nil {
		return false
	}
	s.physics.DetachJoint(link.joint)
	delete(s.links, beetle)
	delete(s.owners, link.ball)

	if bc, ok := ecs.Get(w, beetle, component.BeetleComponent); ok {
		bc.AttachedBall = ecs.None
	}

	w.Events().Push(ecs.Event{
		Type: ecs.EventAttachmentChanged,
		Data: ecs.AttachmentChanged{Beetle: beetle, Ball: link.ball, Attached: false, Thrown: thrown},
	})
	return true
}

// PushBall applies the beetle's rolling force to its attached ball along
// dir. The force is gated on the ball's planar speed: at or past the
// beetle's top speed no force is applied, so the beetle can never
// accelerate its own ball into an overspeed tear.
func (s *AttachmentSystem) PushBall(w *ecs.World, beetle ecs.Entity, dir cp.Vector, strength float64) {
	link := s.links[beetle]
	if link == nil {
		return
	}
	beetleComp, ok := ecs.Get(w, beetle, component.BeetleComponent)
	if !ok {
		return
	}
	ballBody, ok := s.physics.Body(link.ball)
	if !ok {
		return
	}
	if ballBody.Velocity().Length() >= beetleComp.Stats.TopSpeed {
		return
	}
	force := dir.Mult(strength * beetleComp.Stats.Strength)
	ballBody.ApplyForceAtWorldPoint(force, ballBody.Position())
}

func (s *AttachmentSystem) Update(w *ecs.World) {
	s.validateLinks(w)

	ecs.ForEach(w, component.LocomotionComponent, func(e ecs.Entity, loc *component.Locomotion) {
		if _, ok := ecs.Get(w, e, component.BeetleComponent); !ok {
			return
		}
		switch {
		case loc.DetachPressed:
			s.release(w, e, false)
		case loc.AttachPressed && s.links[e] == nil:
			if ball, ok := s.nearestBall(w, e); ok {
				s.Attach(w, e, ball)
			}
		}
	})

	s.checkOverspeed(w)
}

// validateLinks drops pairings whose ball or beetle has been destroyed
// since last tick. Stale Beetle.AttachedBall handles are cleared here too.
func (s *AttachmentSystem) validateLinks(w *ecs.World) {
	for beetle, link := range s.links {
		if w.IsAlive(beetle) && w.IsAlive(link.ball) {
			continue
		}
		s.physics.DetachJoint(link.joint)
		delete(s.links, beetle)
		delete(s.owners, link.ball)
		if bc, ok := ecs.Get(w, beetle, component.BeetleComponent); ok {
			bc.AttachedBall = ecs.None
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventAttachmentChanged,
			Data: ecs.AttachmentChanged{Beetle: beetle, Ball: link.ball, Attached: false},
		})
	}
}

// nearestBall finds the closest unowned ball whose surface is within
// AttachRange of the beetle's center.
func (s *AttachmentSystem) nearestBall(w *ecs.World, beetle ecs.Entity) (ecs.Entity, bool) {
	beetleBody, ok := s.physics.Body(beetle)
	if !ok {
		return ecs.None, false
	}
	pos := beetleBody.Position()

	var best ecs.Entity
	bestDist := math.Inf(1)
	ecs.ForEach(w, component.BallComponent, func(e ecs.Entity, ball *component.Ball) {
		if s.owners[e].Valid() {
			return
		}
		ballBody, ok := s.physics.Body(e)
		if !ok {
			return
		}
		d := ballBody.Position().Sub(pos).Length() - ball.Radius
		if d <= s.AttachRange && d < bestDist {
			best, bestDist = e, d
		}
	})
	return best, best.Valid()
}

// checkOverspeed tears any link whose ball is moving faster in the plane
// than overspeedMultiplier times the beetle's top speed, then throws the
// beetle clear: a random planar direction plus an upward kick. The ball
// keeps its momentum.
func (s *AttachmentSystem) checkOverspeed(w *ecs.World) {
	for beetle, link := range s.links {
		beetleComp, ok := ecs.Get(w, beetle, component.BeetleComponent)
		if !ok {
			continue
		}
		if !BallOverspeed(w, s.physics, link.ball, beetleComp.Stats.TopSpeed, overspeedMultiplier) {
			continue
		}

		s.release(w, beetle, true)

		beetleBody, ok := s.physics.Body(beetle)
		if !ok {
			continue
		}
		angle := s.rng.Float64() * 2 * math.Pi
		dir := cp.Vector{X: math.Cos(angle), Y: math.Sin(angle)}
		beetleBody.ApplyImpulseAtWorldPoint(dir.Mult(s.ThrowImpulse*beetleBody.Mass()), beetleBody.Position())
		if pb, ok := ecs.Get(w, beetle, component.PhysicsBodyComponent); ok {
			pb.VerticalVel += s.VerticalKick
		}
	}
}
