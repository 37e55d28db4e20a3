package system

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
	"github.com/milk9111/beetleball/terrain"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBall
	collisionTypeBeetle
	collisionTypeObstacle
)

const (
	// Gravity is the vertical acceleration in m/s^2.
	Gravity = 9.81

	// MaxStep clamps the solver dt so a frame hitch can't destabilize the
	// constraint solver.
	MaxStep = 0.1

	solverIterations = 20

	// gradientProbe is the finite-difference half-width for terrain slope
	// sampling, in meters.
	gradientProbe = 0.25

	// impactImpulseThreshold is the minimum collision impulse that chips
	// the ball on an obstacle hit.
	impactImpulseThreshold = 20.0
)

var (
	ErrRebuildDuringStep = errors.New("physics: body rebuild during solver step")
	ErrNoBody            = errors.New("physics: entity has no simulated body")
	ErrInvalidJoint      = errors.New("physics: invalid joint id")
)

// JointID is an opaque handle to a constraint owned by the physics system.
// Callers never touch raw engine constraints; keeping the lifecycle here is
// what lets a ball rebuild transparently re-pin any joint bound to it.
type JointID int

// Impact is a queued ball/obstacle collision, recorded during the solver
// step and consumed by the ball system on the next tick.
type Impact struct {
	Ball     ecs.Entity
	Obstacle ecs.Entity
	Point    cp.Vector
	Impulse  float64
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

type jointInfo struct {
	a, b             ecs.Entity
	anchorA, anchorB cp.Vector
	constraint       *cp.Constraint
}

// PhysicsSystem owns the Chipmunk space over the ground plane plus a thin
// vertical axis (altitude + vertical velocity) that it integrates itself.
// It must run after every mutating system in the scheduler; transforms it
// writes are the post-step reads for everyone else.
type PhysicsSystem struct {
	space   *cp.Space
	terrain terrain.Provider
	dt      float64

	stepping      bool
	handlersReady bool

	bodies     map[ecs.Entity]*bodyInfo
	shapeOwner map[*cp.Shape]ecs.Entity
	ballShapes map[*cp.Shape]ecs.Entity
	joints     map[JointID]*jointInfo
	nextJoint  JointID

	impacts []Impact
}

func NewPhysicsSystem(tp terrain.Provider, dt float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = solverIterations
	// In-plane gravity comes from terrain slope forces; the uniform
	// vertical component is integrated on the altitude axis.
	space.SetGravity(cp.Vector{})

	return &PhysicsSystem{
		space:      space,
		terrain:    tp,
		dt:         dt,
		bodies:     make(map[ecs.Entity]*bodyInfo),
		shapeOwner: make(map[*cp.Shape]ecs.Entity),
		ballShapes: make(map[*cp.Shape]ecs.Entity),
		joints:     make(map[JointID]*jointInfo),
	}
}

func (s *PhysicsSystem) Space() *cp.Space {
	return s.space
}

// Body returns the simulated body for an entity, if it has one.
func (s *PhysicsSystem) Body(e ecs.Entity) (*cp.Body, bool) {
	info := s.bodies[e]
	if info == nil {
		return nil, false
	}
	return info.body, true
}

// Shape returns the collision shape for an entity, if it has one.
func (s *PhysicsSystem) Shape(e ecs.Entity) (*cp.Shape, bool) {
	info := s.bodies[e]
	if info == nil || info.shape == nil {
		return nil, false
	}
	return info.shape, true
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	s.ensureHandlers()
	s.cleanup(w)
	s.ensureBodies(w)
	s.StepOnce(w, s.dt)
}

// StepOnce advances the simulation by dt seconds. dt <= 0 is a no-op; dt is
// clamped to MaxStep. Gravity (slope projection in plane, uniform on the
// vertical axis) is applied to every dynamic body before the constraint
// solver runs.
func (s *PhysicsSystem) StepOnce(w *ecs.World, dt float64) {
	if dt <= 0 {
		return
	}
	if dt > MaxStep {
		dt = MaxStep
	}

	s.applyGravity(w)

	s.stepping = true
	s.space.Step(dt)
	s.stepping = false

	s.syncTransforms(w, dt)
}

// applyGravity projects gravity down the terrain gradient for grounded
// bodies. Forces are cleared by the space after each step, so this runs
// every tick.
func (s *PhysicsSystem) applyGravity(w *ecs.World) {
	for e, info := range s.bodies {
		if info.static {
			continue
		}
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}

		pos := info.body.Position()
		ground := s.terrain.Sample(pos.X, pos.Y).Height
		if t.Altitude > ground+1e-6 {
			// Airborne bodies fall on the vertical axis only.
			continue
		}

		gx := (s.terrain.Sample(pos.X+gradientProbe, pos.Y).Height -
			s.terrain.Sample(pos.X-gradientProbe, pos.Y).Height) / (2 * gradientProbe)
		gy := (s.terrain.Sample(pos.X, pos.Y+gradientProbe).Height -
			s.terrain.Sample(pos.X, pos.Y-gradientProbe).Height) / (2 * gradientProbe)

		force := cp.Vector{X: -gx, Y: -gy}.Mult(body.Mass * Gravity)
		info.body.ApplyForceAtWorldPoint(force, pos)
	}
}

// syncTransforms writes post-step poses back and integrates the vertical
// axis against the terrain floor.
func (s *PhysicsSystem) syncTransforms(w *ecs.World, dt float64) {
	for e, info := range s.bodies {
		if info.static {
			continue
		}
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}

		pos := info.body.Position()
		t.X = pos.X
		t.Y = pos.Y
		if !body.FixedRotation {
			t.Heading = info.body.Angle()
		}

		ground := s.terrain.Sample(pos.X, pos.Y).Height
		if t.Altitude > ground+1e-6 || body.VerticalVel > 0 {
			body.VerticalVel -= Gravity * dt
			t.Altitude += body.VerticalVel * dt
			if t.Altitude <= ground {
				t.Altitude = ground
				body.VerticalVel = 0
			}
		} else {
			t.Altitude = ground
		}
	}
}

func (s *PhysicsSystem) ensureBodies(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if s.bodies[e] != nil {
			continue
		}
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}

		info := s.createBody(w, e, body, t)
		if info == nil {
			continue
		}
		s.bodies[e] = info
		s.shapeOwner[info.shape] = e
		if ecs.Has(w, e, component.BallComponent) {
			s.ballShapes[info.shape] = e
		}
		body.Body = info.body
		body.Shape = info.shape

		if t.Altitude == 0 {
			t.Altitude = s.terrain.Sample(t.X, t.Y).Height
		}
	}
}

func (s *PhysicsSystem) createBody(w *ecs.World, e ecs.Entity, bodyComp *component.PhysicsBody, t *component.Transform) *bodyInfo {
	ctype := collisionTypeSolid
	switch {
	case ecs.Has(w, e, component.BallComponent):
		ctype = collisionTypeBall
	case ecs.Has(w, e, component.BeetleComponent):
		ctype = collisionTypeBeetle
	case ecs.Has(w, e, component.ObstacleComponent):
		ctype = collisionTypeObstacle
	}

	if bodyComp.Static {
		var shape *cp.Shape
		if bodyComp.Radius > 0 {
			shape = cp.NewCircle(s.space.StaticBody, bodyComp.Radius, cp.Vector{X: t.X, Y: t.Y})
		} else {
			bb := cp.BB{
				L: t.X - bodyComp.Width/2,
				B: t.Y - bodyComp.Height/2,
				R: t.X + bodyComp.Width/2,
				T: t.Y + bodyComp.Height/2,
			}
			shape = cp.NewBox2(s.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(ctype)
		s.space.AddShape(shape)
		return &bodyInfo{body: s.space.StaticBody, shape: shape, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	var moment float64
	if bodyComp.Radius > 0 {
		moment = cp.MomentForCircle(mass, 0, bodyComp.Radius, cp.Vector{})
	} else {
		moment = cp.MomentForBox(mass, bodyComp.Width, bodyComp.Height)
	}
	if bodyComp.FixedRotation {
		moment = math.Inf(1)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	body.SetAngle(t.Heading)

	var shape *cp.Shape
	if bodyComp.Radius > 0 {
		shape = cp.NewCircle(body, bodyComp.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, bodyComp.Width, bodyComp.Height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(ctype)

	s.space.AddBody(body)
	s.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

// RebuildBall swaps a live ball body for one with the given radius and
// mass, preserving position, orientation, and linear and angular velocity.
// Joints pinned to the old body are re-created against the new one with the
// same local anchors; the swap is atomic with respect to the solver.
func (s *PhysicsSystem) RebuildBall(w *ecs.World, e ecs.Entity, radius, mass float64) error {
	if s.stepping {
		return ErrRebuildDuringStep
	}
	info := s.bodies[e]
	if info == nil || info.static {
		return ErrNoBody
	}
	bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
	if !ok {
		return ErrNoBody
	}

	old := info.body
	pos := old.Position()
	angle := old.Angle()
	vel := old.Velocity()
	angVel := old.AngularVelocity()

	// Unpin joints touching this entity before the body goes away.
	var rebind []*jointInfo
	for _, j := range s.joints {
		if j.a == e || j.b == e {
			s.space.RemoveConstraint(j.constraint)
			j.constraint = nil
			rebind = append(rebind, j)
		}
	}

	s.space.RemoveShape(info.shape)
	s.space.RemoveBody(old)
	delete(s.shapeOwner, info.shape)
	delete(s.ballShapes, info.shape)

	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(pos)
	body.SetAngle(angle)
	body.SetVelocityVector(vel)
	body.SetAngularVelocity(angVel)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeBall)

	s.space.AddBody(body)
	s.space.AddShape(shape)

	info.body = body
	info.shape = shape
	s.shapeOwner[shape] = e
	s.ballShapes[shape] = e

	bodyComp.Body = body
	bodyComp.Shape = shape
	bodyComp.Radius = radius
	bodyComp.Mass = mass

	// The new body inherits the old local frame, so stored local anchors
	// stay valid.
	for _, j := range rebind {
		bodyA, okA := s.Body(j.a)
		bodyB, okB := s.Body(j.b)
		if !okA || !okB {
			continue
		}
		j.constraint = cp.NewPivotJoint2(bodyA, bodyB, j.anchorA, j.anchorB)
		s.space.AddConstraint(j.constraint)
	}
	return nil
}

// AttachPivot creates a point-to-point constraint between two entities at
// the given body-local anchors. The joint pins one point on each body and
// leaves rotation free. Fails without side effects when either entity has
// no simulated body.
func (s *PhysicsSystem) AttachPivot(a, b ecs.Entity, anchorA, anchorB cp.Vector) (JointID, error) {
	bodyA, okA := s.Body(a)
	bodyB, okB := s.Body(b)
	if !okA || !okB {
		return 0, ErrNoBody
	}

	s.nextJoint++
	id := s.nextJoint
	j := &jointInfo{
		a: a, b: b,
		anchorA: anchorA, anchorB: anchorB,
		constraint: cp.NewPivotJoint2(bodyA, bodyB, anchorA, anchorB),
	}
	s.space.AddConstraint(j.constraint)
	s.joints[id] = j
	return id, nil
}

// DetachJoint removes a constraint created by AttachPivot.
func (s *PhysicsSystem) DetachJoint(id JointID) bool {
	j, ok := s.joints[id]
	if !ok {
		return false
	}
	if j.constraint != nil {
		s.space.RemoveConstraint(j.constraint)
	}
	delete(s.joints, id)
	return true
}

// DrainImpacts returns queued ball/obstacle impacts from the last step.
func (s *PhysicsSystem) DrainImpacts() []Impact {
	if len(s.impacts) == 0 {
		return nil
	}
	out := s.impacts
	s.impacts = nil
	return out
}

func (s *PhysicsSystem) ensureHandlers() {
	if s.handlersReady {
		return
	}

	impactHandler := s.space.NewCollisionHandler(collisionTypeBall, collisionTypeObstacle)
	impactHandler.UserData = s
	impactHandler.PostSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok {
			return
		}
		impulse := arb.TotalImpulse().Length()
		if impulse < impactImpulseThreshold {
			return
		}
		shapeA, shapeB := arb.Shapes()
		other := shapeB
		ball, ok := sys.ballShapes[shapeA]
		if !ok {
			other = shapeA
			ball, ok = sys.ballShapes[shapeB]
			if !ok {
				return
			}
		}
		set := arb.ContactPointSet()
		if set.Count == 0 {
			return
		}
		// Only record; bodies must not be mutated inside the solver.
		sys.impacts = append(sys.impacts, Impact{
			Ball:     ball,
			Obstacle: sys.shapeOwner[other],
			Point:    set.Points[0].PointA,
			Impulse:  impulse,
		})
	}

	s.handlersReady = true
}

func (s *PhysicsSystem) cleanup(w *ecs.World) {
	for e, info := range s.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}

		for id, j := range s.joints {
			if j.a == e || j.b == e {
				if j.constraint != nil {
					s.space.RemoveConstraint(j.constraint)
				}
				delete(s.joints, id)
			}
		}

		s.space.RemoveShape(info.shape)
		if !info.static {
			s.space.RemoveBody(info.body)
		}
		delete(s.shapeOwner, info.shape)
		delete(s.ballShapes, info.shape)
		delete(s.bodies, e)
	}
}
