package system

import (
	"math"
	"testing"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
)

func TestLocomotionSpeedRamp(t *testing.T) {
	w, ps := newTestWorld()
	beetle := spawnTestBeetle(t, w, 0, 0)
	ps.Update(w)
	as := NewAttachmentSystem(ps, 1)
	ls := NewLocomotionSystem(ps, as, testDT)

	loc, _ := ecs.Get(w, beetle, component.LocomotionComponent)
	loc.DirX = 1
	loc.Throttle = 1

	ls.Update(w)

	bc, _ := ecs.Get(w, beetle, component.BeetleComponent)
	// One tick of acceleration: 12 m/s^2 * (1/60)s.
	if !almostEqual(bc.CurrentSpeed, 12*testDT, 1e-9) {
		t.Fatalf("expected speed %v, got %v", 12*testDT, bc.CurrentSpeed)
	}

	body, _ := ps.Body(beetle)
	if v := body.Velocity(); !almostEqual(v.X, bc.CurrentSpeed, 1e-9) || !almostEqual(v.Y, 0, 1e-9) {
		t.Fatalf("free beetle should be velocity-driven along heading, got %v", v)
	}

	// Speed caps at TopSpeed.
	for i := 0; i < 600; i++ {
		ls.Update(w)
	}
	if bc.CurrentSpeed > bc.Stats.TopSpeed+1e-9 {
		t.Fatalf("speed %v exceeded top speed %v", bc.CurrentSpeed, bc.Stats.TopSpeed)
	}
}

func TestLocomotionDeceleration(t *testing.T) {
	w, ps := newTestWorld()
	beetle := spawnTestBeetle(t, w, 0, 0)
	ps.Update(w)
	ls := NewLocomotionSystem(ps, NewAttachmentSystem(ps, 1), testDT)

	bc, _ := ecs.Get(w, beetle, component.BeetleComponent)
	bc.CurrentSpeed = 6.0

	// No throttle: bleed speed with the deceleration stat.
	ls.Update(w)
	if !almostEqual(bc.CurrentSpeed, 6.0-18*testDT, 1e-9) {
		t.Fatalf("expected speed %v, got %v", 6.0-18*testDT, bc.CurrentSpeed)
	}
}

func TestLocomotionReverseCap(t *testing.T) {
	w, ps := newTestWorld()
	beetle := spawnTestBeetle(t, w, 0, 0)
	ps.Update(w)
	ls := NewLocomotionSystem(ps, NewAttachmentSystem(ps, 1), testDT)

	loc, _ := ecs.Get(w, beetle, component.LocomotionComponent)
	loc.DirX = 1
	loc.Throttle = -1

	for i := 0; i < 600; i++ {
		ls.Update(w)
	}

	bc, _ := ecs.Get(w, beetle, component.BeetleComponent)
	if bc.CurrentSpeed < -bc.Stats.ReverseSpeed-1e-9 {
		t.Fatalf("reverse speed %v exceeded cap %v", bc.CurrentSpeed, bc.Stats.ReverseSpeed)
	}
	if !almostEqual(bc.CurrentSpeed, -bc.Stats.ReverseSpeed, 1e-6) {
		t.Fatalf("expected reverse cap %v, got %v", -bc.Stats.ReverseSpeed, bc.CurrentSpeed)
	}
}

func TestLocomotionSteering(t *testing.T) {
	w, ps := newTestWorld()
	beetle := spawnTestBeetle(t, w, 0, 0)
	ps.Update(w)
	ls := NewLocomotionSystem(ps, NewAttachmentSystem(ps, 1), testDT)

	loc, _ := ecs.Get(w, beetle, component.LocomotionComponent)
	loc.DirX = 0
	loc.DirY = 1
	loc.Throttle = 1

	ls.Update(w)

	tr, _ := ecs.Get(w, beetle, component.TransformComponent)
	// One tick of turning at the control rate, toward pi/2.
	if !almostEqual(tr.Heading, 7*testDT, 1e-9) {
		t.Fatalf("expected heading %v, got %v", 7*testDT, tr.Heading)
	}

	for i := 0; i < 600; i++ {
		ls.Update(w)
	}
	if !almostEqual(tr.Heading, math.Pi/2, 1e-6) {
		t.Fatalf("heading should settle at pi/2, got %v", tr.Heading)
	}
}

func TestLocomotionAttachedPushesBall(t *testing.T) {
	w, ps := newTestWorld()
	beetle := spawnTestBeetle(t, w, 0, 0)
	ball := spawnTestBall(t, w, 2, 0, 1.0)
	ps.Update(w)
	as := NewAttachmentSystem(ps, 1)
	ls := NewLocomotionSystem(ps, as, testDT)
	as.Attach(w, beetle, ball)

	loc, _ := ecs.Get(w, beetle, component.LocomotionComponent)
	loc.DirX = 1
	loc.Throttle = 1

	ls.Update(w)

	ballBody, _ := ps.Body(ball)
	if f := ballBody.Force(); f.X <= 0 {
		t.Fatalf("expected rolling force on the ball, got %v", f)
	}

	beetleBody, _ := ps.Body(beetle)
	if v := beetleBody.Velocity(); v.X != 0 || v.Y != 0 {
		t.Fatalf("attached beetle should be towed, not velocity-driven, got %v", v)
	}
}
