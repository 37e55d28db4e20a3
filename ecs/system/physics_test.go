package system

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
)

func TestStepDtHandling(t *testing.T) {
	cases := []struct {
		name   string
		dt     float64
		wantDX float64
	}{
		{"zero_is_noop", 0, 0},
		{"negative_is_noop", -1, 0},
		{"normal", testDT, 3 * testDT},
		{"clamped_to_max", 5, 3 * MaxStep},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, ps := newTestWorld()
			ball := spawnTestBall(t, w, 0, 0, 1.0)
			ps.Update(w)

			body, ok := ps.Body(ball)
			if !ok {
				t.Fatal("ball has no body after update")
			}
			body.SetPosition(cp.Vector{})
			body.SetVelocityVector(cp.Vector{X: 3})

			ps.StepOnce(w, c.dt)

			if got := body.Position().X; !almostEqual(got, c.wantDX, 1e-6) {
				t.Fatalf("dt=%v: expected dx %v, got %v", c.dt, c.wantDX, got)
			}
		})
	}
}

func TestRebuildBallPreservesMomentum(t *testing.T) {
	w, ps := newTestWorld()
	ball := spawnTestBall(t, w, 0, 0, 1.0)
	ps.Update(w)

	body, _ := ps.Body(ball)
	body.SetVelocityVector(cp.Vector{X: 4, Y: 1})
	body.SetAngularVelocity(2)
	pos := body.Position()

	if err := ps.RebuildBall(w, ball, 2.0, 10.0); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	rebuilt, ok := ps.Body(ball)
	if !ok {
		t.Fatal("ball lost its body across rebuild")
	}
	if rebuilt == body {
		t.Fatal("rebuild should swap the body")
	}
	if v := rebuilt.Velocity(); !almostEqual(v.X, 4, 1e-9) || !almostEqual(v.Y, 1, 1e-9) {
		t.Fatalf("velocity not preserved: %v", v)
	}
	if av := rebuilt.AngularVelocity(); !almostEqual(av, 2, 1e-9) {
		t.Fatalf("angular velocity not preserved: %v", av)
	}
	if p := rebuilt.Position(); !almostEqual(p.X, pos.X, 1e-9) || !almostEqual(p.Y, pos.Y, 1e-9) {
		t.Fatalf("position not preserved: %v", p)
	}
	if m := rebuilt.Mass(); !almostEqual(m, 10.0, 1e-9) {
		t.Fatalf("expected mass 10, got %v", m)
	}

	pb, _ := ecs.Get(w, ball, component.PhysicsBodyComponent)
	if pb.Radius != 2.0 || pb.Mass != 10.0 {
		t.Fatalf("component not updated: radius=%v mass=%v", pb.Radius, pb.Mass)
	}
}

func TestRebuildBallRepinsJoints(t *testing.T) {
	w, ps := newTestWorld()
	beetle := spawnTestBeetle(t, w, 0, 0)
	ball := spawnTestBall(t, w, 2, 0, 1.0)
	ps.Update(w)

	id, err := ps.AttachPivot(beetle, ball, cp.Vector{X: 1}, cp.Vector{X: -1})
	if err != nil {
		t.Fatalf("attach pivot: %v", err)
	}

	if err := ps.RebuildBall(w, ball, 1.5, 5.0); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	// The joint survives the swap under the same handle.
	if !ps.DetachJoint(id) {
		t.Fatal("joint handle went stale across rebuild")
	}
}

func TestAttachPivotRequiresBodies(t *testing.T) {
	w, ps := newTestWorld()
	beetle := spawnTestBeetle(t, w, 0, 0)
	ball := spawnTestBall(t, w, 2, 0, 1.0)
	// No Update: bodies don't exist yet.

	if _, err := ps.AttachPivot(beetle, ball, cp.Vector{}, cp.Vector{}); !errors.Is(err, ErrNoBody) {
		t.Fatalf("expected ErrNoBody, got %v", err)
	}
}

func TestCleanupRemovesDeadBodies(t *testing.T) {
	w, ps := newTestWorld()
	ball := spawnTestBall(t, w, 0, 0, 1.0)
	ps.Update(w)

	if _, ok := ps.Body(ball); !ok {
		t.Fatal("expected body after update")
	}
	w.DestroyEntity(ball)
	ps.Update(w)

	if _, ok := ps.Body(ball); ok {
		t.Fatal("expected body removed for dead entity")
	}
}

func TestBallImpactSystemAppliesDamage(t *testing.T) {
	w, ps := newTestWorld()
	ball := spawnTestBall(t, w, 0, 0, 2.0)
	obstacle := spawnTestObstacle(t, w, 3, 0)
	ps.Update(w)
	w.Events().Drain()

	ps.impacts = append(ps.impacts, Impact{
		Ball:     ball,
		Obstacle: obstacle,
		Point:    cp.Vector{X: 2, Y: 0},
		Impulse:  50,
	})

	NewBallImpactSystem(ps).Update(w)

	bc, _ := ecs.Get(w, ball, component.BallComponent)
	want := 2.0 - 50*0.02
	if !almostEqual(bc.Radius, want, 1e-9) {
		t.Fatalf("expected radius %v, got %v", want, bc.Radius)
	}

	var fragments []ecs.FragmentSpawn
	var sawResize bool
	for _, ev := range w.Events().Drain() {
		switch data := ev.Data.(type) {
		case ecs.FragmentSpawn:
			fragments = append(fragments, data)
		case ecs.BallResized:
			sawResize = true
		}
	}
	if !sawResize {
		t.Fatal("expected a resize event")
	}
	if len(fragments) != 1 {
		t.Fatalf("expected exactly one fragment event, got %d", len(fragments))
	}

	// Impact at (2,0) on a ball centered at the origin: the impulse points
	// from the impact through the center, so exactly (-1, 0).
	fr := fragments[0]
	if !almostEqual(fr.Position.X, 2, 1e-9) || !almostEqual(fr.Position.Y, 0, 1e-9) {
		t.Fatalf("fragments should spawn at the impact point, got %v", fr.Position)
	}
	if !almostEqual(fr.ImpulseDirection.X, -1, 1e-9) || !almostEqual(fr.ImpulseDirection.Y, 0, 1e-9) {
		t.Fatalf("expected impulse direction (-1, 0), got %v", fr.ImpulseDirection)
	}
	// Damage 50 * 0.02 = 1.0: count 2 + int(4*1.0), magnitude 1.0 * 25.
	if fr.Count != 6 {
		t.Fatalf("expected 6 fragments, got %d", fr.Count)
	}
	if !almostEqual(fr.ImpulseMagnitude, 25.0, 1e-9) {
		t.Fatalf("expected impulse magnitude 25, got %v", fr.ImpulseMagnitude)
	}
}
