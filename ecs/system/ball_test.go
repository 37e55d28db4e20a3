package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
)

func TestGrowBall(t *testing.T) {
	cases := []struct {
		name   string
		start  float64
		amount float64
		want   float64
	}{
		{"simple_growth", 1.0, 0.5, 1.5},
		{"saturates_at_max", 3.8, 1.0, 4.0},
		{"zero_is_noop", 1.0, 0, 1.0},
		{"negative_is_noop", 1.0, -2, 1.0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, ps := newTestWorld()
			ball := spawnTestBall(t, w, 0, 0, c.start)
			ps.Update(w)

			got := GrowBall(w, ps, ball, c.amount)
			if !almostEqual(got, c.want, 1e-9) {
				t.Fatalf("expected radius %v, got %v", c.want, got)
			}

			bc, _ := ecs.Get(w, ball, component.BallComponent)
			body, _ := ps.Body(ball)
			if !almostEqual(body.Mass(), bc.CurrentMass(), 1e-9) {
				t.Fatalf("body mass %v does not match volumetric mass %v", body.Mass(), bc.CurrentMass())
			}
		})
	}
}

func TestDamageBall(t *testing.T) {
	cases := []struct {
		name   string
		start  float64
		amount float64
		want   float64
	}{
		{"simple_damage", 2.0, 0.5, 1.5},
		{"floors_at_minimum", 1.0, 5.0, MinBallRadius},
		{"zero_is_noop", 2.0, 0, 2.0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, ps := newTestWorld()
			ball := spawnTestBall(t, w, 0, 0, c.start)
			ps.Update(w)

			got := DamageBall(w, ps, ball, c.amount, nil)
			if !almostEqual(got, c.want, 1e-9) {
				t.Fatalf("expected radius %v, got %v", c.want, got)
			}
		})
	}
}

func TestDamageBallWithoutImpactEmitsNoFragments(t *testing.T) {
	w, ps := newTestWorld()
	ball := spawnTestBall(t, w, 0, 0, 2.0)
	ps.Update(w)
	w.Events().Drain()

	DamageBall(w, ps, ball, 0.5, nil)

	for _, ev := range w.Events().Drain() {
		if ev.Type == ecs.EventFragmentSpawn {
			t.Fatal("environmental damage should not scatter fragments")
		}
	}
}

func TestResizePreservesVelocity(t *testing.T) {
	w, ps := newTestWorld()
	ball := spawnTestBall(t, w, 0, 0, 1.0)
	ps.Update(w)

	body, _ := ps.Body(ball)
	body.SetVelocityVector(cp.Vector{X: 3, Y: -2})

	GrowBall(w, ps, ball, 1.0)

	body, _ = ps.Body(ball)
	if v := body.Velocity(); !almostEqual(v.X, 3, 1e-9) || !almostEqual(v.Y, -2, 1e-9) {
		t.Fatalf("velocity not preserved across grow: %v", v)
	}

	DamageBall(w, ps, ball, 0.7, nil)

	body, _ = ps.Body(ball)
	if v := body.Velocity(); !almostEqual(v.X, 3, 1e-9) || !almostEqual(v.Y, -2, 1e-9) {
		t.Fatalf("velocity not preserved across damage: %v", v)
	}
}

func TestVolumetricMass(t *testing.T) {
	cases := []struct {
		name string
		ball component.Ball
		want float64
	}{
		{"at_base", component.Ball{Radius: 1, BaseRadius: 1, MassScale: 3}, 3},
		{"double_radius", component.Ball{Radius: 2, BaseRadius: 1, MassScale: 3}, 24},
		{"half_radius", component.Ball{Radius: 0.5, BaseRadius: 1, MassScale: 8}, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.ball.CurrentMass(); !almostEqual(got, c.want, 1e-9) {
				t.Fatalf("expected mass %v, got %v", c.want, got)
			}
		})
	}
}

func TestBallOverspeed(t *testing.T) {
	w, ps := newTestWorld()
	ball := spawnTestBall(t, w, 0, 0, 1.0)
	ps.Update(w)

	body, _ := ps.Body(ball)

	body.SetVelocityVector(cp.Vector{X: 8.9})
	if BallOverspeed(w, ps, ball, 6.0, 1.5) {
		t.Fatal("8.9 should be under the 9.0 threshold")
	}

	body.SetVelocityVector(cp.Vector{X: 9.1})
	if !BallOverspeed(w, ps, ball, 6.0, 1.5) {
		t.Fatal("9.1 should exceed the 9.0 threshold")
	}
}
