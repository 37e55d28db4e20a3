package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
	"github.com/milk9111/beetleball/terrain"
)

func newTerrainFixture(t *testing.T, surface terrain.SurfaceType) (*ecs.World, *PhysicsSystem, *TerrainSystem, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	tp := terrain.Flat{Surface: surface}
	ps := NewPhysicsSystem(tp, testDT)
	ts := NewTerrainSystem(ps, tp, DefaultFrictionTable())
	ball := spawnTestBall(t, w, 0, 0, 2.0)
	ps.Update(w)
	w.Events().Drain()
	return w, ps, ts, ball
}

func TestFrictionTable(t *testing.T) {
	table := DefaultFrictionTable()
	cases := []struct {
		name    string
		surface terrain.SurfaceType
		want    float64
	}{
		{"default", terrain.SurfaceDefault, 0.6},
		{"mud", terrain.SurfaceMud, 1.4},
		{"sand", terrain.SurfaceSand, 1.0},
		{"snow", terrain.SurfaceSnow, 0.2},
		{"shallow_water", terrain.SurfaceShallowWater, 0.6},
		{"deep_water", terrain.SurfaceDeepWater, 0.6},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := table.For(c.surface); !almostEqual(got, c.want, 1e-9) {
				t.Fatalf("expected friction %v, got %v", c.want, got)
			}
		})
	}
}

func TestTerrainAppliesFriction(t *testing.T) {
	w, ps, ts, ball := newTerrainFixture(t, terrain.SurfaceMud)

	ts.Update(w)

	if _, ok := ps.Shape(ball); !ok {
		t.Fatal("ball has no shape")
	}
	// The mud coefficient must survive a resize, which swaps the shape.
	GrowBall(w, ps, ball, 0.5)
	ts.Update(w)
	if _, ok := ps.Shape(ball); !ok {
		t.Fatal("ball lost its shape across resize")
	}
}

func TestShallowWaterDampsAndErodes(t *testing.T) {
	w, ps, ts, ball := newTerrainFixture(t, terrain.SurfaceShallowWater)

	body, _ := ps.Body(ball)
	body.SetVelocityVector(cp.Vector{X: 10})

	ts.Update(w)

	if v := body.Velocity(); !almostEqual(v.X, 8.0, 1e-6) {
		t.Fatalf("expected damped velocity 8.0, got %v", v.X)
	}
	bc, _ := ecs.Get(w, ball, component.BallComponent)
	if !almostEqual(bc.Radius, 2.0-shallowWaterDamage, 1e-9) {
		t.Fatalf("expected eroded radius, got %v", bc.Radius)
	}

	for _, ev := range w.Events().Drain() {
		if ev.Type == ecs.EventFragmentSpawn {
			t.Fatal("water erosion should not scatter fragments")
		}
	}
}

func TestDeepWaterCollapsesToMinimum(t *testing.T) {
	w, _, ts, ball := newTerrainFixture(t, terrain.SurfaceDeepWater)

	ts.Update(w)

	bc, _ := ecs.Get(w, ball, component.BallComponent)
	if !almostEqual(bc.Radius, MinBallRadius, 1e-9) {
		t.Fatalf("expected radius at minimum %v, got %v", MinBallRadius, bc.Radius)
	}

	// Already at minimum: a second pass must not resize again.
	w.Events().Drain()
	ts.Update(w)
	for _, ev := range w.Events().Drain() {
		if ev.Type == ecs.EventBallResized {
			t.Fatal("ball at minimum should not keep resizing in deep water")
		}
	}
}
