// Command soak runs the simulation headless for a fixed number of ticks
// with scripted input, then prints a summary. Useful for shaking out
// constraint blowups and for profiling without a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
	"github.com/milk9111/beetleball/ecs/entity"
	"github.com/milk9111/beetleball/ecs/system"
	"github.com/milk9111/beetleball/terrain"
)

const fixedDT = 1.0 / 60.0

func main() {
	ticks := flag.Int("ticks", 36000, "ticks to simulate (60 per second)")
	seed := flag.Int64("seed", 1, "terrain seed")
	flag.Parse()

	w := ecs.NewWorld()
	field := terrain.NewNoiseField(*seed)

	physics := system.NewPhysicsSystem(field, fixedDT)
	attachments := system.NewAttachmentSystem(physics, *seed)

	scheduler := ecs.NewScheduler(
		system.NewLocomotionSystem(physics, attachments, fixedDT),
		system.NewTerrainSystem(physics, field, system.DefaultFrictionTable()),
		system.NewBallImpactSystem(physics),
		attachments,
		physics,
	)

	beetle, err := entity.NewBeetle(w)
	if err != nil {
		log.Fatal(err)
	}
	ball, err := entity.NewBallAt(w, 2, 0)
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < 8; i++ {
		angle := float64(i) / 8 * 2 * math.Pi
		if _, err := entity.NewObstacleAt(w, 15*math.Cos(angle), 15*math.Sin(angle)); err != nil {
			log.Fatal(err)
		}
	}

	var attachCount, detachCount, thrownCount, fragmentCount int

	for i := 0; i < *ticks; i++ {
		if loc, ok := ecs.Get(w, beetle, component.LocomotionComponent); ok {
			// Drive in a slow circle, re-grabbing the ball whenever free.
			angle := float64(i) * fixedDT * 0.3
			loc.DirX = math.Cos(angle)
			loc.DirY = math.Sin(angle)
			loc.Throttle = 1
			loc.AttachPressed = !attachments.Attached(beetle)
			loc.DetachPressed = false
		}
		scheduler.Update(w)

		for _, ev := range w.Events().Drain() {
			switch data := ev.Data.(type) {
			case ecs.AttachmentChanged:
				if data.Attached {
					attachCount++
				} else {
					detachCount++
					if data.Thrown {
						thrownCount++
					}
				}
			case ecs.FragmentSpawn:
				fragmentCount += data.Count
			}
		}
	}

	fmt.Printf("ticks: %d\n", *ticks)
	fmt.Printf("attaches: %d detaches: %d (thrown: %d)\n", attachCount, detachCount, thrownCount)
	fmt.Printf("fragments: %d\n", fragmentCount)
	if bc, ok := ecs.Get(w, ball, component.BallComponent); ok {
		fmt.Printf("ball: r=%.3f mass=%.3f integrity=%.3f\n", bc.Radius, bc.CurrentMass(), bc.Integrity)
	}
	if t, ok := ecs.Get(w, beetle, component.TransformComponent); ok {
		fmt.Printf("beetle: (%.2f, %.2f) heading=%.2f\n", t.X, t.Y, t.Heading)
	}
}
