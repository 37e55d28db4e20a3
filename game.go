package main

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
	"github.com/milk9111/beetleball/ecs/entity"
	"github.com/milk9111/beetleball/ecs/system"
	"github.com/milk9111/beetleball/prefabs"
	"github.com/milk9111/beetleball/terrain"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	pixelsPerMeter = 32.0
	fixedDT        = 1.0 / 60.0
)

type fragmentFX struct {
	x, y float64
	ttl  int
}

type Game struct {
	debug bool

	world       *ecs.World
	scheduler   *ecs.Scheduler
	physics     *system.PhysicsSystem
	attachments *system.AttachmentSystem
	terrainSys  *system.TerrainSystem
	field       terrain.Provider

	beetle ecs.Entity

	watcher   *prefabs.Watcher
	fragments []fragmentFX
}

func NewGame(seed int64, debug bool) (*Game, error) {
	w := ecs.NewWorld()
	field := terrain.NewNoiseField(seed)

	friction := system.DefaultFrictionTable()
	if spec, err := prefabs.LoadSurfacesSpec(); err == nil {
		friction = frictionFromSpec(spec, friction)
	} else {
		log.Printf("surfaces: using defaults: %v", err)
	}

	physics := system.NewPhysicsSystem(field, fixedDT)
	attachments := system.NewAttachmentSystem(physics, seed)
	terrainSys := system.NewTerrainSystem(physics, field, friction)

	scheduler := ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewLocomotionSystem(physics, attachments, fixedDT),
		terrainSys,
		system.NewBallImpactSystem(physics),
		attachments,
		physics,
	)

	beetle, err := entity.NewBeetle(w)
	if err != nil {
		return nil, err
	}
	if _, err := entity.NewBallAt(w, 3, 0); err != nil {
		return nil, err
	}
	if _, err := entity.NewObstacleAt(w, 12, 4); err != nil {
		return nil, err
	}

	g := &Game{
		debug:       debug,
		world:       w,
		scheduler:   scheduler,
		physics:     physics,
		attachments: attachments,
		terrainSys:  terrainSys,
		field:       field,
		beetle:      beetle,
	}

	if watcher, err := prefabs.NewWatcher("prefabs"); err == nil {
		g.watcher = watcher
	} else {
		log.Printf("prefab watcher disabled: %v", err)
	}

	return g, nil
}

func (g *Game) Update() error {
	g.drainReloads()
	g.scheduler.Update(g.world)
	g.drainEvents()

	for i := range g.fragments {
		g.fragments[i].ttl--
	}
	live := g.fragments[:0]
	for _, f := range g.fragments {
		if f.ttl > 0 {
			live = append(live, f)
		}
	}
	g.fragments = live

	return nil
}

// drainReloads applies prefab edits while running. Beetle stats and surface
// friction reload in place; body shape changes still need a restart.
func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case _, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			reload = true
		case err := <-g.watcher.Errors:
			log.Printf("prefab watcher: %v", err)
		default:
			if !reload {
				return
			}
			if spec, err := prefabs.LoadSurfacesSpec(); err == nil {
				g.terrainSys.SetFriction(frictionFromSpec(spec, system.DefaultFrictionTable()))
			}
			if spec, err := prefabs.LoadBeetleSpec(); err == nil {
				if beetle, ok := ecs.Get(g.world, g.beetle, component.BeetleComponent); ok {
					beetle.Stats = component.BeetleStats{
						TopSpeed:     spec.TopSpeed,
						Acceleration: spec.Acceleration,
						Deceleration: spec.Deceleration,
						ReverseSpeed: spec.ReverseSpeed,
						Strength:     spec.Strength,
						Control:      spec.Control,
					}
				}
			}
			log.Printf("prefabs reloaded")
			return
		}
	}
}

func (g *Game) drainEvents() {
	for _, ev := range g.world.Events().Drain() {
		switch data := ev.Data.(type) {
		case ecs.AttachmentChanged:
			if g.debug {
				log.Printf("attachment: beetle=%s ball=%s attached=%t thrown=%t",
					data.Beetle, data.Ball, data.Attached, data.Thrown)
			}
		case ecs.FragmentSpawn:
			for i := 0; i < data.Count; i++ {
				g.fragments = append(g.fragments, fragmentFX{
					x:   data.Position.X,
					y:   data.Position.Y,
					ttl: 45,
				})
			}
		case ecs.BallResized:
			if g.debug {
				log.Printf("ball %s resized %.2f -> %.2f", data.Ball, data.OldRadius, data.NewRadius)
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	camX, camY := 0.0, 0.0
	if t, ok := ecs.Get(g.world, g.beetle, component.TransformComponent); ok {
		camX, camY = t.X, t.Y
	}

	toScreen := func(x, y float64) (float32, float32) {
		return float32((x-camX)*pixelsPerMeter + baseWidth/2),
			float32((y-camY)*pixelsPerMeter + baseHeight/2)
	}

	g.drawTerrain(screen, camX, camY)

	ecs.ForEach(g.world, component.BallComponent, func(e ecs.Entity, ball *component.Ball) {
		t, ok := ecs.Get(g.world, e, component.TransformComponent)
		if !ok {
			return
		}
		sx, sy := toScreen(t.X, t.Y)
		r := float32(ball.Radius * pixelsPerMeter)
		// Altitude shown as lift plus a shadow at ground level.
		if t.Altitude > 0.01 {
			vector.DrawFilledCircle(screen, sx, sy, r*0.8, color.RGBA{A: 60}, true)
		}
		vector.DrawFilledCircle(screen, sx, sy-float32(t.Altitude*pixelsPerMeter), r, colornames.Saddlebrown, true)
	})

	ecs.ForEach(g.world, component.ObstacleComponent, func(e ecs.Entity, _ *component.Obstacle) {
		t, ok := ecs.Get(g.world, e, component.TransformComponent)
		if !ok {
			return
		}
		body, ok := ecs.Get(g.world, e, component.PhysicsBodyComponent)
		if !ok {
			return
		}
		sx, sy := toScreen(t.X, t.Y)
		hw := float32(body.Width * pixelsPerMeter / 2)
		hh := float32(body.Height * pixelsPerMeter / 2)
		vector.DrawFilledRect(screen, sx-hw, sy-hh, hw*2, hh*2, colornames.Dimgray, true)
	})

	ecs.ForEach(g.world, component.BeetleComponent, func(e ecs.Entity, _ *component.Beetle) {
		t, ok := ecs.Get(g.world, e, component.TransformComponent)
		if !ok {
			return
		}
		sx, sy := toScreen(t.X, t.Y)
		vector.DrawFilledCircle(screen, sx, sy, 0.45*pixelsPerMeter, colornames.Black, true)
		// Heading tick.
		hx := sx + float32(math.Cos(t.Heading)*0.6*pixelsPerMeter)
		hy := sy + float32(math.Sin(t.Heading)*0.6*pixelsPerMeter)
		vector.StrokeLine(screen, sx, sy, hx, hy, 2, colornames.White, true)
	})

	for _, f := range g.fragments {
		sx, sy := toScreen(f.x, f.y)
		vector.DrawFilledCircle(screen, sx, sy, 3, colornames.Peru, true)
	}

	if g.debug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawTerrain(screen *ebiten.Image, camX, camY float64) {
	const cell = 1.0
	halfW := baseWidth / 2 / pixelsPerMeter
	halfH := baseHeight / 2 / pixelsPerMeter

	for y := math.Floor(camY - halfH); y < camY+halfH+cell; y += cell {
		for x := math.Floor(camX - halfW); x < camX+halfW+cell; x += cell {
			sample := g.field.Sample(x+cell/2, y+cell/2)
			sx := float32((x-camX)*pixelsPerMeter + baseWidth/2)
			sy := float32((y-camY)*pixelsPerMeter + baseHeight/2)
			vector.DrawFilledRect(screen, sx, sy, cell*pixelsPerMeter, cell*pixelsPerMeter, surfaceColor(sample.Surface), false)
		}
	}
}

func surfaceColor(s terrain.SurfaceType) color.Color {
	switch s {
	case terrain.SurfaceMud:
		return colornames.Darkolivegreen
	case terrain.SurfaceSand:
		return colornames.Khaki
	case terrain.SurfaceSnow:
		return colornames.Whitesmoke
	case terrain.SurfaceShallowWater:
		return colornames.Lightblue
	case terrain.SurfaceDeepWater:
		return colornames.Steelblue
	}
	return colornames.Darkseagreen
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS())
	if beetle, ok := ecs.Get(g.world, g.beetle, component.BeetleComponent); ok {
		msg += fmt.Sprintf("\nspeed: %.2f / %.2f", beetle.CurrentSpeed, beetle.Stats.TopSpeed)
	}
	if ball, ok := g.attachments.Ball(g.beetle); ok {
		if bc, ok := ecs.Get(g.world, ball, component.BallComponent); ok {
			msg += fmt.Sprintf("\nball: r=%.2f m=%.2f", bc.Radius, bc.CurrentMass())
		}
		if body, ok := g.physics.Body(ball); ok {
			msg += fmt.Sprintf(" v=%.2f", body.Velocity().Length())
		}
	}
	if t, ok := ecs.Get(g.world, g.beetle, component.TransformComponent); ok {
		sample := g.field.Sample(t.X, t.Y)
		msg += fmt.Sprintf("\nsurface: %s h=%.2f", sample.Surface, sample.Height)
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func frictionFromSpec(spec *prefabs.SurfacesSpec, base system.FrictionTable) system.FrictionTable {
	out := base
	for tag, value := range spec.Friction {
		s, ok := terrain.ParseSurface(tag)
		if !ok {
			log.Printf("surfaces: unknown surface %q", tag)
			continue
		}
		switch s {
		case terrain.SurfaceDefault:
			out.Default = value
		case terrain.SurfaceMud:
			out.Mud = value
		case terrain.SurfaceSand:
			out.Sand = value
		case terrain.SurfaceSnow:
			out.Snow = value
		case terrain.SurfaceShallowWater:
			out.ShallowWater = value
		case terrain.SurfaceDeepWater:
			out.DeepWater = value
		}
	}
	return out
}
