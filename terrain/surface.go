package terrain

// SurfaceType is the closed set of terrain classifications. Friction and
// water behavior switch exhaustively over it, so adding a surface is a
// compile-visible change rather than a silently missing map key.
type SurfaceType int

const (
	SurfaceDefault SurfaceType = iota
	SurfaceMud
	SurfaceSand
	SurfaceSnow
	SurfaceShallowWater
	SurfaceDeepWater
)

func (s SurfaceType) String() string {
	switch s {
	case SurfaceDefault:
		return "default"
	case SurfaceMud:
		return "mud"
	case SurfaceSand:
		return "sand"
	case SurfaceSnow:
		return "snow"
	case SurfaceShallowWater:
		return "shallow_water"
	case SurfaceDeepWater:
		return "deep_water"
	}
	return "unknown"
}

// ParseSurface maps a config tag to a SurfaceType.
func ParseSurface(tag string) (SurfaceType, bool) {
	switch tag {
	case "default":
		return SurfaceDefault, true
	case "mud":
		return SurfaceMud, true
	case "sand":
		return SurfaceSand, true
	case "snow":
		return SurfaceSnow, true
	case "shallow_water":
		return SurfaceShallowWater, true
	case "deep_water":
		return SurfaceDeepWater, true
	}
	return SurfaceDefault, false
}

// Sample is one terrain query result.
type Sample struct {
	Surface SurfaceType
	Height  float64
}

// Provider classifies terrain at a ground-plane position. The simulation
// queries it once per tick per ball and for slope gradients; it must be
// pure and cheap.
type Provider interface {
	Sample(x, y float64) Sample
}

// Flat is a uniform provider, mostly useful in tests.
type Flat struct {
	Surface SurfaceType
	Level   float64
}

func (f Flat) Sample(x, y float64) Sample {
	return Sample{Surface: f.Surface, Height: f.Level}
}
