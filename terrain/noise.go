package terrain

import opensimplex "github.com/ojrac/opensimplex-go"

// NoiseField is the demo world: simplex height and moisture fields
// classified into surface bands. Deterministic for a given seed.
type NoiseField struct {
	height   opensimplex.Noise
	moisture opensimplex.Noise

	// Scale is the feature wavelength in meters.
	Scale float64
	// Amplitude is the max terrain height in meters.
	Amplitude float64
	// WaterLevel and ShallowBand carve water out of low terrain.
	WaterLevel  float64
	ShallowBand float64
}

func NewNoiseField(seed int64) *NoiseField {
	return &NoiseField{
		height:      opensimplex.NewNormalized(seed),
		moisture:    opensimplex.NewNormalized(seed + 1),
		Scale:       40.0,
		Amplitude:   6.0,
		WaterLevel:  1.2,
		ShallowBand: 0.5,
	}
}

func (f *NoiseField) Sample(x, y float64) Sample {
	h := f.height.Eval2(x/f.Scale, y/f.Scale) * f.Amplitude

	if h < f.WaterLevel-f.ShallowBand {
		return Sample{Surface: SurfaceDeepWater, Height: f.WaterLevel - f.ShallowBand}
	}
	if h < f.WaterLevel {
		return Sample{Surface: SurfaceShallowWater, Height: h}
	}

	m := f.moisture.Eval2(x/f.Scale, y/f.Scale)
	switch {
	case h > f.Amplitude*0.8:
		return Sample{Surface: SurfaceSnow, Height: h}
	case m > 0.65:
		return Sample{Surface: SurfaceMud, Height: h}
	case m < 0.3:
		return Sample{Surface: SurfaceSand, Height: h}
	}
	return Sample{Surface: SurfaceDefault, Height: h}
}
