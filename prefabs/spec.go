package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec reads and decodes a prefab YAML, preferring an on-disk override
// over the embedded copy.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Heading float64 `yaml:"heading"`
}

type PhysicsBodySpec struct {
	Radius        float64 `yaml:"radius"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Static        bool    `yaml:"static"`
	FixedRotation bool    `yaml:"fixed_rotation"`
}

type BeetleSpec struct {
	Name         string          `yaml:"name"`
	TopSpeed     float64         `yaml:"top_speed"`
	Acceleration float64         `yaml:"acceleration"`
	Deceleration float64         `yaml:"deceleration"`
	ReverseSpeed float64         `yaml:"reverse_speed"`
	Strength     float64         `yaml:"strength"`
	Control      float64         `yaml:"control"`
	Transform    TransformSpec   `yaml:"transform"`
	Body         PhysicsBodySpec `yaml:"body"`
}

func LoadBeetleSpec() (*BeetleSpec, error) {
	spec, err := LoadSpec[BeetleSpec]("beetle.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type BallSpec struct {
	Name       string          `yaml:"name"`
	Radius     float64         `yaml:"radius"`
	BaseRadius float64         `yaml:"base_radius"`
	MaxRadius  float64         `yaml:"max_radius"`
	MassScale  float64         `yaml:"mass_scale"`
	Transform  TransformSpec   `yaml:"transform"`
	Body       PhysicsBodySpec `yaml:"body"`
}

func LoadBallSpec() (*BallSpec, error) {
	spec, err := LoadSpec[BallSpec]("ball.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ObstacleSpec struct {
	Name             string          `yaml:"name"`
	DamagePerImpulse float64         `yaml:"damage_per_impulse"`
	Transform        TransformSpec   `yaml:"transform"`
	Body             PhysicsBodySpec `yaml:"body"`
}

func LoadObstacleSpec() (*ObstacleSpec, error) {
	spec, err := LoadSpec[ObstacleSpec]("obstacle.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// SurfacesSpec maps a surface tag (mud, sand, ...) to its ground friction.
type SurfacesSpec struct {
	Friction map[string]float64 `yaml:"friction"`
}

func LoadSurfacesSpec() (*SurfacesSpec, error) {
	spec, err := LoadSpec[SurfacesSpec]("surfaces.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
