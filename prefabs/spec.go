package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

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

// EntityBuildSpec is a prefab: a name and a map of component name to component spec.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// Vec3Spec accepts either a three element list or an {x, y, z} map.
type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v *Vec3Spec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var xyz []float64
		if err := node.Decode(&xyz); err != nil {
			return err
		}
		if len(xyz) != 3 {
			return fmt.Errorf("prefabs: line %d: vector needs 3 values, got %d", node.Line, len(xyz))
		}
		v.X, v.Y, v.Z = xyz[0], xyz[1], xyz[2]
		return nil
	}
	type plain Vec3Spec
	return node.Decode((*plain)(v))
}

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

type TransformComponentSpec struct {
	Position Vec3Spec `yaml:"position"`
}

type LaneSlideComponentSpec struct {
	Left   *float64 `yaml:"left"`
	Middle *float64 `yaml:"middle"`
	Right  *float64 `yaml:"right"`
	Speed  *float64 `yaml:"speed"`
}

type InputComponentSpec struct {
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
	Jump  []string `yaml:"jump"`
	Roll  []string `yaml:"roll"`
}

type CharacterControllerComponentSpec struct {
	JumpImpulse      float64 `yaml:"jump_impulse"`
	Damping          float64 `yaml:"damping"`
	MaxSlopeAngleDeg float64 `yaml:"max_slope_angle_deg"`
	GravityScale     float64 `yaml:"gravity_scale"`
}

type PhysicsBodyComponentSpec struct {
	Size        Vec3Spec `yaml:"size"`
	Mass        float64  `yaml:"mass"`
	Friction    float64  `yaml:"friction"`
	Restitution float64  `yaml:"restitution"`
	Static      bool     `yaml:"static"`
}

type RollComponentSpec struct {
	Duration float64 `yaml:"duration"`
	Turns    float64 `yaml:"turns"`
}

type MeshComponentSpec struct {
	Size  Vec3Spec `yaml:"size"`
	Color string   `yaml:"color"`
}

type CameraComponentSpec struct {
	Eye     Vec3Spec  `yaml:"eye"`
	LookAt  Vec3Spec  `yaml:"look_at"`
	Up      *Vec3Spec `yaml:"up"`
	FovYDeg float64   `yaml:"fov_y_deg"`
	Near    float64   `yaml:"near"`
	Far     float64   `yaml:"far"`
	Follow  float64   `yaml:"follow"`
}

type LightComponentSpec struct {
	Position  Vec3Spec `yaml:"position"`
	Intensity float64  `yaml:"intensity"`
	Ambient   float64  `yaml:"ambient"`
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("prefabs: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("prefabs: invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
