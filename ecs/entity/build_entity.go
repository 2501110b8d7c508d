package entity

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/lanerunner/common"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
	"github.com/milk9111/lanerunner/prefabs"
)

type buildContext struct {
	PrefabPath string
}

// componentBuildFn decodes and validates raw without touching the world. The
// returned apply writes the component to e.
type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) (applyFn, error)

type applyFn func() error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":           addPlayerTag,
	"floor_tag":            addFloorTag,
	"transform":            addTransform,
	"lane_slide":           addLaneSlide,
	"input":                addInput,
	"character_controller": addCharacterController,
	"physics_body":         addPhysicsBody,
	"roll":                 addRoll,
	"mesh":                 addMesh,
	"camera":               addCamera,
	"light":                addLight,
}

// lane_slide reads the transform, and input reads the lane_slide it retunes.
var componentBuildOrder = []string{
	"player_tag",
	"floor_tag",
	"transform",
	"lane_slide",
	"input",
	"character_controller",
	"physics_body",
	"roll",
	"mesh",
	"camera",
	"light",
}

// tunable components can be re-applied to a live entity without resetting
// its position or physics state.
var tunable = map[string]bool{
	"lane_slide":           true,
	"input":                true,
	"character_controller": true,
	"roll":                 true,
	"mesh":                 true,
	"camera":               true,
	"light":                true,
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: add name: %w", prefabPath, err)
	}

	if err := applyComponents(w, e, spec, prefabPath, nil); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

// ApplyTuning re-reads prefabPath and re-applies its tunable components to e.
func ApplyTuning(w *ecs.World, e ecs.Entity, prefabPath string) error {
	if !ecs.IsAlive(w, e) {
		return fmt.Errorf("apply tuning: %q: entity %s not alive", prefabPath, e)
	}
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return fmt.Errorf("apply tuning: load %q: %w", prefabPath, err)
	}
	return applyComponents(w, e, spec, prefabPath, func(name string) bool { return tunable[name] })
}

func applyComponents(w *ecs.World, e ecs.Entity, spec prefabs.EntityBuildSpec, prefabPath string, include func(string) bool) error {
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		if include == nil || include(k) {
			remaining[k] = v
		}
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	if len(remaining) > 0 {
		unknown := make([]string, 0, len(remaining))
		for name := range remaining {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, unknown[0])
	}

	// a prefab is applied whole or not at all
	staged := make([]applyFn, 0, len(names))
	for _, name := range names {
		builder := componentRegistry[name]
		apply, err := builder(w, e, spec.Components[name], ctx)
		if err != nil {
			return fmt.Errorf("build entity: %q: decode %q: %w", prefabPath, name, err)
		}
		staged = append(staged, apply)
	}
	for i, apply := range staged {
		if err := apply(); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, names[i], err)
		}
	}
	return nil
}

func SetEntityPosition(w *ecs.World, e ecs.Entity, pos mgl64.Vec3) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
	}
	t.Position = pos
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return err
	}
	if slide, ok := ecs.Get(w, e, component.LaneSlideComponent.Kind()); ok {
		c := slide.Controller
		slide.Controller = lane.NewController(c.Config(), c.Bindings(), pos)
	}
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil && !pb.Static {
		pb.Body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Y()})
		pb.Body.SetVelocity(0, 0)
	}
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) (applyFn, error) {
	return func() error {
		return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	}, nil
}

func addFloorTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) (applyFn, error) {
	return func() error {
		return ecs.Add(w, e, component.FloorTagComponent.Kind(), &component.FloorTag{})
	}, nil
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) (applyFn, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode transform spec: %w", err)
	}
	return func() error {
		return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			Position: spec.Position.Vec3(),
		})
	}, nil
}

func addLaneSlide(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) (applyFn, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LaneSlideComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode lane_slide spec: %w", err)
	}

	// omitted fields keep whatever the live controller already uses
	cfg := lane.DefaultConfig()
	if slide, ok := ecs.Get(w, e, component.LaneSlideComponent.Kind()); ok {
		cfg = slide.Controller.Config()
	}
	if spec.Left != nil {
		cfg.Left = *spec.Left
	}
	if spec.Middle != nil {
		cfg.Middle = *spec.Middle
	}
	if spec.Right != nil {
		cfg.Right = *spec.Right
	}
	if spec.Speed != nil {
		cfg.Speed = *spec.Speed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return func() error {
		if slide, ok := ecs.Get(w, e, component.LaneSlideComponent.Kind()); ok {
			slide.Controller.Retune(cfg, slide.Controller.Bindings())
			return nil
		}

		var origin mgl64.Vec3
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			origin = t.Position
		}
		return ecs.Add(w, e, component.LaneSlideComponent.Kind(), &component.LaneSlide{
			Controller: lane.NewController(cfg, lane.DefaultBindings(), origin),
		})
	}, nil
}

func addInput(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) (applyFn, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InputComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode input spec: %w", err)
	}

	bindings := lane.DefaultBindings()
	if len(spec.Left) > 0 {
		bindings.Left = toKeys(spec.Left)
	}
	if len(spec.Right) > 0 {
		bindings.Right = toKeys(spec.Right)
	}
	if len(spec.Jump) > 0 {
		bindings.Jump = toKeys(spec.Jump)
	}
	if len(spec.Roll) > 0 {
		bindings.Roll = toKeys(spec.Roll)
	}

	return func() error {
		if slide, ok := ecs.Get(w, e, component.LaneSlideComponent.Kind()); ok {
			slide.Controller.Retune(slide.Controller.Config(), bindings)
		}

		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			input.Bindings = bindings
			return nil
		}
		return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{
			Bindings: bindings,
			Held:     lane.NewKeySet(),
		})
	}, nil
}

func toKeys(names []string) []lane.Key {
	keys := make([]lane.Key, 0, len(names))
	for _, n := range names {
		keys = append(keys, lane.Key(n))
	}
	return keys
}

func addCharacterController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) (applyFn, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CharacterControllerComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode character_controller spec: %w", err)
	}

	damping := spec.Damping
	if damping <= 0 || damping > 1 {
		damping = 0.9
	}
	slope := spec.MaxSlopeAngleDeg
	if slope <= 0 {
		slope = 0.45 * 180
	}
	gravityScale := spec.GravityScale
	if gravityScale == 0 {
		gravityScale = 1
	}
	jump := spec.JumpImpulse
	if jump <= 0 {
		jump = 7
	}
	cc := &component.CharacterController{
		JumpImpulse:   jump,
		Damping:       damping,
		MaxSlopeAngle: slope * math.Pi / 180,
		GravityScale:  gravityScale,
	}

	return func() error {
		if err := ecs.Add(w, e, component.CharacterControllerComponent.Kind(), cc); err != nil {
			return err
		}
		if !ecs.Has(w, e, component.GroundedComponent.Kind()) {
			if err := ecs.Add(w, e, component.GroundedComponent.Kind(), &component.Grounded{}); err != nil {
				return err
			}
		}
		if !ecs.Has(w, e, component.ActionRequestComponent.Kind()) {
			return ecs.Add(w, e, component.ActionRequestComponent.Kind(), &component.ActionRequest{})
		}
		return nil
	}, nil
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) (applyFn, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode physics_body spec: %w", err)
	}
	size := spec.Size.Vec3()
	if size.X() <= 0 || size.Y() <= 0 {
		return nil, fmt.Errorf("physics_body: size must be positive, got %v", size)
	}
	return func() error {
		return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:       size.X(),
			Height:      size.Y(),
			Depth:       size.Z(),
			Mass:        spec.Mass,
			Friction:    spec.Friction,
			Restitution: spec.Restitution,
			Static:      spec.Static,
		})
	}, nil
}

func addRoll(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) (applyFn, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RollComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode roll spec: %w", err)
	}
	duration := spec.Duration
	if duration <= 0 {
		duration = 0.5
	}
	turns := spec.Turns
	if turns == 0 {
		turns = 1
	}
	return func() error {
		if roll, ok := ecs.Get(w, e, component.RollComponent.Kind()); ok {
			roll.Duration = duration
			roll.Turns = turns
			return nil
		}
		return ecs.Add(w, e, component.RollComponent.Kind(), &component.Roll{Duration: duration, Turns: turns})
	}, nil
}

func addMesh(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) (applyFn, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MeshComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode mesh spec: %w", err)
	}
	col, err := prefabs.ParseHexColor(spec.Color)
	if err != nil {
		return nil, err
	}
	return func() error {
		return ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{
			Size:  spec.Size.Vec3(),
			Color: col,
		})
	}, nil
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) (applyFn, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode camera spec: %w", err)
	}

	up := mgl64.Vec3{0, 1, 0}
	if spec.Up != nil {
		up = spec.Up.Vec3()
	}
	fov := spec.FovYDeg
	if fov <= 0 {
		fov = 45
	}
	near := spec.Near
	if near <= 0 {
		near = 0.1
	}
	far := spec.Far
	if far <= near {
		far = 100
	}
	eye := spec.Eye.Vec3()
	if eye.Sub(spec.LookAt.Vec3()).Len() == 0 {
		return nil, fmt.Errorf("camera: eye and look_at coincide at %v", eye)
	}

	return func() error {
		return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
			Eye:    eye,
			LookAt: spec.LookAt.Vec3(),
			Up:     up,
			FovY:   mgl64.DegToRad(fov),
			Near:   near,
			Far:    far,
			Follow: common.Clamp(spec.Follow, 0, 1),
		})
	}, nil
}

func addLight(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) (applyFn, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LightComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode light spec: %w", err)
	}
	intensity := spec.Intensity
	if intensity <= 0 {
		intensity = 1
	}
	return func() error {
		return ecs.Add(w, e, component.LightComponent.Kind(), &component.Light{
			Position:  spec.Position.Vec3(),
			Intensity: intensity,
			Ambient:   spec.Ambient,
		})
	}, nil
}
