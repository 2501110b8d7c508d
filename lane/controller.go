// Package lane holds the lane-switch movement logic of the runner: the lane
// table, the input classifier and the slide controller. Nothing here touches
// the engine; callers feed it elapsed time and a key snapshot once per tick.
package lane

import "github.com/go-gl/mathgl/mgl64"

// SlideState is the per-entity movement record. While Sliding is false
// Position equals Target.
type SlideState struct {
	Sliding  bool
	Target   mgl64.Vec3
	Position mgl64.Vec3
}

func NewSlideState(origin mgl64.Vec3) SlideState {
	return SlideState{Target: origin, Position: origin}
}

type TickInput struct {
	Elapsed  float64
	Held     KeySet
	Grounded bool
}

// TickOutput is what the transform and physics collaborators apply after a tick.
type TickOutput struct {
	Position      mgl64.Vec3
	Intent        Intent
	Started       bool
	Stopped       bool
	JumpRequested bool
	RollRequested bool
}

// Controller moves one entity between lanes. It is a plain value; the owner
// keeps it in a component and ticks it once per frame.
type Controller struct {
	cfg      Config
	bindings Bindings
	state    SlideState
}

func NewController(cfg Config, bindings Bindings, origin mgl64.Vec3) Controller {
	return Controller{
		cfg:      cfg,
		bindings: bindings,
		state:    NewSlideState(origin),
	}
}

func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) Bindings() Bindings {
	return c.bindings
}

func (c *Controller) State() SlideState {
	return c.state
}

func (c *Controller) Sliding() bool {
	return c.state.Sliding
}

func (c *Controller) Position() mgl64.Vec3 {
	return c.state.Position
}

// Retune swaps the lane table and bindings without moving the entity. The
// target keeps its lane slot, so an entity resting on or heading for an old
// lane slides to the matching lane of the new table.
func (c *Controller) Retune(cfg Config, bindings Bindings) {
	slot := c.cfg.nearest(c.state.Target.X())
	c.cfg = cfg
	c.bindings = bindings

	if x := cfg.Lanes()[slot]; x != c.state.Target.X() {
		c.state.Target[0] = x
		c.state.Sliding = true
	}
}

// SetHeight feeds back the vertical position owned by physics.
func (c *Controller) SetHeight(y float64) {
	c.state.Position[1] = y
	c.state.Target[1] = y
}

// Tick classifies held input and advances the slide.
func (c *Controller) Tick(in TickInput) TickOutput {
	return c.Apply(Classify(in.Held, c.bindings), in.Elapsed, in.Grounded)
}

// Apply advances the slide for an already classified intent.
func (c *Controller) Apply(intent Intent, elapsed float64, grounded bool) TickOutput {
	out := TickOutput{
		Intent:        intent,
		JumpRequested: intent.Has(IntentJump) && grounded,
		RollRequested: intent.Has(IntentRoll),
	}

	if lateral := intent.Lateral(); lateral != IntentNone {
		if target, ok := c.cfg.next(c.state.Position.X(), lateral); ok && target != c.state.Target.X() {
			c.state.Target = mgl64.Vec3{target, c.state.Position.Y(), c.state.Position.Z()}
			out.Started = !c.state.Sliding
			c.state.Sliding = true
		}
	}

	if c.state.Sliding {
		out.Stopped = c.advance(elapsed)
	}

	out.Position = c.state.Position
	return out
}

// advance moves toward the target on the ground plane and reports whether it
// arrived. A step at least as long as the remaining distance lands exactly on
// the target.
func (c *Controller) advance(elapsed float64) bool {
	if elapsed < 0 {
		elapsed = 0
	}

	direction := c.state.Target.Sub(c.state.Position)
	direction[1] = 0

	step := normalizeOrZero(direction).Mul(c.cfg.Speed * elapsed)
	if step.Len() >= direction.Len() {
		c.state.Position[0] = c.state.Target[0]
		c.state.Position[2] = c.state.Target[2]
		c.state.Target[1] = c.state.Position[1]
		c.state.Sliding = false
		return true
	}

	c.state.Position = c.state.Position.Add(step)
	return false
}

func normalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}
