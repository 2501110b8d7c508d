package lane

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tickDt = 1.0 / 60.0

func newTestController(x float64) Controller {
	return NewController(DefaultConfig(), DefaultBindings(), mgl64.Vec3{x, 0, 0})
}

func TestMoveRightFromMiddle(t *testing.T) {
	c := newTestController(0)

	out := c.Tick(TickInput{Elapsed: 0.1, Held: NewKeySet("D")})

	assert.True(t, out.Started)
	assert.True(t, c.Sliding())
	assert.InDelta(t, 2.5, c.State().Target.X(), 1e-9)
	assert.InDelta(t, 0.5, out.Position.X(), 1e-9)
}

func TestSnapOntoTarget(t *testing.T) {
	c := newTestController(0)
	c.state = SlideState{
		Sliding:  true,
		Target:   mgl64.Vec3{2.5, 0, 0},
		Position: mgl64.Vec3{2.4, 0, 0},
	}

	out := c.Tick(TickInput{Elapsed: 1.0, Held: NewKeySet()})

	assert.True(t, out.Stopped)
	assert.False(t, c.Sliding())
	assert.Equal(t, 2.5, out.Position.X())
}

func TestOvershootClamp(t *testing.T) {
	tests := []struct {
		name    string
		from    float64
		target  float64
		elapsed float64
	}{
		{"one_unit_full_second", 1.5, 2.5, 1.0},
		{"one_unit_left", -1.5, -2.5, 1.0},
		{"huge_tick", 0, 2.5, 100},
		{"exact_step", 0, 2.5, 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController(tc.from)
			c.state.Sliding = true
			c.state.Target = mgl64.Vec3{tc.target, 0, 0}

			out := c.Apply(IntentNone, tc.elapsed, true)

			assert.Equal(t, tc.target, out.Position.X())
			assert.False(t, c.Sliding())
		})
	}
}

func TestLeftFromRightPassesThroughMiddle(t *testing.T) {
	c := newTestController(2.5)
	held := NewKeySet("ArrowLeft")

	var targets []float64
	prevX := c.Position().X()
	for i := 0; i < 600 && c.Position().X() != -2.5; i++ {
		c.Tick(TickInput{Elapsed: tickDt, Held: held})

		x := c.Position().X()
		require.LessOrEqual(t, x, prevX, "slide reversed at tick %d", i)
		prevX = x

		target := c.State().Target.X()
		if len(targets) == 0 || targets[len(targets)-1] != target {
			targets = append(targets, target)
		}
		if target == -2.5 {
			require.LessOrEqual(t, x, 0.0, "left lane targeted before reaching middle")
		}
	}

	assert.Equal(t, []float64{0, -2.5}, targets)
	assert.Equal(t, -2.5, c.Position().X())
}

func TestMoveAtOuterLaneStays(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		key  Key
	}{
		{"left_at_left", -2.5, "A"},
		{"right_at_right", 2.5, "D"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController(tc.x)
			before := c.State()

			out := c.Tick(TickInput{Elapsed: tickDt, Held: NewKeySet(tc.key)})

			assert.Equal(t, before, c.State())
			assert.False(t, out.Started)
			assert.False(t, math.IsNaN(out.Position.X()))
		})
	}
}

func TestIdleIsIdempotent(t *testing.T) {
	c := newTestController(-2.5)
	c.SetHeight(1.25)
	before := c.State()

	for i := 0; i < 100; i++ {
		out := c.Tick(TickInput{Elapsed: tickDt, Held: NewKeySet()})
		require.Equal(t, IntentNone, out.Intent)
	}

	assert.Equal(t, before, c.State())
}

func TestZeroDirectionWhileSliding(t *testing.T) {
	c := newTestController(2.5)
	c.state.Sliding = true

	out := c.Tick(TickInput{Elapsed: tickDt, Held: NewKeySet("D")})

	for i := 0; i < 3; i++ {
		assert.False(t, math.IsNaN(out.Position[i]))
	}
	assert.Equal(t, mgl64.Vec3{2.5, 0, 0}, out.Position)
	assert.False(t, c.Sliding())
}

func TestReverseMidSlide(t *testing.T) {
	c := newTestController(0)
	c.Tick(TickInput{Elapsed: 0.1, Held: NewKeySet("D")})
	require.InDelta(t, 0.5, c.Position().X(), 1e-9)

	out := c.Tick(TickInput{Elapsed: 0.04, Held: NewKeySet("A")})

	assert.False(t, out.Started)
	assert.InDelta(t, 0, c.State().Target.X(), 1e-9)
	assert.InDelta(t, 0.3, out.Position.X(), 1e-9)
}

func TestSlideIsPlanar(t *testing.T) {
	c := newTestController(0)
	c.SetHeight(3)
	c.Tick(TickInput{Elapsed: 0.1, Held: NewKeySet("D")})

	// physics drops the body while the slide is underway
	c.SetHeight(1)
	out := c.Tick(TickInput{Elapsed: 1, Held: NewKeySet()})

	assert.Equal(t, mgl64.Vec3{2.5, 1, 0}, out.Position)
	assert.Equal(t, out.Position, c.State().Target)
}

func TestPulseRequests(t *testing.T) {
	tests := []struct {
		name     string
		held     KeySet
		grounded bool
		wantJump bool
		wantRoll bool
	}{
		{"jump_grounded", NewKeySet("Space"), true, true, false},
		{"jump_airborne", NewKeySet("W"), false, false, false},
		{"roll_airborne", NewKeySet("S"), false, false, true},
		{"jump_roll_and_move", NewKeySet("ArrowUp", "ArrowDown", "D"), true, true, true},
		{"nothing", NewKeySet(), true, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController(0)
			out := c.Tick(TickInput{Elapsed: tickDt, Held: tc.held, Grounded: tc.grounded})
			assert.Equal(t, tc.wantJump, out.JumpRequested)
			assert.Equal(t, tc.wantRoll, out.RollRequested)
		})
	}
}

func TestNegativeElapsedDoesNotMove(t *testing.T) {
	c := newTestController(0)
	out := c.Tick(TickInput{Elapsed: -1, Held: NewKeySet("D")})

	assert.True(t, c.Sliding())
	assert.Equal(t, 0.0, out.Position.X())
}

func TestRetuneKeepsPosition(t *testing.T) {
	c := newTestController(2.5)
	cfg := Config{Left: -4, Middle: 0, Right: 4, Speed: 8}
	c.Retune(cfg, Bindings{Left: []Key{"J"}, Right: []Key{"L"}})

	assert.Equal(t, 2.5, c.Position().X())
	assert.Equal(t, cfg, c.Config())

	c.Tick(TickInput{Elapsed: tickDt, Held: NewKeySet("L")})
	assert.InDelta(t, 4, c.State().Target.X(), 1e-9)
}

func TestRetuneMovesTargetToMatchingLane(t *testing.T) {
	wide := Config{Left: -4, Middle: 0, Right: 4, Speed: 8}

	tests := []struct {
		name        string
		start       float64
		held        KeySet
		cfg         Config
		wantTarget  float64
		wantSliding bool
	}{
		{"idle_on_right", 2.5, NewKeySet(), wide, 4, true},
		{"idle_on_left", -2.5, NewKeySet(), wide, -4, true},
		{"idle_on_middle", 0, NewKeySet(), wide, 0, false},
		{"mid_slide_right", 0, NewKeySet("D"), wide, 4, true},
		{"speed_only", 2.5, NewKeySet(), Config{Left: -2.5, Middle: 0, Right: 2.5, Speed: 9}, 2.5, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController(tc.start)
			c.Tick(TickInput{Elapsed: 0.1, Held: tc.held})
			before := c.Position()

			c.Retune(tc.cfg, c.Bindings())

			assert.Equal(t, before, c.Position())
			assert.InDelta(t, tc.wantTarget, c.State().Target.X(), 1e-9)
			assert.Equal(t, tc.wantSliding, c.Sliding())

			for i := 0; i < 120 && c.Sliding(); i++ {
				c.Tick(TickInput{Elapsed: tickDt, Held: NewKeySet()})
			}
			assert.False(t, c.Sliding())
			assert.Equal(t, tc.wantTarget, c.Position().X())
		})
	}
}
