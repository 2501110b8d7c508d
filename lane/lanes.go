package lane

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrLaneOrder = errors.New("lane: lanes must be ordered left < middle < right")
	ErrSpeed     = errors.New("lane: speed must be positive")
)

// Config is the lane table plus the slide speed in units per second.
type Config struct {
	Left   float64
	Middle float64
	Right  float64
	Speed  float64
}

func DefaultConfig() Config {
	return Config{
		Left:   -2.5,
		Middle: 0,
		Right:  2.5,
		Speed:  5,
	}
}

func (c Config) Validate() error {
	if !(c.Left < c.Middle && c.Middle < c.Right) {
		return fmt.Errorf("%w: got %.2f, %.2f, %.2f", ErrLaneOrder, c.Left, c.Middle, c.Right)
	}
	if c.Speed <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrSpeed, c.Speed)
	}
	return nil
}

// Lanes returns the stop positions ordered left to right.
func (c Config) Lanes() [3]float64 {
	return [3]float64{c.Left, c.Middle, c.Right}
}

// next returns the lane one step from x in the given direction. The middle
// lane is never skipped, so held input moves a single lane at a time.
func (c Config) next(x float64, intent Intent) (float64, bool) {
	switch intent {
	case IntentMoveLeft:
		if x > c.Middle {
			return c.Middle, true
		}
		if x > c.Left {
			return c.Left, true
		}
	case IntentMoveRight:
		if x < c.Middle {
			return c.Middle, true
		}
		if x < c.Right {
			return c.Right, true
		}
	}
	return x, false
}

// nearest returns the index into Lanes of the lane closest to x.
func (c Config) nearest(x float64) int {
	lanes := c.Lanes()
	best := 0
	for i := 1; i < len(lanes); i++ {
		if math.Abs(lanes[i]-x) < math.Abs(lanes[best]-x) {
			best = i
		}
	}
	return best
}
