package component

import "github.com/milk9111/lanerunner/lane"

// Input stores per-tick input state for an entity.
type Input struct {
	Bindings lane.Bindings
	Held     lane.KeySet
	Intent   lane.Intent
}

var InputComponent = NewComponent[Input]()
