package component

import "github.com/milk9111/lanerunner/lane"

// LaneSlide owns the entity's lane controller.
type LaneSlide struct {
	Controller lane.Controller
}

var LaneSlideComponent = NewComponent[LaneSlide]()
