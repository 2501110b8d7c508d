package component

// ActionRequest carries one-tick pulses from the lane controller to physics
// and animation. Consumers clear the flags they handle.
type ActionRequest struct {
	Jump bool
	Roll bool
}

var ActionRequestComponent = NewComponent[ActionRequest]()
