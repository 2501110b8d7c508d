package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration. The
// simulation runs in the X/Y plane; depth is only used for drawing.
type PhysicsBody struct {
	Body        *cp.Body
	Shape       *cp.Shape
	Width       float64
	Height      float64
	Depth       float64
	Mass        float64
	Friction    float64
	Restitution float64
	Static      bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
