package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a world-space position with Y up. Roll is the spin about the X axis in radians.
type Transform struct {
	Position mgl64.Vec3
	Roll     float64
}

var TransformComponent = NewComponent[Transform]()
