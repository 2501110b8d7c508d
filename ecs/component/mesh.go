package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is an axis-aligned box centered on the transform.
type Mesh struct {
	Size  mgl64.Vec3
	Color color.RGBA
}

var MeshComponent = NewComponent[Mesh]()
