package component

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective camera. FovY is in radians. Follow is the per-tick
// lerp factor toward the player's lane; zero keeps the camera fixed.
type Camera struct {
	Eye    mgl64.Vec3
	LookAt mgl64.Vec3
	Up     mgl64.Vec3
	FovY   float64
	Near   float64
	Far    float64
	Follow float64
}

var CameraComponent = NewComponent[Camera]()

// Light is a point light. Ambient is the floor of the diffuse term.
type Light struct {
	Position  mgl64.Vec3
	Intensity float64
	Ambient   float64
}

var LightComponent = NewComponent[Light]()
