package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
)

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, CameraPrefab)
}

// NewCameraAt builds the camera prefab and moves its eye, keeping the look-at point.
func NewCameraAt(w *ecs.World, eye mgl64.Vec3) (ecs.Entity, error) {
	camera, err := NewCamera(w)
	if err != nil {
		return 0, err
	}
	cam, ok := ecs.Get(w, camera, component.CameraComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("camera: prefab %q has no camera component", CameraPrefab)
	}
	if eye.Sub(cam.LookAt).Len() == 0 {
		return 0, fmt.Errorf("camera: eye and look_at coincide at %v", eye)
	}
	cam.Eye = eye
	return camera, nil
}
