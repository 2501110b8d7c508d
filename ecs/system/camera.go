package system

import (
	"github.com/milk9111/lanerunner/common"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/logging"
	"go.uber.org/zap"
)

// CameraSystem keeps the scene camera resolvable and, when the camera has a
// follow factor, eases it sideways toward the player's lane.
type CameraSystem struct {
	logger  *zap.Logger
	missing missingLog
}

func NewCameraSystem(logger *zap.Logger) *CameraSystem {
	return &CameraSystem{
		logger:  logging.OrNop(logger).Named("camera"),
		missing: missingLog{what: "camera"},
	}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	_, cam, err := ecs.Single(w, component.CameraComponent.Kind())
	if err != nil {
		cs.missing.fail(cs.logger, err)
		return
	}
	cs.missing.ok()

	if cam.Follow <= 0 {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	x := common.Lerp(cam.LookAt.X(), transform.Position.X(), cam.Follow)
	shift := x - cam.LookAt.X()
	cam.LookAt[0] += shift
	cam.Eye[0] += shift
}
