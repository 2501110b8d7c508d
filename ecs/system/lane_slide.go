package system

import (
	"errors"

	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
	"github.com/milk9111/lanerunner/logging"
	"go.uber.org/zap"
)

// LaneSlideSystem ticks the player's lane controller with the classified input
// and writes the planar result back into the transform.
type LaneSlideSystem struct {
	logger  *zap.Logger
	missing missingLog
}

func NewLaneSlideSystem(logger *zap.Logger) *LaneSlideSystem {
	return &LaneSlideSystem{
		logger:  logging.OrNop(logger).Named("lane"),
		missing: missingLog{what: "player"},
	}
}

func (s *LaneSlideSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	e, _, err := ecs.Single(w, component.PlayerTagComponent.Kind())
	if err != nil {
		s.missing.fail(s.logger, err)
		return
	}

	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		s.missing.fail(s.logger, errors.New("player has no transform"))
		return
	}
	slide, ok := ecs.Get(w, e, component.LaneSlideComponent.Kind())
	if !ok {
		s.missing.fail(s.logger, errors.New("player has no lane_slide"))
		return
	}
	s.missing.ok()

	intent := lane.IntentNone
	if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
		intent = input.Intent
	}
	grounded := false
	if g, ok := ecs.Get(w, e, component.GroundedComponent.Kind()); ok {
		grounded = g.OnGround
	}

	slide.Controller.SetHeight(transform.Position.Y())
	out := slide.Controller.Apply(intent, w.Delta(), grounded)

	transform.Position[0] = out.Position.X()
	transform.Position[2] = out.Position.Z()

	if out.Started {
		switch intent.Lateral() {
		case lane.IntentMoveLeft:
			s.logger.Debug("moving left", zap.Float64("target", slide.Controller.State().Target.X()))
		case lane.IntentMoveRight:
			s.logger.Debug("moving right", zap.Float64("target", slide.Controller.State().Target.X()))
		}
	}
	if out.Stopped {
		s.logger.Debug("stopped sliding", zap.Float64("x", out.Position.X()))
	}

	if req, ok := ecs.Get(w, e, component.ActionRequestComponent.Kind()); ok {
		req.Jump = req.Jump || out.JumpRequested
		req.Roll = req.Roll || out.RollRequested
	}
}
