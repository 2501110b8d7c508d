package system

import (
	"math"

	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/logging"
	"go.uber.org/zap"
)

// RollSystem plays the roll reaction. A request while a roll is running is
// dropped.
type RollSystem struct {
	logger *zap.Logger
}

func NewRollSystem(logger *zap.Logger) *RollSystem {
	return &RollSystem{logger: logging.OrNop(logger).Named("roll")}
}

func (s *RollSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := math.Max(w.Delta(), 0)

	ecs.ForEach3(w, component.RollComponent.Kind(), component.ActionRequestComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, roll *component.Roll, req *component.ActionRequest, transform *component.Transform) {
			if req.Roll {
				req.Roll = false
				if !roll.Active {
					roll.Active = true
					roll.Elapsed = 0
					s.logger.Debug("roll", zap.Stringer("entity", e))
				}
			}
			if !roll.Active {
				return
			}

			roll.Elapsed += dt
			progress := 1.0
			if roll.Duration > 0 {
				progress = math.Min(roll.Elapsed/roll.Duration, 1)
			}
			transform.Roll = 2 * math.Pi * roll.Turns * progress
			if progress >= 1 {
				roll.Active = false
				transform.Roll = 0
			}
		})
}
