package entity

import (
	"fmt"

	"github.com/milk9111/lanerunner/ecs"
)

func NewLight(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, LightPrefab)
}

func NewFloor(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, FloorPrefab)
}

// Scene records the entities spawned for a run, keyed by the prefab they came from.
type Scene struct {
	Player ecs.Entity
	Floor  ecs.Entity
	Camera ecs.Entity
	Light  ecs.Entity
}

// SpawnScene builds the floor, light, camera and player in that order.
func SpawnScene(w *ecs.World) (Scene, error) {
	var (
		s   Scene
		err error
	)
	if s.Floor, err = NewFloor(w); err != nil {
		return Scene{}, fmt.Errorf("spawn scene: %w", err)
	}
	if s.Light, err = NewLight(w); err != nil {
		return Scene{}, fmt.Errorf("spawn scene: %w", err)
	}
	if s.Camera, err = NewCamera(w); err != nil {
		return Scene{}, fmt.Errorf("spawn scene: %w", err)
	}
	if s.Player, err = NewPlayer(w); err != nil {
		return Scene{}, fmt.Errorf("spawn scene: %w", err)
	}
	return s, nil
}

// Retune re-applies the tunable components of whichever scene entity was
// built from prefab. It reports false when no scene entity uses that prefab.
func (s Scene) Retune(w *ecs.World, prefab string) (bool, error) {
	var e ecs.Entity
	switch prefab {
	case PlayerPrefab:
		e = s.Player
	case FloorPrefab:
		e = s.Floor
	case CameraPrefab:
		e = s.Camera
	case LightPrefab:
		e = s.Light
	default:
		return false, nil
	}
	return true, ApplyTuning(w, e, prefab)
}
