package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lanerunner/ecs"
)

const (
	PlayerPrefab = "player.yaml"
	FloorPrefab  = "floor.yaml"
	CameraPrefab = "camera.yaml"
	LightPrefab  = "light.yaml"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, PlayerPrefab)
}

func NewPlayerAt(w *ecs.World, pos mgl64.Vec3) (ecs.Entity, error) {
	entity, err := BuildEntity(w, PlayerPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, entity, pos); err != nil {
		return 0, fmt.Errorf("player: override position: %w", err)
	}
	return entity, nil
}
