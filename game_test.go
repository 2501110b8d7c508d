package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
	"github.com/milk9111/lanerunner/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, keys lane.KeySet) *Game {
	t.Helper()
	g, err := NewGame(GameOptions{KeyState: keys.Has})
	require.NoError(t, err)
	return g
}

func TestGameTickMovesPlayer(t *testing.T) {
	keys := lane.NewKeySet("ArrowLeft")
	g := newTestGame(t, keys)

	for i := 0; i < 30; i++ {
		g.tick()
	}
	delete(keys, "ArrowLeft")
	for i := 0; i < 90; i++ {
		g.tick()
	}

	transform, ok := ecs.Get(g.world, g.scene.Player, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, -2.5, transform.Position.X())
	assert.Equal(t, 120, g.frames)
	assert.Contains(t, g.debugText(), "grounded: true")
}

func TestGameReloadPrefabs(t *testing.T) {
	g := newTestGame(t, lane.NewKeySet())

	dir := t.TempDir()
	body := `name: player
components:
  lane_slide:
    left: -4
    middle: 0
    right: 4
    speed: 8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte(body), 0o644))
	prev := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = prev })

	g.reloadPrefabs([]string{"player.yaml", "unrelated.yaml"})

	slide, ok := ecs.Get(g.world, g.scene.Player, component.LaneSlideComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, lane.Config{Left: -4, Middle: 0, Right: 4, Speed: 8}, slide.Controller.Config())
}

func TestGameQuitTerminates(t *testing.T) {
	g := newTestGame(t, lane.NewKeySet())
	g.quit = true
	assert.Error(t, g.Update())
}
