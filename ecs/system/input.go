package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
)

// KeyState reports whether a named key is currently held.
type KeyState func(lane.Key) bool

type InputSystem struct {
	pressed KeyState
}

// NewInputSystem polls the keyboard through ebiten.
func NewInputSystem() *InputSystem {
	return NewInputSystemWith(EbitenKeyState())
}

// NewInputSystemWith reads keys from pressed instead of the keyboard.
func NewInputSystemWith(pressed KeyState) *InputSystem {
	return &InputSystem{pressed: pressed}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.pressed == nil {
		return
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		held := make(lane.KeySet)
		for _, k := range input.Bindings.Keys() {
			if i.pressed(k) {
				held[k] = struct{}{}
			}
		}
		input.Held = held
		input.Intent = lane.Classify(held, input.Bindings)
	})
}

// EbitenKeyState maps key names from ebiten.Key.String to live key state.
// Unknown names are never held.
func EbitenKeyState() KeyState {
	keys := make(map[lane.Key]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		keys[lane.Key(k.String())] = k
	}
	return func(name lane.Key) bool {
		k, ok := keys[name]
		if !ok {
			return false
		}
		return ebiten.IsKeyPressed(k)
	}
}
