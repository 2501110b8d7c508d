package ecs

import (
	"errors"
	"fmt"

	"github.com/milk9111/lanerunner/ecs/component"
)

var (
	ErrNotFound = errors.New("ecs: no matching entity")
	ErrMultiple = errors.New("ecs: more than one matching entity")
)

// World owns entities, their component stores and the current tick delta.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	delta    float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

// SetDelta records the simulated seconds covered by the current tick.
func (w *World) SetDelta(seconds float64) {
	if w == nil {
		return
	}
	w.delta = seconds
}

// Delta returns the seconds covered by the current tick.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func notFound(kind string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, kind)
}
