package ecs

import (
	"fmt"

	"github.com/milk9111/ldtkdrop/ecs/component"
)

var errEntityNotAlive = component.ErrEntityNotAlive

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("add component to %s: %w", e, errEntityNotAlive)
	}
	w.store(kind, true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind, false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind, false).Has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.store(kind, false).Get(e).(*T)
	return value, ok
}

// ForEach visits every entity holding kind. fn may create or destroy
// entities; the visited set is fixed when ForEach starts.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	store := w.store(kind, false)
	for _, e := range store.Entities() {
		value, ok := store.Get(e).(*T)
		if !ok {
			continue
		}
		fn(e, value)
	}
}

// Single returns the only entity holding kind. ok is false when there are
// zero or several.
func Single[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	store := w.store(kind, false)
	if store.Len() != 1 {
		return 0, nil, false
	}
	e := store.denseEntities[0]
	value, ok := store.Get(e).(*T)
	return e, value, ok
}

// SetDelta records the frame delta in seconds for systems to read.
func SetDelta(w *World, dt float64) {
	if w == nil {
		return
	}
	w.delta = dt
}

// Delta returns the frame delta in seconds.
func Delta(w *World) float64 {
	if w == nil {
		return 0
	}
	return w.delta
}
