package system

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ldtkdrop/ecs"
	"github.com/milk9111/ldtkdrop/ecs/component"
	"github.com/milk9111/ldtkdrop/input"
)

// ErrPlayerMissing means the single player entity is gone or duplicated.
// Startup guarantees it, so movement treats it as unrecoverable.
var ErrPlayerMissing = errors.New("movement system: expected exactly one player")

// MovementSystem moves the player by the held direction keys.
type MovementSystem struct {
	keys input.Source
}

func NewMovementSystem(keys input.Source) *MovementSystem {
	return &MovementSystem{keys: keys}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, transform, ok := singlePlayer(w)
	if !ok {
		panic(fmt.Errorf("%w: found %d", ErrPlayerMissing, w.Count(component.PlayerComponent.Kind())))
	}
	p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())

	x, y := m.keys.Held().Axis()
	delta := normalizeOrZero(cp.Vector{X: x, Y: y}).Mult(p.MoveSpeed * ecs.Delta(w))
	transform.X += delta.X
	transform.Y += delta.Y
}

func singlePlayer(w *ecs.World) (ecs.Entity, *component.Transform, bool) {
	e, _, ok := ecs.Single(w, component.PlayerComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	return e, t, ok
}

// normalizeOrZero scales v to unit length. cp.Vector.Normalize divides by
// length plus an epsilon that overflows for the zero vector.
func normalizeOrZero(v cp.Vector) cp.Vector {
	if v.LengthSq() == 0 {
		return cp.Vector{}
	}
	return v.Mult(1 / v.Length())
}
