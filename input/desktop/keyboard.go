// Package desktop feeds ebiten keyboard state and file drops into the
// input package.
package desktop

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ldtkdrop/input"
)

// Bindings maps each movement signal to the keys that hold it.
type Bindings struct {
	Up    []ebiten.Key
	Down  []ebiten.Key
	Left  []ebiten.Key
	Right []ebiten.Key
}

func DefaultBindings() Bindings {
	return Bindings{
		Up:    []ebiten.Key{ebiten.KeyW},
		Down:  []ebiten.Key{ebiten.KeyS},
		Left:  []ebiten.Key{ebiten.KeyA},
		Right: []ebiten.Key{ebiten.KeyD},
	}
}

// ParseBindings reads ebiten key names ("W", "ArrowUp", ...). An empty list
// keeps the default binding for that signal.
func ParseBindings(up, down, left, right []string) (Bindings, error) {
	b := DefaultBindings()
	fields := []struct {
		name  string
		names []string
		dst   *[]ebiten.Key
	}{
		{"up", up, &b.Up},
		{"down", down, &b.Down},
		{"left", left, &b.Left},
		{"right", right, &b.Right},
	}
	for _, f := range fields {
		if len(f.names) == 0 {
			continue
		}
		keys := make([]ebiten.Key, 0, len(f.names))
		for _, n := range f.names {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(n)); err != nil {
				return Bindings{}, fmt.Errorf("desktop: binding %s: %w", f.name, err)
			}
			keys = append(keys, k)
		}
		*f.dst = keys
	}
	return b, nil
}

// Keyboard reads held movement keys from ebiten.
type Keyboard struct {
	bindings Bindings
}

func NewKeyboard(b Bindings) *Keyboard {
	return &Keyboard{bindings: b}
}

func (k *Keyboard) Held() input.Keys {
	return input.Keys{
		Up:    anyPressed(k.bindings.Up),
		Down:  anyPressed(k.bindings.Down),
		Left:  anyPressed(k.bindings.Left),
		Right: anyPressed(k.bindings.Right),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
