package component

import "image/color"

// Shape is a flat coloured rectangle centred on the entity's transform.
type Shape struct {
	Width  float64
	Height float64
	Color  color.Color
}

var ShapeComponent = NewComponent[Shape]()
