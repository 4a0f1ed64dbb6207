package component

import (
	"image"
	"image/color"
)

// LevelTile is one grid cell in world space (y up, X/Y the bottom-left
// corner). Val > 0 marks an IntGrid cell drawn with the layer palette;
// otherwise SrcX/SrcY locate the tile in the layer tileset.
type LevelTile struct {
	X    float64
	Y    float64
	SrcX int
	SrcY int
	Val  int
}

// LevelLayer is a single LDtk layer instance spawned under a Level.
type LevelLayer struct {
	Identifier string
	GridSize   float64
	Opacity    float64
	// Depth orders layers bottom (0) to top.
	Depth int
	Tiles []LevelTile
	// Tileset is nil when the layer has no readable tileset image.
	// TilesetKey names it for the renderer's image cache.
	Tileset    image.Image
	TilesetKey string
	Palette    map[int]color.Color
}

var LevelLayerComponent = NewComponent[LevelLayer]()

// LevelBounds is the world-space rectangle of a spawned level and its
// background colour.
type LevelBounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Color  color.Color
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
