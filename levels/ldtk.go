package levels

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Project is the subset of an LDtk project file this client draws.
type Project struct {
	JSONVersion      string  `json:"jsonVersion"`
	BgColor          string  `json:"bgColor"`
	ExternalLevels   bool    `json:"externalLevels"`
	Defs             Defs    `json:"defs"`
	Levels           []Level `json:"levels"`
	DefaultGridSize  int     `json:"defaultGridSize"`
	DefaultLevelBg   string  `json:"defaultLevelBgColor"`
	WorldLayout      string  `json:"worldLayout"`
	WorldGridWidth   int     `json:"worldGridWidth"`
	WorldGridHeight  int     `json:"worldGridHeight"`
	MinifyJSON       bool    `json:"minifyJson"`
	ExportTiled      bool    `json:"exportTiled"`
	ExportPNG        bool    `json:"exportPng"`
	SimplifiedExport bool    `json:"simplifiedExport"`
}

type Defs struct {
	Layers   []LayerDef   `json:"layers"`
	Tilesets []TilesetDef `json:"tilesets"`
}

type LayerDef struct {
	UID           int           `json:"uid"`
	Identifier    string        `json:"identifier"`
	Type          string        `json:"__type"`
	GridSize      int           `json:"gridSize"`
	IntGridValues []IntGridItem `json:"intGridValues"`
}

type IntGridItem struct {
	Value      int    `json:"value"`
	Identifier string `json:"identifier"`
	Color      string `json:"color"`
}

type TilesetDef struct {
	UID          int    `json:"uid"`
	Identifier   string `json:"identifier"`
	RelPath      string `json:"relPath"`
	TileGridSize int    `json:"tileGridSize"`
	PxWid        int    `json:"pxWid"`
	PxHei        int    `json:"pxHei"`
}

type Level struct {
	UID             int             `json:"uid"`
	Identifier      string          `json:"identifier"`
	WorldX          int             `json:"worldX"`
	WorldY          int             `json:"worldY"`
	PxWid           int             `json:"pxWid"`
	PxHei           int             `json:"pxHei"`
	BgColor         string          `json:"__bgColor"`
	ExternalRelPath string          `json:"externalRelPath"`
	LayerInstances  []LayerInstance `json:"layerInstances"`
}

type LayerInstance struct {
	Identifier     string   `json:"__identifier"`
	Type           string   `json:"__type"`
	CWid           int      `json:"__cWid"`
	CHei           int      `json:"__cHei"`
	GridSize       int      `json:"__gridSize"`
	Opacity        *float64 `json:"__opacity"`
	PxTotalOffsetX int      `json:"__pxTotalOffsetX"`
	PxTotalOffsetY int      `json:"__pxTotalOffsetY"`
	TilesetDefUID  *int     `json:"__tilesetDefUid"`
	TilesetRelPath string   `json:"__tilesetRelPath"`
	LayerDefUID    int      `json:"layerDefUid"`
	Visible        *bool    `json:"visible"`
	IntGridCSV     []int    `json:"intGridCsv"`
	GridTiles      []Tile   `json:"gridTiles"`
	AutoLayerTiles []Tile   `json:"autoLayerTiles"`
}

// Tile is a placed tileset tile. Px is the top-left pixel in the layer, Src
// the top-left pixel in the tileset image, T the tile id.
type Tile struct {
	Px  [2]int `json:"px"`
	Src [2]int `json:"src"`
	F   int    `json:"f"`
	T   int    `json:"t"`
}

// Parse decodes an LDtk project.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("levels: unmarshal ldtk: %w", err)
	}
	if len(p.Levels) == 0 {
		return nil, fmt.Errorf("levels: project has no levels")
	}
	return &p, nil
}

// ParseLevel decodes a separate level file of a project saved with
// externalLevels.
func ParseLevel(data []byte) (*Level, error) {
	var l Level
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("levels: unmarshal ldtkl: %w", err)
	}
	return &l, nil
}

// Level returns level i, clamped to the project's levels.
func (p *Project) Level(i int) *Level {
	if p == nil || len(p.Levels) == 0 {
		return nil
	}
	if i < 0 {
		i = 0
	}
	if i >= len(p.Levels) {
		i = len(p.Levels) - 1
	}
	return &p.Levels[i]
}

// Tileset returns the tileset definition with uid.
func (p *Project) Tileset(uid int) (TilesetDef, bool) {
	for _, ts := range p.Defs.Tilesets {
		if ts.UID == uid {
			return ts, true
		}
	}
	return TilesetDef{}, false
}

// LayerDef returns the layer definition with uid.
func (p *Project) LayerDef(uid int) (LayerDef, bool) {
	for _, ld := range p.Defs.Layers {
		if ld.UID == uid {
			return ld, true
		}
	}
	return LayerDef{}, false
}

// IsVisible reports the layer's editor visibility; layers saved before the
// flag existed count as visible.
func (li *LayerInstance) IsVisible() bool {
	return li.Visible == nil || *li.Visible
}

// LayerOpacity returns the layer's opacity clamped to [0, 1]; a layer saved
// without the field is opaque.
func (li *LayerInstance) LayerOpacity() float64 {
	if li.Opacity == nil {
		return 1
	}
	return min(max(*li.Opacity, 0), 1)
}

// Tiles returns the layer's placed tiles, whichever list the layer type
// fills.
func (li *LayerInstance) Tiles() []Tile {
	if len(li.GridTiles) > 0 {
		return li.GridTiles
	}
	return li.AutoLayerTiles
}

// ParseColor reads an LDtk "#rrggbb" colour.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
