package levels

import (
	"image/color"
	"testing"
)

func TestBuiltinProjectsParse(t *testing.T) {
	names := Builtin()
	if len(names) < 2 {
		t.Fatalf("expected built-in projects, got %v", names)
	}
	for _, name := range names {
		p, err := LoadProjectFromFS(LevelsFS, name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		lvl := p.Level(0)
		if lvl == nil || lvl.PxWid <= 0 || lvl.PxHei <= 0 {
			t.Fatalf("%s: bad first level %+v", name, lvl)
		}
		for _, li := range lvl.LayerInstances {
			if _, ok := p.LayerDef(li.LayerDefUID); !ok {
				t.Fatalf("%s: layer %q has no definition", name, li.Identifier)
			}
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "{", `{"levels": []}`, `{"levels": 3}`} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
	if _, err := LoadProjectFromFS(LevelsFS, "missing.ldtk"); err == nil {
		t.Errorf("expected error for missing project")
	}
}

func TestLevelClamps(t *testing.T) {
	p := &Project{Levels: []Level{{Identifier: "a"}, {Identifier: "b"}}}
	tests := map[int]string{-1: "a", 0: "a", 1: "b", 5: "b"}
	for i, want := range tests {
		if got := p.Level(i).Identifier; got != want {
			t.Errorf("Level(%d) = %s, want %s", i, got, want)
		}
	}
	var empty *Project
	if empty.Level(0) != nil {
		t.Errorf("nil project should have no level")
	}
}

func TestLayerInstanceHelpers(t *testing.T) {
	hidden := false
	li := LayerInstance{Visible: &hidden, AutoLayerTiles: []Tile{{T: 1}}}
	if li.IsVisible() {
		t.Fatalf("explicitly hidden layer reported visible")
	}
	if (&LayerInstance{}).IsVisible() != true {
		t.Fatalf("layer without flag should be visible")
	}
	if tiles := li.Tiles(); len(tiles) != 1 || tiles[0].T != 1 {
		t.Fatalf("expected auto-layer tiles, got %v", tiles)
	}
	li.GridTiles = []Tile{{T: 2}, {T: 3}}
	if len(li.Tiles()) != 2 {
		t.Fatalf("grid tiles should win")
	}
}

func TestLookups(t *testing.T) {
	p := &Project{Defs: Defs{
		Layers:   []LayerDef{{UID: 1, Identifier: "Solid"}},
		Tilesets: []TilesetDef{{UID: 7, Identifier: "Ground"}},
	}}
	if ld, ok := p.LayerDef(1); !ok || ld.Identifier != "Solid" {
		t.Fatalf("layer def lookup failed")
	}
	if _, ok := p.LayerDef(2); ok {
		t.Fatalf("unexpected layer def")
	}
	if ts, ok := p.Tileset(7); !ok || ts.Identifier != "Ground" {
		t.Fatalf("tileset lookup failed")
	}
	if _, ok := p.Tileset(8); ok {
		t.Fatalf("unexpected tileset")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#6D4C41", color.NRGBA{R: 0x6d, G: 0x4c, B: 0x41, A: 0xff}, true},
		{"2e7d32", color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}, true},
		{"", color.NRGBA{}, false},
		{"#12345", color.NRGBA{}, false},
		{"#zzzzzz", color.NRGBA{}, false},
	}
	for _, tc := range tests {
		got, ok := ParseColor(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestLayerOpacity(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name string
		in   *float64
		want float64
	}{
		{"absent", nil, 1},
		{"zero", f(0), 0},
		{"half", f(0.5), 0.5},
		{"above_one", f(3), 1},
		{"negative", f(-1), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			li := LayerInstance{Opacity: tc.in}
			if got := li.LayerOpacity(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
