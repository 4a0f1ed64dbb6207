package prefabs

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the top-level client configuration.
type GameSpec struct {
	Title     string        `yaml:"title"`
	Window    WindowSpec    `yaml:"window"`
	Levels    LevelsSpec    `yaml:"levels"`
	Bindings  BindingsSpec  `yaml:"bindings"`
	Inbox     InboxSpec     `yaml:"inbox"`
	HotReload bool          `yaml:"hot_reload"`
	Prefabs   PrefabRefSpec `yaml:"prefabs"`
}

type WindowSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type LevelsSpec struct {
	// Builtin names embedded projects; Default indexes into it.
	Builtin []string `yaml:"builtin"`
	Default int      `yaml:"default"`
	// Selection picks which level of a project gets spawned.
	Selection int `yaml:"selection"`
}

type BindingsSpec struct {
	Up    []string `yaml:"up"`
	Down  []string `yaml:"down"`
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
}

type InboxSpec struct {
	Dir      string `yaml:"dir"`
	SettleMS int    `yaml:"settle_ms"`
}

type PrefabRefSpec struct {
	Player string `yaml:"player"`
	Camera string `yaml:"camera"`
}

// LoadGameSpec reads game.yaml, or the yaml file at path when path is set.
func LoadGameSpec(path string) (GameSpec, error) {
	var (
		spec GameSpec
		err  error
	)
	if path == "" {
		spec, err = LoadSpec[GameSpec]("game.yaml")
	} else {
		spec, err = loadSpecFile[GameSpec](path)
	}
	if err != nil {
		return GameSpec{}, err
	}
	spec.applyDefaults()
	return spec, nil
}

func loadSpecFile[T any](path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}
	return spec, nil
}

func (g *GameSpec) applyDefaults() {
	if g.Title == "" {
		g.Title = "ldtkdrop"
	}
	if g.Window.Width <= 0 {
		g.Window.Width = 650
	}
	if g.Window.Height <= 0 {
		g.Window.Height = 370
	}
	if len(g.Levels.Builtin) == 0 {
		g.Levels.Builtin = []string{"pipes2.ldtk"}
	}
	if g.Prefabs.Player == "" {
		g.Prefabs.Player = "player.yaml"
	}
	if g.Prefabs.Camera == "" {
		g.Prefabs.Camera = "camera.yaml"
	}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
