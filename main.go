package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ldtkdrop/prefabs"
)

func main() {
	levelIndex := flag.Int("level", -1, "index of the built-in level to load at startup (default from config)")
	configPath := flag.String("config", "", "path to a game yaml overriding the built-in prefabs/game.yaml")
	inboxDir := flag.String("inbox", "", "directory whose new files are treated as dropped on the window")
	debug := flag.Bool("debug", false, "show the debug HUD")
	flag.Parse()

	spec, err := prefabs.LoadGameSpec(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *levelIndex >= 0 {
		spec.Levels.Default = *levelIndex
	}
	if *inboxDir != "" {
		spec.Inbox.Dir = *inboxDir
	}

	ebiten.SetWindowSize(spec.Window.Width, spec.Window.Height)
	ebiten.SetWindowTitle(spec.Title)

	game, err := NewGame(spec, *debug)
	if err != nil {
		log.Fatal(err)
	}

	if err := runGame(game, ebiten.RunGame); err != nil {
		log.Fatal(err)
	}
}
