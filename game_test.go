package main

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ldtkdrop/asset"
	"github.com/milk9111/ldtkdrop/input"
)

func TestBuiltinLocators(t *testing.T) {
	locs, err := builtinLocators([]string{"pipes2.ldtk", "missing.ldtk", "meadow.ldtk"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(locs) != 2 || locs[0].Path != "pipes2.ldtk" || locs[1].Path != "meadow.ldtk" {
		t.Fatalf("unexpected locators %v", locs)
	}
	for _, loc := range locs {
		if loc.FS == nil {
			t.Fatalf("built-in %s should read from the embedded filesystem", loc.Path)
		}
	}

	if _, err := builtinLocators([]string{"missing.ldtk"}); err == nil {
		t.Fatalf("expected error when no configured level is embedded")
	}
}

func TestRunGameClosesOnError(t *testing.T) {
	inbox, err := input.NewInboxWatcher(t.TempDir(), 0, &input.Queue{})
	if err != nil {
		t.Fatalf("inbox: %v", err)
	}
	g := &Game{assets: asset.NewServer(), inbox: inbox}

	boom := errors.New("window closed")
	err = runGame(g, func(ebiten.Game) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected run error, got %v", err)
	}
	if !g.closed {
		t.Fatalf("game must be closed after run returns")
	}
	// A second close is a no-op.
	g.Close()
}
