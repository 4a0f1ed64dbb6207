package system

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/ldtkdrop/asset"
	"github.com/milk9111/ldtkdrop/ecs"
	"github.com/milk9111/ldtkdrop/ecs/component"
	"github.com/milk9111/ldtkdrop/ecs/entity"
	"github.com/milk9111/ldtkdrop/input"
)

// LevelExtension is the only file extension accepted as a level on drop.
const LevelExtension = "ldtk"

// AssetLoader starts a background load and returns at once.
type AssetLoader interface {
	Load(loc asset.Locator) *asset.Handle
}

// DropObserver is told about hover activity, e.g. to show an overlay.
type DropObserver interface {
	HoverStarted(window input.WindowID, path string)
	HoverEnded(window input.WindowID)
}

// LevelSystem owns the current level. Each frame it drains the drop queue
// and swaps the level for every dropped file.
type LevelSystem struct {
	loader   AssetLoader
	events   *input.Queue
	builtin  []asset.Locator
	observer DropObserver
}

func NewLevelSystem(loader AssetLoader, events *input.Queue, builtin []asset.Locator) *LevelSystem {
	return &LevelSystem{
		loader:  loader,
		events:  events,
		builtin: builtin,
	}
}

func (ls *LevelSystem) SetObserver(o DropObserver) {
	ls.observer = o
}

// LoadInitial spawns the level for builtin[index]. The index is clamped to
// the list; load failures surface later on the handle, not here.
func (ls *LevelSystem) LoadInitial(w *ecs.World, index int) (ecs.Entity, error) {
	if len(ls.builtin) == 0 {
		return 0, fmt.Errorf("level system: no built-in levels")
	}
	index = max(0, min(index, len(ls.builtin)-1))
	loc := ls.builtin[index]
	log.Printf("level: loading built-in %s", loc)
	return entity.NewLevel(w, ls.loader.Load(loc))
}

func (ls *LevelSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range ls.events.Drain() {
		switch evt.Kind {
		case input.DroppedFile:
			ls.HandleDrop(w, evt)
		case input.HoveredFile:
			ls.HandleHover(evt.Path, evt.Window)
		case input.HoveredFileCancelled:
			ls.HandleHoverCancelled(evt.Window)
		}
	}
}

// HandleDrop replaces the current level with the dropped file. The old
// level is removed before the extension is checked, so dropping anything
// that is not a level leaves no level loaded.
func (ls *LevelSystem) HandleDrop(w *ecs.World, evt input.DropEvent) {
	if ls.observer != nil {
		ls.observer.HoverEnded(evt.Window)
	}

	removed := 0
	for _, e := range currentLevels(w) {
		removed += ecs.DestroyRecursive(w, e)
	}

	if extension(evt.Path) != LevelExtension {
		log.Printf("level: window %d: ignoring drop of %s (removed %d entities)", evt.Window, evt.Path, removed)
		return
	}

	h := ls.loader.Load(asset.Locator{Path: evt.Path, FS: evt.FS})
	if _, err := entity.NewLevel(w, h); err != nil {
		// Only reachable if the world itself is broken.
		log.Printf("level: spawn %s: %v", evt.Path, err)
		return
	}
	log.Printf("level: window %d: loading dropped %s", evt.Window, evt.Path)
}

func (ls *LevelSystem) HandleHover(path string, window input.WindowID) {
	log.Printf("level: window %d: hovering %s", window, path)
	if ls.observer != nil {
		ls.observer.HoverStarted(window, path)
	}
}

func (ls *LevelSystem) HandleHoverCancelled(window input.WindowID) {
	log.Printf("level: window %d: hover cancelled", window)
	if ls.observer != nil {
		ls.observer.HoverEnded(window)
	}
}

func currentLevels(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.LevelComponent.Kind(), func(e ecs.Entity, lvl *component.Level) {
		if lvl.Role == component.LevelCurrent {
			out = append(out, e)
		}
	})
	return out
}

// extension returns the text after the last dot of the file name, without
// the dot. Dotfiles such as ".ldtk" have no extension.
func extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i+1:]
}
