package system

import (
	"fmt"
	"image/color"
	"log"

	"github.com/milk9111/ldtkdrop/asset"
	"github.com/milk9111/ldtkdrop/ecs"
	"github.com/milk9111/ldtkdrop/ecs/component"
	"github.com/milk9111/ldtkdrop/levels"
)

// AssetReleaser lets go of handles nobody references any more.
type AssetReleaser interface {
	Release(h *asset.Handle)
}

// LevelSpawnSystem builds the layer entities of a level once its project
// has loaded, rebuilds them when the project reloads, and releases the
// handles of levels that were despawned.
type LevelSpawnSystem struct {
	releaser  AssetReleaser
	selection int
	tracked   map[ecs.Entity]*asset.Handle
	failed    map[*asset.Handle]struct{}
}

func NewLevelSpawnSystem(releaser AssetReleaser, selection int) *LevelSpawnSystem {
	return &LevelSpawnSystem{
		releaser:  releaser,
		selection: selection,
		tracked:   make(map[ecs.Entity]*asset.Handle),
		failed:    make(map[*asset.Handle]struct{}),
	}
}

func (s *LevelSpawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.LevelComponent.Kind(), func(e ecs.Entity, lvl *component.Level) {
		if lvl.Handle == nil {
			return
		}
		s.tracked[e] = lvl.Handle

		project, version := lvl.Handle.Project()
		if project == nil {
			s.reportFailure(lvl.Handle)
			return
		}
		if spawned, ok := ecs.Get(w, e, component.LevelSpawnedComponent.Kind()); ok && spawned.Version == version {
			return
		}
		for _, child := range ecs.Children(w, e) {
			ecs.DestroyRecursive(w, child)
		}
		if err := s.spawn(w, e, project); err != nil {
			log.Printf("level spawn: %s: %v", lvl.Handle.Path(), err)
		}
		if err := ecs.Add(w, e, component.LevelSpawnedComponent.Kind(), &component.LevelSpawned{Version: version}); err != nil {
			log.Printf("level spawn: mark %s: %v", lvl.Handle.Path(), err)
		}
	})

	for e, h := range s.tracked {
		if w.IsAlive(e) {
			continue
		}
		delete(s.tracked, e)
		delete(s.failed, h)
		if s.releaser != nil {
			s.releaser.Release(h)
		}
	}
}

func (s *LevelSpawnSystem) reportFailure(h *asset.Handle) {
	if h.State() != asset.StateFailed {
		return
	}
	if _, seen := s.failed[h]; seen {
		return
	}
	s.failed[h] = struct{}{}
	log.Printf("level spawn: %s failed to load: %v", h.Path(), h.Err())
}

func (s *LevelSpawnSystem) spawn(w *ecs.World, parent ecs.Entity, project *asset.Project) error {
	lvl := project.LDtk.Level(s.selection)
	if lvl == nil {
		return fmt.Errorf("project has no level %d", s.selection)
	}

	// Only the selected level is spawned, so it sits at the origin with its
	// bottom-left corner at (0, 0). LDtk pixel rows grow downward; tiles are
	// flipped so that y points up.
	originX := 0.0
	bottom := 0.0
	top := float64(lvl.PxHei)

	bg := levelBackground(project.LDtk, lvl)
	boundsEnt := ecs.CreateEntity(w)
	if err := ecs.Add(w, boundsEnt, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		X:      originX,
		Y:      bottom,
		Width:  float64(lvl.PxWid),
		Height: float64(lvl.PxHei),
		Color:  bg,
	}); err != nil {
		return err
	}
	if err := ecs.SetParent(w, boundsEnt, parent); err != nil {
		return err
	}

	// Layer instances are listed top-most first.
	depth := 0
	for i := len(lvl.LayerInstances) - 1; i >= 0; i-- {
		li := &lvl.LayerInstances[i]
		// Fully transparent layers draw nothing.
		if !li.IsVisible() || li.LayerOpacity() == 0 {
			continue
		}
		layer := buildLayer(project, li, originX, top)
		if len(layer.Tiles) == 0 {
			continue
		}
		layer.Depth = depth
		depth++

		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.LevelLayerComponent.Kind(), layer); err != nil {
			return err
		}
		if err := ecs.SetParent(w, e, parent); err != nil {
			return err
		}
	}
	return nil
}

func buildLayer(project *asset.Project, li *levels.LayerInstance, originX, top float64) *component.LevelLayer {
	grid := float64(li.GridSize)
	if grid <= 0 {
		grid = float64(max(project.LDtk.DefaultGridSize, 1))
	}
	layer := &component.LevelLayer{
		Identifier: li.Identifier,
		GridSize:   grid,
		Opacity:    li.LayerOpacity(),
	}
	offX := originX + float64(li.PxTotalOffsetX)
	offTop := top - float64(li.PxTotalOffsetY)

	if tiles := li.Tiles(); len(tiles) > 0 && li.TilesetDefUID != nil {
		if img, ok := project.Tilesets[*li.TilesetDefUID]; ok {
			layer.Tileset = img
			layer.TilesetKey = fmt.Sprintf("%p/%d", project, *li.TilesetDefUID)
			for _, t := range tiles {
				layer.Tiles = append(layer.Tiles, component.LevelTile{
					X:    offX + float64(t.Px[0]),
					Y:    offTop - float64(t.Px[1]) - grid,
					SrcX: t.Src[0],
					SrcY: t.Src[1],
				})
			}
			return layer
		}
	}

	if li.CWid <= 0 || len(li.IntGridCSV) == 0 {
		return layer
	}
	layer.Palette = intGridPalette(project.LDtk, li.LayerDefUID)
	for idx, v := range li.IntGridCSV {
		if v <= 0 {
			continue
		}
		cx, cy := idx%li.CWid, idx/li.CWid
		layer.Tiles = append(layer.Tiles, component.LevelTile{
			X:   offX + float64(cx)*grid,
			Y:   offTop - float64(cy+1)*grid,
			Val: v,
		})
	}
	return layer
}

func intGridPalette(p *levels.Project, layerDefUID int) map[int]color.Color {
	palette := make(map[int]color.Color)
	def, ok := p.LayerDef(layerDefUID)
	if !ok {
		return palette
	}
	for _, v := range def.IntGridValues {
		if c, ok := levels.ParseColor(v.Color); ok {
			palette[v.Value] = c
		}
	}
	return palette
}

func levelBackground(p *levels.Project, lvl *levels.Level) color.Color {
	for _, s := range []string{lvl.BgColor, p.DefaultLevelBg, p.BgColor} {
		if c, ok := levels.ParseColor(s); ok {
			return c
		}
	}
	return color.NRGBA{A: 0xff}
}
