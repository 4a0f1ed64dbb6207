package render

import (
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ldtkdrop/ecs"
	"github.com/milk9111/ldtkdrop/ecs/component"
)

// RenderSystem draws the world through the camera. World space has y
// pointing up; the screen has it pointing down.
type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

type view struct {
	camX, camY float64
	zoom       float64
	cx, cy     float64
}

func (v view) toScreen(x, y float64) (float32, float32) {
	return float32((x-v.camX)*v.zoom + v.cx), float32(v.cy - (y-v.camY)*v.zoom)
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraTagComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	bounds := screen.Bounds()
	v := view{zoom: 1, cx: float64(bounds.Dx()) / 2, cy: float64(bounds.Dy()) / 2}
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		v.camX = camTransform.X
		v.camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		v.zoom = camComp.Zoom
	}

	ecs.ForEach(w, component.LevelBoundsComponent.Kind(), func(_ ecs.Entity, b *component.LevelBounds) {
		x, y := v.toScreen(b.X, b.Y+b.Height)
		vector.FillRect(screen, x, y, float32(b.Width*v.zoom), float32(b.Height*v.zoom), b.Color, false)
	})

	r.drawLayers(w, screen, v)
	r.drawShapes(w, screen, v)
}

func (r *RenderSystem) drawLayers(w *ecs.World, screen *ebiten.Image, v view) {
	entities := w.Query(component.LevelLayerComponent.Kind())
	layers := make([]*component.LevelLayer, 0, len(entities))
	for _, e := range entities {
		if layer, ok := ecs.Get(w, e, component.LevelLayerComponent.Kind()); ok {
			layers = append(layers, layer)
		}
	}
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Depth < layers[j].Depth })

	keep := make(map[string]struct{})
	for _, layer := range layers {
		size := float32(layer.GridSize * v.zoom)
		var tileset *ebiten.Image
		if layer.Tileset != nil {
			keep[layer.TilesetKey] = struct{}{}
			tileset = ImageFor(layer.TilesetKey, layer.Tileset)
		}
		g := int(layer.GridSize)
		for _, t := range layer.Tiles {
			x, y := v.toScreen(t.X, t.Y+layer.GridSize)
			if t.Val > 0 || tileset == nil {
				clr, ok := layer.Palette[t.Val]
				if !ok {
					clr = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
				}
				vector.FillRect(screen, x, y, size, size, fade(clr, layer.Opacity), false)
				continue
			}
			sub, ok := tileset.SubImage(image.Rect(t.SrcX, t.SrcY, t.SrcX+g, t.SrcY+g)).(*ebiten.Image)
			if !ok {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(v.zoom, v.zoom)
			op.GeoM.Translate(float64(x), float64(y))
			op.ColorScale.ScaleAlpha(float32(layer.Opacity))
			screen.DrawImage(sub, op)
		}
	}
	ForgetImages(keep)
}

func (r *RenderSystem) drawShapes(w *ecs.World, screen *ebiten.Image, v view) {
	entities := w.Query(component.TransformComponent.Kind(), component.ShapeComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		ti, _ := ecs.Get(w, entities[i], component.TransformComponent.Kind())
		tj, _ := ecs.Get(w, entities[j], component.TransformComponent.Kind())
		if ti.Z != tj.Z {
			return ti.Z < tj.Z
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.ShapeComponent.Kind())
		x, y := v.toScreen(t.X-s.Width/2, t.Y+s.Height/2)
		vector.FillRect(screen, x, y, float32(s.Width*v.zoom), float32(s.Height*v.zoom), s.Color, false)
	}
}

func fade(c color.Color, opacity float64) color.Color {
	if opacity >= 1 {
		return c
	}
	r, g, b, a := c.RGBA()
	k := max(opacity, 0)
	return color.RGBA64{
		R: uint16(float64(r) * k),
		G: uint16(float64(g) * k),
		B: uint16(float64(b) * k),
		A: uint16(float64(a) * k),
	}
}
