package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/ldtkdrop/ecs"
	"github.com/milk9111/ldtkdrop/ecs/component"
	"golang.org/x/image/font/basicfont"
)

// HUD prints frame rate, player position and the state of the current
// level in the top-left corner.
type HUD struct {
	face ebtext.Face
}

func NewHUD() *HUD {
	return &HUD{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil || screen == nil {
		return
	}
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(4, 4)
	op.ColorScale.ScaleWithColor(color.White)
	op.LineSpacing = 14
	ebtext.Draw(screen, h.Lines(w), h.face, op)
}

// Lines formats the HUD text.
func (h *HUD) Lines(w *ecs.World) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TPS %.0f  FPS %.0f\n", ebiten.ActualTPS(), ebiten.ActualFPS())

	if e, _, ok := ecs.Single(w, component.PlayerComponent.Kind()); ok {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			fmt.Fprintf(&b, "player %.1f, %.1f\n", t.X, t.Y)
		}
	}

	n := 0
	ecs.ForEach(w, component.LevelComponent.Kind(), func(_ ecs.Entity, lvl *component.Level) {
		n++
		if lvl.Handle == nil {
			return
		}
		_, version := lvl.Handle.Project()
		fmt.Fprintf(&b, "level %s [%s v%d]\n", lvl.Handle.Path(), lvl.Handle.State(), version)
	})
	if n == 0 {
		b.WriteString("no level - drop an .ldtk file\n")
	}
	return b.String()
}
