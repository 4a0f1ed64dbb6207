package render

import (
	"image/color"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/ldtkdrop/input"
	"golang.org/x/image/font/basicfont"
)

// DropOverlay shows a centred panel while a file hovers over the window.
// It implements system.DropObserver.
type DropOverlay struct {
	face   ebtext.Face
	width  int
	height int
	ui     *ebitenui.UI
}

func NewDropOverlay(width, height int) *DropOverlay {
	return &DropOverlay{
		face:   ebtext.NewGoXFace(basicfont.Face7x13),
		width:  width,
		height: height,
	}
}

func (o *DropOverlay) HoverStarted(_ input.WindowID, path string) {
	o.ui = o.build(filepath.Base(path))
}

func (o *DropOverlay) HoverEnded(_ input.WindowID) {
	o.ui = nil
}

func (o *DropOverlay) Update() {
	if o.ui != nil {
		o.ui.Update()
	}
}

func (o *DropOverlay) Draw(screen *ebiten.Image) {
	if o.ui != nil {
		o.ui.Draw(screen)
	}
}

func (o *DropOverlay) build(name string) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	face := o.face

	title := widget.NewText(
		widget.TextOpts.Text("Drop to load level", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	file := widget.NewText(
		widget.TextOpts.Text(name, &face, color.NRGBA{R: 0xf2, G: 0xc1, B: 0x4e, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(o.width/2, o.height/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(file)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
