package desktop

import (
	"io/fs"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ldtkdrop/input"
	"golang.design/x/clipboard"
)

// Drops polls ebiten for files dropped on the window and, when enabled,
// treats Ctrl+V of a path on the clipboard as a drop.
type Drops struct {
	queue     *input.Queue
	clipboard bool
}

func NewDrops(queue *input.Queue) *Drops {
	return &Drops{queue: queue}
}

// EnableClipboard initialises clipboard access. Paste stays off when the
// platform has no clipboard.
func (d *Drops) EnableClipboard() error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	d.clipboard = true
	return nil
}

// Poll pushes this tick's drop events. It must run inside ebiten's Update.
func (d *Drops) Poll() {
	if fsys := ebiten.DroppedFiles(); fsys != nil {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			log.Printf("desktop: read dropped files: %v", err)
		}
		for _, e := range entries {
			d.queue.Push(input.DropEvent{
				Kind:   input.DroppedFile,
				Window: input.PrimaryWindow,
				Path:   e.Name(),
				FS:     fsys,
			})
		}
	}

	if d.clipboard && pasteShortcut() {
		text := strings.TrimSpace(string(clipboard.Read(clipboard.FmtText)))
		if text == "" || strings.ContainsAny(text, "\r\n") {
			return
		}
		d.queue.Push(input.Dropped(input.PrimaryWindow, text))
	}
}

func pasteShortcut() bool {
	mod := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	return mod && inpututil.IsKeyJustPressed(ebiten.KeyV)
}
