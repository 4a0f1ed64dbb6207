package input

import (
	"fmt"
	"io/fs"
	"sync"
)

// WindowID identifies the window a drag-and-drop event happened over.
type WindowID uint64

const PrimaryWindow WindowID = 0

type DropKind int

const (
	DroppedFile DropKind = iota
	HoveredFile
	HoveredFileCancelled
)

func (k DropKind) String() string {
	switch k {
	case DroppedFile:
		return "dropped"
	case HoveredFile:
		return "hovered"
	case HoveredFileCancelled:
		return "hover-cancelled"
	default:
		return fmt.Sprintf("DropKind(%d)", int(k))
	}
}

// DropEvent is one drag-and-drop notification. FS is set when the file is
// only reachable through a virtual filesystem (ebiten drops); Path is then
// relative to it.
type DropEvent struct {
	Kind   DropKind
	Window WindowID
	Path   string
	FS     fs.FS
}

func Dropped(window WindowID, path string) DropEvent {
	return DropEvent{Kind: DroppedFile, Window: window, Path: path}
}

func Hovered(window WindowID, path string) DropEvent {
	return DropEvent{Kind: HoveredFile, Window: window, Path: path}
}

func HoverCancelled(window WindowID) DropEvent {
	return DropEvent{Kind: HoveredFileCancelled, Window: window}
}

// Queue buffers drop events between frames in arrival order. Producers may
// push from any goroutine; the frame loop drains it once per tick.
type Queue struct {
	mu    sync.Mutex
	items []DropEvent
}

// Push adds an event.
func (q *Queue) Push(evt DropEvent) {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, evt)
	q.mu.Unlock()
}

// Drain returns all events and clears the queue.
func (q *Queue) Drain() []DropEvent {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports how many events are waiting.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
