package asset

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"sync"

	"github.com/milk9111/ldtkdrop/levels"
)

var ErrReleased = errors.New("asset: handle released")

// Locator names a level resource. A nil FS means Path is an OS path.
type Locator struct {
	Path string
	FS   fs.FS
}

func (l Locator) String() string {
	if l.FS == nil {
		return l.Path
	}
	return fmt.Sprintf("%s (virtual)", l.Path)
}

// OnDisk reports whether the locator points at the OS filesystem and can be
// watched for changes.
func (l Locator) OnDisk() bool {
	return l.FS == nil && l.Path != ""
}

type State int

const (
	StateLoading State = iota
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Project is a parsed LDtk project plus the tileset images that could be
// decoded, keyed by tileset uid.
type Project struct {
	LDtk     *levels.Project
	Tilesets map[int]image.Image
}

// Handle refers to an in-flight or finished load. Handles are safe for
// concurrent use.
type Handle struct {
	id      uint64
	locator Locator

	mu       sync.RWMutex
	state    State
	project  *Project
	err      error
	version  uint64
	released bool
	// attempt numbers load attempts; results of superseded attempts are
	// dropped.
	attempt uint64

	done     chan struct{}
	doneOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
}

func newHandle(parent context.Context, id uint64, loc Locator) *Handle {
	ctx, cancel := context.WithCancel(parent)
	return &Handle{
		id:      id,
		locator: loc,
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (h *Handle) ID() uint64 { return h.id }

func (h *Handle) Locator() Locator { return h.locator }

// Path is the locator path the handle was requested with.
func (h *Handle) Path() string { return h.locator.Path }

func (h *Handle) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Project returns the latest successfully loaded project and its version.
// Version 0 means nothing has loaded yet.
func (h *Handle) Project() (*Project, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.project, h.version
}

// Err returns the error of the most recent failed load attempt.
func (h *Handle) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// Done is closed once the first recorded load attempt finishes, either way.
func (h *Handle) Done() <-chan struct{} { return h.done }

func (h *Handle) isReleased() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.released
}

// begin starts a new load attempt and returns its number.
func (h *Handle) begin() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attempt++
	return h.attempt
}

// finish records the outcome of load attempt n. Attempts that a newer one
// has superseded are ignored.
func (h *Handle) finish(n uint64, p *Project, err error) {
	h.mu.Lock()
	if n < h.attempt {
		h.mu.Unlock()
		return
	}
	switch {
	case h.released:
		h.err = ErrReleased
		if h.project == nil {
			h.state = StateFailed
		}
	case err != nil:
		h.err = err
		// A failed reload keeps the last good project on screen.
		if h.project == nil {
			h.state = StateFailed
		}
	default:
		h.err = nil
		h.project = p
		h.version++
		h.state = StateLoaded
	}
	h.mu.Unlock()
	h.doneOnce.Do(func() { close(h.done) })
}

func (h *Handle) release() {
	h.mu.Lock()
	h.released = true
	h.mu.Unlock()
	h.cancel()
}
