package asset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/milk9111/ldtkdrop/levels"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Server loads LDtk projects in the background. Load never blocks; callers
// poll the returned Handle.
type Server struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	group  singleflight.Group
	nextID atomic.Uint64

	mu      sync.Mutex
	live    map[*Handle]struct{}
	watcher *Watcher
}

func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		ctx:    ctx,
		cancel: cancel,
		live:   make(map[*Handle]struct{}),
	}
}

// Load starts loading loc and returns its handle immediately.
func (s *Server) Load(loc Locator) *Handle {
	h := newHandle(s.ctx, s.nextID.Add(1), loc)

	s.mu.Lock()
	s.live[h] = struct{}{}
	watcher := s.watcher
	s.mu.Unlock()

	if watcher != nil && loc.OnDisk() {
		if err := watcher.Track(loc.Path); err != nil {
			log.Printf("asset: watch %s: %v", loc.Path, err)
		}
	}

	s.start(h, false)
	return h
}

// Release drops a handle the caller no longer needs and cancels its load if
// it is still running.
func (s *Server) Release(h *Handle) {
	if h == nil {
		return
	}
	s.mu.Lock()
	delete(s.live, h)
	s.mu.Unlock()
	h.release()
}

// Reload re-reads every live handle loaded from the OS path p and returns
// how many were restarted.
func (s *Server) Reload(p string) int {
	target := absPath(p)
	var targets []*Handle
	s.mu.Lock()
	for h := range s.live {
		if h.locator.OnDisk() && absPath(h.locator.Path) == target {
			targets = append(targets, h)
		}
	}
	s.mu.Unlock()

	for _, h := range targets {
		log.Printf("asset: reloading %s (handle %d)", h.locator, h.id)
		s.start(h, true)
	}
	return len(targets)
}

// Close cancels outstanding loads, stops the watcher and waits for workers.
func (s *Server) Close() error {
	s.cancel()
	s.mu.Lock()
	watcher := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	var err error
	if watcher != nil {
		err = watcher.Close()
	}
	s.wg.Wait()
	return err
}

// start runs a load attempt for h. A fresh attempt never joins a read
// that was already in flight, so it sees the file as it is now.
func (s *Server) start(h *Handle, fresh bool) {
	n := h.begin()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		p, err := s.load(h.ctx, h.locator, fresh)
		if err != nil && !h.isReleased() {
			log.Printf("asset: load %s: %v", h.locator, err)
		}
		h.finish(n, p, err)
	}()
}

func (s *Server) load(ctx context.Context, loc Locator, fresh bool) (*Project, error) {
	if !loc.OnDisk() {
		return loadProject(ctx, loc)
	}
	// Concurrent requests for one file share a single read and parse.
	key := filepath.Clean(loc.Path)
	if fresh {
		s.group.Forget(key)
	}
	ch := s.group.DoChan(key, func() (any, error) {
		return loadProject(s.ctx, loc)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Project), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func loadProject(ctx context.Context, loc Locator) (*Project, error) {
	data, err := readFile(loc, loc.Path)
	if err != nil {
		return nil, err
	}
	ldtk, err := levels.Parse(data)
	if err != nil {
		return nil, err
	}
	if ldtk.ExternalLevels {
		if err := loadExternalLevels(loc, ldtk); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &Project{LDtk: ldtk, Tilesets: make(map[int]image.Image)}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, ts := range ldtk.Defs.Tilesets {
		if ts.RelPath == "" {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			img, err := decodeImage(loc, ts.RelPath)
			if err != nil {
				// Layers fall back to flat colours without their tileset.
				log.Printf("asset: tileset %q of %s: %v", ts.Identifier, loc, err)
				return nil
			}
			mu.Lock()
			out.Tilesets[ts.UID] = img
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadExternalLevels(loc Locator, p *levels.Project) error {
	for i := range p.Levels {
		rel := p.Levels[i].ExternalRelPath
		if rel == "" {
			continue
		}
		data, err := readFile(loc, sibling(loc, rel))
		if err != nil {
			return err
		}
		lvl, err := levels.ParseLevel(data)
		if err != nil {
			return err
		}
		p.Levels[i] = *lvl
	}
	return nil
}

func decodeImage(loc Locator, rel string) (image.Image, error) {
	data, err := readFile(loc, sibling(loc, rel))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", rel, err)
	}
	return img, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// sibling resolves rel against the directory holding the locator's file.
func sibling(loc Locator, rel string) string {
	if loc.FS == nil {
		if filepath.IsAbs(rel) {
			return rel
		}
		return filepath.Join(filepath.Dir(loc.Path), filepath.FromSlash(rel))
	}
	return path.Join(path.Dir(loc.Path), filepath.ToSlash(rel))
}

func readFile(loc Locator, name string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if loc.FS == nil {
		data, err = os.ReadFile(name)
	} else {
		data, err = fs.ReadFile(loc.FS, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
