package asset

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reports writes to tracked level files. Directories are watched
// rather than files so editors that save by rename keep being noticed.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once

	mu    sync.Mutex
	dirs  map[string]struct{}
	files map[string]struct{}
}

func NewWatcher() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		dirs:    make(map[string]struct{}),
		files:   make(map[string]struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Track starts reporting changes to the file at p.
func (w *Watcher) Track(p string) error {
	abs, err := filepath.Abs(p)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[abs] = struct{}{}
	if _, ok := w.dirs[dir]; ok {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		delete(w.files, abs)
		return err
	}
	w.dirs[dir] = struct{}{}
	return nil
}

func (w *Watcher) tracked(p string) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[abs]
	return ok
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	// A file is reported once it has gone reloadDebounce without another
	// write, so a save that truncates then writes yields one reload.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(reloadDebounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.tracked(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case now := <-ticker.C:
			for name, last := range pending {
				if now.Sub(last) < reloadDebounce {
					continue
				}
				delete(pending, name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
		case <-w.closeCh:
			return
		}
	}
}

// Watch turns on hot reload: files loaded from disk are reloaded in place
// when they change.
func (s *Server) Watch() error {
	watcher, err := NewWatcher()
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.watcher != nil {
		s.mu.Unlock()
		_ = watcher.Close()
		return nil
	}
	s.watcher = watcher
	tracked := make([]string, 0, len(s.live))
	for h := range s.live {
		if h.locator.OnDisk() {
			tracked = append(tracked, h.locator.Path)
		}
	}
	s.mu.Unlock()

	for _, p := range tracked {
		if err := watcher.Track(p); err != nil {
			log.Printf("asset: watch %s: %v", p, err)
		}
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case name, ok := <-watcher.Events:
				if !ok {
					return
				}
				s.Reload(name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("asset: watcher: %v", err)
			}
		}
	}()
	return nil
}
