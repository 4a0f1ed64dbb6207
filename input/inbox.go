package input

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a file in the inbox must stay unwritten before
// it counts as dropped.
const DefaultSettle = 250 * time.Millisecond

// InboxWatcher turns file activity in a directory into drag-and-drop
// events: a new file hovers, a file that stops changing drops, and a file
// removed before it settles cancels the hover.
type InboxWatcher struct {
	watcher *fsnotify.Watcher
	queue   *Queue
	settle  time.Duration
	window  WindowID

	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

func NewInboxWatcher(dir string, settle time.Duration, queue *Queue) (*InboxWatcher, error) {
	if settle <= 0 {
		settle = DefaultSettle
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	iw := &InboxWatcher{
		watcher: w,
		queue:   queue,
		settle:  settle,
		window:  PrimaryWindow,
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go iw.run()
	return iw, nil
}

func (iw *InboxWatcher) Close() error {
	var err error
	iw.once.Do(func() {
		close(iw.closeCh)
		err = iw.watcher.Close()
		<-iw.doneCh
	})
	return err
}

func (iw *InboxWatcher) run() {
	defer close(iw.doneCh)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(iw.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-iw.watcher.Events:
			if !ok {
				return
			}
			if ignoredInboxName(event.Name) {
				continue
			}
			switch {
			case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
				if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
					continue
				}
				if _, ok := pending[event.Name]; !ok {
					iw.queue.Push(Hovered(iw.window, event.Name))
				}
				pending[event.Name] = time.Now()
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				if _, ok := pending[event.Name]; ok {
					delete(pending, event.Name)
					iw.queue.Push(HoverCancelled(iw.window))
				}
			}
		case _, ok := <-iw.watcher.Errors:
			if !ok {
				return
			}
		case now := <-ticker.C:
			for name, last := range pending {
				if now.Sub(last) < iw.settle {
					continue
				}
				delete(pending, name)
				iw.queue.Push(Dropped(iw.window, name))
			}
		case <-iw.closeCh:
			return
		}
	}
}

// ignoredInboxName skips editor swap files and partial downloads.
func ignoredInboxName(p string) bool {
	base := filepath.Base(p)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".part") || strings.HasSuffix(base, ".tmp")
}
