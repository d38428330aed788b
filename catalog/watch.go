package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Store hands out the current catalog. Readers never see a partially loaded
// catalog; Swap replaces it whole.
type Store struct {
	current atomic.Pointer[Catalog]
}

func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

func (s *Store) Get() *Catalog {
	return s.current.Load()
}

func (s *Store) Swap(c *Catalog) {
	s.current.Store(c)
}

// Watcher reloads a catalog file into a Store when it changes on disk.
type Watcher struct {
	path    string
	store   *Store
	log     *zap.Logger
	watcher *fsnotify.Watcher

	debounce  time.Duration
	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewWatcher watches the directory holding path, so editors that replace the
// file on save are still picked up.
func NewWatcher(path string, store *Store, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		path:     filepath.Clean(path),
		store:    store,
		log:      log,
		watcher:  fw,
		debounce: 250 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start runs the watch loop until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.startOnce.Do(func() { go w.run(ctx) })
}

// Stop ends the watch loop and releases the watcher. A watcher that was never
// started cannot be started afterwards.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.startOnce.Do(func() { close(w.doneCh) })
		<-w.doneCh
		w.watcher.Close()
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(w.debounce)
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	c, err := Load(w.path)
	if err != nil {
		w.log.Warn("catalog reload failed, keeping previous catalog", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.store.Swap(c)
	w.log.Info("catalog reloaded",
		zap.String("path", w.path),
		zap.Int("stories", len(c.Stories())),
		zap.Int("characters", len(c.Characters())))
}
