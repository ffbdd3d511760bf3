package alias

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"
)

// DefaultWatchInterval is how often the Watcher checks the alias file.
const DefaultWatchInterval = 30 * time.Second

// ReloadFunc is notified after every reload the Watcher performs.
type ReloadFunc func(Result, error)

// Watcher reloads a Store whenever the alias file's modification time or
// size changes. A deleted file reloads to empty tables once.
type Watcher struct {
	store    *Store
	path     string
	interval time.Duration
	logger   *slog.Logger
	onReload []ReloadFunc

	mu      sync.Mutex
	modTime time.Time
	size    int64
	exists  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a Watcher. The file's current state is taken as the
// baseline, so Start does not trigger an immediate reload.
func NewWatcher(store *Store, path string, interval time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	w := &Watcher{
		store:    store,
		path:     path,
		interval: interval,
		logger:   logger,
	}
	w.modTime, w.size, w.exists = w.stat()
	return w
}

// OnReload registers fn to be called after each reload, in registration
// order. Call before Start.
func (w *Watcher) OnReload(fn ReloadFunc) {
	if fn != nil {
		w.onReload = append(w.onReload, fn)
	}
}

// Start begins polling in the background.
func (w *Watcher) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.loop()
	}()

	w.logger.Info("alias watcher started",
		"path", w.path,
		"interval", w.interval,
	)
	return nil
}

// Stop gracefully shuts down.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("alias watcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Watcher) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check reloads the store if the file changed since the last check and
// reports whether a reload happened.
func (w *Watcher) Check() bool {
	modTime, size, exists := w.stat()

	w.mu.Lock()
	changed := exists != w.exists || size != w.size || !modTime.Equal(w.modTime)
	w.modTime, w.size, w.exists = modTime, size, exists
	w.mu.Unlock()

	if !changed {
		return false
	}

	w.logger.Info("alias file changed, reloading", "path", w.path, "exists", exists)
	res, err := w.store.Reload(w.path)
	for _, fn := range w.onReload {
		fn(res, err)
	}
	return true
}

func (w *Watcher) stat() (time.Time, int64, bool) {
	info, err := os.Stat(w.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.logger.Debug("stat alias file failed", "path", w.path, "error", err)
		}
		return time.Time{}, 0, false
	}
	return info.ModTime(), info.Size(), true
}
