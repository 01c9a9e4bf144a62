package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"pscan/core/scan"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Trigger is called after a debounced batch of changes.
type Trigger func(ctx context.Context) error

// Watcher watches a FileSource root and calls a Trigger on changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	source   *scan.FileSource
	debounce time.Duration
	trigger  Trigger
	logger   *zap.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once

	triggered atomic.Int64
}

// New creates a Watcher. Nothing is watched until Start.
func New(source *scan.FileSource, debounce time.Duration, trigger Trigger, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		watcher:  fw,
		source:   source,
		debounce: debounce,
		trigger:  trigger,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start registers the directory tree and begins processing events.
func (w *Watcher) Start() error {
	if err := w.addWatches(w.source.Root); err != nil {
		return fmt.Errorf("failed to add watches starting from %s: %w", w.source.Root, err)
	}

	w.wg.Add(1)
	go w.run()

	w.logger.Info("File watcher started",
		zap.String("root", w.source.Root),
		zap.Duration("debounce", w.debounce),
		zap.Int("directories", len(w.watcher.WatchList())),
	)
	return nil
}

// Stop cancels a running trigger, closes the watcher and waits for its goroutine.
// It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		w.cancel()
		err = w.watcher.Close()
		w.wg.Wait()
		w.logger.Info("File watcher stopped", zap.Int64("rescans", w.triggered.Load()))
	})
	return err
}

// Triggered returns how many times the trigger has run.
func (w *Watcher) Triggered() int64 {
	return w.triggered.Load()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.handle(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("File watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			w.triggered.Add(1)
			if err := w.trigger(w.ctx); err != nil && w.ctx.Err() == nil {
				w.logger.Error("Triggered rescan failed", zap.Error(err))
			}
		}
	}
}

// handle filters an event and reports whether it should schedule a rescan.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if rel, ok := w.relative(event.Name); !ok || w.source.Excluded(rel) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addWatches(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
		}
	}

	w.logger.Debug("File change", zap.String("path", event.Name), zap.String("op", event.Op.String()))
	return true
}

// addWatches registers dir and every non-excluded directory below it.
func (w *Watcher) addWatches(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if rel, ok := w.relative(path); ok && rel != "." && w.source.Excluded(rel) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) relative(path string) (string, bool) {
	rel, err := filepath.Rel(w.source.Root, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
