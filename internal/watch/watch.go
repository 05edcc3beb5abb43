// Package watch re-imports OBJ sources when they change on disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/internal/config"
	"github.com/Faultbox/objmesh/internal/importer"
	"github.com/Faultbox/objmesh/internal/logger"
)

// Handler receives the result of every re-import.
type Handler func(importer.Result)

// Watcher watches a directory tree and re-imports matching files after they
// have been quiet for the debounce interval.
type Watcher struct {
	im       *importer.Importer
	exts     map[string]bool
	debounce time.Duration
	onResult Handler
	log      *zap.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

// New creates a watcher. Extensions in cfg are matched case-insensitively.
func New(im *importer.Importer, cfg config.WatchConfig, onResult Handler) *Watcher {
	exts := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &Watcher{
		im:       im,
		exts:     exts,
		debounce: cfg.Debounce.Std(),
		onResult: onResult,
		log:      logger.For("watch"),
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the initial directory tree is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

func (w *Watcher) matches(path string) bool {
	return w.exts[strings.ToLower(filepath.Ext(path))]
}

// Run watches dir until ctx is done.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := addRecursive(fw, dir); err != nil {
		return err
	}
	w.readyOnce.Do(func() { close(w.ready) })
	w.log.Info("watching", zap.String("dir", dir), zap.Duration("debounce", w.debounce))

	deb := newDebouncer(w.debounce)
	defer deb.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if e.Has(fsnotify.Create) {
				if fi, err := os.Stat(e.Name); err == nil && fi.IsDir() {
					if err := addRecursive(fw, e.Name); err != nil {
						w.log.Warn("watch subdirectory failed", zap.String("dir", e.Name), zap.Error(err))
					}
					continue
				}
			}
			if !w.matches(e.Name) {
				continue
			}
			switch {
			case e.Has(fsnotify.Create), e.Has(fsnotify.Write):
				deb.schedule(e.Name)
			case e.Has(fsnotify.Remove), e.Has(fsnotify.Rename):
				deb.cancel(e.Name)
				w.im.Invalidate(e.Name)
				w.log.Debug("source removed", zap.String(logger.KeySource, e.Name))
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error", zap.Error(err))

		case f := <-deb.fire:
			if !deb.accept(f) {
				continue
			}
			path := f.path
			w.log.Debug("changed", zap.String(logger.KeySource, path))
			w.im.Invalidate(path)
			w.onResult(w.im.Import(ctx, path))
		}
	}
}

// addRecursive adds dir and all its subdirectories to the watch list.
func addRecursive(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}

// firing is a debounce timer expiry for one path.
type firing struct {
	path string
	seq  uint64
}

// pending is the live timer of one path. seq tells a live expiry from one
// that was already in flight when the timer was replaced.
type pending struct {
	timer *time.Timer
	seq   uint64
}

// debouncer coalesces bursts of events per path into one firing. It is owned
// by the Run goroutine; only the timer callbacks touch fire.
type debouncer struct {
	done    chan struct{}
	delay   time.Duration
	fire    chan firing
	pending map[string]pending
	seq     uint64
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		done:    make(chan struct{}),
		delay:   delay,
		fire:    make(chan firing),
		pending: make(map[string]pending),
	}
}

// schedule (re)starts the quiet period of path.
func (d *debouncer) schedule(path string) {
	if p, ok := d.pending[path]; ok && p.timer.Stop() {
		p.timer.Reset(d.delay)
		return
	}
	// Either no timer, or it already fired and its send may be in flight.
	// The new seq makes accept drop that stale send.
	d.seq++
	f := firing{path: path, seq: d.seq}
	d.pending[path] = pending{
		timer: time.AfterFunc(d.delay, func() {
			select {
			case d.fire <- f:
			case <-d.done:
			}
		}),
		seq: f.seq,
	}
}

// accept reports whether f is the live firing of its path and retires it.
func (d *debouncer) accept(f firing) bool {
	p, ok := d.pending[f.path]
	if !ok || p.seq != f.seq {
		return false
	}
	delete(d.pending, f.path)
	return true
}

// cancel drops any pending firing of path.
func (d *debouncer) cancel(path string) {
	if p, ok := d.pending[path]; ok {
		p.timer.Stop()
		delete(d.pending, path)
	}
}

// stop cancels all timers and releases callbacks blocked on fire.
func (d *debouncer) stop() {
	for path := range d.pending {
		d.cancel(path)
	}
	close(d.done)
}
