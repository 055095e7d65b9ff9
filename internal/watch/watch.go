// Package watch keeps a directory under observation and stamps photos as
// they arrive.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Nomadcxx/photostamp/internal/labeler"
	"github.com/Nomadcxx/photostamp/internal/logging"
	"github.com/Nomadcxx/photostamp/internal/scan"
)

// Watcher reacts to new files in a photo directory by pushing them through
// the stamping pipeline. Events are handled one at a time on the Run
// goroutine.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	processor *labeler.Processor
	log       *logging.Logger
	settle    time.Duration
	onResult  func(labeler.FileResult)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettleDelay sets how long a new file must sit unchanged before it is
// stamped. Cameras and sync clients write photos incrementally; stamping a
// half-written file fails decode.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) { w.settle = d }
}

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) Option {
	return func(w *Watcher) { w.log = log }
}

// WithResultFunc registers a callback invoked after each processed file.
func WithResultFunc(fn func(labeler.FileResult)) Option {
	return func(w *Watcher) { w.onResult = fn }
}

// New creates a Watcher feeding processor.
func New(processor *labeler.Processor, opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		processor: processor,
		log:       logging.Nop(),
		settle:    2 * time.Second,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches dir until ctx is done. New image files (and rewritten ones)
// are stamped into outDir after they settle.
func (w *Watcher) Run(ctx context.Context, dir, outDir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("unable to watch %s: %w", dir, err)
	}
	defer w.fsWatcher.Close()

	w.log.Info("watch", "watching", logging.F("dir", dir), logging.F("output", outDir))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !scan.IsImage(event.Name) {
				continue
			}
			// Ignore our own output when it nests under the watched dir.
			if filepath.Dir(event.Name) != filepath.Clean(dir) {
				continue
			}
			w.handle(ctx, event.Name, outDir)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watch", "watch error", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, path, outDir string) {
	if !w.awaitSettle(ctx, path) {
		return
	}

	fr := w.processor.ProcessFile(path, outDir)
	if w.onResult != nil {
		w.onResult(fr)
	}
}

// awaitSettle waits until two consecutive size checks agree, giving
// writers time to finish. Returns false when the file vanished or ctx
// ended first.
func (w *Watcher) awaitSettle(ctx context.Context, path string) bool {
	var lastSize int64 = -1
	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(w.settle):
		}

		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		if info.Size() == lastSize {
			return true
		}
		lastSize = info.Size()
	}
}
