// Package watch re-runs the article index build when files in the articles
// directory change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

// DefaultDebounce collapses editor save bursts into a single rebuild.
const DefaultDebounce = 100 * time.Millisecond

var (
	ErrDirRequired      = errors.New("watch: directory is required")
	ErrEligibleRequired = errors.New("watch: eligibility predicate is required")
	ErrCallbackRequired = errors.New("watch: rebuild callback is required")
)

// RebuildFunc is invoked after a debounced batch of changes. The context
// carries a build_id logging field unique to the invocation.
type RebuildFunc func(ctx context.Context) error

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger used for change and rebuild entries.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher observes a single directory, non-recursively.
type Watcher struct {
	dir      string
	eligible func(name string) bool
	debounce time.Duration
	logger   interfaces.Logger

	// ready is closed once the directory is being watched.
	ready chan struct{}
}

// New returns a watcher for dir. eligible receives base file names and
// decides which changes schedule a rebuild.
func New(dir string, eligible func(name string) bool, opts ...Option) (*Watcher, error) {
	if dir == "" {
		return nil, ErrDirRequired
	}
	if eligible == nil {
		return nil, ErrEligibleRequired
	}
	w := &Watcher{
		dir:      dir,
		eligible: eligible,
		debounce: DefaultDebounce,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Dir reports the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run blocks until ctx is done, calling fn after each debounced batch of
// relevant changes. Rebuild failures are logged and the watcher keeps going.
func (w *Watcher) Run(ctx context.Context, fn RebuildFunc) error {
	if fn == nil {
		return ErrCallbackRequired
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", w.dir, err)
	}
	w.logger.Info("watch.started", "dir", w.dir, "debounce", w.debounce)
	if w.ready != nil {
		close(w.ready)
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending []string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch.stopped", "dir", w.dir)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending = append(pending, filepath.Base(event.Name))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch.error", "dir", w.dir, "error", err)

		case <-fire:
			fire = nil
			w.rebuild(ctx, fn, pending)
			pending = nil
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return w.eligible(filepath.Base(event.Name))
}

func (w *Watcher) rebuild(ctx context.Context, fn RebuildFunc, changed []string) {
	buildID := uuid.NewString()
	ctx = logging.ContextWithFields(ctx, map[string]any{"build_id": buildID})
	logger := w.logger.WithContext(ctx)

	logger.Debug("watch.rebuild.start", "changed", len(changed))
	started := time.Now()
	if err := fn(ctx); err != nil {
		logger.Error("watch.rebuild.failed", "error", err)
		return
	}
	logger.Info("watch.rebuild.completed", "duration", time.Since(started))
}
