package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
)

func markdownOnly(name string) bool {
	return strings.HasSuffix(name, ".md") && name != "index.md"
}

type recorder struct {
	mu       sync.Mutex
	buildIDs []string
	calls    chan struct{}
	fail     bool
}

func newRecorder() *recorder {
	return &recorder{calls: make(chan struct{}, 16)}
}

func (r *recorder) rebuild(ctx context.Context) error {
	r.mu.Lock()
	id, _ := logging.ContextFields(ctx)["build_id"].(string)
	r.buildIDs = append(r.buildIDs, id)
	fail := r.fail
	r.mu.Unlock()

	r.calls <- struct{}{}
	if fail {
		return errors.New("rebuild failed")
	}
	return nil
}

func (r *recorder) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.buildIDs...)
}

func startWatcher(t *testing.T, dir string, fn RebuildFunc) {
	t.Helper()
	w, err := New(dir, markdownOnly, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	w.ready = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, fn) }()

	select {
	case <-w.ready:
	case err := <-done:
		t.Fatalf("watcher exited early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not start")
	}

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("run returned %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func waitCall(t *testing.T, rec *recorder) {
	t.Helper()
	select {
	case <-rec.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("expected rebuild")
	}
}

func TestWatcherRebuildsOnArticleChange(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, dir, rec.rebuild)

	writeFile(t, filepath.Join(dir, "on-testing.md"), "---\ntitle: On Testing\n---\n")
	waitCall(t, rec)

	ids := rec.ids()
	if len(ids) == 0 || ids[0] == "" {
		t.Fatalf("expected build_id on rebuild context, got %v", ids)
	}
}

func TestWatcherIgnoresIneligibleFiles(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, dir, rec.rebuild)

	writeFile(t, filepath.Join(dir, "index.md"), "# Index\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "scratch\n")

	select {
	case <-rec.calls:
		t.Fatal("expected no rebuild for ineligible files")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherKeepsRunningAfterFailedRebuild(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	rec.fail = true
	startWatcher(t, dir, rec.rebuild)

	writeFile(t, filepath.Join(dir, "first.md"), "one\n")
	waitCall(t, rec)

	writeFile(t, filepath.Join(dir, "second.md"), "two\n")
	waitCall(t, rec)

	ids := rec.ids()
	if len(ids) < 2 || ids[0] == ids[1] {
		t.Fatalf("expected distinct build ids per rebuild, got %v", ids)
	}
}

func TestWatcherRunMissingDir(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing"), markdownOnly)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Run(context.Background(), newRecorder().rebuild); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestNewValidatesArguments(t *testing.T) {
	if _, err := New("", markdownOnly); !errors.Is(err, ErrDirRequired) {
		t.Fatalf("expected ErrDirRequired, got %v", err)
	}
	if _, err := New(t.TempDir(), nil); !errors.Is(err, ErrEligibleRequired) {
		t.Fatalf("expected ErrEligibleRequired, got %v", err)
	}

	w, err := New(t.TempDir(), markdownOnly, WithDebounce(-time.Second))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if w.debounce != DefaultDebounce {
		t.Fatalf("expected default debounce, got %s", w.debounce)
	}
	if err := w.Run(context.Background(), nil); !errors.Is(err, ErrCallbackRequired) {
		t.Fatalf("expected ErrCallbackRequired, got %v", err)
	}
}
