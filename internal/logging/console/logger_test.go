package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("blog.articles")
	logger = logging.WithFields(logger, map[string]any{"module": "blog.articles"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"build_id": uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999"),
	})
	logger = logger.WithContext(ctx)

	logger.Info("articles.load.completed",
		"count", 3,
		"duration", 15*time.Millisecond,
		"dir", "/srv/blog/docs/articles",
	)

	got := strings.TrimSpace(buf.String())
	want := "2024-03-14T15:09:26.535897Z INFO articles.load.completed build_id=8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999 count=3 dir=/srv/blog/docs/articles duration=15ms logger=blog.articles module=blog.articles"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: time.Now,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("blog.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestConsoleLogger_QuotesAndPositionalArgs(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return time.Unix(0, 0) },
	})

	provider.GetLogger("blog").Error("articles.load.failed", "error", errors.New("open a.md: permission denied"), "dangling")

	got := strings.TrimSpace(buf.String())
	if !strings.Contains(got, `error="open a.md: permission denied"`) {
		t.Fatalf("expected quoted error value, got %s", got)
	}
	if !strings.Contains(got, "field_1=dangling") {
		t.Fatalf("expected dangling arg to be kept positionally, got %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  console.Level
		ok    bool
	}{
		{"debug", console.LevelDebug, true},
		{" WARNING ", console.LevelWarn, true},
		{"error", console.LevelError, true},
		{"loud", console.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := console.ParseLevel(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
