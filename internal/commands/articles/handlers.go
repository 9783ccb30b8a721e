package articlescmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goliatone/go-blog/internal/articles"
	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
)

const (
	buildIndexOperation = "articles.build_index"

	// TextCodeMetadataInvalid marks failures caused by an article's front matter.
	TextCodeMetadataInvalid = "ARTICLE_METADATA_INVALID"
)

// ErrLoaderRequired is returned when the handler is built without a loader.
var ErrLoaderRequired = errors.New("articles command: loader is required")

var _ command.Commander[BuildIndexCommand] = (*BuildIndexHandler)(nil)

// BuildIndexHandler runs the article loader and publishes the listing.
type BuildIndexHandler struct {
	inner *commands.Handler[BuildIndexCommand]
}

// NewBuildIndexHandler binds the handler to loader. stdout receives the
// listing when the command targets StdoutOutput and defaults to os.Stdout.
func NewBuildIndexHandler(loader interfaces.ArticleLoader, stdout io.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[BuildIndexCommand]) *BuildIndexHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}
	if stdout == nil {
		stdout = os.Stdout
	}

	exec := func(ctx context.Context, msg BuildIndexCommand) error {
		if loader == nil {
			return ErrLoaderRequired
		}

		summaries, err := loader.Load(ctx)
		if err != nil {
			return categorizeLoadError(err)
		}
		if summaries == nil {
			summaries = []interfaces.ArticleSummary{}
		}

		payload, err := encodeIndex(summaries, msg.Indent)
		if err != nil {
			return err
		}

		if msg.Output == StdoutOutput {
			if _, err := stdout.Write(payload); err != nil {
				return fmt.Errorf("articles command: write stdout: %w", err)
			}
		} else if err := writeFileAtomic(msg.Output, payload); err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"output": msg.Output,
			"count":  len(summaries),
			"bytes":  len(payload),
		}).Info("articles.command.build_index.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildIndexCommand]{
		commands.WithLogger[BuildIndexCommand](baseLogger),
		commands.WithOperation[BuildIndexCommand](buildIndexOperation),
		commands.WithMessageFields(func(msg BuildIndexCommand) map[string]any {
			return map[string]any{"output": msg.Output}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildIndexHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildIndexCommand].
func (h *BuildIndexHandler) Execute(ctx context.Context, msg BuildIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

func categorizeLoadError(err error) error {
	var metaErr *articles.MetadataError
	if errors.As(err, &metaErr) {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "article metadata invalid").
			WithTextCode(TextCodeMetadataInvalid)
	}
	return err
}

// encodeIndex renders the listing without HTML escaping; excerpts carry markup
// the site templates embed as-is.
func encodeIndex(summaries []interfaces.ArticleSummary, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(summaries); err != nil {
		return nil, fmt.Errorf("articles command: encode index: %w", err)
	}
	return buf.Bytes(), nil
}

// writeFileAtomic replaces path with data via a sibling temp file so readers
// never observe a partial index.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("articles command: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("articles command: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("articles command: write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("articles command: close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("articles command: chmod %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("articles command: rename to %s: %w", path, err)
	}
	return nil
}
