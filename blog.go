// Package blog builds the newest-first article listing of a static blog from a
// flat directory of markdown files.
package blog

import (
	"context"
	"io"
	"io/fs"

	"github.com/goliatone/go-blog/internal/articles"
	articlescmd "github.com/goliatone/go-blog/internal/commands/articles"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/watch"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ArticleSummary is one entry of the listing.
type ArticleSummary = interfaces.ArticleSummary

// ArticleDate is the normalised publication date of an article.
type ArticleDate = interfaces.ArticleDate

// MetadataError reports an article with missing or unusable front matter.
type MetadataError = articles.MetadataError

// BuildIndexCommand publishes the listing as JSON.
type BuildIndexCommand = articlescmd.BuildIndexCommand

// BuildIndexHandler executes BuildIndexCommand.
type BuildIndexHandler = articlescmd.BuildIndexHandler

// Watcher re-runs a rebuild callback when articles change.
type Watcher = watch.Watcher

// StdoutOutput directs BuildIndexCommand to standard output.
const StdoutOutput = articlescmd.StdoutOutput

var (
	ErrTitleRequired = articles.ErrTitleRequired
	ErrDateRequired  = articles.ErrDateRequired
	ErrInvalidDate   = articles.ErrInvalidDate
	ErrFrontMatter   = articles.ErrFrontMatter
)

// IsDateParseError reports whether err was caused by an unparseable date.
func IsDateParseError(err error) bool {
	return articles.IsDateParseError(err)
}

// Option customises module wiring.
type Option = di.Option

// WithLoggerProvider overrides the provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithMarkdownParser replaces the goldmark excerpt renderer.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return di.WithMarkdownParser(parser)
}

// WithFS reads articles from fsys, rooted at the articles directory.
func WithFS(fsys fs.FS) Option {
	return di.WithFS(fsys)
}

// WithStdout sets where listings targeted at StdoutOutput are written.
func WithStdout(w io.Writer) Option {
	return di.WithStdout(w)
}

// Module is the top level article index façade.
type Module struct {
	container *di.Container
}

// New validates cfg and wires the article builder, its renderer and logger.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.container.Config
}

// LoadArticles returns the listing, newest first. Unchanged files are served
// from the module's staleness cache.
func (m *Module) LoadArticles(ctx context.Context) ([]ArticleSummary, error) {
	return m.container.Load(ctx)
}

// Articles exposes the loader contract for site engines.
func (m *Module) Articles() interfaces.ArticleLoader {
	return m.container.Builder()
}

// BuildIndex returns the command handler that writes the JSON listing.
func (m *Module) BuildIndex() *BuildIndexHandler {
	return m.container.BuildIndexHandler()
}

// Watcher returns a watcher over the articles directory.
func (m *Module) Watcher() (*Watcher, error) {
	return m.container.Watcher()
}
