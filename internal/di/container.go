package di

import (
	"context"
	"io"
	"io/fs"
	"strings"

	"github.com/goliatone/go-blog/internal/articles"
	"github.com/goliatone/go-blog/internal/commands"
	articlescmd "github.com/goliatone/go-blog/internal/commands/articles"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/watch"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Option mutates the container before services are wired.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithMarkdownParser replaces the goldmark renderer used for excerpts.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		if parser != nil {
			c.parser = parser
		}
	}
}

// WithFS reads articles from fsys instead of the configured directory on disk.
func WithFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.fsys = fsys
	}
}

// WithStdout sets the writer that receives listings targeted at "-".
func WithStdout(w io.Writer) Option {
	return func(c *Container) {
		if w != nil {
			c.stdout = w
		}
	}
}

// Container wires the article index services from configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	parser         interfaces.MarkdownParser
	fsys           fs.FS
	stdout         io.Writer

	builder    *articles.Builder
	buildIndex *articlescmd.BuildIndexHandler
}

// NewContainer validates cfg and builds the logger provider, the markdown
// renderer and the article builder.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := newLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.parser == nil {
		c.parser = markdown.NewGoldmarkParser(parseOptions(cfg.Markdown))
	}

	builderOpts := []articles.Option{
		articles.WithLogger(logging.ArticlesLogger(c.loggerProvider)),
	}
	if c.fsys != nil {
		builderOpts = append(builderOpts, articles.WithFS(c.fsys))
	}

	builder, err := articles.NewBuilder(articles.Config{
		Dir:              cfg.Articles.Dir,
		Extension:        cfg.Articles.Extension,
		OutputExtension:  cfg.Articles.OutputExtension,
		IndexFile:        cfg.Articles.IndexFile,
		ExcerptSeparator: cfg.Articles.ExcerptSeparator,
		Parser:           parseOptions(cfg.Markdown),
	}, c.parser, builderOpts...)
	if err != nil {
		return nil, err
	}
	c.builder = builder

	c.buildIndex = articlescmd.NewBuildIndexHandler(
		builder,
		c.stdout,
		commands.CommandLogger(c.loggerProvider, "articles"),
	)
	return c, nil
}

// LoggerProvider returns the configured provider. It is nil when the logger
// feature is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Builder returns the article index builder.
func (c *Container) Builder() *articles.Builder {
	return c.builder
}

// BuildIndexHandler returns the command handler that publishes the listing.
func (c *Container) BuildIndexHandler() *articlescmd.BuildIndexHandler {
	return c.buildIndex
}

// Watcher returns a watcher over the articles directory that shares the
// builder's eligibility rules.
func (c *Container) Watcher() (*watch.Watcher, error) {
	return watch.New(
		c.builder.Dir(),
		c.builder.Eligible,
		watch.WithDebounce(c.Config.Watch.DebounceDuration()),
		watch.WithLogger(logging.WatchLogger(c.loggerProvider)),
	)
}

// Load runs the builder.
func (c *Container) Load(ctx context.Context) ([]interfaces.ArticleSummary, error) {
	return c.builder.Load(ctx)
}

func newLoggerProvider(cfg runtimeconfig.Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Logging.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	}
}

func parseOptions(cfg runtimeconfig.MarkdownParserConfig) interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: append([]string(nil), cfg.Extensions...),
		Sanitize:   cfg.Sanitize,
		HardWraps:  cfg.HardWraps,
		SafeMode:   cfg.SafeMode,
	}
}
