package articles

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ErrDirRequired is returned by NewBuilder when no directory is configured.
var ErrDirRequired = errors.New("articles: directory is required")

const (
	defaultExtension       = ".md"
	defaultOutputExtension = ".html"
	defaultIndexFile       = "index.md"
)

// Config controls which files the builder lists and how entries are derived.
type Config struct {
	// Dir is the flat directory holding the article sources.
	Dir string
	// Extension selects eligible files. Defaults to ".md".
	Extension string
	// OutputExtension replaces Extension in hrefs. Defaults to ".html".
	OutputExtension string
	// IndexFile names the listing page, excluded even though it matches
	// Extension. Defaults to "index.md".
	IndexFile string
	// ExcerptSeparator is the body line that ends the excerpt. Defaults to "---".
	ExcerptSeparator string
	// Parser configures the goldmark renderer created when none is injected.
	Parser interfaces.ParseOptions
}

// Option customises a Builder.
type Option func(*Builder)

// WithFS reads articles from fsys instead of the directory on disk. fsys must
// be rooted at the articles directory.
func WithFS(fsys fs.FS) Option {
	return func(b *Builder) {
		if fsys != nil {
			b.fsys = fsys
		}
	}
}

// WithCache shares cache between builders. By default each builder owns one.
func WithCache(cache *Cache) Option {
	return func(b *Builder) {
		if cache != nil {
			b.cache = cache
		}
	}
}

// WithLogger injects the logger used for cache and load diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder produces article summaries for one directory.
type Builder struct {
	root   string
	fsys   fs.FS
	cfg    Config
	parser interfaces.MarkdownParser
	cache  *Cache
	logger interfaces.Logger
}

var _ interfaces.ArticleLoader = (*Builder)(nil)

// NewBuilder constructs a Builder for cfg.Dir. The parser renders excerpts and
// is reused for every load; when nil a goldmark parser is created here, once.
func NewBuilder(cfg Config, parser interfaces.MarkdownParser, opts ...Option) (*Builder, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, ErrDirRequired
	}
	root, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("articles: resolve directory %s: %w", cfg.Dir, err)
	}

	cfg.Dir = root
	if cfg.Extension == "" {
		cfg.Extension = defaultExtension
	}
	if cfg.OutputExtension == "" {
		cfg.OutputExtension = defaultOutputExtension
	}
	if cfg.IndexFile == "" {
		cfg.IndexFile = defaultIndexFile
	}
	if cfg.ExcerptSeparator == "" {
		cfg.ExcerptSeparator = markdown.DefaultExcerptSeparator
	}
	if parser == nil {
		parser = markdown.NewGoldmarkParser(cfg.Parser)
	}

	b := &Builder{
		root:   root,
		cfg:    cfg,
		parser: parser,
		cache:  NewCache(),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.fsys == nil {
		b.fsys = os.DirFS(root)
	}
	return b, nil
}

// Dir returns the absolute articles directory.
func (b *Builder) Dir() string {
	return b.root
}

// Cache exposes the builder's staleness cache.
func (b *Builder) Cache() *Cache {
	return b.cache
}

// Eligible reports whether a file name directly inside the directory is an
// article: it carries the article extension and is not the index page.
func (b *Builder) Eligible(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return false
	}
	if name == b.cfg.IndexFile || name == b.cfg.Extension {
		return false
	}
	return strings.HasSuffix(name, b.cfg.Extension)
}

// Load lists every eligible article, newest first. Articles sharing a date keep
// file name order. The first failing file aborts the load; no partial listing
// is returned.
func (b *Builder) Load(ctx context.Context) ([]interfaces.ArticleSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := b.logger.WithContext(ctx)

	entries, err := fs.ReadDir(b.fsys, ".")
	if err != nil {
		logger.Error("articles.load.failed", "dir", b.root, "error", err)
		return nil, fmt.Errorf("articles: read directory %s: %w", b.root, err)
	}

	summaries := make([]interfaces.ArticleSummary, 0, len(entries))
	cached := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !b.Eligible(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		summary, hit, err := b.resolve(logger, entry.Name())
		if err != nil {
			logger.Error("articles.load.failed", "dir", b.root, "article", entry.Name(), "error", err)
			return nil, err
		}
		if hit {
			cached++
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Date.UnixTimeStampMillis > summaries[j].Date.UnixTimeStampMillis
	})

	logger.Info("articles.load.completed",
		"dir", b.root,
		"count", len(summaries),
		"cached", cached,
		"parsed", len(summaries)-cached,
	)
	return summaries, nil
}

// resolve returns the summary for name, serving the cache while the file's
// modification time is unchanged. Cache hits read no file content.
func (b *Builder) resolve(logger interfaces.Logger, name string) (interfaces.ArticleSummary, bool, error) {
	path := filepath.Join(b.root, name)

	info, err := fs.Stat(b.fsys, name)
	if err != nil {
		return interfaces.ArticleSummary{}, false, fmt.Errorf("articles: stat %s: %w", path, err)
	}
	modified := info.ModTime().UnixMilli()

	if summary, ok := b.cache.Lookup(path, modified); ok {
		logging.WithArticleContext(logger, path, "cache_hit").Debug("articles.cache.hit")
		return summary, true, nil
	}

	source, err := fs.ReadFile(b.fsys, name)
	if err != nil {
		return interfaces.ArticleSummary{}, false, fmt.Errorf("articles: read %s: %w", path, err)
	}

	summary, err := b.summarize(path, name, source)
	if err != nil {
		return interfaces.ArticleSummary{}, false, err
	}

	b.cache.Store(path, modified, summary)
	logging.WithArticleContext(logger, path, "parse").Debug("articles.cache.miss", "modified_ms", modified)
	return summary, false, nil
}

func (b *Builder) summarize(path, name string, source []byte) (interfaces.ArticleSummary, error) {
	meta, body, err := markdown.ParseFrontMatter(source)
	if err != nil {
		return interfaces.ArticleSummary{}, &MetadataError{Path: path, Err: err}
	}
	if meta.Title == "" {
		return interfaces.ArticleSummary{}, &MetadataError{Path: path, Field: "title", Err: ErrTitleRequired}
	}
	if !meta.Date.IsSet() {
		return interfaces.ArticleSummary{}, &MetadataError{Path: path, Field: "date", Err: ErrDateRequired}
	}
	published, err := meta.Date.Value()
	if err != nil {
		return interfaces.ArticleSummary{}, &MetadataError{Path: path, Field: "date", Err: err}
	}

	excerpt := ""
	if raw, ok := markdown.SplitExcerpt(body, b.cfg.ExcerptSeparator); ok {
		html, err := b.parser.Parse(raw)
		if err != nil {
			return interfaces.ArticleSummary{}, fmt.Errorf("articles: render excerpt %s: %w", path, err)
		}
		excerpt = string(html)
	}

	return interfaces.ArticleSummary{
		Title:   meta.Title,
		Href:    Href(name, b.cfg.Extension, b.cfg.OutputExtension),
		Date:    NormalizeDate(published),
		Excerpt: excerpt,
	}, nil
}
