package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrArticlesDirRequired = errors.New("blog config: articles directory is required")
var ErrArticlesExtensionInvalid = errors.New("blog config: article extension must start with a dot")
var ErrOutputExtensionInvalid = errors.New("blog config: output extension must start with a dot")
var ErrIndexFileInvalid = errors.New("blog config: index file must be a plain file name")
var ErrExcerptSeparatorInvalid = errors.New("blog config: excerpt separator must be a single line")
var ErrWatchDebounceInvalid = errors.New("blog config: watch debounce must be a positive duration")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

const defaultWatchDebounce = 100 * time.Millisecond

// Config aggregates the settings of the article index and its ambient stack.
type Config struct {
	Articles ArticlesConfig       `yaml:"articles"`
	Markdown MarkdownParserConfig `yaml:"markdown"`
	Watch    WatchConfig          `yaml:"watch"`
	Logging  LoggingConfig        `yaml:"logging"`
	Features Features             `yaml:"features"`
}

// ArticlesConfig describes where article sources live and how listing entries
// are derived from them.
type ArticlesConfig struct {
	// Dir is the flat directory holding the article sources.
	Dir string `yaml:"dir"`
	// Extension selects eligible files (e.g. ".md").
	Extension string `yaml:"extension"`
	// OutputExtension replaces Extension when deriving hrefs (e.g. ".html").
	OutputExtension string `yaml:"output_extension"`
	// IndexFile is the listing page itself, excluded by exact name.
	IndexFile string `yaml:"index_file"`
	// ExcerptSeparator is the body line that ends the excerpt.
	ExcerptSeparator string `yaml:"excerpt_separator"`
	// Output is where build writes the JSON listing; "-" means stdout.
	Output string `yaml:"output"`
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string `yaml:"extensions"`
	Sanitize   bool     `yaml:"sanitize"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// WatchConfig tunes the file watcher.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DebounceDuration parses Debounce, falling back to the default for empty or
// invalid values.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(w.Debounce))
	if err != nil || d <= 0 {
		return defaultWatchDebounce
	}
	return d
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// Features toggles optional functionality.
type Features struct {
	Logger bool `yaml:"logger"`
}

// DefaultConfig returns the layout of a VitePress style blog: articles under
// docs/articles, listing page index.md, excerpt cut at the first `---` line.
func DefaultConfig() Config {
	return Config{
		Articles: ArticlesConfig{
			Dir:              "docs/articles",
			Extension:        ".md",
			OutputExtension:  ".html",
			IndexFile:        "index.md",
			ExcerptSeparator: "---",
			Output:           "-",
		},
		Markdown: MarkdownParserConfig{},
		Watch: WatchConfig{
			Debounce: defaultWatchDebounce.String(),
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Logger: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Articles.Dir) == "" {
		return ErrArticlesDirRequired
	}
	if ext := cfg.Articles.Extension; !isExtension(ext) {
		return fmt.Errorf("%w: %q", ErrArticlesExtensionInvalid, ext)
	}
	if ext := cfg.Articles.OutputExtension; !isExtension(ext) {
		return fmt.Errorf("%w: %q", ErrOutputExtensionInvalid, ext)
	}
	if name := cfg.Articles.IndexFile; name != "" && strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrIndexFileInvalid, name)
	}
	if sep := cfg.Articles.ExcerptSeparator; strings.ContainsAny(sep, "\r\n") {
		return fmt.Errorf("%w: %q", ErrExcerptSeparatorInvalid, sep)
	}
	if raw := strings.TrimSpace(cfg.Watch.Debounce); raw != "" {
		if d, err := time.ParseDuration(raw); err != nil || d <= 0 {
			return fmt.Errorf("%w: %q", ErrWatchDebounceInvalid, raw)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func isExtension(ext string) bool {
	return len(ext) > 1 && strings.HasPrefix(ext, ".") && !strings.ContainsAny(ext, `/\`)
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
