package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrArticlesDirRequired      = runtimeconfig.ErrArticlesDirRequired
	ErrArticlesExtensionInvalid = runtimeconfig.ErrArticlesExtensionInvalid
	ErrOutputExtensionInvalid   = runtimeconfig.ErrOutputExtensionInvalid
	ErrIndexFileInvalid         = runtimeconfig.ErrIndexFileInvalid
	ErrExcerptSeparatorInvalid  = runtimeconfig.ErrExcerptSeparatorInvalid
	ErrWatchDebounceInvalid     = runtimeconfig.ErrWatchDebounceInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	ArticlesConfig       = runtimeconfig.ArticlesConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	WatchConfig          = runtimeconfig.WatchConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	Features             = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file layered over DefaultConfig. An empty
// path returns the defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
