package logging

import (
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Logger names handed to the provider, one per package that logs.
const (
	rootModule     = "blog"
	articlesModule = "blog.articles"
	watchModule    = "blog.watch"
	commandsModule = "blog.commands"
)

// ModuleLogger asks provider for the logger named module and tags it with a
// module field. A nil provider, or one returning nil, yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module = strings.TrimSpace(module); module == "" {
		module = rootModule
	}

	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(module)
	}
	if logger == nil {
		logger = NoOp()
	}
	return WithFields(logger, map[string]any{"module": module})
}

func ArticlesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, articlesModule)
}

func WatchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watchModule)
}

func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithArticleContext tags logger with the article path and the action taken
// on it (e.g. "parse", "cache_hit"). Blank values are left out.
func WithArticleContext(logger interfaces.Logger, path, action string) interfaces.Logger {
	fields := make(map[string]any, 2)
	if path = strings.TrimSpace(path); path != "" {
		fields["article_path"] = path
	}
	if action = strings.TrimSpace(action); action != "" {
		fields["action"] = action
	}
	return WithFields(logger, fields)
}
