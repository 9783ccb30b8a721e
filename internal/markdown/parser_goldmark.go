package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// defaultExtensions apply when ParseOptions names none.
var defaultExtensions = []string{"gfm", "linkify", "tasklist"}

var knownExtensions = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

var extensionAliases = map[string]string{
	"tables":   "table",
	"autolink": "linkify",
}

// GoldmarkParser renders excerpts with goldmark. It is safe for concurrent use;
// the engine for its default options is built once.
type GoldmarkParser struct {
	defaults interfaces.ParseOptions
	engine   goldmark.Markdown
}

var _ interfaces.MarkdownParser = (*GoldmarkParser)(nil)

// NewGoldmarkParser builds the engine for defaults. Raw HTML passes through
// unless SafeMode or Sanitize is set.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaults: defaults,
		engine:   buildEngine(defaults),
	}
}

// Parse renders markdown with the default options.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return render(p.engine, markdown)
}

// ParseWithOptions renders markdown with a one-off engine for opts.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	return render(buildEngine(opts), markdown)
}

func render(engine goldmark.Markdown, source []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := engine.Convert(source, &out); err != nil {
		return nil, fmt.Errorf("markdown: render: %w", err)
	}
	return out.Bytes(), nil
}

func buildEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if !opts.SafeMode && !opts.Sanitize {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(resolveExtensions(opts.Extensions)...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

// resolveExtensions maps configured names to extenders, dropping unknown
// names and duplicates.
func resolveExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		names = defaultExtensions
	}

	seen := make(map[string]bool, len(names))
	extenders := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if alias, ok := extensionAliases[key]; ok {
			key = alias
		}
		ext, ok := knownExtensions[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		extenders = append(extenders, ext)
	}
	return extenders
}
