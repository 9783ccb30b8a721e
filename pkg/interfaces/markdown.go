package interfaces

// MarkdownParser renders markdown to HTML. One instance is shared by every
// article load and must be safe for concurrent use.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions selects renderer behaviour.
type ParseOptions struct {
	// Extensions names goldmark extensions ("gfm", "footnote", ...). Empty
	// selects gfm, linkify and tasklist.
	Extensions []string
	// Sanitize and SafeMode both suppress raw HTML in the output.
	Sanitize bool
	SafeMode bool
	// HardWraps renders soft line breaks as <br>.
	HardWraps bool
}
