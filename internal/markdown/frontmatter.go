package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

var (
	// ErrFrontMatter reports a front-matter block that could not be decoded.
	ErrFrontMatter = errors.New("markdown: malformed frontmatter")
	// ErrInvalidDate reports a date value that cannot be read as a calendar date.
	ErrInvalidDate = errors.New("markdown: invalid frontmatter date")
)

// ArticleFrontMatter is the typed metadata block of an article source file.
// Title and Date are the fields the index relies on; anything else is kept in
// Custom and ignored downstream.
type ArticleFrontMatter struct {
	Title  string          `yaml:"title" toml:"title" json:"title"`
	Date   FrontMatterDate `yaml:"date" toml:"date" json:"date"`
	Custom map[string]any  `yaml:",inline" toml:"-" json:"-"`
}

// ParseFrontMatter extracts metadata and the Markdown body from source. Files
// without a front-matter block yield a zero ArticleFrontMatter and the whole
// source as body.
func ParseFrontMatter(source []byte) (ArticleFrontMatter, []byte, error) {
	var meta ArticleFrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return ArticleFrontMatter{}, nil, fmt.Errorf("%w: %w", ErrFrontMatter, err)
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	meta.Title = strings.TrimSpace(meta.Title)

	return meta, body, nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
}

// FrontMatterDate accepts either a native timestamp or a date string. The raw
// value is retained so Value can report what failed to parse.
type FrontMatterDate struct {
	raw    string
	parsed time.Time
	native bool
	set    bool
}

// NewFrontMatterDate builds a date from a string the way decoding would.
func NewFrontMatterDate(raw string) FrontMatterDate {
	return FrontMatterDate{raw: raw, set: strings.TrimSpace(raw) != ""}
}

// IsSet reports whether the field was present and non-empty.
func (d FrontMatterDate) IsSet() bool {
	return d.set
}

// Value coerces the field into a time.Time. Zone-less values are read as UTC.
func (d FrontMatterDate) Value() (time.Time, error) {
	if d.native {
		return d.parsed, nil
	}
	value := strings.TrimSpace(d.raw)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// UnmarshalYAML satisfies the yaml.v2 Unmarshaler used by adrg/frontmatter.
func (d *FrontMatterDate) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch value := raw.(type) {
	case nil:
		*d = FrontMatterDate{}
	case time.Time:
		*d = FrontMatterDate{parsed: value, native: true, set: true}
	case string:
		*d = NewFrontMatterDate(value)
	default:
		*d = NewFrontMatterDate(fmt.Sprint(value))
	}
	return nil
}

// UnmarshalText covers TOML and JSON front matter.
func (d *FrontMatterDate) UnmarshalText(text []byte) error {
	*d = NewFrontMatterDate(string(text))
	return nil
}
