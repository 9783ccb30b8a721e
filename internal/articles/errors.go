package articles

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-blog/internal/markdown"
)

var (
	ErrTitleRequired = errors.New("articles: frontmatter title is required")
	ErrDateRequired  = errors.New("articles: frontmatter date is required")
	// ErrInvalidDate is shared with the markdown package so either sentinel
	// matches a date that failed to parse.
	ErrInvalidDate = markdown.ErrInvalidDate
	ErrFrontMatter = markdown.ErrFrontMatter
)

// MetadataError reports an article whose front matter is missing a required
// field or carries a value that cannot be used. A date that fails to parse is
// a MetadataError with Field "date" wrapping ErrInvalidDate.
type MetadataError struct {
	Path  string
	Field string
	Err   error
}

func (e *MetadataError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("articles: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("articles: %s: field %q: %v", e.Path, e.Field, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// IsDateParseError reports whether err is a MetadataError caused by an
// unparseable date.
func IsDateParseError(err error) bool {
	var metaErr *MetadataError
	return errors.As(err, &metaErr) && metaErr.Field == "date" && errors.Is(metaErr.Err, ErrInvalidDate)
}
