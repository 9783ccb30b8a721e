package interfaces

import "context"

// ArticleSummary is the listing entry the site engine consumes for index and
// navigation pages. JSON names follow the keys the site templates read.
type ArticleSummary struct {
	Title   string      `json:"title"`
	Href    string      `json:"href"`
	Date    ArticleDate `json:"date"`
	Excerpt string      `json:"excerpt"`
}

// ArticleDate carries the publication date pinned to 12:00 UTC together with
// its long-form English rendering (e.g. "March 1, 2024").
type ArticleDate struct {
	UnixTimeStampMillis int64  `json:"unixTimeStamp"`
	DisplayString       string `json:"displayString"`
}

// ArticleLoader produces the newest-first article listing.
type ArticleLoader interface {
	Load(ctx context.Context) ([]ArticleSummary, error)
}
