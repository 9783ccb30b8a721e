package articles

import (
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	displayLayout = "January 2, 2006"
	// normalizedHour pins every date to midday UTC so the calendar day does
	// not shift for readers on either side of the date line.
	normalizedHour = 12
)

// NormalizeDate keeps the UTC calendar day of t and pins it to 12:00:00.000 UTC.
func NormalizeDate(t time.Time) interfaces.ArticleDate {
	utc := t.UTC()
	noon := time.Date(utc.Year(), utc.Month(), utc.Day(), normalizedHour, 0, 0, 0, time.UTC)
	return interfaces.ArticleDate{
		UnixTimeStampMillis: noon.UnixMilli(),
		DisplayString:       noon.Format(displayLayout),
	}
}
