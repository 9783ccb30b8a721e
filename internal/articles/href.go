package articles

import "strings"

// Href maps a source file name to the relative link of its generated page,
// e.g. "on-testing.md" with ".md"/".html" becomes "./on-testing.html".
func Href(name, sourceExt, outputExt string) string {
	return "./" + strings.TrimSuffix(name, sourceExt) + outputExt
}
