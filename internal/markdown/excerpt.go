package markdown

import "bytes"

// DefaultExcerptSeparator matches the front-matter delimiter, so authors cut the
// excerpt with the same `---` line they open the metadata block with.
const DefaultExcerptSeparator = "---"

// SplitExcerpt returns the body content preceding the first line equal to
// separator. ok is false when the body holds no such line.
func SplitExcerpt(body []byte, separator string) (excerpt []byte, ok bool) {
	if separator == "" {
		separator = DefaultExcerptSeparator
	}
	sep := []byte(separator)

	offset := 0
	rest := body
	for len(rest) > 0 {
		line, next := rest, len(rest)
		if idx := bytes.IndexByte(rest, '\n'); idx >= 0 {
			line, next = rest[:idx], idx+1
		}
		if bytes.Equal(bytes.TrimSpace(line), sep) {
			return bytes.Clone(body[:offset]), true
		}
		offset += next
		rest = rest[next:]
	}
	return nil, false
}
