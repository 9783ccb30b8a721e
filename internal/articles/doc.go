// Package articles builds the newest-first article listing consumed by the
// site engine. A Builder scans one flat directory, parses each article's front
// matter and excerpt, and memoises the result per file until the file's
// modification time changes.
package articles
