// Package markdown wraps the Markdown collaborators used by the article index:
// front-matter decoding, excerpt splitting, and HTML rendering through goldmark.
package markdown
