// Package markdown implements the Markdown ingestion workflows for blog
// posts: front-matter extraction, HTML rendering, filesystem discovery, and
// synchronisation with the document store.
package markdown
