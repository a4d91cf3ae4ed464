package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be safe for reuse across documents so hosts can
// share a single parser instance.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions     []string
	HardWraps      bool
	SafeMode       bool
	HighlightStyle string
}

// MarkdownService exposes the file workflows used by the blog tooling:
// loading Markdown posts from disk, rendering them to HTML, and keeping the
// document store in step with the content directory.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
	Import(ctx context.Context, doc *Document, opts ImportOptions) (*ImportResult, error)
	ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error)
	Sync(ctx context.Context, dir string, opts SyncOptions) (*SyncResult, error)
}

// Document represents a Markdown file with parsed metadata and content. The
// struct is shared between the interfaces package and internal implementations
// so consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	Slug         string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a digest of the original file content (typically SHA-256)
	// so sync workflows can detect changes without re-importing unchanged files.
	Checksum []byte
}

// FrontMatter models the metadata header extracted from a blog post. Title,
// Date, and Spoiler are mandatory; everything else is optional and preserved
// through the Custom map.
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title"`
	Slug    string         `yaml:"slug" json:"slug"`
	Date    time.Time      `yaml:"date" json:"date"`
	Spoiler string         `yaml:"spoiler" json:"spoiler"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Draft   bool           `yaml:"draft" json:"draft"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
	// Header retains the verbatim metadata block, delimiters included, so a
	// parsed document can be serialized back to byte-identical source.
	Header []byte `yaml:"-" json:"-"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}

// ImportOptions controls how Markdown documents are persisted as blog records.
type ImportOptions struct {
	DryRun bool
}

// SyncOptions extends ImportOptions to handle delete semantics for repeated
// synchronisation runs.
type SyncOptions struct {
	ImportOptions
	DeleteOrphaned bool
}

// ImportResult reports the outcome of a single import operation, exposing
// counts and IDs so callers can audit behaviour or trigger follow-up actions.
type ImportResult struct {
	CreatedIDs []uuid.UUID
	UpdatedIDs []uuid.UUID
	SkippedIDs []uuid.UUID
	Errors     []error
}

// SyncResult summarises a bulk sync run across many files.
type SyncResult struct {
	Created int
	Updated int
	Deleted int
	Skipped int
	Errors  []error
}
