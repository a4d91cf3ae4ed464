package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Document is the canonical record for a stored blog post: the parsed
// front-matter scalars plus the untouched Markdown body.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID        uuid.UUID  `bun:",pk,type:uuid"        json:"id"`
	Slug      string     `bun:"slug,notnull,unique"  json:"slug"`
	Title     string     `bun:"title,notnull"        json:"title"`
	Date      time.Time  `bun:"date,notnull"         json:"date"`
	Spoiler   string     `bun:"spoiler,notnull"      json:"spoiler"`
	Body      string     `bun:"body,notnull"         json:"body"`
	BodyHTML  string     `bun:"body_html"            json:"body_html,omitempty"`
	Path      string     `bun:"path"                 json:"path,omitempty"`
	Checksum  string     `bun:"checksum"             json:"checksum,omitempty"`
	Tags      []string   `bun:"tags,type:jsonb"      json:"tags,omitempty"`
	Draft     bool       `bun:"draft,notnull,default:false" json:"draft"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero"  json:"deleted_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// CreateDocumentRequest captures the information required to store a new post.
type CreateDocumentRequest struct {
	Slug     string
	Title    string
	Date     time.Time
	Spoiler  string
	Body     string
	BodyHTML string
	Path     string
	Checksum string
	Tags     []string
	Draft    bool
}

// UpdateDocumentRequest captures mutable fields for an existing post. Nil
// pointers leave the stored value untouched.
type UpdateDocumentRequest struct {
	ID       uuid.UUID
	Title    *string
	Date     *time.Time
	Spoiler  *string
	Body     *string
	BodyHTML *string
	Path     *string
	Checksum *string
	Tags     []string
	Draft    *bool
}

// UpsertDocumentRequest stores a post by slug, creating or updating as needed.
// The checksum short-circuits updates when the source file is unchanged.
type UpsertDocumentRequest struct {
	CreateDocumentRequest
}

// UpsertOutcome reports what an upsert actually did.
type UpsertOutcome string

const (
	UpsertCreated UpsertOutcome = "created"
	UpsertUpdated UpsertOutcome = "updated"
	UpsertSkipped UpsertOutcome = "skipped"
)

// UpsertResult bundles the stored record with the applied outcome.
type UpsertResult struct {
	Document *Document
	Outcome  UpsertOutcome
}

// DeleteDocumentRequest captures the information required to remove a post.
type DeleteDocumentRequest struct {
	ID         uuid.UUID
	HardDelete bool
}

// ListOptions controls listing behaviour. The zero value lists every
// non-deleted document in date-descending order.
type ListOptions struct {
	IncludeDrafts bool
}
