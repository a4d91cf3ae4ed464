package markdown

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/document"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	ErrDocumentServiceRequired = errors.New("markdown importer: document service is required")
	ErrSlugMissing             = errors.New("markdown importer: document slug is required")
)

// ImporterConfig encapsulates dependencies required to persist markdown documents.
type ImporterConfig struct {
	Documents document.Service
	Logger    interfaces.Logger
}

// Importer converts parsed markdown documents into stored blog records.
type Importer struct {
	documents document.Service
	logger    interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		documents: cfg.Documents,
		logger:    logger,
	}
}

// ImportDocument imports a single markdown document.
func (i *Importer) ImportDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.documents == nil {
		return nil, ErrDocumentServiceRequired
	}
	acc := newImportAccumulator()
	if err := i.applyDocument(ctx, doc, opts, acc); err != nil {
		acc.addError(err)
	}
	return acc.result(), firstError(acc.errors)
}

// ImportDocuments imports a slice of documents. A failure on one document is
// collected and the remainder continue importing.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.documents == nil {
		return nil, ErrDocumentServiceRequired
	}

	acc := newImportAccumulator()
	for _, doc := range docs {
		if err := i.applyDocument(ctx, doc, opts, acc); err != nil {
			acc.addError(err)
		}
	}
	return acc.result(), nil
}

// SyncDocuments imports all provided documents and optionally deletes stored
// records whose source files no longer exist.
func (i *Importer) SyncDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	if i.documents == nil {
		return nil, ErrDocumentServiceRequired
	}

	acc := newSyncAccumulator()
	imported := newImportAccumulator()
	seen := make(map[string]struct{}, len(docs))

	for _, doc := range docs {
		if doc != nil {
			seen[strings.TrimSpace(doc.Slug)] = struct{}{}
		}
		if err := i.applyDocument(ctx, doc, opts.ImportOptions, imported); err != nil {
			imported.addError(err)
		}
	}
	acc.merge(imported.result())

	if opts.DeleteOrphaned {
		if err := i.deleteOrphaned(ctx, seen, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	return acc.result(), nil
}

func (i *Importer) applyDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions, acc *importAccumulator) error {
	if doc == nil {
		return errors.New("markdown importer: nil document")
	}
	slug := strings.TrimSpace(doc.Slug)
	if slug == "" {
		return ErrSlugMissing
	}

	if opts.DryRun {
		existing, err := i.documents.GetBySlug(ctx, slug)
		if err != nil && !errors.Is(err, document.ErrNotFound) {
			return fmt.Errorf("markdown importer: lookup %s: %w", slug, err)
		}
		if existing != nil {
			acc.skip(existing.ID)
		}
		return nil
	}

	res, err := i.documents.Upsert(ctx, document.UpsertDocumentRequest{
		CreateDocumentRequest: document.CreateDocumentRequest{
			Slug:     slug,
			Title:    doc.FrontMatter.Title,
			Date:     doc.FrontMatter.Date,
			Spoiler:  doc.FrontMatter.Spoiler,
			Body:     string(doc.Body),
			BodyHTML: string(doc.BodyHTML),
			Path:     doc.FilePath,
			Checksum: hex.EncodeToString(doc.Checksum),
			Tags:     doc.FrontMatter.Tags,
			Draft:    doc.FrontMatter.Draft,
		},
	})
	if err != nil {
		return fmt.Errorf("markdown importer: upsert %s: %w", slug, err)
	}

	logging.WithMarkdownContext(i.logger, doc.FilePath, slug, string(res.Outcome)).
		Debug("markdown.importer.applied")

	switch res.Outcome {
	case document.UpsertCreated:
		acc.created(res.Document.ID)
	case document.UpsertUpdated:
		acc.updated(res.Document.ID)
	default:
		acc.skip(res.Document.ID)
	}
	return nil
}

func (i *Importer) deleteOrphaned(ctx context.Context, seen map[string]struct{}, opts interfaces.SyncOptions, acc *syncAccumulator) error {
	existing, err := i.documents.List(ctx, document.ListOptions{IncludeDrafts: true})
	if err != nil {
		return fmt.Errorf("markdown importer: list documents: %w", err)
	}

	for _, record := range existing {
		if _, ok := seen[record.Slug]; ok {
			continue
		}
		if opts.DryRun {
			acc.deleted++
			continue
		}
		if err := i.documents.Delete(ctx, document.DeleteDocumentRequest{
			ID:         record.ID,
			HardDelete: true,
		}); err != nil {
			return fmt.Errorf("markdown importer: delete %s: %w", record.Slug, err)
		}
		logging.WithMarkdownContext(i.logger, record.Path, record.Slug, "deleted").
			Debug("markdown.importer.orphan_removed")
		acc.deleted++
	}

	return nil
}

type importAccumulator struct {
	createdIDs []uuid.UUID
	updatedIDs []uuid.UUID
	skippedIDs []uuid.UUID
	errors     []error
}

func newImportAccumulator() *importAccumulator {
	return &importAccumulator{
		createdIDs: []uuid.UUID{},
		updatedIDs: []uuid.UUID{},
		skippedIDs: []uuid.UUID{},
		errors:     []error{},
	}
}

func (a *importAccumulator) created(id uuid.UUID) {
	if id != uuid.Nil {
		a.createdIDs = append(a.createdIDs, id)
	}
}

func (a *importAccumulator) updated(id uuid.UUID) {
	if id != uuid.Nil {
		a.updatedIDs = append(a.updatedIDs, id)
	}
}

func (a *importAccumulator) skip(id uuid.UUID) {
	if id != uuid.Nil {
		a.skippedIDs = append(a.skippedIDs, id)
	}
}

func (a *importAccumulator) addError(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *importAccumulator) result() *interfaces.ImportResult {
	return &interfaces.ImportResult{
		CreatedIDs: a.createdIDs,
		UpdatedIDs: a.updatedIDs,
		SkippedIDs: a.skippedIDs,
		Errors:     a.errors,
	}
}

type syncAccumulator struct {
	created int
	updated int
	deleted int
	skipped int
	errors  []error
}

func newSyncAccumulator() *syncAccumulator {
	return &syncAccumulator{
		errors: []error{},
	}
}

func (s *syncAccumulator) merge(res *interfaces.ImportResult) {
	if res == nil {
		return
	}
	s.created += len(res.CreatedIDs)
	s.updated += len(res.UpdatedIDs)
	s.skipped += len(res.SkippedIDs)
	s.errors = append(s.errors, res.Errors...)
}

func (s *syncAccumulator) addError(err error) {
	if err != nil {
		s.errors = append(s.errors, err)
	}
}

func (s *syncAccumulator) result() *interfaces.SyncResult {
	return &interfaces.SyncResult{
		Created: s.created,
		Updated: s.updated,
		Skipped: s.skipped,
		Deleted: s.deleted,
		Errors:  s.errors,
	}
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
