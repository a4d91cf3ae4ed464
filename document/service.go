package document

import (
	"context"
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Service exposes document store use cases.
type Service interface {
	Create(ctx context.Context, req CreateDocumentRequest) (*Document, error)
	Update(ctx context.Context, req UpdateDocumentRequest) (*Document, error)
	Upsert(ctx context.Context, req UpsertDocumentRequest) (*UpsertResult, error)
	Get(ctx context.Context, id uuid.UUID) (*Document, error)
	GetBySlug(ctx context.Context, slug string) (*Document, error)
	List(ctx context.Context, opts ListOptions) ([]*Document, error)
	Delete(ctx context.Context, req DeleteDocumentRequest) error
}

// ServiceOption configures the document service.
type ServiceOption func(*service)

// WithLogger injects the logger used by the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   Repository
	logger interfaces.Logger
}

// NewService builds a document service on top of the supplied repository.
func NewService(repo Repository, opts ...ServiceOption) Service {
	svc := &service{
		repo:   repo,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Validate ensures the request carries the fields every stored post requires.
func (r CreateDocumentRequest) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(r.Slug) == "" {
		errs["slug"] = ErrSlugRequired
	} else if !IsValidSlug(r.Slug) {
		errs["slug"] = ErrSlugInvalid
	}
	if strings.TrimSpace(r.Title) == "" {
		errs["title"] = ErrTitleRequired
	}
	if r.Date.IsZero() {
		errs["date"] = ErrDateRequired
	}
	if strings.TrimSpace(r.Spoiler) == "" {
		errs["spoiler"] = ErrSpoilerRequired
	}
	if r.Body == "" {
		errs["body"] = ErrBodyRequired
	}
	return errs.Filter()
}

// Validate checks the update payload; pointer fields are only validated when set.
func (r UpdateDocumentRequest) Validate() error {
	errs := validation.Errors{}
	if r.ID == uuid.Nil {
		errs["id"] = ErrIDRequired
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		errs["title"] = ErrTitleRequired
	}
	if r.Date != nil && r.Date.IsZero() {
		errs["date"] = ErrDateRequired
	}
	if r.Spoiler != nil && strings.TrimSpace(*r.Spoiler) == "" {
		errs["spoiler"] = ErrSpoilerRequired
	}
	if r.Body != nil && *r.Body == "" {
		errs["body"] = ErrBodyRequired
	}
	return errs.Filter()
}

func (s *service) Create(ctx context.Context, req CreateDocumentRequest) (*Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetBySlug(ctx, req.Slug); err == nil {
		return nil, ErrSlugExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	record := recordFromCreate(req)
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	logging.WithFields(s.logger, map[string]any{
		"slug": created.Slug,
		"id":   created.ID,
	}).Debug("document.create.stored")
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateDocumentRequest) (*Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	applyUpdate(existing, req)
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	logging.WithFields(s.logger, map[string]any{
		"slug": updated.Slug,
		"id":   updated.ID,
	}).Debug("document.update.stored")
	return updated, nil
}

// Upsert stores a post by slug. An unchanged checksum skips the write so sync
// runs stay idempotent.
func (s *service) Upsert(ctx context.Context, req UpsertDocumentRequest) (*UpsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		created, createErr := s.repo.Create(ctx, recordFromCreate(req.CreateDocumentRequest))
		if createErr != nil {
			return nil, createErr
		}
		return &UpsertResult{Document: created, Outcome: UpsertCreated}, nil
	}

	if existing.Checksum != "" && existing.Checksum == req.Checksum {
		return &UpsertResult{Document: existing, Outcome: UpsertSkipped}, nil
	}

	next := recordFromCreate(req.CreateDocumentRequest)
	next.ID = existing.ID
	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return nil, err
	}
	return &UpsertResult{Document: updated, Outcome: UpsertUpdated}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	if id == uuid.Nil {
		return nil, ErrIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Document, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, ErrSlugRequired
	}
	return s.repo.GetBySlug(ctx, slug)
}

// List returns stored documents ordered by date descending, slug ascending as
// a tiebreak, so generated archives are deterministic.
func (s *service) List(ctx context.Context, opts ListOptions) ([]*Document, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := records[:0]
	for _, rec := range records {
		if rec.DeletedAt != nil {
			continue
		}
		if rec.Draft && !opts.IncludeDrafts {
			continue
		}
		filtered = append(filtered, rec)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].Date.Equal(filtered[j].Date) {
			return filtered[i].Date.After(filtered[j].Date)
		}
		return filtered[i].Slug < filtered[j].Slug
	})
	return filtered, nil
}

func (s *service) Delete(ctx context.Context, req DeleteDocumentRequest) error {
	if req.ID == uuid.Nil {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, req.ID); err != nil {
		return err
	}
	logging.WithFields(s.logger, map[string]any{
		"id": req.ID,
	}).Debug("document.delete.removed")
	return nil
}

func recordFromCreate(req CreateDocumentRequest) *Document {
	return &Document{
		Slug:     req.Slug,
		Title:    req.Title,
		Date:     req.Date,
		Spoiler:  req.Spoiler,
		Body:     req.Body,
		BodyHTML: req.BodyHTML,
		Path:     req.Path,
		Checksum: req.Checksum,
		Tags:     append([]string(nil), req.Tags...),
		Draft:    req.Draft,
	}
}

func applyUpdate(record *Document, req UpdateDocumentRequest) {
	if req.Title != nil {
		record.Title = *req.Title
	}
	if req.Date != nil {
		record.Date = *req.Date
	}
	if req.Spoiler != nil {
		record.Spoiler = *req.Spoiler
	}
	if req.Body != nil {
		record.Body = *req.Body
	}
	if req.BodyHTML != nil {
		record.BodyHTML = *req.BodyHTML
	}
	if req.Path != nil {
		record.Path = *req.Path
	}
	if req.Checksum != nil {
		record.Checksum = *req.Checksum
	}
	if req.Tags != nil {
		record.Tags = append([]string(nil), req.Tags...)
	}
	if req.Draft != nil {
		record.Draft = *req.Draft
	}
}
