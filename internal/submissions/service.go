package submissions

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leadforge/leadforge/internal/forms"
	"github.com/leadforge/leadforge/internal/forms/schema"
	"github.com/leadforge/leadforge/internal/observability"
	"github.com/leadforge/leadforge/internal/platform/blob"
	"github.com/leadforge/leadforge/internal/shared"
)

// FormGetter resolves the form a submission targets.
type FormGetter interface {
	GetByID(ctx context.Context, id int64) (*forms.Form, error)
}

// Auditor records mutations for the audit trail.
type Auditor interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service assembles inbound submissions into durable records: resolve the
// form, validate the payload against its layout, then persist the submission
// and its attachments atomically.
type Service struct {
	repo     Repository
	formRepo FormGetter
	blobs    blob.Store
	audit    Auditor
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, formRepo FormGetter, blobs blob.Store, audit Auditor, metrics *observability.Metrics, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		formRepo: formRepo,
		blobs:    blobs,
		audit:    audit,
		metrics:  metrics,
		logger:   logger,
	}
}

// Submit turns one submission request into durable records. Validation and
// persistence are atomic relative to each other: a failure while storing
// file rows rolls back the submission row as well.
func (s *Service) Submit(ctx context.Context, actor shared.Actor, req SubmitRequest) (*Submission, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	if req.FormID == 0 || req.Data == nil {
		return nil, shared.Structural("Form and submitted_data fields are required.")
	}

	form, err := s.formRepo.GetByID(ctx, req.FormID)
	if err != nil {
		return nil, err
	}

	layout, err := schema.Parse(form.Layout)
	if err != nil {
		// The layout was checked when the form was authored; a parse failure
		// here means stored data is corrupt, not a caller mistake.
		return nil, fmt.Errorf("parse stored layout for form %d: %w", form.ID, err)
	}
	if result := schema.Validate(layout, req.Data); !result.OK() {
		s.metrics.CountSubmission("rejected")
		return nil, &shared.ValidationError{Fields: result.Errors}
	}

	files, err := s.uploadAll(ctx, req.Files)
	if err != nil {
		return nil, fmt.Errorf("store attachments: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.CreateWithFiles(ctx, Submission{
		CompanyID: actor.CompanyID,
		FormID:    form.ID,
		Data:      req.Data,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedBy: actor.UserID,
		UpdatedAt: now,
	}, files)
	if err != nil {
		return nil, fmt.Errorf("persist submission: %w", err)
	}

	s.metrics.CountSubmission("accepted")
	s.recordAudit(ctx, actor, created.ID)
	return created, nil
}

// Get returns a stored submission with its files.
func (s *Service) Get(ctx context.Context, actor shared.Actor, id int64) (*Submission, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.CompanyID != actor.CompanyID {
		return nil, shared.ErrForbidden
	}
	return sub, nil
}

// uploadAll streams every attachment to the blob store before the database
// transaction opens. Uploads run in parallel; the first failure cancels the
// rest.
func (s *Service) uploadAll(ctx context.Context, uploads []Upload) ([]File, error) {
	files := make([]File, len(uploads))
	g, ctx := errgroup.WithContext(ctx)
	for i, up := range uploads {
		g.Go(func() error {
			ref, err := s.blobs.Put(ctx, blob.NewKey(up.Filename), up.ContentType, up.Content)
			if err != nil {
				return err
			}
			files[i] = File{FileRef: ref, FileType: FileTypeFromKey(up.Key)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// FileTypeFromKey derives the file_type tag from a part name: the substring
// before the first underscore (photo_1 -> photo). Keys without an underscore
// are used as-is; the tag is deliberately not restricted to an allow-list.
func FileTypeFromKey(key string) string {
	if idx := strings.Index(key, "_"); idx >= 0 {
		return key[:idx]
	}
	return key
}

func (s *Service) recordAudit(ctx context.Context, actor shared.Actor, id int64) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actor.UserID,
		Action:   "form_data.create",
		Entity:   "form_data",
		EntityID: strconv.FormatInt(id, 10),
	}); err != nil {
		s.logger.Warn("audit record failed", slog.Any("error", err))
	}
}
