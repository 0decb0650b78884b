package forms

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/leadforge/leadforge/internal/forms/schema"
	"github.com/leadforge/leadforge/internal/shared"
)

// Auditor records mutations for the audit trail.
type Auditor interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service handles form business logic.
type Service struct {
	repo   Repository
	audit  Auditor
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, audit Auditor, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// Create parses and stores a new form layout for the actor's company.
func (s *Service) Create(ctx context.Context, actor shared.Actor, req CreateFormRequest) (*Form, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	if _, err := schema.Parse(req.Layout); err != nil {
		return nil, shared.Structural(err.Error())
	}

	now := time.Now().UTC()
	form := Form{
		CompanyID: actor.CompanyID,
		Name:      req.Name,
		Layout:    req.Layout,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedBy: actor.UserID,
		UpdatedAt: now,
	}
	id, err := s.repo.Create(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}
	form.ID = id

	s.recordAudit(ctx, actor, "form.create", id)
	return &form, nil
}

// Update replaces a form's name and layout wholesale.
func (s *Service) Update(ctx context.Context, actor shared.Actor, id int64, req UpdateFormRequest) (*Form, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get form: %w", err)
	}
	if existing.CompanyID != actor.CompanyID {
		return nil, shared.ErrForbidden
	}
	if _, err := schema.Parse(req.Layout); err != nil {
		return nil, shared.Structural(err.Error())
	}

	existing.Name = req.Name
	existing.Layout = req.Layout
	existing.UpdatedBy = actor.UserID
	if err := s.repo.Update(ctx, *existing); err != nil {
		return nil, fmt.Errorf("update form: %w", err)
	}

	s.recordAudit(ctx, actor, "form.update", id)
	return s.repo.GetByID(ctx, id)
}

// Get returns a form visible to the actor.
func (s *Service) Get(ctx context.Context, actor shared.Actor, id int64) (*Form, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	form, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.CompanyID != actor.CompanyID {
		return nil, shared.ErrForbidden
	}
	return form, nil
}

// List returns the actor's company forms.
func (s *Service) List(ctx context.Context, actor shared.Actor) ([]Form, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	return s.repo.ListByCompany(ctx, actor.CompanyID)
}

func (s *Service) recordAudit(ctx context.Context, actor shared.Actor, action string, id int64) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actor.UserID,
		Action:   action,
		Entity:   "form",
		EntityID: strconv.FormatInt(id, 10),
	}); err != nil {
		s.logger.Warn("audit record failed", slog.Any("error", err))
	}
}
