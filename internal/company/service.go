package company

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/leadforge/leadforge/internal/auth"
	"github.com/leadforge/leadforge/internal/shared"
)

// Auditor records mutations for the audit trail.
type Auditor interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// UserDirectory lists the accounts attached to a company.
type UserDirectory interface {
	ListByCompany(ctx context.Context, companyID int64) ([]auth.User, error)
}

// Service handles company business logic.
type Service struct {
	repo   Repository
	users  UserDirectory
	audit  Auditor
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, users UserDirectory, audit Auditor, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, audit: audit, logger: logger}
}

// Create registers a new tenant.
func (s *Service) Create(ctx context.Context, actor shared.Actor, req CreateCompanyRequest) (*Company, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	now := time.Now().UTC()
	c := Company{
		Name:      req.Name,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedBy: actor.UserID,
		UpdatedAt: now,
	}
	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	c.ID = id

	s.recordAudit(ctx, actor, "company.create", id)
	return &c, nil
}

// Update replaces the company name. Only members may update their company.
func (s *Service) Update(ctx context.Context, actor shared.Actor, id int64, req UpdateCompanyRequest) (*Company, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.ID != actor.CompanyID {
		return nil, shared.ErrForbidden
	}

	existing.Name = req.Name
	existing.UpdatedBy = actor.UserID
	existing.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, *existing); err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}

	s.recordAudit(ctx, actor, "company.update", id)
	return existing, nil
}

// Get returns one company.
func (s *Service) Get(ctx context.Context, actor shared.Actor, id int64) (*Company, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	return s.repo.GetByID(ctx, id)
}

// List returns all companies.
func (s *Service) List(ctx context.Context, actor shared.Actor) ([]Company, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	return s.repo.List(ctx)
}

// ListUsers returns the accounts of a company. Members only.
func (s *Service) ListUsers(ctx context.Context, actor shared.Actor, companyID int64) ([]auth.User, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	if companyID != actor.CompanyID {
		return nil, shared.ErrForbidden
	}
	return s.users.ListByCompany(ctx, companyID)
}

// GetRef resolves the nested company payload used inside user views.
func (s *Service) GetRef(ctx context.Context, id int64) (*auth.CompanyRef, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &auth.CompanyRef{ID: c.ID, Name: c.Name}, nil
}

func (s *Service) recordAudit(ctx context.Context, actor shared.Actor, action string, id int64) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actor.UserID,
		Action:   action,
		Entity:   "company",
		EntityID: strconv.FormatInt(id, 10),
	}); err != nil {
		s.logger.Warn("audit record failed", slog.Any("error", err))
	}
}
