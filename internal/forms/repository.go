package forms

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadforge/leadforge/internal/shared"
)

// Repository provides PostgreSQL backed persistence for forms.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Form, error)
	ListByCompany(ctx context.Context, companyID int64) ([]Form, error)
	Create(ctx context.Context, form Form) (int64, error)
	Update(ctx context.Context, form Form) error
}

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	db dbtx
}

// NewRepository constructs a repository over a connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

// NewRepositoryWithDB constructs a repository over any query executor,
// allowing transactions and mocks.
func NewRepositoryWithDB(db dbtx) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Form, error) {
	var form Form
	err := r.db.QueryRow(ctx, `
		SELECT id, company_id, name, layout, created_by, created_at, updated_by, updated_at
		FROM forms WHERE id = $1`, id,
	).Scan(&form.ID, &form.CompanyID, &form.Name, &form.Layout, &form.CreatedBy, &form.CreatedAt, &form.UpdatedBy, &form.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &form, nil
}

func (r *repository) ListByCompany(ctx context.Context, companyID int64) ([]Form, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, company_id, name, layout, created_by, created_at, updated_by, updated_at
		FROM forms WHERE company_id = $1 ORDER BY id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Form
	for rows.Next() {
		var form Form
		if err := rows.Scan(&form.ID, &form.CompanyID, &form.Name, &form.Layout, &form.CreatedBy, &form.CreatedAt, &form.UpdatedBy, &form.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, form)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, form Form) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO forms (company_id, name, layout, created_by, created_at, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		form.CompanyID, form.Name, form.Layout, form.CreatedBy, form.CreatedAt, form.UpdatedBy, form.UpdatedAt,
	).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, form Form) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE forms SET name = $1, layout = $2, updated_by = $3, updated_at = $4
		WHERE id = $5`,
		form.Name, form.Layout, form.UpdatedBy, time.Now().UTC(), form.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
