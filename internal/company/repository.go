package company

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadforge/leadforge/internal/shared"
)

// Repository provides PostgreSQL backed persistence for companies.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Company, error)
	List(ctx context.Context) ([]Company, error)
	Create(ctx context.Context, c Company) (int64, error)
	Update(ctx context.Context, c Company) error
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

// NewRepositoryWithDB constructs a repository over any query executor.
func NewRepositoryWithDB(db dbtx) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Company, error) {
	var c Company
	err := r.db.QueryRow(ctx, `
		SELECT id, company_name, created_by, created_at, updated_by, updated_at
		FROM companies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedBy, &c.CreatedAt, &c.UpdatedBy, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]Company, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, company_name, created_by, created_at, updated_by, updated_at
		FROM companies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedBy, &c.CreatedAt, &c.UpdatedBy, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Company) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO companies (company_name, created_by, created_at, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		c.Name, c.CreatedBy, c.CreatedAt, c.UpdatedBy, c.UpdatedAt,
	).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, c Company) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE companies SET company_name = $1, updated_by = $2, updated_at = $3
		WHERE id = $4`,
		c.Name, c.UpdatedBy, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
