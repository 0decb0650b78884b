package submissions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leadforge/leadforge/internal/shared"
)

// Repository provides PostgreSQL backed persistence for submissions.
type Repository interface {
	// CreateWithFiles inserts the submission row and all file rows in a
	// single transaction. Either every row lands or none do.
	CreateWithFiles(ctx context.Context, sub Submission, files []File) (*Submission, error)
	GetByID(ctx context.Context, id int64) (*Submission, error)
}

// pgxDB is the executor surface shared by pgxpool.Pool and pgxmock pools.
type pgxDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type repository struct {
	db pgxDB
}

// NewRepository constructs a repository.
func NewRepository(db pgxDB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithFiles(ctx context.Context, sub Submission, files []File) (*Submission, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("submissions: begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO form_data (company_id, form_id, submitted_data, created_by, created_at, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		sub.CompanyID, sub.FormID, sub.Data, sub.CreatedBy, sub.CreatedAt, sub.UpdatedBy, sub.UpdatedAt,
	).Scan(&sub.ID)
	if err != nil {
		return nil, fmt.Errorf("submissions: insert form_data: %w", err)
	}

	sub.Files = make([]File, 0, len(files))
	for _, file := range files {
		file.SubmissionID = sub.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO form_files (form_data_id, file_ref, file_type)
			VALUES ($1, $2, $3)
			RETURNING id`,
			file.SubmissionID, file.FileRef, file.FileType,
		).Scan(&file.ID)
		if err != nil {
			return nil, fmt.Errorf("submissions: insert form_file: %w", err)
		}
		sub.Files = append(sub.Files, file)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("submissions: commit tx: %w", err)
	}
	return &sub, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Submission, error) {
	var sub Submission
	err := r.db.QueryRow(ctx, `
		SELECT id, company_id, form_id, submitted_data, created_by, created_at, updated_by, updated_at
		FROM form_data WHERE id = $1`, id,
	).Scan(&sub.ID, &sub.CompanyID, &sub.FormID, &sub.Data, &sub.CreatedBy, &sub.CreatedAt, &sub.UpdatedBy, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, form_data_id, file_ref, file_type
		FROM form_files WHERE form_data_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var file File
		if err := rows.Scan(&file.ID, &file.SubmissionID, &file.FileRef, &file.FileType); err != nil {
			return nil, err
		}
		sub.Files = append(sub.Files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &sub, nil
}
