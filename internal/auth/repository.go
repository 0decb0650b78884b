package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadforge/leadforge/internal/shared"
)

// Repository provides PostgreSQL backed persistence for user accounts.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmailOrMobile(ctx context.Context, email, mobile string) (bool, error)
	Create(ctx context.Context, user User) (*User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	ListByCompany(ctx context.Context, companyID int64) ([]User, error)
}

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	db dbtx
}

// NewRepository constructs a repository over a pgx pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

// NewRepositoryWithDB constructs a repository over any pgx executor.
func NewRepositoryWithDB(db dbtx) Repository {
	return &repository{db: db}
}

const userColumns = `id, COALESCE(company_id, 0), first_name, last_name, email,
	mobile_number, photo, password_hash, is_active, is_staff, COALESCE(last_login, 'epoch'::timestamptz)`

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *repository) one(ctx context.Context, query string, arg any) (*User, error) {
	var user User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.CompanyID, &user.FirstName, &user.LastName, &user.Email,
		&user.MobileNumber, &user.Photo, &user.PasswordHash, &user.IsActive, &user.IsStaff, &user.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("auth: query user: %w", err)
	}
	if user.LastLogin.Unix() == 0 {
		user.LastLogin = time.Time{}
	}
	return &user, nil
}

func (r *repository) ExistsByEmailOrMobile(ctx context.Context, email, mobile string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR mobile_number = $2)`,
		email, mobile,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("auth: check duplicate user: %w", err)
	}
	return exists, nil
}

func (r *repository) Create(ctx context.Context, user User) (*User, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (company_id, first_name, last_name, email, mobile_number, photo, password_hash, is_active, is_staff)
		VALUES (NULLIF($1, 0), $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		user.CompanyID, user.FirstName, user.LastName, user.Email, user.MobileNumber,
		user.Photo, user.PasswordHash, user.IsActive, user.IsStaff,
	).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: insert user: %w", err)
	}
	return &user, nil
}

func (r *repository) UpdateLastLogin(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("auth: update last_login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) ListByCompany(ctx context.Context, companyID int64) ([]User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 ORDER BY id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("auth: list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.ID, &user.CompanyID, &user.FirstName, &user.LastName, &user.Email,
			&user.MobileNumber, &user.Photo, &user.PasswordHash, &user.IsActive, &user.IsStaff, &user.LastLogin,
		); err != nil {
			return nil, fmt.Errorf("auth: scan user: %w", err)
		}
		if user.LastLogin.Unix() == 0 {
			user.LastLogin = time.Time{}
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("auth: list users: %w", err)
	}
	return users, nil
}
